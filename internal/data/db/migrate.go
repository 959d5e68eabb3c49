package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/planbridge-backend/internal/domain"
)

// Migrate creates the tables and the DDL GORM tags cannot express.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsurePlanningSchema(ctx, db)
}

// EnsurePlanningSchema installs the code-less sujet uniqueness index and the
// trigger that maintains action.depth. Both statements are idempotent.
func EnsurePlanningSchema(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)

	// COALESCE folds NULL parents together so two root sujets with the same
	// title collide.
	if err := tx.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS ux_sujet_parent_title_nocode
		ON sujet (COALESCE(parent_id, 0), title)
		WHERE code IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create ux_sujet_parent_title_nocode: %w", err)
	}

	switch db.Dialector.Name() {
	case "postgres":
		if err := tx.Exec(`
			CREATE OR REPLACE FUNCTION action_set_depth() RETURNS trigger AS $$
			BEGIN
				IF NEW.parent_action_id IS NULL THEN
					NEW.depth := 0;
				ELSE
					NEW.depth := COALESCE((SELECT a.depth + 1 FROM action a WHERE a.id = NEW.parent_action_id), 0);
				END IF;
				RETURN NEW;
			END;
			$$ LANGUAGE plpgsql;
		`).Error; err != nil {
			return fmt.Errorf("create action_set_depth: %w", err)
		}
		if err := tx.Exec(`DROP TRIGGER IF EXISTS trg_action_depth ON action;`).Error; err != nil {
			return fmt.Errorf("drop trg_action_depth: %w", err)
		}
		if err := tx.Exec(`
			CREATE TRIGGER trg_action_depth
			BEFORE INSERT OR UPDATE OF parent_action_id ON action
			FOR EACH ROW EXECUTE FUNCTION action_set_depth();
		`).Error; err != nil {
			return fmt.Errorf("create trg_action_depth: %w", err)
		}
	case "sqlite":
		if err := tx.Exec(`
			CREATE TRIGGER IF NOT EXISTS trg_action_depth
			AFTER INSERT ON action
			FOR EACH ROW WHEN NEW.parent_action_id IS NOT NULL
			BEGIN
				UPDATE action
				SET depth = COALESCE((SELECT p.depth + 1 FROM action p WHERE p.id = NEW.parent_action_id), 0)
				WHERE id = NEW.id;
			END;
		`).Error; err != nil {
			return fmt.Errorf("create trg_action_depth: %w", err)
		}
	default:
		return fmt.Errorf("unsupported dialect %q", db.Dialector.Name())
	}
	return nil
}
