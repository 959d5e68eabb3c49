package planning

import (
	"time"

	"gorm.io/datatypes"
)

type ActionStatus string

const (
	ActionStatusOpen    ActionStatus = "open"
	ActionStatusClosed  ActionStatus = "closed"
	ActionStatusBlocked ActionStatus = "blocked"
)

func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusOpen, ActionStatusClosed, ActionStatusBlocked:
		return true
	default:
		return false
	}
}

// ActionType is the nesting tier of an action. The table only knows three
// tiers even though parent_action_id allows arbitrary depth.
type ActionType string

const (
	ActionTypeAction         ActionType = "action"
	ActionTypeSousAction     ActionType = "sous_action"
	ActionTypeSousSousAction ActionType = "sous_sous_action"
)

// MaxActionLevel is the deepest level with its own type tag.
const MaxActionLevel = 2

const DueDateLayout = "2006-01-02"

// ActionTypeForLevel maps a nesting level to its tag; anything past
// MaxActionLevel shares the last tag.
func ActionTypeForLevel(level int) ActionType {
	switch {
	case level <= 0:
		return ActionTypeAction
	case level == 1:
		return ActionTypeSousAction
	default:
		return ActionTypeSousSousAction
	}
}

type Action struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`

	SujetID int64  `gorm:"column:sujet_id;not null;index" json:"sujet_id"`
	Sujet   *Sujet `gorm:"constraint:OnDelete:CASCADE;foreignKey:SujetID;references:ID" json:"-"`

	ParentActionID *int64  `gorm:"column:parent_action_id;index" json:"parent_action_id,omitempty"`
	ParentAction   *Action `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentActionID;references:ID" json:"-"`

	Type        ActionType      `gorm:"column:type;not null;check:chk_action_type,type IN ('action','sous_action','sous_sous_action')" json:"type"`
	Title       string          `gorm:"column:title;not null" json:"title"`
	Description *string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Owner       *string         `gorm:"column:owner" json:"owner,omitempty"`
	Priority    *int            `gorm:"column:priority;check:chk_action_priority,priority IS NULL OR priority >= 0" json:"priority,omitempty"`
	DueDate     *datatypes.Date `gorm:"column:due_date" json:"due_date,omitempty"`
	Status      ActionStatus    `gorm:"column:status;not null;default:'open';check:chk_action_status,status IN ('open','closed','blocked')" json:"status"`
	Ordre       *int            `gorm:"column:ordre" json:"ordre,omitempty"`

	// Maintained by the trg_action_depth trigger; never written from Go.
	Depth int `gorm:"column:depth;not null;default:0;->" json:"depth"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Action) TableName() string { return "action" }
