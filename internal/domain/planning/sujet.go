package planning

import "time"

// Sujet is a topic node in a self-referencing tree. Code, when set, is
// globally unique; code-less rows are unique per (parent, title).
type Sujet struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        *string `gorm:"column:code;uniqueIndex:ux_sujet_code" json:"code,omitempty"`
	Title       string  `gorm:"column:title;not null" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description,omitempty"`

	ParentID *int64 `gorm:"column:parent_id;index" json:"parent_id,omitempty"`
	Parent   *Sujet `gorm:"constraint:OnDelete:SET NULL;foreignKey:ParentID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Sujet) TableName() string { return "sujet" }
