package model

import (
	"time"
)

// TodoModel mirrors the 'todos' table. IDs are uuid strings assigned by
// the repository so the same id shape travels through every adapter family.
type TodoModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Title     string `gorm:"type:varchar(255);not null"`
	Completed bool   `gorm:"not null;default:false"`
	UserID    string `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}
