package models

import (
	"Cruder/internal/crud"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Label is keyed by a uuid the store assigns on insert.
type Label struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(7)" json:"color,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Label) PrimaryKey() crud.KeySpec {
	return crud.KeySpec{Field: "ID", Generated: true}
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
