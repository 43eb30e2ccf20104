package models

import (
	"encoding/json"
)

type Item struct {
	BaseModel
	BoxID      uint            `gorm:"index;not null" json:"box_id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Properties json.RawMessage `gorm:"type:jsonb" json:"properties,omitempty"`
}
