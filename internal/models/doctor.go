package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is a read-only directory entry. A zero ID means "not found".
type Doctor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `json:"name"`
	Qualification string          `json:"qualification"`
	Experience    string          `json:"experience"`
	Description   string          `gorm:"size:3000" json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Speciality    string          `json:"speciality"`
	Address       string          `json:"address"`
	Image         string          `gorm:"size:2000" json:"image"`
}

func (d Doctor) Found() bool {
	return d.ID != uuid.Nil
}
