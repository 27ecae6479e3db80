package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model for all resources.
//
// IDs are ordered integers on purpose: the allocation remainder tie-break
// needs a stable creation-order identifier.
type Model struct {
	ID        uint64         `json:"id" example:"42"`
	CreatedAt time.Time      `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"`
	UpdatedAt time.Time      `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Model) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}
