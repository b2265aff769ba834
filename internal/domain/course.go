package domain

import (
	"time"

	"github.com/google/uuid"
)

// Course is a catalog entry. The catalog is read-only through this API and is
// seeded by migrations.
type Course struct {
	ID                     uuid.UUID `json:"id"`
	Name                   string    `json:"name"`
	SpecializationRequired string    `json:"specializationRequired"`
	MinimumMarks           float64   `json:"minimumMarks"`
	CreatedAt              time.Time `json:"created_at"`
}
