package domain

import (
	"time"

	"github.com/google/uuid"
)

// Species represents a top-level pet category (e.g. dog, cat)
type Species struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Breed belongs to a species; breed names are matched case-sensitively
type Breed struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SpeciesID   uuid.UUID `json:"species_id" db:"species_id"`
	SpeciesName string    `json:"species_name" db:"species_name"`
	Name        string    `json:"name" db:"name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
