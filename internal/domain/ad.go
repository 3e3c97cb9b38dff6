package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdPlacement names a frontend slot where exactly one advertisement may
// be active at a time.
type AdPlacement string

const (
	PlacementHomeTop    AdPlacement = "home_top"
	PlacementHomeBottom AdPlacement = "home_bottom"
	PlacementSidebar    AdPlacement = "sidebar"
	PlacementFooter     AdPlacement = "footer"
)

// Valid reports whether p is a known ad placement
func (p AdPlacement) Valid() bool {
	switch p {
	case PlacementHomeTop, PlacementHomeBottom, PlacementSidebar, PlacementFooter:
		return true
	}
	return false
}

// AdStatus is the state of an ad listing
type AdStatus string

const (
	AdStatusActive    AdStatus = "active"
	AdStatusInactive  AdStatus = "inactive"
	AdStatusScheduled AdStatus = "scheduled"
)

// Valid reports whether s is a known ad status
func (s AdStatus) Valid() bool {
	switch s {
	case AdStatusActive, AdStatusInactive, AdStatusScheduled:
		return true
	}
	return false
}

// AdListing occupies one ad placement while its status is active. At
// most one active listing per placement, enforced by a partial unique
// index on (placement) WHERE status = 'active'.
type AdListing struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Title     string      `json:"title" db:"title"`
	ImageURL  string      `json:"image_url" db:"image_url"`
	TargetURL string      `json:"target_url" db:"target_url"`
	Placement AdPlacement `json:"placement" db:"placement"`
	Status    AdStatus    `json:"status" db:"status"`
	StartsAt  *time.Time  `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt    *time.Time  `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
