package domain

import (
	"time"

	"github.com/google/uuid"
)

// PetStatus is the listing state of a pet. Sold, removed and rejected
// are terminal with respect to buyer-visible listings.
type PetStatus string

const (
	PetStatusActive   PetStatus = "active"
	PetStatusSold     PetStatus = "sold"
	PetStatusRemoved  PetStatus = "removed"
	PetStatusRejected PetStatus = "rejected"
	PetStatusFeatured PetStatus = "featured"
)

// Valid reports whether s is a known pet status
func (s PetStatus) Valid() bool {
	switch s {
	case PetStatusActive, PetStatusSold, PetStatusRemoved, PetStatusRejected, PetStatusFeatured:
		return true
	}
	return false
}

// Pet represents a pet listing. SellerID references a SellerProfile,
// never a raw user id. BreedName and Category (the species name) are
// denormalized at creation time for query performance.
type Pet struct {
	ID              uuid.UUID `json:"id" db:"id"`
	SellerID        uuid.UUID `json:"seller_id" db:"seller_id"`
	BreedID         uuid.UUID `json:"breed_id" db:"breed_id"`
	BreedName       string    `json:"breed_name" db:"breed_name"`
	Category        string    `json:"category" db:"category"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	Price           float64   `json:"price" db:"price"`
	AgeMonths       int       `json:"age_months" db:"age_months"`
	Gender          string    `json:"gender" db:"gender"`
	ImageURLs       []string  `json:"image_urls" db:"image_urls"`
	IsVerified      bool      `json:"is_verified" db:"is_verified"`
	Status          PetStatus `json:"status" db:"status"`
	FeaturedRequest bool      `json:"featured_request" db:"featured_request"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// PetUpdate holds the seller-updatable content fields of a pet. Anything
// outside this struct (breed, seller reference, category, verification,
// status, featured flag) is admin-controlled and dropped from seller
// update payloads.
type PetUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	AgeMonths   *int     `json:"age_months"`
	Gender      *string  `json:"gender"`
	ImageURLs   []string `json:"image_urls"`
}
