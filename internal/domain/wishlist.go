package domain

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a buyer to a saved pet. The (buyer, pet) pair is
// unique, so the wishlist behaves as a set.
type WishlistItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BuyerID   uuid.UUID `json:"buyer_id" db:"buyer_id"`
	PetID     uuid.UUID `json:"pet_id" db:"pet_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
