package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pawmarket/internal/domain"

	"github.com/google/uuid"
)

var ErrWishlistItemNotFound = domain.NotFound("pet is not in the wishlist")

// WishlistRepository defines the interface for wishlist data access
type WishlistRepository interface {
	Add(ctx context.Context, item *domain.WishlistItem) error
	Remove(ctx context.Context, buyerID, petID uuid.UUID) error
	ListPets(ctx context.Context, buyerID uuid.UUID) ([]*domain.Pet, error)
}

type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository creates a new instance of WishlistRepository
func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add inserts a wishlist entry. The unique (buyer_id, pet_id) pair plus
// ON CONFLICT DO NOTHING gives the wishlist set semantics: duplicate
// adds are a no-op.
func (r *wishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, buyer_id, pet_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (buyer_id, pet_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, item.ID, item.BuyerID, item.PetID, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

// Remove deletes a wishlist entry
func (r *wishlistRepository) Remove(ctx context.Context, buyerID, petID uuid.UUID) error {
	query := `DELETE FROM wishlist_items WHERE buyer_id = $1 AND pet_id = $2`

	result, err := r.db.ExecContext(ctx, query, buyerID, petID)
	if err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

// ListPets retrieves the pets saved in a buyer's wishlist
func (r *wishlistRepository) ListPets(ctx context.Context, buyerID uuid.UUID) ([]*domain.Pet, error) {
	query := `
		SELECT p.id, p.seller_id, p.breed_id, p.breed_name, p.category, p.name, p.description,
		       p.price, p.age_months, p.gender, p.image_urls, p.is_verified, p.status,
		       p.featured_request, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN pets p ON p.id = w.pet_id
		WHERE w.buyer_id = $1
		ORDER BY w.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist pets: %w", err)
	}
	defer rows.Close()

	return collectPets(rows)
}
