package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pawmarket/internal/domain"

	"github.com/google/uuid"
)

var ErrPetNotFound = domain.NotFound("pet not found")

// PetFilter narrows public pet listing queries
type PetFilter struct {
	Category  string
	BreedName string
}

// PetRepository defines the interface for pet listing data access
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error)
	UpdateContent(ctx context.Context, id uuid.UUID, update *domain.PetUpdate) (*domain.Pet, error)
	UpdateVerification(ctx context.Context, id uuid.UUID, isVerified bool) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PetStatus) error
	ListVisible(ctx context.Context, filter PetFilter) ([]*domain.Pet, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Pet, error)
}

type petRepository struct {
	db *sql.DB
}

// NewPetRepository creates a new instance of PetRepository
func NewPetRepository(db *sql.DB) PetRepository {
	return &petRepository{db: db}
}

const petColumns = `id, seller_id, breed_id, breed_name, category, name, description, price, age_months, gender, image_urls, is_verified, status, featured_request, created_at, updated_at`

// Create inserts a new pet listing using parameterized queries
func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	images, err := json.Marshal(pet.ImageURLs)
	if err != nil {
		return fmt.Errorf("failed to encode image URLs: %w", err)
	}

	query := `
		INSERT INTO pets (` + petColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		pet.ID,
		pet.SellerID,
		pet.BreedID,
		pet.BreedName,
		pet.Category,
		pet.Name,
		pet.Description,
		pet.Price,
		pet.AgeMonths,
		pet.Gender,
		images,
		pet.IsVerified,
		pet.Status,
		pet.FeaturedRequest,
		pet.CreatedAt,
		pet.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	return nil
}

// FindByID retrieves a pet by ID using parameterized queries
func (r *petRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`

	pet, err := scanPet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return pet, nil
}

// UpdateContent applies the seller-updatable content fields. Nil fields
// keep their current value.
func (r *petRepository) UpdateContent(ctx context.Context, id uuid.UUID, update *domain.PetUpdate) (*domain.Pet, error) {
	var images any
	if update.ImageURLs != nil {
		encoded, err := json.Marshal(update.ImageURLs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode image URLs: %w", err)
		}
		images = encoded
	}

	query := `
		UPDATE pets
		SET name        = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price       = COALESCE($4, price),
		    age_months  = COALESCE($5, age_months),
		    gender      = COALESCE($6, gender),
		    image_urls  = COALESCE($7, image_urls),
		    updated_at  = $8
		WHERE id = $1
		RETURNING ` + petColumns + `
	`

	pet, err := scanPet(r.db.QueryRowContext(
		ctx,
		query,
		id,
		update.Name,
		update.Description,
		update.Price,
		update.AgeMonths,
		update.Gender,
		images,
		time.Now(),
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	return pet, nil
}

// UpdateVerification flips the admin-controlled verification flag
func (r *petRepository) UpdateVerification(ctx context.Context, id uuid.UUID, isVerified bool) error {
	query := `UPDATE pets SET is_verified = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, isVerified, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update pet verification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPetNotFound
	}
	return nil
}

// UpdateStatus sets the listing status of a pet
func (r *petRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PetStatus) error {
	query := `UPDATE pets SET status = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update pet status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrPetNotFound
	}
	return nil
}

// ListVisible retrieves buyer-visible pets: active or featured listings
// from verified sellers, optionally filtered by category and breed name.
// Sold, removed and rejected listings are excluded.
func (r *petRepository) ListVisible(ctx context.Context, filter PetFilter) ([]*domain.Pet, error) {
	query := `
		SELECT p.id, p.seller_id, p.breed_id, p.breed_name, p.category, p.name, p.description,
		       p.price, p.age_months, p.gender, p.image_urls, p.is_verified, p.status,
		       p.featured_request, p.created_at, p.updated_at
		FROM pets p
		JOIN seller_profiles s ON s.id = p.seller_id
		WHERE p.status IN ('active', 'featured')
		  AND s.status = 'verified'
		  AND ($1 = '' OR p.category = $1)
		  AND ($2 = '' OR p.breed_name = $2)
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, filter.Category, filter.BreedName)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer rows.Close()

	return collectPets(rows)
}

// ListBySeller retrieves every pet owned by a seller profile, regardless
// of status, for the seller's own dashboard.
func (r *petRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]*domain.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE seller_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller pets: %w", err)
	}
	defer rows.Close()

	return collectPets(rows)
}

func collectPets(rows *sql.Rows) ([]*domain.Pet, error) {
	pets := []*domain.Pet{}
	for rows.Next() {
		pet := &domain.Pet{}
		var images []byte
		err := rows.Scan(
			&pet.ID,
			&pet.SellerID,
			&pet.BreedID,
			&pet.BreedName,
			&pet.Category,
			&pet.Name,
			&pet.Description,
			&pet.Price,
			&pet.AgeMonths,
			&pet.Gender,
			&images,
			&pet.IsVerified,
			&pet.Status,
			&pet.FeaturedRequest,
			&pet.CreatedAt,
			&pet.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		if err := json.Unmarshal(images, &pet.ImageURLs); err != nil {
			return nil, fmt.Errorf("failed to decode image URLs: %w", err)
		}
		pets = append(pets, pet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets: %w", err)
	}

	return pets, nil
}

func scanPet(row *sql.Row) (*domain.Pet, error) {
	pet := &domain.Pet{}
	var images []byte
	err := row.Scan(
		&pet.ID,
		&pet.SellerID,
		&pet.BreedID,
		&pet.BreedName,
		&pet.Category,
		&pet.Name,
		&pet.Description,
		&pet.Price,
		&pet.AgeMonths,
		&pet.Gender,
		&images,
		&pet.IsVerified,
		&pet.Status,
		&pet.FeaturedRequest,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &pet.ImageURLs); err != nil {
		return nil, fmt.Errorf("failed to decode image URLs: %w", err)
	}
	return pet, nil
}
