package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pawmarket/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrSpeciesNotFound      = domain.NotFound("species not found")
	ErrSpeciesAlreadyExists = domain.Conflict("species with this name already exists")
	ErrBreedNotFound        = domain.NotFound("breed not found")
	ErrBreedAlreadyExists   = domain.Conflict("breed with this name already exists")
)

// TaxonomyRepository defines the interface for species and breed data access
type TaxonomyRepository interface {
	CreateSpecies(ctx context.Context, species *domain.Species) error
	ListSpecies(ctx context.Context) ([]*domain.Species, error)
	FindSpeciesByID(ctx context.Context, id uuid.UUID) (*domain.Species, error)
	CreateBreed(ctx context.Context, breed *domain.Breed) error
	ListBreedsBySpecies(ctx context.Context, speciesID uuid.UUID) ([]*domain.Breed, error)
	FindBreedByName(ctx context.Context, name string) (*domain.Breed, error)
}

type taxonomyRepository struct {
	db *sql.DB
}

// NewTaxonomyRepository creates a new instance of TaxonomyRepository
func NewTaxonomyRepository(db *sql.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// CreateSpecies inserts a new species using parameterized queries
func (r *taxonomyRepository) CreateSpecies(ctx context.Context, species *domain.Species) error {
	query := `INSERT INTO species (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.ExecContext(ctx, query, species.ID, species.Name, species.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSpeciesAlreadyExists
		}
		return fmt.Errorf("failed to create species: %w", err)
	}
	return nil
}

// ListSpecies retrieves all species ordered by name
func (r *taxonomyRepository) ListSpecies(ctx context.Context) ([]*domain.Species, error) {
	query := `SELECT id, name, created_at FROM species ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list species: %w", err)
	}
	defer rows.Close()

	result := []*domain.Species{}
	for rows.Next() {
		species := &domain.Species{}
		if err := rows.Scan(&species.ID, &species.Name, &species.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan species: %w", err)
		}
		result = append(result, species)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating species: %w", err)
	}

	return result, nil
}

// FindSpeciesByID retrieves a species by ID
func (r *taxonomyRepository) FindSpeciesByID(ctx context.Context, id uuid.UUID) (*domain.Species, error) {
	query := `SELECT id, name, created_at FROM species WHERE id = $1`

	species := &domain.Species{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&species.ID, &species.Name, &species.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSpeciesNotFound
		}
		return nil, fmt.Errorf("failed to find species by ID: %w", err)
	}
	return species, nil
}

// CreateBreed inserts a new breed using parameterized queries
func (r *taxonomyRepository) CreateBreed(ctx context.Context, breed *domain.Breed) error {
	query := `INSERT INTO breeds (id, species_id, name, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, breed.ID, breed.SpeciesID, breed.Name, breed.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrBreedAlreadyExists
		}
		return fmt.Errorf("failed to create breed: %w", err)
	}
	return nil
}

// ListBreedsBySpecies retrieves all breeds of a species ordered by name
func (r *taxonomyRepository) ListBreedsBySpecies(ctx context.Context, speciesID uuid.UUID) ([]*domain.Breed, error) {
	query := `
		SELECT b.id, b.species_id, s.name, b.name, b.created_at
		FROM breeds b
		JOIN species s ON s.id = b.species_id
		WHERE b.species_id = $1
		ORDER BY b.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, speciesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breeds: %w", err)
	}
	defer rows.Close()

	result := []*domain.Breed{}
	for rows.Next() {
		breed := &domain.Breed{}
		if err := rows.Scan(&breed.ID, &breed.SpeciesID, &breed.SpeciesName, &breed.Name, &breed.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan breed: %w", err)
		}
		result = append(result, breed)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breeds: %w", err)
	}

	return result, nil
}

// FindBreedByName retrieves a breed by exact, case-sensitive name match,
// including its species name for denormalization onto pets.
func (r *taxonomyRepository) FindBreedByName(ctx context.Context, name string) (*domain.Breed, error) {
	query := `
		SELECT b.id, b.species_id, s.name, b.name, b.created_at
		FROM breeds b
		JOIN species s ON s.id = b.species_id
		WHERE b.name = $1
	`

	breed := &domain.Breed{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&breed.ID,
		&breed.SpeciesID,
		&breed.SpeciesName,
		&breed.Name,
		&breed.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBreedNotFound
		}
		return nil, fmt.Errorf("failed to find breed by name: %w", err)
	}
	return breed, nil
}
