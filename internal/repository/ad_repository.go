package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pawmarket/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrAdNotFound     = domain.NotFound("ad listing not found")
	ErrAdSpotOccupied = domain.Conflict("ad spot already occupied")
)

// AdRepository defines the interface for ad listing data access
type AdRepository interface {
	Create(ctx context.Context, ad *domain.AdListing) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AdListing, error)
	FindActiveByPlacement(ctx context.Context, placement domain.AdPlacement) (*domain.AdListing, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AdStatus) (*domain.AdListing, error)
	List(ctx context.Context) ([]*domain.AdListing, error)
}

type adRepository struct {
	db *sql.DB
}

// NewAdRepository creates a new instance of AdRepository
func NewAdRepository(db *sql.DB) AdRepository {
	return &adRepository{db: db}
}

const adColumns = `id, title, image_url, target_url, placement, status, starts_at, ends_at, created_at, updated_at`

// Create inserts a new ad listing. The partial unique index on
// (placement) WHERE status = 'active' is the real occupancy guard; a
// raced concurrent activation surfaces here as a unique violation.
func (r *adRepository) Create(ctx context.Context, ad *domain.AdListing) error {
	query := `
		INSERT INTO ad_listings (` + adColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		ad.ID,
		ad.Title,
		ad.ImageURL,
		ad.TargetURL,
		ad.Placement,
		ad.Status,
		ad.StartsAt,
		ad.EndsAt,
		ad.CreatedAt,
		ad.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrAdSpotOccupied
		}
		return fmt.Errorf("failed to create ad listing: %w", err)
	}

	return nil
}

// FindByID retrieves an ad listing by ID
func (r *adRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdListing, error) {
	query := `SELECT ` + adColumns + ` FROM ad_listings WHERE id = $1`

	ad, err := scanAd(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to find ad listing by ID: %w", err)
	}
	return ad, nil
}

// FindActiveByPlacement retrieves the active ad occupying a placement
func (r *adRepository) FindActiveByPlacement(ctx context.Context, placement domain.AdPlacement) (*domain.AdListing, error) {
	query := `SELECT ` + adColumns + ` FROM ad_listings WHERE placement = $1 AND status = 'active'`

	ad, err := scanAd(r.db.QueryRowContext(ctx, query, placement))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		return nil, fmt.Errorf("failed to find active ad by placement: %w", err)
	}
	return ad, nil
}

// UpdateStatus changes an ad listing's status. Activating an ad while
// another is active in the same placement violates the partial unique
// index and is reported as an occupancy conflict.
func (r *adRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AdStatus) (*domain.AdListing, error) {
	query := `
		UPDATE ad_listings
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + adColumns + `
	`

	ad, err := scanAd(r.db.QueryRowContext(ctx, query, id, status, time.Now()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAdNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrAdSpotOccupied
		}
		return nil, fmt.Errorf("failed to update ad status: %w", err)
	}
	return ad, nil
}

// List retrieves all ad listings, newest first
func (r *adRepository) List(ctx context.Context) ([]*domain.AdListing, error) {
	query := `SELECT ` + adColumns + ` FROM ad_listings ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ad listings: %w", err)
	}
	defer rows.Close()

	ads := []*domain.AdListing{}
	for rows.Next() {
		ad := &domain.AdListing{}
		err := rows.Scan(
			&ad.ID,
			&ad.Title,
			&ad.ImageURL,
			&ad.TargetURL,
			&ad.Placement,
			&ad.Status,
			&ad.StartsAt,
			&ad.EndsAt,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad listing: %w", err)
		}
		ads = append(ads, ad)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ad listings: %w", err)
	}

	return ads, nil
}

func scanAd(row *sql.Row) (*domain.AdListing, error) {
	ad := &domain.AdListing{}
	err := row.Scan(
		&ad.ID,
		&ad.Title,
		&ad.ImageURL,
		&ad.TargetURL,
		&ad.Placement,
		&ad.Status,
		&ad.StartsAt,
		&ad.EndsAt,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ad, nil
}
