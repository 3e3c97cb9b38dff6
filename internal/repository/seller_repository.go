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
	ErrSellerNotFound      = domain.NotFound("seller profile not found")
	ErrSellerAlreadyExists = domain.Conflict("seller profile already exists for this user")
)

// SellerRepository defines the interface for seller profile data access
type SellerRepository interface {
	Create(ctx context.Context, profile *domain.SellerProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.SellerProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error)
	ListByStatus(ctx context.Context, status domain.SellerStatus) ([]*domain.SellerProfile, error)
	UpdateStatus(ctx context.Context, q QueryExecer, id uuid.UUID, status domain.SellerStatus, notes string, date time.Time) (*domain.SellerProfile, error)
}

type sellerRepository struct {
	db *sql.DB
}

// NewSellerRepository creates a new instance of SellerRepository
func NewSellerRepository(db *sql.DB) SellerRepository {
	return &sellerRepository{db: db}
}

const sellerColumns = `id, user_id, shop_name, whatsapp_number, status, verification_notes, verification_date, id_proof_url, certificate_url, shop_image_url, created_at, updated_at`

// Create inserts a new seller profile. The unique index on user_id
// enforces the one-profile-per-user invariant.
func (r *sellerRepository) Create(ctx context.Context, profile *domain.SellerProfile) error {
	query := `
		INSERT INTO seller_profiles (` + sellerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.ShopName,
		profile.WhatsAppNumber,
		profile.Status,
		profile.VerificationNotes,
		profile.VerificationDate,
		profile.IDProofURL,
		profile.CertificateURL,
		profile.ShopImageURL,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSellerAlreadyExists
		}
		return fmt.Errorf("failed to create seller profile: %w", err)
	}

	return nil
}

// FindByID retrieves a seller profile by its own ID
func (r *sellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SellerProfile, error) {
	query := `SELECT ` + sellerColumns + ` FROM seller_profiles WHERE id = $1`

	profile, err := scanSeller(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to find seller profile by ID: %w", err)
	}
	return profile, nil
}

// FindByUserID retrieves the seller profile owned by a user
func (r *sellerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	query := `SELECT ` + sellerColumns + ` FROM seller_profiles WHERE user_id = $1`

	profile, err := scanSeller(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to find seller profile by user ID: %w", err)
	}
	return profile, nil
}

// ListByStatus retrieves seller profiles in a given verification status
func (r *sellerRepository) ListByStatus(ctx context.Context, status domain.SellerStatus) ([]*domain.SellerProfile, error) {
	query := `SELECT ` + sellerColumns + ` FROM seller_profiles WHERE status = $1 ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list seller profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*domain.SellerProfile{}
	for rows.Next() {
		profile := &domain.SellerProfile{}
		err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.ShopName,
			&profile.WhatsAppNumber,
			&profile.Status,
			&profile.VerificationNotes,
			&profile.VerificationDate,
			&profile.IDProofURL,
			&profile.CertificateURL,
			&profile.ShopImageURL,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seller profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating seller profiles: %w", err)
	}

	return profiles, nil
}

// UpdateStatus persists a verification decision: status, notes and the
// decision timestamp. It accepts a QueryExecer so the write can share a
// transaction with the user-role promotion; q falls back to the
// repository's own connection when nil.
func (r *sellerRepository) UpdateStatus(ctx context.Context, q QueryExecer, id uuid.UUID, status domain.SellerStatus, notes string, date time.Time) (*domain.SellerProfile, error) {
	if q == nil {
		q = r.db
	}

	query := `
		UPDATE seller_profiles
		SET status = $2, verification_notes = $3, verification_date = $4, updated_at = $4
		WHERE id = $1
		RETURNING ` + sellerColumns + `
	`

	profile, err := scanSeller(q.QueryRowContext(ctx, query, id, status, notes, date))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("failed to update seller status: %w", err)
	}
	return profile, nil
}

func scanSeller(row *sql.Row) (*domain.SellerProfile, error) {
	profile := &domain.SellerProfile{}
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ShopName,
		&profile.WhatsAppNumber,
		&profile.Status,
		&profile.VerificationNotes,
		&profile.VerificationDate,
		&profile.IDProofURL,
		&profile.CertificateURL,
		&profile.ShopImageURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
