package service

import (
	"context"
	"fmt"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/notify"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
)

// SellerRequest carries the fields of a new seller application
type SellerRequest struct {
	ShopName       string
	WhatsAppNumber string
	IDProofURL     string
	CertificateURL string
	ShopImageURL   string
}

// SellerService defines the interface for the seller verification workflow
type SellerService interface {
	RequestSeller(ctx context.Context, userID uuid.UUID, req SellerRequest) (*domain.SellerProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error)
	ListByStatus(ctx context.Context, status domain.SellerStatus) ([]*domain.SellerProfile, error)
	Verify(ctx context.Context, sellerID uuid.UUID, requested domain.SellerStatus, notes string) (*domain.SellerProfile, error)
}

type sellerService struct {
	sellerRepo repository.SellerRepository
	userRepo   repository.UserRepository
	txRunner   repository.TxRunner
	notifier   notify.Notifier
}

// NewSellerService creates a new instance of SellerService
func NewSellerService(
	sellerRepo repository.SellerRepository,
	userRepo repository.UserRepository,
	txRunner repository.TxRunner,
	notifier notify.Notifier,
) SellerService {
	return &sellerService{
		sellerRepo: sellerRepo,
		userRepo:   userRepo,
		txRunner:   txRunner,
		notifier:   notifier,
	}
}

// RequestSeller creates a pending seller profile for a user. A user may
// hold exactly one profile; pending is the only state a seller can
// reach on their own.
func (s *sellerService) RequestSeller(ctx context.Context, userID uuid.UUID, req SellerRequest) (*domain.SellerProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}

	profile := &domain.SellerProfile{
		ID:             uuid.New(),
		UserID:         userID,
		ShopName:       req.ShopName,
		WhatsAppNumber: req.WhatsAppNumber,
		Status:         domain.SellerStatusPending,
		IDProofURL:     req.IDProofURL,
		CertificateURL: req.CertificateURL,
		ShopImageURL:   req.ShopImageURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.sellerRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetByUserID retrieves the caller's seller profile
func (s *sellerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	return s.sellerRepo.FindByUserID(ctx, userID)
}

// ListByStatus retrieves seller profiles for admin review queues
func (s *sellerService) ListByStatus(ctx context.Context, status domain.SellerStatus) ([]*domain.SellerProfile, error) {
	if !status.Valid() {
		return nil, domain.Validation("invalid status value")
	}
	return s.sellerRepo.ListByStatus(ctx, status)
}

// Verify applies an admin verification decision. It loads the profile,
// runs the transition guard, then persists the new status with notes and
// a decision timestamp. Moving to verified also promotes the owning
// user's role to seller; both writes and the notification hook share one
// transaction, so a hook failure rolls the decision back.
func (s *sellerService) Verify(ctx context.Context, sellerID uuid.UUID, requested domain.SellerStatus, notes string) (*domain.SellerProfile, error) {
	profile, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := domain.DecideStatusTransition(profile.Status, requested); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile owner: %w", err)
	}

	var updated *domain.SellerProfile
	err = s.txRunner.RunTx(ctx, func(q repository.QueryExecer) error {
		updated, err = s.sellerRepo.UpdateStatus(ctx, q, sellerID, requested, notes, time.Now())
		if err != nil {
			return err
		}

		if requested == domain.SellerStatusVerified && user.Role != domain.RoleAdmin {
			if err := s.userRepo.UpdateRole(ctx, q, user.ID, domain.RoleSeller); err != nil {
				return fmt.Errorf("failed to promote user role: %w", err)
			}
		}

		if err := s.notifier.SendSellerStatusChanged(ctx, user.Email, requested, notes); err != nil {
			return fmt.Errorf("failed to notify seller: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
