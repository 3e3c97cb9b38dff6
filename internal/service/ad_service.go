package service

import (
	"context"
	"errors"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
)

// NewAd carries the fields of a new advertisement
type NewAd struct {
	Title     string
	ImageURL  string
	TargetURL string
	Placement domain.AdPlacement
	Status    domain.AdStatus
	StartsAt  *time.Time
	EndsAt    *time.Time
}

// AdService defines the interface for advertisement business logic
type AdService interface {
	Create(ctx context.Context, req NewAd) (*domain.AdListing, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, status domain.AdStatus) (*domain.AdListing, error)
	ActiveByPlacement(ctx context.Context, placement domain.AdPlacement) (*domain.AdListing, error)
	List(ctx context.Context) ([]*domain.AdListing, error)
}

type adService struct {
	adRepo repository.AdRepository
}

// NewAdService creates a new instance of AdService
func NewAdService(adRepo repository.AdRepository) AdService {
	return &adService{adRepo: adRepo}
}

// Create inserts a new ad. When the ad is to be active immediately, the
// placement must be free: a pre-check produces the common-path error,
// and the storage-level partial unique index closes the race two
// concurrent activations would otherwise win together.
func (s *adService) Create(ctx context.Context, req NewAd) (*domain.AdListing, error) {
	if !req.Placement.Valid() {
		return nil, domain.Validation("invalid ad placement")
	}
	if !req.Status.Valid() {
		return nil, domain.Validation("invalid status value")
	}

	if req.Status == domain.AdStatusActive {
		if err := s.checkSpotFree(ctx, req.Placement); err != nil {
			return nil, err
		}
	}

	ad := &domain.AdListing{
		ID:        uuid.New(),
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: req.Placement,
		Status:    req.Status,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

// ChangeStatus moves an ad between states, applying the same occupancy
// rule when the target state is active.
func (s *adService) ChangeStatus(ctx context.Context, id uuid.UUID, status domain.AdStatus) (*domain.AdListing, error) {
	if !status.Valid() {
		return nil, domain.Validation("invalid status value")
	}

	ad, err := s.adRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == domain.AdStatusActive && ad.Status != domain.AdStatusActive {
		if err := s.checkSpotFree(ctx, ad.Placement); err != nil {
			return nil, err
		}
	}

	return s.adRepo.UpdateStatus(ctx, id, status)
}

// ActiveByPlacement retrieves the ad currently occupying a placement
func (s *adService) ActiveByPlacement(ctx context.Context, placement domain.AdPlacement) (*domain.AdListing, error) {
	if !placement.Valid() {
		return nil, domain.Validation("invalid ad placement")
	}
	return s.adRepo.FindActiveByPlacement(ctx, placement)
}

// List retrieves all ads for the admin dashboard
func (s *adService) List(ctx context.Context) ([]*domain.AdListing, error) {
	return s.adRepo.List(ctx)
}

func (s *adService) checkSpotFree(ctx context.Context, placement domain.AdPlacement) error {
	_, err := s.adRepo.FindActiveByPlacement(ctx, placement)
	if err == nil {
		return repository.ErrAdSpotOccupied
	}
	if errors.Is(err, repository.ErrAdNotFound) {
		return nil
	}
	return err
}
