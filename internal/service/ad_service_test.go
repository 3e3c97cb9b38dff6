package service

import (
	"context"
	"testing"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdRepository struct {
	ads map[uuid.UUID]*domain.AdListing
}

func newMockAdRepository() *mockAdRepository {
	return &mockAdRepository{ads: make(map[uuid.UUID]*domain.AdListing)}
}

func (m *mockAdRepository) Create(ctx context.Context, ad *domain.AdListing) error {
	if ad.Status == domain.AdStatusActive {
		// Same constraint the partial unique index enforces
		for _, existing := range m.ads {
			if existing.Placement == ad.Placement && existing.Status == domain.AdStatusActive {
				return repository.ErrAdSpotOccupied
			}
		}
	}
	m.ads[ad.ID] = ad
	return nil
}

func (m *mockAdRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AdListing, error) {
	ad, exists := m.ads[id]
	if !exists {
		return nil, repository.ErrAdNotFound
	}
	return ad, nil
}

func (m *mockAdRepository) FindActiveByPlacement(ctx context.Context, placement domain.AdPlacement) (*domain.AdListing, error) {
	for _, ad := range m.ads {
		if ad.Placement == placement && ad.Status == domain.AdStatusActive {
			return ad, nil
		}
	}
	return nil, repository.ErrAdNotFound
}

func (m *mockAdRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AdStatus) (*domain.AdListing, error) {
	ad, exists := m.ads[id]
	if !exists {
		return nil, repository.ErrAdNotFound
	}
	if status == domain.AdStatusActive && ad.Status != domain.AdStatusActive {
		for _, existing := range m.ads {
			if existing.ID != id && existing.Placement == ad.Placement && existing.Status == domain.AdStatusActive {
				return nil, repository.ErrAdSpotOccupied
			}
		}
	}
	ad.Status = status
	return ad, nil
}

func (m *mockAdRepository) List(ctx context.Context) ([]*domain.AdListing, error) {
	var result []*domain.AdListing
	for _, ad := range m.ads {
		result = append(result, ad)
	}
	return result, nil
}

func TestCreateAdOccupiesFreeSpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	ad, err := service.Create(context.Background(), NewAd{
		Title:     "Premium Dog Food",
		Placement: domain.PlacementHomeTop,
		Status:    domain.AdStatusActive,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AdStatusActive, ad.Status)

	active, err := service.ActiveByPlacement(context.Background(), domain.PlacementHomeTop)
	require.NoError(t, err)
	assert.Equal(t, ad.ID, active.ID)
}

func TestCreateActiveAdOnOccupiedSpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	_, err := service.Create(context.Background(), NewAd{
		Title:     "First",
		Placement: domain.PlacementSidebar,
		Status:    domain.AdStatusActive,
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), NewAd{
		Title:     "Second",
		Placement: domain.PlacementSidebar,
		Status:    domain.AdStatusActive,
	})

	assert.ErrorIs(t, err, repository.ErrAdSpotOccupied)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestCreateInactiveAdOnOccupiedSpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	_, err := service.Create(context.Background(), NewAd{
		Title:     "First",
		Placement: domain.PlacementSidebar,
		Status:    domain.AdStatusActive,
	})
	require.NoError(t, err)

	// Inactive ads never occupy the spot
	_, err = service.Create(context.Background(), NewAd{
		Title:     "Waiting",
		Placement: domain.PlacementSidebar,
		Status:    domain.AdStatusInactive,
	})

	assert.NoError(t, err)
}

func TestActivateAdOnOccupiedSpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	_, err := service.Create(context.Background(), NewAd{
		Title:     "Running",
		Placement: domain.PlacementFooter,
		Status:    domain.AdStatusActive,
	})
	require.NoError(t, err)

	waiting, err := service.Create(context.Background(), NewAd{
		Title:     "Waiting",
		Placement: domain.PlacementFooter,
		Status:    domain.AdStatusInactive,
	})
	require.NoError(t, err)

	_, err = service.ChangeStatus(context.Background(), waiting.ID, domain.AdStatusActive)

	assert.ErrorIs(t, err, repository.ErrAdSpotOccupied)
	assert.Equal(t, domain.AdStatusInactive, adRepo.ads[waiting.ID].Status)
}

func TestDeactivateThenActivateFreesSpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	running, err := service.Create(context.Background(), NewAd{
		Title:     "Running",
		Placement: domain.PlacementHomeBottom,
		Status:    domain.AdStatusActive,
	})
	require.NoError(t, err)

	waiting, err := service.Create(context.Background(), NewAd{
		Title:     "Waiting",
		Placement: domain.PlacementHomeBottom,
		Status:    domain.AdStatusInactive,
	})
	require.NoError(t, err)

	_, err = service.ChangeStatus(context.Background(), running.ID, domain.AdStatusInactive)
	require.NoError(t, err)

	updated, err := service.ChangeStatus(context.Background(), waiting.ID, domain.AdStatusActive)

	require.NoError(t, err)
	assert.Equal(t, domain.AdStatusActive, updated.Status)
}

func TestCreateAdValidatesPlacementAndStatus(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	_, err := service.Create(context.Background(), NewAd{
		Title:     "Nowhere",
		Placement: domain.AdPlacement("popup"),
		Status:    domain.AdStatusActive,
	})
	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = service.Create(context.Background(), NewAd{
		Title:     "Odd state",
		Placement: domain.PlacementSidebar,
		Status:    domain.AdStatus("paused"),
	})
	assert.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestActiveByPlacementEmptySpot(t *testing.T) {
	adRepo := newMockAdRepository()
	service := NewAdService(adRepo)

	_, err := service.ActiveByPlacement(context.Background(), domain.PlacementHomeTop)

	assert.ErrorIs(t, err, repository.ErrAdNotFound)
}
