package service

import (
	"context"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
)

// SpeciesWithBreeds is a species together with its breeds
type SpeciesWithBreeds struct {
	Species *domain.Species `json:"species"`
	Breeds  []*domain.Breed `json:"breeds"`
}

// TaxonomyService defines the interface for species/breed business logic
type TaxonomyService interface {
	CreateSpecies(ctx context.Context, name string) (*domain.Species, error)
	CreateBreed(ctx context.Context, speciesID uuid.UUID, name string) (*domain.Breed, error)
	ListSpeciesWithBreeds(ctx context.Context) ([]*SpeciesWithBreeds, error)
}

type taxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new instance of TaxonomyService
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) TaxonomyService {
	return &taxonomyService{taxonomyRepo: taxonomyRepo}
}

// CreateSpecies adds a new top-level category
func (s *taxonomyService) CreateSpecies(ctx context.Context, name string) (*domain.Species, error) {
	species := &domain.Species{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.taxonomyRepo.CreateSpecies(ctx, species); err != nil {
		return nil, err
	}
	return species, nil
}

// CreateBreed adds a breed under an existing species
func (s *taxonomyService) CreateBreed(ctx context.Context, speciesID uuid.UUID, name string) (*domain.Breed, error) {
	species, err := s.taxonomyRepo.FindSpeciesByID(ctx, speciesID)
	if err != nil {
		return nil, err
	}

	breed := &domain.Breed{
		ID:          uuid.New(),
		SpeciesID:   species.ID,
		SpeciesName: species.Name,
		Name:        name,
		CreatedAt:   time.Now(),
	}
	if err := s.taxonomyRepo.CreateBreed(ctx, breed); err != nil {
		return nil, err
	}
	return breed, nil
}

// ListSpeciesWithBreeds retrieves the full taxonomy for pickers
func (s *taxonomyService) ListSpeciesWithBreeds(ctx context.Context) ([]*SpeciesWithBreeds, error) {
	species, err := s.taxonomyRepo.ListSpecies(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*SpeciesWithBreeds, 0, len(species))
	for _, sp := range species {
		breeds, err := s.taxonomyRepo.ListBreedsBySpecies(ctx, sp.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &SpeciesWithBreeds{Species: sp, Breeds: breeds})
	}
	return result, nil
}
