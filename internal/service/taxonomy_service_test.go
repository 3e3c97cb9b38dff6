package service

import (
	"context"
	"testing"

	"pawmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBreedRecordsSpeciesName(t *testing.T) {
	taxonomyRepo := newMockTaxonomyRepository()
	service := NewTaxonomyService(taxonomyRepo)
	ctx := context.Background()

	species, err := service.CreateSpecies(ctx, "Dog")
	require.NoError(t, err)

	breed, err := service.CreateBreed(ctx, species.ID, "Beagle")

	require.NoError(t, err)
	assert.Equal(t, species.ID, breed.SpeciesID)
	assert.Equal(t, "Dog", breed.SpeciesName)
}

func TestCreateBreedUnknownSpecies(t *testing.T) {
	taxonomyRepo := newMockTaxonomyRepository()
	service := NewTaxonomyService(taxonomyRepo)

	_, err := service.CreateBreed(context.Background(), uuid.New(), "Beagle")

	assert.ErrorIs(t, err, repository.ErrSpeciesNotFound)
}

func TestCreateSpeciesDuplicateName(t *testing.T) {
	taxonomyRepo := newMockTaxonomyRepository()
	service := NewTaxonomyService(taxonomyRepo)
	ctx := context.Background()

	_, err := service.CreateSpecies(ctx, "Dog")
	require.NoError(t, err)

	_, err = service.CreateSpecies(ctx, "Dog")

	assert.ErrorIs(t, err, repository.ErrSpeciesAlreadyExists)
}

func TestListSpeciesWithBreedsGroupsByBreed(t *testing.T) {
	taxonomyRepo := newMockTaxonomyRepository()
	service := NewTaxonomyService(taxonomyRepo)
	ctx := context.Background()

	dog, err := service.CreateSpecies(ctx, "Dog")
	require.NoError(t, err)
	cat, err := service.CreateSpecies(ctx, "Cat")
	require.NoError(t, err)

	_, err = service.CreateBreed(ctx, dog.ID, "Beagle")
	require.NoError(t, err)
	_, err = service.CreateBreed(ctx, dog.ID, "Poodle")
	require.NoError(t, err)
	_, err = service.CreateBreed(ctx, cat.ID, "Siamese")
	require.NoError(t, err)

	result, err := service.ListSpeciesWithBreeds(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)

	byName := make(map[string]int)
	for _, entry := range result {
		byName[entry.Species.Name] = len(entry.Breeds)
	}
	assert.Equal(t, 2, byName["Dog"])
	assert.Equal(t, 1, byName["Cat"])
}
