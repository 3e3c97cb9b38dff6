package service

import (
	"context"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
)

// WishlistService defines the interface for buyer wishlist business logic
type WishlistService interface {
	Add(ctx context.Context, buyerID, petID uuid.UUID) error
	Remove(ctx context.Context, buyerID, petID uuid.UUID) error
	List(ctx context.Context, buyerID uuid.UUID) ([]*domain.Pet, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	petRepo      repository.PetRepository
}

// NewWishlistService creates a new instance of WishlistService
func NewWishlistService(wishlistRepo repository.WishlistRepository, petRepo repository.PetRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		petRepo:      petRepo,
	}
}

// Add saves a pet to the buyer's wishlist. The wishlist is a set, so
// adding a pet that is already saved is a no-op success.
func (s *wishlistService) Add(ctx context.Context, buyerID, petID uuid.UUID) error {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if pet.Status != domain.PetStatusActive && pet.Status != domain.PetStatusFeatured {
		return repository.ErrPetNotFound
	}

	item := &domain.WishlistItem{
		ID:        uuid.New(),
		BuyerID:   buyerID,
		PetID:     petID,
		CreatedAt: time.Now(),
	}
	return s.wishlistRepo.Add(ctx, item)
}

// Remove deletes a pet from the buyer's wishlist
func (s *wishlistService) Remove(ctx context.Context, buyerID, petID uuid.UUID) error {
	return s.wishlistRepo.Remove(ctx, buyerID, petID)
}

// List retrieves the pets saved in the buyer's wishlist
func (s *wishlistService) List(ctx context.Context, buyerID uuid.UUID) ([]*domain.Pet, error) {
	return s.wishlistRepo.ListPets(ctx, buyerID)
}
