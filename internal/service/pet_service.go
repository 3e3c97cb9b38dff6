package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSellerPending   = domain.Forbidden("seller profile is pending verification")
	ErrSellerRejected  = domain.Forbidden("seller profile was rejected")
	ErrSellerSuspended = domain.Forbidden("seller profile is suspended")
	ErrAccessDenied    = domain.Forbidden("access denied")
)

// NewPet carries the seller-supplied fields of a new pet listing
type NewPet struct {
	BreedName   string
	Name        string
	Description string
	Price       float64
	AgeMonths   int
	Gender      string
	ImageURLs   []string
}

// PetDetails is a pet together with its seller's WhatsApp contact link
type PetDetails struct {
	Pet         *domain.Pet `json:"pet"`
	ContactLink string      `json:"contact_link,omitempty"`
}

// PetService defines the interface for pet listing business logic
type PetService interface {
	AddPet(ctx context.Context, userID uuid.UUID, req NewPet) (*domain.Pet, error)
	UpdatePet(ctx context.Context, userID, petID uuid.UUID, update *domain.PetUpdate) (*domain.Pet, error)
	RemovePet(ctx context.Context, userID, petID uuid.UUID) error
	ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error)
	ListVisible(ctx context.Context, filter repository.PetFilter) ([]*domain.Pet, error)
	GetDetails(ctx context.Context, petID uuid.UUID) (*PetDetails, error)
	UpdateVerification(ctx context.Context, petID uuid.UUID, isVerified bool) error
	UpdateStatus(ctx context.Context, petID uuid.UUID, status domain.PetStatus) error
}

type petService struct {
	petRepo      repository.PetRepository
	sellerRepo   repository.SellerRepository
	userRepo     repository.UserRepository
	taxonomyRepo repository.TaxonomyRepository
}

// NewPetService creates a new instance of PetService
func NewPetService(
	petRepo repository.PetRepository,
	sellerRepo repository.SellerRepository,
	userRepo repository.UserRepository,
	taxonomyRepo repository.TaxonomyRepository,
) PetService {
	return &petService{
		petRepo:      petRepo,
		sellerRepo:   sellerRepo,
		userRepo:     userRepo,
		taxonomyRepo: taxonomyRepo,
	}
}

// AddPet creates a listing after gating on the caller's seller state:
// the profile must exist and be verified, and the owning account must
// not be banned. Each refusal carries its own message. The breed is
// resolved by exact name and its species name is denormalized onto the
// pet as category.
func (s *petService) AddPet(ctx context.Context, userID uuid.UUID, req NewPet) (*domain.Pet, error) {
	profile, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrAccountBanned
	}

	switch profile.Status {
	case domain.SellerStatusVerified:
	case domain.SellerStatusPending:
		return nil, ErrSellerPending
	case domain.SellerStatusRejected:
		return nil, ErrSellerRejected
	case domain.SellerStatusSuspended:
		return nil, ErrSellerSuspended
	default:
		return nil, ErrAccessDenied
	}

	breed, err := s.taxonomyRepo.FindBreedByName(ctx, req.BreedName)
	if err != nil {
		return nil, err
	}

	pet := &domain.Pet{
		ID:          uuid.New(),
		SellerID:    profile.ID,
		BreedID:     breed.ID,
		BreedName:   breed.Name,
		Category:    breed.SpeciesName,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		AgeMonths:   req.AgeMonths,
		Gender:      req.Gender,
		ImageURLs:   req.ImageURLs,
		IsVerified:  false,
		Status:      domain.PetStatusActive,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	return pet, nil
}

// UpdatePet applies a seller's content edits to their own pet. Ownership
// compares the pet's seller reference to the caller's seller profile id,
// never the raw user id. Admin-controlled fields are not part of
// PetUpdate, so whatever else the caller sent is already discarded.
func (s *petService) UpdatePet(ctx context.Context, userID, petID uuid.UUID, update *domain.PetUpdate) (*domain.Pet, error) {
	profile, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet.SellerID != profile.ID {
		return nil, ErrAccessDenied
	}

	return s.petRepo.UpdateContent(ctx, petID, update)
}

// RemovePet soft-removes a pet from its owner's listings
func (s *petService) RemovePet(ctx context.Context, userID, petID uuid.UUID) error {
	profile, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}

	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return err
	}
	if pet.SellerID != profile.ID {
		return ErrAccessDenied
	}

	return s.petRepo.UpdateStatus(ctx, petID, domain.PetStatusRemoved)
}

// ListMine retrieves the caller's own pets, including non-visible ones
func (s *petService) ListMine(ctx context.Context, userID uuid.UUID) ([]*domain.Pet, error) {
	profile, err := s.sellerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.petRepo.ListBySeller(ctx, profile.ID)
}

// ListVisible retrieves buyer-visible pets with optional filters
func (s *petService) ListVisible(ctx context.Context, filter repository.PetFilter) ([]*domain.Pet, error) {
	return s.petRepo.ListVisible(ctx, filter)
}

// GetDetails retrieves a single pet with the seller's WhatsApp contact
// link when a number is on file.
func (s *petService) GetDetails(ctx context.Context, petID uuid.UUID) (*PetDetails, error) {
	pet, err := s.petRepo.FindByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	details := &PetDetails{Pet: pet}

	seller, err := s.sellerRepo.FindByID(ctx, pet.SellerID)
	if err != nil {
		if errors.Is(err, repository.ErrSellerNotFound) {
			return details, nil
		}
		return nil, err
	}

	details.ContactLink = WhatsAppLink(seller.WhatsAppNumber, pet.Name)
	return details, nil
}

// UpdateVerification flips the admin-controlled verification flag. The
// only guard is that the pet exists.
func (s *petService) UpdateVerification(ctx context.Context, petID uuid.UUID, isVerified bool) error {
	if _, err := s.petRepo.FindByID(ctx, petID); err != nil {
		return err
	}
	return s.petRepo.UpdateVerification(ctx, petID, isVerified)
}

// UpdateStatus sets a pet's listing status on behalf of an admin
func (s *petService) UpdateStatus(ctx context.Context, petID uuid.UUID, status domain.PetStatus) error {
	if !status.Valid() {
		return domain.Validation("invalid status value")
	}
	if _, err := s.petRepo.FindByID(ctx, petID); err != nil {
		return err
	}
	return s.petRepo.UpdateStatus(ctx, petID, status)
}

// WhatsAppLink builds a wa.me chat link for a phone number with a
// prefilled enquiry message. Returns "" when the number has no digits.
func WhatsAppLink(number, petName string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}

	link := url.URL{
		Scheme: "https",
		Host:   "wa.me",
		Path:   "/" + digits.String(),
	}
	if petName != "" {
		q := url.Values{}
		q.Set("text", "Hi, I'm interested in "+petName)
		link.RawQuery = q.Encode()
	}
	return link.String()
}
