package transport

import (
	"net/http"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/repository"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PetBody represents the create-pet payload. Image fields carry URLs of
// already-uploaded files; admin-controlled fields are not accepted here.
type PetBody struct {
	BreedName   string   `json:"breed_name" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	AgeMonths   int      `json:"age_months" validate:"gte=0"`
	Gender      string   `json:"gender" validate:"omitempty,oneof=male female"`
	ImageURLs   []string `json:"image_urls" validate:"dive,url"`
}

// PetVerifyBody represents the admin verification flag payload
type PetVerifyBody struct {
	IsVerified bool `json:"is_verified"`
}

// PetStatusBody represents the admin status payload
type PetStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// PetHandler handles HTTP requests for pet listings
type PetHandler struct {
	petService service.PetService
	logger     *zap.Logger
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petService service.PetService, logger *zap.Logger) *PetHandler {
	return &PetHandler{
		petService: petService,
		logger:     logger,
	}
}

// RegisterRoutes registers public, seller and admin pet routes
func (h *PetHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/pets", func(r chi.Router) {
		// Public routes
		r.Get("/", h.List)
		r.Get("/{petID}", h.Get)

		// Seller routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RequireSeller(h.logger))
			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Patch("/{petID}", h.Update)
			r.Delete("/{petID}", h.Delete)
		})
	})

	r.Route("/api/admin/pets", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))
		r.Patch("/{petID}/verify", h.Verify)
		r.Patch("/{petID}/status", h.UpdateStatus)
	})
}

// List handles the public pet catalog with optional filters
func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.PetFilter{
		Category:  r.URL.Query().Get("category"),
		BreedName: r.URL.Query().Get("breed"),
	}

	pets, err := h.petService.ListVisible(r.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list pets", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pets", pets)
}

// Get handles a single public pet with its seller contact link
func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	details, err := h.petService.GetDetails(r.Context(), petID)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet", details)
}

// Create handles a seller adding a new pet listing
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req PetBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pet, err := h.petService.AddPet(r.Context(), userID, service.NewPet{
		BreedName:   req.BreedName,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		AgeMonths:   req.AgeMonths,
		Gender:      req.Gender,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		h.logger.Debug("Pet creation rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Pet created",
		zap.String("pet_id", pet.ID.String()),
		zap.String("seller_id", pet.SellerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, "pet created", pet)
}

// ListMine handles a seller's own listings dashboard
func (h *PetHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	pets, err := h.petService.ListMine(r.Context(), userID)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pets", pets)
}

// Update handles a seller editing their own pet. Only content fields
// are decoded; anything else in the payload is discarded.
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var update domain.PetUpdate
	if err := middleware.DecodeAndValidate(r, &update); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pet, err := h.petService.UpdatePet(r.Context(), userID, petID, &update)
	if err != nil {
		h.logger.Debug("Pet update rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet updated", pet)
}

// Delete handles a seller removing their own pet
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	if err := h.petService.RemovePet(r.Context(), userID, petID); err != nil {
		h.logger.Debug("Pet removal rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet removed", nil)
}

// Verify handles the admin verification flag
func (h *PetHandler) Verify(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req PetVerifyBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.petService.UpdateVerification(r.Context(), petID, req.IsVerified); err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Pet verification updated",
		zap.String("pet_id", petID.String()),
		zap.Bool("is_verified", req.IsVerified),
	)
	middleware.RespondWithJSON(w, http.StatusOK, "pet verification updated", nil)
}

// UpdateStatus handles an admin pet status change
func (h *PetHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req PetStatusBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.petService.UpdateStatus(r.Context(), petID, domain.PetStatus(req.Status)); err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet status updated", nil)
}
