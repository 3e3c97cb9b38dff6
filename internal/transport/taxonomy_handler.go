package transport

import (
	"net/http"

	"pawmarket/internal/middleware"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpeciesBody represents the create-species payload
type SpeciesBody struct {
	Name string `json:"name" validate:"required"`
}

// BreedBody represents the create-breed payload
type BreedBody struct {
	SpeciesID uuid.UUID `json:"species_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
}

// TaxonomyHandler handles HTTP requests for the species/breed taxonomy
type TaxonomyHandler struct {
	taxonomyService service.TaxonomyService
	logger          *zap.Logger
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(taxonomyService service.TaxonomyService, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomyService: taxonomyService,
		logger:          logger,
	}
}

// RegisterRoutes registers public reads and admin writes
func (h *TaxonomyHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/species", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))
		r.Post("/api/admin/species", h.CreateSpecies)
		r.Post("/api/admin/breeds", h.CreateBreed)
	})
}

// List handles the public taxonomy listing
func (h *TaxonomyHandler) List(w http.ResponseWriter, r *http.Request) {
	taxonomy, err := h.taxonomyService.ListSpeciesWithBreeds(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "species", taxonomy)
}

// CreateSpecies handles admin species creation
func (h *TaxonomyHandler) CreateSpecies(w http.ResponseWriter, r *http.Request) {
	var req SpeciesBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	species, err := h.taxonomyService.CreateSpecies(r.Context(), req.Name)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Species created", zap.String("name", species.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, "species created", species)
}

// CreateBreed handles admin breed creation
func (h *TaxonomyHandler) CreateBreed(w http.ResponseWriter, r *http.Request) {
	var req BreedBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	breed, err := h.taxonomyService.CreateBreed(r.Context(), req.SpeciesID, req.Name)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Breed created",
		zap.String("name", breed.Name),
		zap.String("species", breed.SpeciesName),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, "breed created", breed)
}
