package transport

import (
	"net/http"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdBody represents the create-ad payload
type AdBody struct {
	Title     string     `json:"title" validate:"required"`
	ImageURL  string     `json:"image_url" validate:"required,url"`
	TargetURL string     `json:"target_url" validate:"required,url"`
	Placement string     `json:"placement" validate:"required"`
	Status    string     `json:"status" validate:"required"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// AdStatusBody represents the change-status payload
type AdStatusBody struct {
	Status string `json:"status" validate:"required"`
}

// AdHandler handles HTTP requests for advertisement placements
type AdHandler struct {
	adService service.AdService
	logger    *zap.Logger
}

// NewAdHandler creates a new AdHandler
func NewAdHandler(adService service.AdService, logger *zap.Logger) *AdHandler {
	return &AdHandler{
		adService: adService,
		logger:    logger,
	}
}

// RegisterRoutes registers public and admin ad routes
func (h *AdHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/ads", h.Active)

	r.Route("/api/admin/ads", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{adID}/status", h.UpdateStatus)
	})
}

// Active handles the public lookup of the ad occupying a placement
func (h *AdHandler) Active(w http.ResponseWriter, r *http.Request) {
	placement := domain.AdPlacement(r.URL.Query().Get("placement"))

	ad, err := h.adService.ActiveByPlacement(r.Context(), placement)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "active ad", ad)
}

// List handles the admin ad dashboard
func (h *AdHandler) List(w http.ResponseWriter, r *http.Request) {
	ads, err := h.adService.List(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "ads", ads)
}

// Create handles admin ad creation
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AdBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ad, err := h.adService.Create(r.Context(), service.NewAd{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Placement: domain.AdPlacement(req.Placement),
		Status:    domain.AdStatus(req.Status),
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	})
	if err != nil {
		h.logger.Debug("Ad creation rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Ad created",
		zap.String("ad_id", ad.ID.String()),
		zap.String("placement", string(ad.Placement)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, "ad created", ad)
}

// UpdateStatus handles admin ad activation/deactivation
func (h *AdHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	adID, err := pathUUID(chi.URLParam(r, "adID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req AdStatusBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ad, err := h.adService.ChangeStatus(r.Context(), adID, domain.AdStatus(req.Status))
	if err != nil {
		h.logger.Debug("Ad status change rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "ad status updated", ad)
}
