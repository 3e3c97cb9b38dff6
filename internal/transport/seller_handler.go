package transport

import (
	"net/http"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SellerRequestBody represents the seller application payload. Document
// fields carry URLs of already-uploaded files.
type SellerRequestBody struct {
	ShopName       string `json:"shop_name" validate:"required"`
	WhatsAppNumber string `json:"whatsapp_number" validate:"required"`
	IDProofURL     string `json:"id_proof_url" validate:"required,url"`
	CertificateURL string `json:"certificate_url" validate:"required,url"`
	ShopImageURL   string `json:"shop_image_url" validate:"omitempty,url"`
}

// SellerStatusBody represents an admin verification decision
type SellerStatusBody struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes"`
}

// SellerHandler handles HTTP requests for the seller verification workflow
type SellerHandler struct {
	sellerService service.SellerService
	logger        *zap.Logger
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellerService service.SellerService, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
		logger:        logger,
	}
}

// RegisterRoutes registers seller and admin review routes
func (h *SellerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/seller", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/request", h.Request)
		r.Get("/me", h.Me)
	})

	r.Route("/api/admin/sellers", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireAdmin(h.logger))
		r.Get("/", h.List)
		r.Patch("/{sellerID}/status", h.UpdateStatus)
	})
}

// Request handles a user's seller application
func (h *SellerHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req SellerRequestBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.sellerService.RequestSeller(r.Context(), userID, service.SellerRequest{
		ShopName:       req.ShopName,
		WhatsAppNumber: req.WhatsAppNumber,
		IDProofURL:     req.IDProofURL,
		CertificateURL: req.CertificateURL,
		ShopImageURL:   req.ShopImageURL,
	})
	if err != nil {
		h.logger.Debug("Seller request failed", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Seller profile requested",
		zap.String("user_id", userID.String()),
		zap.String("seller_id", profile.ID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, "seller request submitted", profile)
}

// Me handles getting the caller's seller profile
func (h *SellerHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	profile, err := h.sellerService.GetByUserID(r.Context(), userID)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "seller profile", profile)
}

// List handles admin review queues, filtered by status
func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.SellerStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.SellerStatusPending
	}

	profiles, err := h.sellerService.ListByStatus(r.Context(), status)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "seller profiles", profiles)
}

// UpdateStatus handles an admin verification decision
func (h *SellerHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, err := pathUUID(chi.URLParam(r, "sellerID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	var req SellerStatusBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.sellerService.Verify(r.Context(), sellerID, domain.SellerStatus(req.Status), req.Notes)
	if err != nil {
		h.logger.Debug("Seller status update rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	h.logger.Info("Seller status updated",
		zap.String("seller_id", sellerID.String()),
		zap.String("status", req.Status),
	)
	middleware.RespondWithJSON(w, http.StatusOK, "seller status updated", profile)
}
