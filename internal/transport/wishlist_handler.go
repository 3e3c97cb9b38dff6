package transport

import (
	"net/http"

	"pawmarket/internal/middleware"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WishlistHandler handles HTTP requests for buyer wishlists
type WishlistHandler struct {
	wishlistService service.WishlistService
	logger          *zap.Logger
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// RegisterRoutes registers buyer wishlist routes
func (h *WishlistHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/wishlist", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(middleware.RequireBuyer(h.logger))
		r.Get("/", h.List)
		r.Post("/pets/{petID}", h.Add)
		r.Delete("/pets/{petID}", h.Remove)
	})
}

// List handles retrieving the caller's wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	buyerID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	pets, err := h.wishlistService.List(r.Context(), buyerID)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "wishlist", pets)
}

// Add handles saving a pet to the caller's wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	buyerID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	if err := h.wishlistService.Add(r.Context(), buyerID, petID); err != nil {
		h.logger.Debug("Wishlist add rejected", zap.Error(err))
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet saved to wishlist", nil)
}

// Remove handles deleting a pet from the caller's wishlist
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	buyerID, err := callerID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	petID, err := pathUUID(chi.URLParam(r, "petID"))
	if err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	if err := h.wishlistService.Remove(r.Context(), buyerID, petID); err != nil {
		middleware.RespondWithDomainError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, "pet removed from wishlist", nil)
}
