package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawmarket/internal/domain"
	"pawmarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSellerService struct {
	requestErr  error
	requested   *domain.SellerProfile
	lastRequest service.SellerRequest
	me          *domain.SellerProfile
	meErr       error
	listed      []*domain.SellerProfile
	listErr     error
	lastListed  domain.SellerStatus
	verifyErr   error
	verified    *domain.SellerProfile
	lastVerify  domain.SellerStatus
	lastNotes   string
}

func (s *stubSellerService) RequestSeller(ctx context.Context, userID uuid.UUID, req service.SellerRequest) (*domain.SellerProfile, error) {
	s.lastRequest = req
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	return s.requested, nil
}

func (s *stubSellerService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	return s.me, nil
}

func (s *stubSellerService) ListByStatus(ctx context.Context, status domain.SellerStatus) ([]*domain.SellerProfile, error) {
	s.lastListed = status
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listed, nil
}

func (s *stubSellerService) Verify(ctx context.Context, sellerID uuid.UUID, requested domain.SellerStatus, notes string) (*domain.SellerProfile, error) {
	s.lastVerify = requested
	s.lastNotes = notes
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return s.verified, nil
}

func newSellerRouter(stub *stubSellerService, userID uuid.UUID, role string) chi.Router {
	r := chi.NewRouter()
	handler := NewSellerHandler(stub, zap.NewNop())
	handler.RegisterRoutes(r, stubAuth(userID, role))
	return r
}

func validSellerRequestBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"shop_name":       "Happy Paws",
		"whatsapp_number": "+34 600 111 222",
		"id_proof_url":    "https://cdn.example.com/id.pdf",
		"certificate_url": "https://cdn.example.com/cert.pdf",
	})
	return body
}

func TestSellerRequestSubmitted(t *testing.T) {
	stub := &stubSellerService{
		requested: &domain.SellerProfile{ID: uuid.New(), Status: domain.SellerStatusPending},
	}
	router := newSellerRouter(stub, uuid.New(), domain.RoleBuyer)

	req := httptest.NewRequest(http.MethodPost, "/api/seller/request", bytes.NewReader(validSellerRequestBody()))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeBody(t, rec)
	assert.Equal(t, "seller request submitted", envelope.Message)
	assert.Equal(t, "Happy Paws", stub.lastRequest.ShopName)
}

func TestSellerRequestRequiresDocuments(t *testing.T) {
	stub := &stubSellerService{}
	router := newSellerRouter(stub, uuid.New(), domain.RoleBuyer)

	body, _ := json.Marshal(map[string]any{"shop_name": "Happy Paws"})
	req := httptest.NewRequest(http.MethodPost, "/api/seller/request", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeBody(t, rec)
	require.NotNil(t, envelope.Error)
	assert.NotEmpty(t, envelope.Error.Details["validation_errors"])
}

func TestSellerRequestDuplicateProfile(t *testing.T) {
	stub := &stubSellerService{requestErr: domain.Conflict("seller profile already exists for this user")}
	router := newSellerRouter(stub, uuid.New(), domain.RoleBuyer)

	req := httptest.NewRequest(http.MethodPost, "/api/seller/request", bytes.NewReader(validSellerRequestBody()))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminListDefaultsToPendingQueue(t *testing.T) {
	stub := &stubSellerService{listed: []*domain.SellerProfile{}}
	router := newSellerRouter(stub, uuid.New(), domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sellers/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SellerStatusPending, stub.lastListed)
}

func TestAdminListFiltersByStatus(t *testing.T) {
	stub := &stubSellerService{listed: []*domain.SellerProfile{}}
	router := newSellerRouter(stub, uuid.New(), domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sellers/?status=rejected", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SellerStatusRejected, stub.lastListed)
}

func TestAdminSellerRoutesRequireAdmin(t *testing.T) {
	stub := &stubSellerService{}
	router := newSellerRouter(stub, uuid.New(), domain.RoleSeller)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/sellers/", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminVerifiesSeller(t *testing.T) {
	stub := &stubSellerService{
		verified: &domain.SellerProfile{ID: uuid.New(), Status: domain.SellerStatusVerified},
	}
	router := newSellerRouter(stub, uuid.New(), domain.RoleAdmin)

	body := []byte(`{"status":"verified","notes":"docs look good"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/sellers/"+uuid.NewString()+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.SellerStatusVerified, stub.lastVerify)
	assert.Equal(t, "docs look good", stub.lastNotes)
}

func TestAdminDoubleVerifyIsConflict(t *testing.T) {
	stub := &stubSellerService{verifyErr: domain.Conflict("seller is already verified")}
	router := newSellerRouter(stub, uuid.New(), domain.RoleAdmin)

	body := []byte(`{"status":"verified"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/sellers/"+uuid.NewString()+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	envelope := decodeBody(t, rec)
	assert.Equal(t, "seller is already verified", envelope.Message)
}

func TestAdminInvalidStatusIsBadRequest(t *testing.T) {
	stub := &stubSellerService{verifyErr: domain.Validation("invalid status value")}
	router := newSellerRouter(stub, uuid.New(), domain.RoleAdmin)

	body := []byte(`{"status":"banana"}`)
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/sellers/"+uuid.NewString()+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
