package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SellerStatus is the admin-controlled verification state of a seller
type SellerStatus string

const (
	SellerStatusPending   SellerStatus = "pending"
	SellerStatusVerified  SellerStatus = "verified"
	SellerStatusRejected  SellerStatus = "rejected"
	SellerStatusSuspended SellerStatus = "suspended"
)

// Valid reports whether s is a known seller status
func (s SellerStatus) Valid() bool {
	switch s {
	case SellerStatusPending, SellerStatusVerified, SellerStatusRejected, SellerStatusSuspended:
		return true
	}
	return false
}

// SellerProfile is the verification/business record attached to a User
// who wishes to list pets. Exactly one per user; status is set only by
// admin actions and never self-service.
type SellerProfile struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	UserID            uuid.UUID    `json:"user_id" db:"user_id"`
	ShopName          string       `json:"shop_name" db:"shop_name"`
	WhatsAppNumber    string       `json:"whatsapp_number" db:"whatsapp_number"`
	Status            SellerStatus `json:"status" db:"status"`
	VerificationNotes string       `json:"verification_notes" db:"verification_notes"`
	VerificationDate  sql.NullTime `json:"verification_date" db:"verification_date"`
	IDProofURL        string       `json:"id_proof_url" db:"id_proof_url"`
	CertificateURL    string       `json:"certificate_url" db:"certificate_url"`
	ShopImageURL      string       `json:"shop_image_url" db:"shop_image_url"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}

// DecideStatusTransition decides whether an admin may move a seller
// profile from current to requested. It is pure: no I/O, deterministic,
// and returns a tagged error explaining any refusal.
//
// Rules, in order:
//  1. requested must be a known status.
//  2. verified -> verified is a no-op conflict.
//  3. rejected -> rejected is a no-op conflict.
//  4. verified -> rejected is refused; a verified seller can only be
//     downgraded via suspended.
//  5. pending is an initial-only state, reachable solely through the
//     original seller request, never by admin transition.
func DecideStatusTransition(current, requested SellerStatus) error {
	if !requested.Valid() {
		return Validation("invalid status value")
	}
	if current == SellerStatusVerified && requested == SellerStatusVerified {
		return Conflict("seller is already verified")
	}
	if current == SellerStatusRejected && requested == SellerStatusRejected {
		return Conflict("seller is already rejected")
	}
	if current == SellerStatusVerified && requested == SellerStatusRejected {
		return Conflict("cannot reject a seller who is already verified")
	}
	if requested == SellerStatusPending {
		return Validation("cannot reset a seller to pending")
	}
	return nil
}
