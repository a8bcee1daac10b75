package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

type OperationKind string

const (
	KindLicensePurchase       OperationKind = "LICENSE_PURCHASE"
	KindDelegatedPayment      OperationKind = "DELEGATED_PAYMENT"
	KindWithdrawalDividends   OperationKind = "WITHDRAWAL_DIVIDENDS"
	KindWithdrawalCommissions OperationKind = "WITHDRAWAL_COMMISSIONS"
	KindUserTransfer          OperationKind = "USER_TRANSFER"
	KindKYCIdentity           OperationKind = "KYC_IDENTITY"
	KindKYCAddress            OperationKind = "KYC_ADDRESS"
)

// IsKYC reports whether the kind is a document review rather than a payment.
func (k OperationKind) IsKYC() bool {
	return k == KindKYCIdentity || k == KindKYCAddress
}

type State string

const (
	StatePending   State = "PENDING"
	StateApproved  State = "APPROVED"
	StateCompleted State = "COMPLETED"
	StateRejected  State = "REJECTED"
	StateFailed    State = "FAILED"
)

// RequiresReason is true iff a record in state s must carry a rejection comment.
func RequiresReason(s State) bool {
	return s == StateRejected
}

// IsTerminal is true for states no transition may leave.
func IsTerminal(s State) bool {
	switch s {
	case StateCompleted, StateRejected, StateFailed:
		return true
	}
	return false
}

type RejectionReason string

const (
	// KYC document reasons.
	ReasonDocumentExpired    RejectionReason = "DOCUMENT_EXPIRED"
	ReasonDocumentIllegible  RejectionReason = "DOCUMENT_ILLEGIBLE"
	ReasonDocumentIncomplete RejectionReason = "DOCUMENT_INCOMPLETE"
	ReasonDataMismatch       RejectionReason = "DATA_MISMATCH"
	ReasonAddressMismatch    RejectionReason = "ADDRESS_MISMATCH"

	// Payment reasons.
	ReasonInsufficientFunds  RejectionReason = "INSUFFICIENT_FUNDS"
	ReasonInvalidDestination RejectionReason = "INVALID_DESTINATION"
	ReasonSuspectedFraud     RejectionReason = "SUSPECTED_FRAUD"

	ReasonOther RejectionReason = "OTHER"
)

// Operation is any reviewable financial or document action.
type Operation struct {
	ID              string          `json:"id"`
	Kind            OperationKind   `json:"kind"`
	OwnerID         string          `json:"owner_id"`
	Amount          decimal.Decimal `json:"amount"`
	State           State           `json:"state"`
	RejectionReason RejectionReason `json:"rejection_reason,omitempty"`
	Comment         string          `json:"comment,omitempty"`
	Counterparty    string          `json:"counterparty,omitempty"`
	LicenseID       string          `json:"license_id,omitempty"`
	DocumentURL     string          `json:"document_url,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OperationPayload is the caller-supplied part of a new operation.
type OperationPayload struct {
	Amount       decimal.Decimal
	Counterparty string
	LicenseID    string
	DocumentURL  string
}

// OperationFilter narrows an operation listing. Empty fields match everything.
type OperationFilter struct {
	Kind    OperationKind
	State   State
	OwnerID string
}

// Page is a zero-indexed page request.
type Page struct {
	Number int
	Size   int
}

type OperationPage struct {
	Items  []Operation `json:"items"`
	Number int         `json:"page"`
	Size   int         `json:"size"`
	Total  int64       `json:"total"`
}

// Actor is the identity on whose behalf a transition is requested.
type Actor struct {
	Username string
	Admin    bool
}

// SystemActor performs settlement transitions.
var SystemActor = Actor{Username: "system"}
