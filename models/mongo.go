package models

import (
	// Go Internal Packages
	"time"

	// External Packages
	"github.com/shopspring/decimal"
)

type MongoOperation struct {
	ID              string    `bson:"_id"`
	Kind            string    `bson:"kind"`
	OwnerID         string    `bson:"owner_id"`
	Amount          string    `bson:"amount"`
	State           string    `bson:"state"`
	RejectionReason string    `bson:"rejection_reason,omitempty"`
	Comment         string    `bson:"comment,omitempty"`
	Counterparty    string    `bson:"counterparty,omitempty"`
	LicenseID       string    `bson:"license_id,omitempty"`
	DocumentURL     string    `bson:"document_url,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func (o *Operation) Transform() MongoOperation {
	return MongoOperation{
		ID:              o.ID,
		Kind:            string(o.Kind),
		OwnerID:         o.OwnerID,
		Amount:          o.Amount.String(),
		State:           string(o.State),
		RejectionReason: string(o.RejectionReason),
		Comment:         o.Comment,
		Counterparty:    o.Counterparty,
		LicenseID:       o.LicenseID,
		DocumentURL:     o.DocumentURL,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOperation converts a stored document back. A malformed amount decodes as zero.
func (m *MongoOperation) ToOperation() Operation {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	return Operation{
		ID:              m.ID,
		Kind:            OperationKind(m.Kind),
		OwnerID:         m.OwnerID,
		Amount:          amount,
		State:           State(m.State),
		RejectionReason: RejectionReason(m.RejectionReason),
		Comment:         m.Comment,
		Counterparty:    m.Counterparty,
		LicenseID:       m.LicenseID,
		DocumentURL:     m.DocumentURL,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
