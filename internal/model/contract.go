package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractType distinguishes company-owned transport from hired carriers.
type ContractType string

const (
	ContractOwnFleet   ContractType = "own_fleet"
	ContractThirdParty ContractType = "third_party"
)

// Valid reports whether t is a known contract type.
func (t ContractType) Valid() bool {
	return t == ContractOwnFleet || t == ContractThirdParty
}

// PaymentDetails is where a carrier gets paid.
type PaymentDetails struct {
	BankCode      string `json:"bank_code,omitempty" yaml:"bank_code,omitempty"`
	Branch        string `json:"branch,omitempty" yaml:"branch,omitempty"`
	AccountNumber string `json:"account_number,omitempty" yaml:"account_number,omitempty"`
	PixKey        string `json:"pix_key,omitempty" yaml:"pix_key,omitempty"`
	HolderName    string `json:"holder_name,omitempty" yaml:"holder_name,omitempty"`
	HolderTaxID   string `json:"holder_tax_id,omitempty" yaml:"holder_tax_id,omitempty"`
}

// Carrier is the party performing the transport.
type Carrier struct {
	ID      string
	Name    string
	TaxID   string
	Payment PaymentDetails
}

// ContractCore is the first-stage data of a freight contract.
type ContractCore struct {
	ID           string
	Number       string
	IssueDate    time.Time
	Type         ContractType
	Carrier      Carrier
	DriverName   string
	VehiclePlate string
	Origin       string
	Destination  string
}

// FreightTerms are the money terms agreed with the carrier.
type FreightTerms struct {
	ContractedFreightValue decimal.Decimal
	AdvanceValue           decimal.Decimal
	AdvanceDate            *time.Time
	TollValue              decimal.Decimal
	GeneratePayable        bool
	DueDate                *time.Time
}

// ClosingNotes are the free-text remarks captured in the last stage.
type ClosingNotes struct {
	Notes           string
	InternalRemarks string
}

// ContractAggregate is the finalized contract handed to persistence.
type ContractAggregate struct {
	Core        ContractCore
	Documents   []TransportDocument
	Links       []DocumentLink
	Totals      Totals
	Terms       FreightTerms
	BalanceDue  decimal.Decimal
	Notes       ClosingNotes
	FinalizedAt time.Time
}

// ContractSnapshot is the latest committed state of a contract.
type ContractSnapshot struct {
	ContractAggregate
	Finalized bool
}

// PayableObligation is money owed to a third-party carrier for a contract.
type PayableObligation struct {
	ID              uuid.UUID
	ContractID      string
	CarrierID       string
	CarrierName     string
	Amount          decimal.Decimal
	DueDate         time.Time
	PaymentSnapshot string // JSON-encoded PaymentDetails at emission time
	IssuedAt        time.Time
}

// ReceiptPlaceholder stands in for the carrier receipt that will settle an obligation.
type ReceiptPlaceholder struct {
	ID           uuid.UUID
	ContractID   string
	ObligationID uuid.UUID
	Amount       decimal.Decimal
	CreatedAt    time.Time
}
