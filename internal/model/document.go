package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentKind is the variant tag of a transport document.
type DocumentKind string

const (
	KindManifest       DocumentKind = "manifest"
	KindFreightInvoice DocumentKind = "freight_invoice"
	KindGoodsInvoice   DocumentKind = "goods_invoice"
)

// Valid reports whether k is one of the known document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindManifest, KindFreightInvoice, KindGoodsInvoice:
		return true
	}
	return false
}

// CarriesValue reports whether documents of this kind hold freight and cargo values.
func (k DocumentKind) CarriesValue() bool {
	return k == KindFreightInvoice
}

// DocumentID identifies a registered transport document.
type DocumentID = uuid.UUID

// TransportDocument is a manifest, freight invoice or goods invoice attached
// to a contract. FreightValue and CargoValue are zero unless Kind is
// KindFreightInvoice.
type TransportDocument struct {
	ID           DocumentID
	Kind         DocumentKind
	Number       string
	FreightValue decimal.Decimal
	CargoValue   decimal.Decimal
}

// DocumentLink records which goods invoices a freight invoice covers.
type DocumentLink struct {
	FreightID DocumentID
	GoodsIDs  []DocumentID
}

// Totals is the financial roll-up over the freight invoices of a contract.
type Totals struct {
	TotalFreightValue decimal.Decimal
	TotalCargoValue   decimal.Decimal
}
