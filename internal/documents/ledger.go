// Package documents tracks the transport documents registered on one
// contract and the links between freight invoices and goods invoices.
package documents

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/id"
	"github.com/haulbook/haulbook/internal/model"
)

// Ledger owns the document set and linkage of a single contract.
// It is not safe for concurrent use.
type Ledger struct {
	docs  map[model.DocumentID]model.TransportDocument
	order []model.DocumentID

	// freight invoice id -> set of goods invoice ids
	links map[model.DocumentID]map[model.DocumentID]struct{}

	newID id.Generator
}

// NewLedger creates an empty Ledger that assigns random document ids.
func NewLedger() *Ledger {
	return NewLedgerWithIDs(id.Random)
}

// NewLedgerWithIDs creates an empty Ledger using gen for document ids.
func NewLedgerWithIDs(gen id.Generator) *Ledger {
	if gen == nil {
		gen = id.Random
	}
	return &Ledger{
		docs:  make(map[model.DocumentID]model.TransportDocument),
		links: make(map[model.DocumentID]map[model.DocumentID]struct{}),
		newID: gen,
	}
}

// Restore rebuilds a Ledger from previously persisted documents and links.
// Documents must satisfy the same rules as AddDocument, and every link must
// reference a freight invoice and goods invoices among docs.
func Restore(docs []model.TransportDocument, links []model.DocumentLink, gen id.Generator) (*Ledger, error) {
	l := NewLedgerWithIDs(gen)
	for _, d := range docs {
		if _, dup := l.docs[d.ID]; dup {
			return nil, model.NewValidationError("id", "duplicate document id "+d.ID.String())
		}
		params := AddDocumentParams{Kind: d.Kind, Number: d.Number}
		if d.Kind.CarriesValue() || !d.FreightValue.IsZero() || !d.CargoValue.IsZero() {
			params.FreightValue = decimal.NewNullDecimal(d.FreightValue)
			params.CargoValue = decimal.NewNullDecimal(d.CargoValue)
		}
		if err := l.checkDocument(params); err != nil {
			return nil, err
		}
		l.docs[d.ID] = d
		l.order = append(l.order, d.ID)
	}
	for _, link := range links {
		if err := l.LinkGoodsToFreight(link.FreightID, link.GoodsIDs); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// AddDocumentParams describes a document being registered.
type AddDocumentParams struct {
	Kind         model.DocumentKind
	Number       string
	FreightValue decimal.NullDecimal
	CargoValue   decimal.NullDecimal
}

// AddDocument validates and registers a document, returning its new id.
func (l *Ledger) AddDocument(params AddDocumentParams) (model.DocumentID, error) {
	if err := l.checkDocument(params); err != nil {
		return model.DocumentID{}, err
	}

	doc := model.TransportDocument{Kind: params.Kind, Number: strings.TrimSpace(params.Number)}
	if params.Kind.CarriesValue() {
		doc.FreightValue = params.FreightValue.Decimal
		doc.CargoValue = params.CargoValue.Decimal
	}

	doc.ID = l.newID()
	for _, taken := l.docs[doc.ID]; taken; _, taken = l.docs[doc.ID] {
		doc.ID = l.newID()
	}
	l.docs[doc.ID] = doc
	l.order = append(l.order, doc.ID)
	return doc.ID, nil
}

// checkDocument applies the registration rules to a document about to join
// the ledger.
func (l *Ledger) checkDocument(params AddDocumentParams) error {
	number := strings.TrimSpace(params.Number)
	if number == "" {
		return model.NewValidationError("number", "document number is required")
	}
	if !params.Kind.Valid() {
		return model.NewValidationError("kind", "unknown document kind "+string(params.Kind))
	}

	if params.Kind.CarriesValue() {
		if !params.FreightValue.Valid || !params.FreightValue.Decimal.IsPositive() {
			return model.NewValidationError("freight_value", "freight invoice needs a freight value greater than zero")
		}
		if !params.CargoValue.Valid || !params.CargoValue.Decimal.IsPositive() {
			return model.NewValidationError("cargo_value", "freight invoice needs a cargo value greater than zero")
		}
	} else if params.FreightValue.Valid || params.CargoValue.Valid {
		return model.NewValidationError("kind", string(params.Kind)+" documents carry no monetary value")
	}

	if params.Kind == model.KindGoodsInvoice {
		if _, taken := l.FindByNumber(model.KindGoodsInvoice, number); taken {
			return model.NewValidationError("number", "goods invoice "+number+" is already registered")
		}
	}
	return nil
}

// RemoveDocument deletes a document and strips it from every link set.
// Removing an unknown id is a no-op.
func (l *Ledger) RemoveDocument(docID model.DocumentID) {
	if _, ok := l.docs[docID]; !ok {
		return
	}
	delete(l.docs, docID)
	delete(l.links, docID)
	for _, set := range l.links {
		delete(set, docID)
	}
	for i, existing := range l.order {
		if existing == docID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// LinkGoodsToFreight replaces the set of goods invoices covered by a freight
// invoice. Passing an empty set clears the freight invoice's links.
func (l *Ledger) LinkGoodsToFreight(freightID model.DocumentID, goodsIDs []model.DocumentID) error {
	if d, ok := l.docs[freightID]; !ok || d.Kind != model.KindFreightInvoice {
		return &model.NotFoundError{Entity: "freight invoice", Ref: freightID.String()}
	}

	set := make(map[model.DocumentID]struct{}, len(goodsIDs))
	for _, g := range goodsIDs {
		if d, ok := l.docs[g]; !ok || d.Kind != model.KindGoodsInvoice {
			return &model.NotFoundError{Entity: "goods invoice", Ref: g.String()}
		}
		set[g] = struct{}{}
	}

	if len(set) == 0 {
		delete(l.links, freightID)
		return nil
	}
	l.links[freightID] = set
	return nil
}

// Totals sums freight and cargo values over all freight invoices.
func (l *Ledger) Totals() model.Totals {
	t := model.Totals{TotalFreightValue: decimal.Zero, TotalCargoValue: decimal.Zero}
	for _, docID := range l.order {
		d := l.docs[docID]
		if d.Kind != model.KindFreightInvoice {
			continue
		}
		t.TotalFreightValue = t.TotalFreightValue.Add(d.FreightValue)
		t.TotalCargoValue = t.TotalCargoValue.Add(d.CargoValue)
	}
	return t
}

// LinksForGoods returns the freight invoices currently covering a goods
// invoice, in the order the freight invoices were registered.
func (l *Ledger) LinksForGoods(goodsID model.DocumentID) []model.DocumentID {
	var out []model.DocumentID
	for _, docID := range l.order {
		if _, ok := l.links[docID][goodsID]; ok {
			out = append(out, docID)
		}
	}
	return out
}

// LinksFor returns the goods invoices linked to a freight invoice in
// registration order.
func (l *Ledger) LinksFor(freightID model.DocumentID) []model.DocumentID {
	set := l.links[freightID]
	if len(set) == 0 {
		return nil
	}
	out := make([]model.DocumentID, 0, len(set))
	for _, docID := range l.order {
		if _, ok := set[docID]; ok {
			out = append(out, docID)
		}
	}
	return out
}

// Links returns every non-empty link set, ordered by freight invoice.
func (l *Ledger) Links() []model.DocumentLink {
	var out []model.DocumentLink
	for _, docID := range l.order {
		if goods := l.LinksFor(docID); len(goods) > 0 {
			out = append(out, model.DocumentLink{FreightID: docID, GoodsIDs: goods})
		}
	}
	return out
}

// Document returns a registered document by id.
func (l *Ledger) Document(docID model.DocumentID) (model.TransportDocument, bool) {
	d, ok := l.docs[docID]
	return d, ok
}

// Documents returns all documents in registration order.
func (l *Ledger) Documents() []model.TransportDocument {
	out := make([]model.TransportDocument, 0, len(l.order))
	for _, docID := range l.order {
		out = append(out, l.docs[docID])
	}
	return out
}

// FindByNumber returns the first document of a kind with the given number.
func (l *Ledger) FindByNumber(kind model.DocumentKind, number string) (model.TransportDocument, bool) {
	number = strings.TrimSpace(number)
	for _, docID := range l.order {
		if d := l.docs[docID]; d.Kind == kind && d.Number == number {
			return d, true
		}
	}
	return model.TransportDocument{}, false
}

// Len returns the number of registered documents.
func (l *Ledger) Len() int {
	return len(l.order)
}
