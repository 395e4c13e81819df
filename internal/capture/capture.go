// Package capture reads a whole freight contract from a YAML file and
// replays it through the workflow stages.
package capture

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/haulbook/haulbook/internal/documents"
	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/money"
	"github.com/haulbook/haulbook/internal/workflow"
)

// DateLayout is the date format used in capture files.
const DateLayout = "2006-01-02"

// File is the on-disk shape of a captured contract. Amounts are strings so
// both "1234.56" and "1.234,56" are accepted.
type File struct {
	Contract  Contract   `yaml:"contract"`
	Documents []Document `yaml:"documents"`
	Links     []Link     `yaml:"links,omitempty"`
	Terms     Terms      `yaml:"terms"`
	Notes     Notes      `yaml:"notes,omitempty"`
}

type Contract struct {
	ID           string  `yaml:"id,omitempty"`
	Number       string  `yaml:"number"`
	IssueDate    string  `yaml:"issue_date"`
	Type         string  `yaml:"type"`
	Carrier      Carrier `yaml:"carrier,omitempty"`
	DriverName   string  `yaml:"driver_name,omitempty"`
	VehiclePlate string  `yaml:"vehicle_plate,omitempty"`
	Origin       string  `yaml:"origin,omitempty"`
	Destination  string  `yaml:"destination,omitempty"`
}

type Carrier struct {
	ID      string               `yaml:"id,omitempty"`
	Name    string               `yaml:"name,omitempty"`
	TaxID   string               `yaml:"tax_id,omitempty"`
	Payment model.PaymentDetails `yaml:"payment,omitempty"`
}

type Document struct {
	Kind         string `yaml:"kind"`
	Number       string `yaml:"number"`
	FreightValue string `yaml:"freight_value,omitempty"`
	CargoValue   string `yaml:"cargo_value,omitempty"`
}

// Link names a freight invoice and the goods invoices it covers by number.
type Link struct {
	Freight string   `yaml:"freight"`
	Goods   []string `yaml:"goods"`
}

type Terms struct {
	ContractedFreightValue string `yaml:"contracted_freight_value,omitempty"`
	AdvanceValue           string `yaml:"advance_value,omitempty"`
	AdvanceDate            string `yaml:"advance_date,omitempty"`
	TollValue              string `yaml:"toll_value,omitempty"`
	GeneratePayable        bool   `yaml:"generate_payable,omitempty"`
	DueDate                string `yaml:"due_date,omitempty"`
}

type Notes struct {
	Notes           string `yaml:"notes,omitempty"`
	InternalRemarks string `yaml:"internal_remarks,omitempty"`
}

// Load reads and parses a capture file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	return Parse(data)
}

// Parse decodes a capture file body.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing capture: %w", err)
	}
	return &f, nil
}

// Core converts the contract section to its model form.
func (f *File) Core() (model.ContractCore, error) {
	c := f.Contract
	core := model.ContractCore{
		ID:     strings.TrimSpace(c.ID),
		Number: c.Number,
		Type:   model.ContractType(c.Type),
		Carrier: model.Carrier{
			ID:      c.Carrier.ID,
			Name:    c.Carrier.Name,
			TaxID:   c.Carrier.TaxID,
			Payment: c.Carrier.Payment,
		},
		DriverName:   c.DriverName,
		VehiclePlate: c.VehiclePlate,
		Origin:       c.Origin,
		Destination:  c.Destination,
	}
	if strings.TrimSpace(c.IssueDate) != "" {
		d, err := parseDate("issue_date", c.IssueDate)
		if err != nil {
			return model.ContractCore{}, err
		}
		core.IssueDate = d
	}
	return core, nil
}

// FreightTerms converts the terms section to its model form.
func (f *File) FreightTerms() (model.FreightTerms, error) {
	t := f.Terms
	terms := model.FreightTerms{GeneratePayable: t.GeneratePayable}

	var err error
	if terms.ContractedFreightValue, err = amount("contracted_freight_value", t.ContractedFreightValue); err != nil {
		return terms, err
	}
	if terms.AdvanceValue, err = amount("advance_value", t.AdvanceValue); err != nil {
		return terms, err
	}
	if terms.TollValue, err = amount("toll_value", t.TollValue); err != nil {
		return terms, err
	}
	if terms.AdvanceDate, err = optionalDate("advance_date", t.AdvanceDate); err != nil {
		return terms, err
	}
	if terms.DueDate, err = optionalDate("due_date", t.DueDate); err != nil {
		return terms, err
	}
	return terms, nil
}

// Replay drives o through every stage using the captured data and returns
// the finalize outcome. The first failing stage stops the replay.
func Replay(ctx context.Context, o *workflow.Orchestrator, f *File) (*workflow.Outcome, error) {
	core, err := f.Core()
	if err != nil {
		return nil, err
	}
	if err := o.SaveContractCore(ctx, core); err != nil {
		return nil, err
	}

	for i, d := range f.Documents {
		params := documents.AddDocumentParams{Kind: model.DocumentKind(d.Kind), Number: d.Number}
		if params.FreightValue, err = money.Optional(d.FreightValue); err != nil {
			return nil, fieldError(fmt.Sprintf("documents[%d].freight_value", i), err)
		}
		if params.CargoValue, err = money.Optional(d.CargoValue); err != nil {
			return nil, fieldError(fmt.Sprintf("documents[%d].cargo_value", i), err)
		}
		if _, err := o.AddDocument(params); err != nil {
			return nil, fmt.Errorf("document %s: %w", d.Number, err)
		}
	}

	for _, l := range f.Links {
		freightID, err := documentID(o, model.KindFreightInvoice, l.Freight)
		if err != nil {
			return nil, err
		}
		goods := make([]model.DocumentID, 0, len(l.Goods))
		for _, number := range l.Goods {
			g, err := documentID(o, model.KindGoodsInvoice, number)
			if err != nil {
				return nil, err
			}
			goods = append(goods, g)
		}
		if err := o.LinkGoodsToFreight(freightID, goods); err != nil {
			return nil, err
		}
	}
	if err := o.SaveDocuments(ctx); err != nil {
		return nil, err
	}

	terms, err := f.FreightTerms()
	if err != nil {
		return nil, err
	}
	if err := o.SaveFreightTerms(ctx, terms); err != nil {
		return nil, err
	}

	return o.SaveClosingNotes(ctx, model.ClosingNotes{
		Notes:           f.Notes.Notes,
		InternalRemarks: f.Notes.InternalRemarks,
	})
}

func documentID(o *workflow.Orchestrator, kind model.DocumentKind, number string) (model.DocumentID, error) {
	number = strings.TrimSpace(number)
	for _, d := range o.State().Documents {
		if d.Kind == kind && d.Number == number {
			return d.ID, nil
		}
	}
	return model.DocumentID{}, &model.NotFoundError{Entity: string(kind), Ref: number}
}

func amount(field, s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, fieldError(field, err)
	}
	return d, nil
}

func optionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseDate(field, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, model.NewValidationError(field, "date must be YYYY-MM-DD")
	}
	return d, nil
}

func fieldError(field string, err error) error {
	return model.NewValidationError(field, err.Error())
}
