// Package freight derives what is owed to a carrier from the agreed freight terms.
package freight

import (
	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/model"
)

// ComputeBalance returns contracted freight minus advance minus toll.
// The result may be negative.
func ComputeBalance(terms model.FreightTerms) decimal.Decimal {
	return terms.ContractedFreightValue.Sub(terms.AdvanceValue).Sub(terms.TollValue)
}

// IsObligationEligible reports whether a payable obligation should be
// emitted for these terms. Ineligibility is not an error.
func IsObligationEligible(terms model.FreightTerms, contractType model.ContractType) bool {
	return contractType == model.ContractThirdParty &&
		terms.GeneratePayable &&
		ComputeBalance(terms).IsPositive() &&
		terms.DueDate != nil
}

// RequireAdvanceDate reports whether an advance was entered without its date.
func RequireAdvanceDate(terms model.FreightTerms) bool {
	return terms.AdvanceValue.IsPositive() && terms.AdvanceDate == nil
}

// Normalize returns terms adjusted for the contract type. Own-fleet
// contracts never carry a contracted freight value.
func Normalize(terms model.FreightTerms, contractType model.ContractType) model.FreightTerms {
	if contractType == model.ContractOwnFleet {
		terms.ContractedFreightValue = decimal.Zero
	}
	return terms
}

// Validate returns the first blocking problem with terms, or nil.
// Terms are expected to be normalized already.
func Validate(terms model.FreightTerms, contractType model.ContractType) error {
	if terms.ContractedFreightValue.IsNegative() {
		return model.NewValidationError("contracted_freight_value", "must not be negative")
	}
	if terms.AdvanceValue.IsNegative() {
		return model.NewValidationError("advance_value", "must not be negative")
	}
	if terms.TollValue.IsNegative() {
		return model.NewValidationError("toll_value", "must not be negative")
	}
	if contractType == model.ContractThirdParty && !terms.ContractedFreightValue.IsPositive() {
		return model.NewValidationError("contracted_freight_value", "required for third-party contracts")
	}
	if RequireAdvanceDate(terms) {
		return model.NewValidationError("advance_date", "required when an advance is paid")
	}
	if terms.GeneratePayable && ComputeBalance(terms).IsPositive() && terms.DueDate == nil {
		return model.NewValidationError("due_date", "required to generate a payable")
	}
	return nil
}
