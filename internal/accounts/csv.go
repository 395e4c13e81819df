package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/haulbook/haulbook/internal/model"
)

const (
	numFields  = 5
	colCode    = 0
	colReduced = 1
	colName    = 2
	colType    = 3
	colDesc    = 4
)

var header = []string{"code", "reduced_code", "name", "type", "description"}

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	if acct.ReducedCode != 0 {
		row[colReduced] = strconv.Itoa(acct.ReducedCode)
	}
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colDesc] = acct.Description
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colCode] == "" {
		return model.Account{}, fmt.Errorf("account code is required")
	}

	var reduced int
	if record[colReduced] != "" {
		var err error
		reduced, err = strconv.Atoi(record[colReduced])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing reduced_code %q: %w", record[colReduced], err)
		}
	}

	return model.Account{
		Code:        record[colCode],
		ReducedCode: reduced,
		Name:        record[colName],
		Type:        model.AccountType(record[colType]),
		Description: record[colDesc],
	}, nil
}
