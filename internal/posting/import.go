package posting

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/haulbook/haulbook/internal/encoding"
	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/money"
)

// ImportHeader is the expected header of a posting import file, as
// exported by the legacy ERP: semicolon separated, dd/mm/yyyy dates and
// decimal commas.
const ImportHeader = "lancamento;data;contrato;historico;tipo;conta;valor;centro_custo"

const (
	importFields     = 8
	importDateFormat = "02/01/2006"
)

// ImportFile is the outcome of parsing an import file.
type ImportFile struct {
	Charset  string
	Postings []model.LedgerPosting
}

// ParseImport reads a posting import file. Rows sharing the same entry
// number form one posting; postings come back without ids and are not
// validated.
func ParseImport(r io.Reader) (*ImportFile, error) {
	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(utf8r)
	cr.Comma = ';'
	cr.FieldsPerRecord = importFields
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &ImportFile{Charset: charset}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import header: %w", err)
	}
	if !strings.EqualFold(strings.Join(header, ";"), ImportHeader) {
		return nil, fmt.Errorf("unexpected import header %q", strings.Join(header, ";"))
	}

	out := &ImportFile{Charset: charset}
	index := make(map[string]int)
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		entry := strings.TrimSpace(rec[0])
		line, err := parseImportLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		at, seen := index[entry]
		if !seen {
			date, err := time.Parse(importDateFormat, strings.TrimSpace(rec[1]))
			if err != nil {
				return nil, fmt.Errorf("row %d: parsing date %q: %w", row, rec[1], err)
			}
			at = len(out.Postings)
			index[entry] = at
			out.Postings = append(out.Postings, model.LedgerPosting{
				ContractID:  strings.TrimSpace(rec[2]),
				Date:        date,
				Description: strings.TrimSpace(rec[3]),
			})
		}
		out.Postings[at].Lines = append(out.Postings[at].Lines, line)
	}
	return out, nil
}

func parseImportLine(rec []string) (model.PostingLine, error) {
	var side model.Side
	switch strings.ToUpper(strings.TrimSpace(rec[4])) {
	case "D":
		side = model.SideDebit
	case "C":
		side = model.SideCredit
	default:
		return model.PostingLine{}, fmt.Errorf("unknown entry type %q (want D or C)", rec[4])
	}

	amount, err := money.Parse(rec[6])
	if err != nil {
		return model.PostingLine{}, err
	}

	return model.PostingLine{
		Side:       side,
		Account:    strings.TrimSpace(rec[5]),
		Amount:     amount,
		CostCenter: strings.TrimSpace(rec[7]),
	}, nil
}
