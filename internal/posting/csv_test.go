package posting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/model"
)

func TestWritePostings_Format(t *testing.T) {
	p := posting(debit("3.1.01", "1500"), credit("2.1.03", "1500"))
	p.ID = "2025-01-007"
	p.Lines[0].CostCenter = "CC-SP"
	p.Description = "Frete, São Paulo"

	var buf bytes.Buffer
	require.NoError(t, WritePostings(&buf, []model.LedgerPosting{p}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, `2025-01-007a,2025-01-15,CTR-0001,"Frete, São Paulo",debit,3.1.01,1500.00,CC-SP`, lines[1])
	assert.Equal(t, `2025-01-007b,2025-01-15,CTR-0001,"Frete, São Paulo",credit,2.1.03,1500.00,`, lines[2])
}

func TestReadPostings_GroupsLines(t *testing.T) {
	input := Header + "\n" +
		"2025-01-001a,2025-01-15,CTR-1,Freight,debit,3.1.01,600.00,\n" +
		"2025-01-001b,2025-01-15,CTR-1,Freight,debit,3.1.02,400.00,\n" +
		"2025-01-002a,2025-01-16,CTR-2,Toll,debit,3.1.01,50.00,\n" +
		"2025-01-001c,2025-01-15,CTR-1,Freight,credit,2.1.03,1000.00,\n" +
		"2025-01-002b,2025-01-16,CTR-2,Toll,credit,1.1.01,50.00,\n"

	got, err := ReadPostings(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-01-001", got[0].ID)
	assert.Len(t, got[0].Lines, 3)
	assert.Equal(t, "2025-01-002", got[1].ID)
	assert.Len(t, got[1].Lines, 2)

	_, err = Validate(got[0])
	assert.NoError(t, err)
}

func TestReadPostings_Errors(t *testing.T) {
	tests := map[string]string{
		"bad id":     "bogus,2025-01-15,C,D,debit,1,1.00,\n",
		"bad date":   "2025-01-001a,15/01/2025,C,D,debit,1,1.00,\n",
		"bad side":   "2025-01-001a,2025-01-15,C,D,both,1,1.00,\n",
		"bad amount": "2025-01-001a,2025-01-15,C,D,debit,1,abc,\n",
		"fields":     "2025-01-001a,2025-01-15\n",
	}
	for name, row := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadPostings(strings.NewReader(Header + "\n" + row))
			assert.Error(t, err)
		})
	}
}

func TestReadPostings_Empty(t *testing.T) {
	got, err := ReadPostings(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}
