package posting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/encoding"
	"github.com/haulbook/haulbook/internal/model"
)

func TestParseImport(t *testing.T) {
	input := ImportHeader + "\n" +
		"1;15/01/2025;CTR-1;Frete São Paulo;D;3.1.01;1.000,00;CC-SP\n" +
		"1;15/01/2025;CTR-1;Frete São Paulo;C;2.1.03;600,00;\n" +
		"1;15/01/2025;CTR-1;Frete São Paulo;c;2.1.04;400,00;\n" +
		"2;16/01/2025;CTR-2;Pedágio;D;3.1.02;R$ 85,40;\n" +
		"2;16/01/2025;CTR-2;Pedágio;C;1.1.01;85,40;\n"

	file, err := ParseImport(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, encoding.UTF8, file.Charset)
	require.Len(t, file.Postings, 2)

	first := file.Postings[0]
	assert.Empty(t, first.ID)
	assert.Equal(t, "CTR-1", first.ContractID)
	assert.Equal(t, date(2025, 1, 15), first.Date)
	require.Len(t, first.Lines, 3)
	assert.True(t, first.Lines[0].Amount.Equal(dec("1000")))
	assert.Equal(t, "CC-SP", first.Lines[0].CostCenter)
	assert.Equal(t, model.SideCredit, first.Lines[2].Side)

	res, err := Validate(first)
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("1000")))

	assert.True(t, file.Postings[1].Lines[0].Amount.Equal(dec("85.40")))
}

func TestParseImport_Latin1(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(ImportHeader + "\n")
	// "Pedágio" with á as windows-1252 0xE1
	buf.Write([]byte("1;16/01/2025;CTR-2;Ped\xe1gio;D;3.1.02;85,40;\n"))
	buf.WriteString("1;16/01/2025;CTR-2;Ped\xe1gio;C;1.1.01;85,40;\n")

	file, err := ParseImport(&buf)
	require.NoError(t, err)
	require.Len(t, file.Postings, 1)
	assert.Equal(t, "Pedágio", file.Postings[0].Description)
}

func TestParseImport_Errors(t *testing.T) {
	tests := map[string]string{
		"header": "a;b;c;d;e;f;g;h\n",
		"type":   ImportHeader + "\n1;15/01/2025;C;D;X;3.1.01;1,00;\n",
		"amount": ImportHeader + "\n1;15/01/2025;C;D;D;3.1.01;abc;\n",
		"date":   ImportHeader + "\n1;2025-01-15;C;D;D;3.1.01;1,00;\n",
		"fields": ImportHeader + "\n1;15/01/2025\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseImport(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestParseImport_Empty(t *testing.T) {
	file, err := ParseImport(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, file.Postings)
}
