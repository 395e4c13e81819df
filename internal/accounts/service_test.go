package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/model"
)

func TestGetLookupExists(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Get("2.1.03.001")
	require.True(t, ok)
	assert.Equal(t, "Fretes a Pagar", acct.Name)

	acct, ok = svc.Lookup(230)
	require.True(t, ok)
	assert.Equal(t, "2.1.03.001", acct.Code)

	_, ok = svc.Lookup(999)
	assert.False(t, ok)

	assert.True(t, svc.Exists("4.1.01.002"))
	assert.False(t, svc.Exists("502"), "reduced codes are not full codes")
}

func TestResolve(t *testing.T) {
	svc := NewService(DefaultChart())

	acct, ok := svc.Resolve("502")
	require.True(t, ok)
	assert.Equal(t, "4.1.01.002", acct.Code)

	acct, ok = svc.Resolve(" 4.1.01.002 ")
	require.True(t, ok)
	assert.Equal(t, 502, acct.ReducedCode)

	_, ok = svc.Resolve("nope")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	svc := NewService(DefaultChart())

	got := svc.Search("pedagio")
	require.Len(t, got, 1, "accents are ignored")
	assert.Equal(t, "4.1.01.002", got[0].Code)

	got = svc.Search("FRETES")
	require.Len(t, got, 3)
	assert.Equal(t, "2.1.03.001", got[0].Code)
	assert.Equal(t, "3.1.01.001", got[1].Code)
	assert.Equal(t, "4.1.01.001", got[2].Code)

	got = svc.Search("4.1.01")
	assert.Len(t, got, 4)

	got = svc.Search("230")
	require.Len(t, got, 1)
	assert.Equal(t, "Fretes a Pagar", got[0].Name)

	assert.Empty(t, svc.Search("  "))
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart())
	expenses := svc.ByType(model.AccountTypeExpense)
	assert.Len(t, expenses, 4)
	for _, a := range expenses {
		assert.Equal(t, model.AccountTypeExpense, a.Type)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewService(DefaultChart()).Save(dir))

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultChart(), svc.All())

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestReadAccounts(t *testing.T) {
	input := "code,reduced_code,name,type,description\n" +
		"1.1.01.001,101,Caixa,asset,\n" +
		"9.9,,\"Sem, reduzido\",expense,x\n"
	got, err := ReadAccounts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 101, got[0].ReducedCode)
	assert.Zero(t, got[1].ReducedCode)
	assert.Equal(t, "Sem, reduzido", got[1].Name)

	_, err = ReadAccounts(strings.NewReader("code,reduced_code,name,type,description\n1,abc,x,asset,\n"))
	assert.Error(t, err)

	_, err = ReadAccounts(strings.NewReader("code,reduced_code,name,type,description\n,1,x,asset,\n"))
	assert.Error(t, err)
}

func TestWriteAccounts_OmitsZeroReduced(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, []model.Account{{Code: "9", Name: "Misc", Type: model.AccountTypeExpense}}))
	assert.Equal(t, "code,reduced_code,name,type,description\n9,,Misc,expense,\n", buf.String())
}
