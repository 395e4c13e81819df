package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/database"
	"github.com/haulbook/haulbook/internal/model"
)

// Set HAULBOOK_TEST_DATABASE_URL to run these against a scratch database.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("HAULBOOK_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("HAULBOOK_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := database.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(db)
	require.NoError(t, s.Migrate(ctx))
	return s
}

func sampleContract(contractID string) *model.ContractAggregate {
	issue := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	advance := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	freight, goodsA, goodsB := uuid.New(), uuid.New(), uuid.New()
	return &model.ContractAggregate{
		Core: model.ContractCore{
			ID: contractID, Number: "CTR-9", IssueDate: issue, Type: model.ContractThirdParty,
			Carrier: model.Carrier{ID: "car-1", Name: "Transportes Sul", TaxID: "12345678000199",
				Payment: model.PaymentDetails{PixKey: "pix@sul.com.br"}},
			Origin: "Curitiba", Destination: "Santos",
		},
		Documents: []model.TransportDocument{
			{ID: freight, Kind: model.KindFreightInvoice, Number: "CT-1", FreightValue: decimal.NewFromInt(5000), CargoValue: decimal.NewFromInt(80000)},
			{ID: goodsA, Kind: model.KindGoodsInvoice, Number: "NF-1"},
			{ID: goodsB, Kind: model.KindGoodsInvoice, Number: "NF-2"},
		},
		Links:  []model.DocumentLink{{FreightID: freight, GoodsIDs: []uuid.UUID{goodsA, goodsB}}},
		Totals: model.Totals{TotalFreightValue: decimal.NewFromInt(5000), TotalCargoValue: decimal.NewFromInt(80000)},
		Terms: model.FreightTerms{
			ContractedFreightValue: decimal.NewFromInt(5000), AdvanceValue: decimal.NewFromInt(1000), AdvanceDate: &advance,
			TollValue: decimal.NewFromInt(200), GeneratePayable: true, DueDate: &due,
		},
		BalanceDue:  decimal.NewFromInt(3800),
		Notes:       model.ClosingNotes{Notes: "entrega agendada"},
		FinalizedAt: time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_FinalizeRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	contractID := "pg-" + uuid.NewString()
	c := sampleContract(contractID)

	tx, err := s.BeginFinalize(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveContract(ctx, c))
	ob := &model.PayableObligation{
		ID: uuid.New(), ContractID: contractID, CarrierID: "car-1", CarrierName: "Transportes Sul",
		Amount: decimal.NewFromInt(3800), DueDate: *c.Terms.DueDate, PaymentSnapshot: `{"pix_key":"pix@sul.com.br"}`,
		IssuedAt: c.FinalizedAt,
	}
	require.NoError(t, tx.SaveObligation(ctx, ob))
	require.NoError(t, tx.SaveReceipt(ctx, &model.ReceiptPlaceholder{
		ID: uuid.New(), ContractID: contractID, ObligationID: ob.ID, Amount: ob.Amount, CreatedAt: c.FinalizedAt,
	}))
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback())

	snap, err := s.LoadContract(ctx, contractID)
	require.NoError(t, err)
	assert.True(t, snap.Finalized)
	assert.Equal(t, "CTR-9", snap.Core.Number)
	assert.Equal(t, "pix@sul.com.br", snap.Core.Carrier.Payment.PixKey)
	assert.True(t, snap.BalanceDue.Equal(decimal.NewFromInt(3800)))
	require.Len(t, snap.Documents, 3)
	assert.Equal(t, "CT-1", snap.Documents[0].Number)
	require.Len(t, snap.Links, 1)
	assert.Len(t, snap.Links[0].GoodsIDs, 2)
	require.NotNil(t, snap.Terms.DueDate)

	obs, err := s.Obligations(ctx, contractID)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.True(t, obs[0].Amount.Equal(decimal.NewFromInt(3800)))
}

func TestStore_RollbackLeavesNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	contractID := "pg-" + uuid.NewString()

	tx, err := s.BeginFinalize(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveContract(ctx, sampleContract(contractID)))
	require.NoError(t, tx.Rollback())

	_, err = s.LoadContract(ctx, contractID)
	assert.ErrorIs(t, err, model.ErrContractNotFound)
}

func TestStore_RefusesFinalizedContract(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	contractID := "pg-" + uuid.NewString()

	first := sampleContract(contractID)
	tx, err := s.BeginFinalize(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveContract(ctx, first))
	require.NoError(t, tx.Commit())

	second := sampleContract(contractID)
	second.Documents = second.Documents[:1]
	second.Links = nil
	tx, err = s.BeginFinalize(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.SaveContract(ctx, second), model.ErrContractFinalized)
	require.NoError(t, tx.Rollback())

	snap, err := s.LoadContract(ctx, contractID)
	require.NoError(t, err)
	assert.Len(t, snap.Documents, 3, "first finalization is kept")
	assert.Len(t, snap.Links, 1)
}

func TestContractLockKey_Stable(t *testing.T) {
	assert.Equal(t, contractLockKey("c-1"), contractLockKey("c-1"))
	assert.NotEqual(t, contractLockKey("c-1"), contractLockKey("c-2"))
}
