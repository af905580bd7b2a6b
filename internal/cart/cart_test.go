package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riceSnapshot() Snapshot {
	return Snapshot{
		ItemID:       uuid.New(),
		Name:         "Beras Premium",
		Category:     "sembako",
		SmallestUnit: "gram",
		Units:        []string{"gram", "ons", "kg"},
		PricePerUnit: map[string]decimal.Decimal{
			"gram": decimal.NewFromInt(15),
			"ons":  decimal.NewFromInt(1500),
			"kg":   decimal.NewFromInt(15000),
		},
	}
}

func soapSnapshot() Snapshot {
	return Snapshot{
		ItemID:       uuid.New(),
		Name:         "Sabun Mandi",
		Category:     "toiletries",
		SmallestUnit: "pcs",
		PiecesPerBox: 12,
		Units:        []string{"pcs", "box"},
		PricePerUnit: map[string]decimal.Decimal{
			"pcs": decimal.NewFromInt(4000),
			"box": decimal.NewFromInt(45000),
		},
	}
}

func TestAddNewLine(t *testing.T) {
	c := New()
	snap := soapSnapshot()

	require.NoError(t, c.AddOrMerge(snap, "pcs", 1, ModeScanner))

	require.Len(t, c.Lines, 1)
	line := c.Lines[0]
	assert.Equal(t, snap.ItemID, line.ItemID)
	assert.Equal(t, 1.0, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(4000)))
}

func TestScannerMergeIncrementsByUnit(t *testing.T) {
	c := New()
	rice := riceSnapshot()
	soap := soapSnapshot()

	// gram-priced line: every repeated scan adds 100 gram
	require.NoError(t, c.AddOrMerge(rice, "gram", 100, ModeScanner))
	require.NoError(t, c.AddOrMerge(rice, "gram", 100, ModeScanner))
	require.NoError(t, c.AddOrMerge(rice, "gram", 100, ModeScanner))

	// pcs-priced line: every repeated scan adds 1
	require.NoError(t, c.AddOrMerge(soap, "pcs", 1, ModeScanner))
	require.NoError(t, c.AddOrMerge(soap, "pcs", 1, ModeScanner))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 300.0, c.Lines[0].Quantity)
	assert.Equal(t, 2.0, c.Lines[1].Quantity)
}

func TestScannerMergeRejectsDifferentUnit(t *testing.T) {
	c := New()
	rice := riceSnapshot()

	require.NoError(t, c.AddOrMerge(rice, "gram", 100, ModeScanner))
	err := c.AddOrMerge(rice, "kg", 1, ModeScanner)
	assert.ErrorIs(t, err, ErrUnitMismatch)

	// Cart unchanged by the rejected merge
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 100.0, c.Lines[0].Quantity)
}

func TestManualMergeSumsAcrossUnits(t *testing.T) {
	c := New()
	rice := riceSnapshot()

	require.NoError(t, c.AddOrMerge(rice, "gram", 500, ModeManual))
	// 1 kg arrives in a different unit: summed canonically, kept in gram
	require.NoError(t, c.AddOrMerge(rice, "kg", 1, ModeManual))

	require.Len(t, c.Lines, 1)
	line := c.Lines[0]
	assert.Equal(t, "gram", line.Unit)
	assert.Equal(t, 1500.0, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(22500)))
}

func TestAddRejectsUnsoldUnit(t *testing.T) {
	c := New()
	err := c.AddOrMerge(riceSnapshot(), "ton", 1, ModeManual)
	assert.ErrorIs(t, err, ErrUnitNotSold)
	assert.Empty(t, c.Lines)
}

func TestChangeUnitConvertsAndReprices(t *testing.T) {
	c := New()
	rice := riceSnapshot()

	require.NoError(t, c.AddOrMerge(rice, "gram", 2000, ModeManual))
	require.NoError(t, c.ChangeUnit(rice.ItemID, "kg"))

	line := c.Lines[0]
	assert.Equal(t, "kg", line.Unit)
	assert.Equal(t, 2.0, line.Quantity)
	assert.True(t, line.Price.Equal(decimal.NewFromInt(15000)))
	assert.True(t, line.Subtotal.Equal(decimal.NewFromInt(30000)))
}

func TestChangeUnitUnknownLine(t *testing.T) {
	c := New()
	err := c.ChangeUnit(uuid.New(), "kg")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestSetQuantity(t *testing.T) {
	c := New()
	soap := soapSnapshot()
	require.NoError(t, c.AddOrMerge(soap, "pcs", 2, ModeManual))

	require.NoError(t, c.SetQuantity(soap.ItemID, 5))
	assert.Equal(t, 5.0, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].Subtotal.Equal(decimal.NewFromInt(20000)))
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	rice := riceSnapshot()
	soap := soapSnapshot()
	require.NoError(t, c.AddOrMerge(rice, "kg", 1, ModeManual))
	require.NoError(t, c.AddOrMerge(soap, "pcs", 2, ModeManual))

	require.NoError(t, c.SetQuantity(rice.ItemID, 0))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, soap.ItemID, c.Lines[0].ItemID)
}

func TestTotalMatchesSumOfSubtotals(t *testing.T) {
	c := New()
	rice := riceSnapshot()
	soap := soapSnapshot()
	require.NoError(t, c.AddOrMerge(rice, "kg", 2, ModeManual))
	require.NoError(t, c.AddOrMerge(soap, "box", 1, ModeManual))

	expected := decimal.Zero
	for _, l := range c.Lines {
		expected = expected.Add(l.Subtotal)
	}
	assert.True(t, c.Total().Equal(expected))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(75000)))

	// Mutations keep the invariant
	require.NoError(t, c.SetQuantity(soap.ItemID, 0))
	assert.True(t, c.Total().Equal(decimal.NewFromInt(30000)))
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	assert.True(t, New().Total().Equal(decimal.Zero))
}
