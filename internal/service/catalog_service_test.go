package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without Redis the catalog degrades to straight repository reads.
func TestSnapshotFallsBackToRepository(t *testing.T) {
	rice := riceItem()
	repo := newStubStockRepo(rice)
	svc := NewCatalogService(repo, nil, 5*time.Minute)

	snap, err := svc.Snapshot(context.Background(), rice.ID)
	require.NoError(t, err)

	assert.Equal(t, rice.ID, snap.ItemID)
	assert.Equal(t, "Beras Premium", snap.Name)
	assert.Equal(t, "gram", snap.SmallestUnit)
	assert.Equal(t, 0, snap.PiecesPerBox)
	assert.ElementsMatch(t, []string{"gram", "ons", "kg"}, snap.Units)
	assert.True(t, snap.PricePerUnit["kg"].Equal(rice.PricePerUnit["kg"]))
}

func TestSnapshotUnknownItem(t *testing.T) {
	svc := NewCatalogService(newStubStockRepo(), nil, 5*time.Minute)
	_, err := svc.Snapshot(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestSnapshotCarriesPiecesPerBox(t *testing.T) {
	soap := soapItem()
	twelve := 12
	soap.PiecesPerBox = &twelve
	repo := newStubStockRepo(soap)
	svc := NewCatalogService(repo, nil, 5*time.Minute)

	snap, err := svc.Snapshot(context.Background(), soap.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, snap.PiecesPerBox)
}
