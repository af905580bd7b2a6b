package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fajrulalam/koperasi-unidpu-sub001/internal/receipt"
)

type fakeBackend struct {
	name  string
	err   error
	calls int
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Send(_ context.Context, _ *receipt.Document) error {
	f.calls++
	return f.err
}

func testDoc() *receipt.Document {
	return &receipt.Document{Info: receipt.Info{TransactionID: "TRX-TEST"}}
}

func TestPrintStopsAtFirstSuccess(t *testing.T) {
	first := &fakeBackend{name: "device"}
	second := &fakeBackend{name: "relay"}

	d := NewDispatcher(first, second)
	assert.True(t, d.Print(context.Background(), testDoc()))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestPrintFallsThroughFailedTiers(t *testing.T) {
	device := &fakeBackend{name: "device", err: errors.New("no printer attached")}
	relay := &fakeBackend{name: "relay", err: errors.New("relay offline")}
	pdf := &fakeBackend{name: "pdf"}

	d := NewDispatcher(device, relay, pdf)
	assert.True(t, d.Print(context.Background(), testDoc()))
	assert.Equal(t, 1, device.calls)
	assert.Equal(t, 1, relay.calls)
	assert.Equal(t, 1, pdf.calls)
}

func TestPrintReportsTotalFailure(t *testing.T) {
	device := &fakeBackend{name: "device", err: errors.New("no printer attached")}
	relay := &fakeBackend{name: "relay", err: errors.New("relay offline")}

	d := NewDispatcher(device, relay)
	assert.False(t, d.Print(context.Background(), testDoc()))
}

func TestPrintWithNoBackends(t *testing.T) {
	assert.False(t, NewDispatcher().Print(context.Background(), testDoc()))
}
