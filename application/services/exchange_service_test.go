package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"agentdir/domain/catalog"
	"agentdir/infrastructure/persistence/memory"
	apperrors "agentdir/pkg/errors"
)

func newTestExchange(store *memory.Store) *ExchangeService {
	return NewExchangeService(store, nil, zap.NewNop())
}

func TestExportImportRoundTrip(t *testing.T) {
	src := memory.NewStore()
	catalogSvc := newTestService(src, stubSeed{doc: seedDoc(t)})
	catalogSvc.WithClock(steppingClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), time.Minute))

	_, err := catalogSvc.Create(context.Background(), echoInput())
	require.NoError(t, err)
	original, err := catalogSvc.Resolve(context.Background())
	require.NoError(t, err)

	doc, err := newTestExchange(src).Export(original)
	require.NoError(t, err)

	dst := memory.NewStore()
	imported, err := newTestExchange(dst).Import(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, original, imported)
	assert.Equal(t, original, readCatalog(t, dst))
}

func TestImportMalformedFile(t *testing.T) {
	store := memory.NewStore()
	store.Seed(seedDoc(t))

	_, err := newTestExchange(store).Import(context.Background(), []byte(`{not json`))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedFile))

	// Rejection leaves the previously committed overlay in place.
	doc, present, readErr := store.Read(context.Background())
	require.NoError(t, readErr)
	require.True(t, present)
	assert.JSONEq(t, string(seedDoc(t)), string(doc))
}

func TestImportInvalidSchema(t *testing.T) {
	store := memory.NewStore()
	store.Seed(seedDoc(t))

	// Well-formed JSON that fails the structural shape check.
	_, err := newTestExchange(store).Import(context.Background(), []byte(`{"items":"not-an-array","lastUpdated":"x"}`))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidSchema))

	doc, present, readErr := store.Read(context.Background())
	require.NoError(t, readErr)
	require.True(t, present)
	assert.JSONEq(t, string(seedDoc(t)), string(doc))
}

func TestImportReplacesOverlayWholesale(t *testing.T) {
	store := memory.NewStore()
	existing := catalog.NewAgent(echoInput(), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store.Seed(seedDoc(t, existing))

	incoming := echoInput()
	incoming.Name = "Imported Agent"
	replacement := catalog.Catalog{
		Items:       []catalog.Agent{catalog.NewAgent(incoming, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))},
		LastUpdated: "2024-02-01T00:00:00Z",
	}
	doc, err := json.Marshal(replacement)
	require.NoError(t, err)

	imported, err := newTestExchange(store).Import(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, imported.Items, 1)
	assert.Equal(t, "Imported Agent", imported.Items[0].Name)

	after := readCatalog(t, store)
	assert.Equal(t, replacement, after, "import replaces, never merges")
}

func TestImportPersistFailure(t *testing.T) {
	store := memory.NewStore()
	store.FailWrites(true)

	_, err := newTestExchange(store).Import(context.Background(), seedDoc(t))
	require.Error(t, err)
	assert.True(t, apperrors.IsPersistFailed(err))
}
