package services

import (
	"context"
	"encoding/json"

	"agentdir/application/ports"
	"agentdir/domain/catalog"
	apperrors "agentdir/pkg/errors"
	"agentdir/pkg/observability"

	"go.uber.org/zap"
)

// ExportFileName is the fixed download name for exported catalogs.
const ExportFileName = "navigation.json"

// ExchangeService handles file-based export and import of the whole catalog.
// Export is pure; import is a wholesale replace of the overlay, never a merge.
type ExchangeService struct {
	store   ports.OverlayStore
	logger  *zap.Logger
	metrics *observability.Collector
}

// NewExchangeService creates an exchange service over the given overlay store.
func NewExchangeService(store ports.OverlayStore, metrics *observability.Collector, logger *zap.Logger) *ExchangeService {
	return &ExchangeService{store: store, metrics: metrics, logger: logger}
}

// Export serializes the catalog as pretty-printed JSON. It never fails on a
// catalog that is valid in memory.
func (s *ExchangeService) Export(c catalog.Catalog) ([]byte, error) {
	doc, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to serialize catalog").WithCause(err)
	}
	if s.metrics != nil {
		s.metrics.CatalogExports.Inc()
	}
	return doc, nil
}

// Import parses and structurally validates an uploaded document, then makes it
// the new authoritative state by replacing the overlay. Pre-existing overlay
// content is fully discarded; on any failure nothing is applied.
func (s *ExchangeService) Import(ctx context.Context, data []byte) (catalog.Catalog, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return catalog.Catalog{}, apperrors.NewMalformedFileError(err)
	}
	if !catalog.ValidCatalogShape(raw) {
		return catalog.Catalog{}, apperrors.NewInvalidSchemaError()
	}

	var c catalog.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return catalog.Catalog{}, apperrors.NewInvalidSchemaError().WithCause(err)
	}

	if err := persistCatalog(ctx, s.store, c); err != nil {
		if s.metrics != nil {
			s.metrics.OverlayWriteErrors.Inc()
		}
		return catalog.Catalog{}, err
	}
	if s.metrics != nil {
		s.metrics.OverlayWrites.Inc()
	}

	s.logger.Info("catalog imported", zap.Int("items", len(c.Items)))
	if s.metrics != nil {
		s.metrics.CatalogImports.Inc()
	}
	return c, nil
}
