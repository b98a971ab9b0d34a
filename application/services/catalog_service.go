package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"agentdir/application/ports"
	"agentdir/domain/catalog"
	apperrors "agentdir/pkg/errors"
	"agentdir/pkg/observability"
	"agentdir/pkg/utils"

	"go.uber.org/zap"
)

// errSeedShape is the cause attached when the seed fetches but is not
// structurally a catalog document.
var errSeedShape = errors.New("seed dataset failed structural check")

// CatalogService is the mutation engine over the agent catalog. Every
// operation is a read-modify-write cycle: it re-resolves the current
// authoritative state (overlay first, seed second), applies the change in
// memory and persists the complete catalog back into the overlay slot.
//
// Mutations are serialized by a mutex: each one rewrites the whole catalog,
// so overlapping writers would silently discard each other's changes. A
// cross-process deployment would need a compare-and-swap on the catalog
// lastUpdated instead; a single service instance does not.
type CatalogService struct {
	store   ports.OverlayStore
	seed    ports.SeedSource
	logger  *zap.Logger
	metrics *observability.Collector

	mu  sync.Mutex
	now func() time.Time
}

// NewCatalogService creates a catalog service backed by the given overlay
// store and seed source.
func NewCatalogService(store ports.OverlayStore, seed ports.SeedSource, metrics *observability.Collector, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		store:   store,
		seed:    seed,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// WithClock overrides the service clock. Timestamps and generated id suffixes
// both derive from it.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

// Resolve returns the current authoritative catalog: the overlay if it is
// populated and structurally valid, otherwise the seed dataset. A populated
// but malformed overlay falls through to the seed rather than failing.
func (s *CatalogService) Resolve(ctx context.Context) (catalog.Catalog, error) {
	doc, present, err := s.store.Read(ctx)
	if err != nil {
		s.logger.Warn("overlay read failed, falling back to seed", zap.Error(err))
	} else if present {
		if c, ok := decodeCatalog(doc); ok {
			return c, nil
		}
		s.logger.Warn("overlay content failed structural check, falling back to seed")
	}

	seedDoc, err := s.seed.Fetch(ctx)
	if err != nil {
		return catalog.Catalog{}, apperrors.NewDataUnavailableError(err)
	}
	c, ok := decodeCatalog(seedDoc)
	if !ok {
		return catalog.Catalog{}, apperrors.NewDataUnavailableError(errSeedShape)
	}
	return c, nil
}

// Create validates the input, assembles a new agent with a generated id and
// derived logo, appends it and persists the catalog. Returns the new item
// sequence.
func (s *CatalogService) Create(ctx context.Context, input catalog.AgentInput) ([]catalog.Agent, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := s.current(ctx, now)

	agent := catalog.NewAgent(input, now)
	// The base-36 timestamp suffix makes collisions practically unreachable,
	// but a collision must reject rather than silently overwrite.
	if c.ContainsID(agent.ID) {
		return nil, apperrors.NewDuplicateIDError(agent.ID)
	}

	c.Items = append(c.Items, agent)
	c.LastUpdated = utils.FormatRFC3339(now)

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("agent created", zap.String("id", agent.ID), zap.String("name", agent.Name))
	if s.metrics != nil {
		s.metrics.AgentsCreated.Inc()
	}
	return c.Items, nil
}

// Update merges the input over the agent with the given id, preserving its id
// and logo, and persists the catalog. Returns the new item sequence.
func (s *CatalogService) Update(ctx context.Context, id string, input catalog.AgentInput) ([]catalog.Agent, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := s.current(ctx, now)

	idx := c.FindIndex(id)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("agent")
	}

	c.Items[idx] = input.Apply(c.Items[idx], now)
	c.LastUpdated = utils.FormatRFC3339(now)

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("agent updated", zap.String("id", id))
	if s.metrics != nil {
		s.metrics.AgentsUpdated.Inc()
	}
	return c.Items, nil
}

// Delete removes the agent with the given id and persists the catalog.
// Returns the new item sequence.
func (s *CatalogService) Delete(ctx context.Context, id string) ([]catalog.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := s.current(ctx, now)

	remaining := make([]catalog.Agent, 0, len(c.Items))
	for _, a := range c.Items {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}
	if len(remaining) == len(c.Items) {
		return nil, apperrors.NewNotFoundError("agent")
	}

	c.Items = remaining
	c.LastUpdated = utils.FormatRFC3339(now)

	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("agent deleted", zap.String("id", id))
	if s.metrics != nil {
		s.metrics.AgentsDeleted.Inc()
	}
	return c.Items, nil
}

// current is the mutation-path variant of Resolve: when neither source is
// loadable it degrades to an empty catalog so that mutations never fail
// solely because no data source was available.
func (s *CatalogService) current(ctx context.Context, now time.Time) catalog.Catalog {
	c, err := s.Resolve(ctx)
	if err != nil {
		s.logger.Warn("no data source available, starting from empty catalog", zap.Error(err))
		return catalog.Catalog{Items: []catalog.Agent{}, LastUpdated: utils.FormatRFC3339(now)}
	}
	return c
}

// persist serializes the full catalog and replaces the overlay slot with the
// snapshot. The write happens against the serialized bytes, so a rejected
// write leaves the previously committed overlay untouched.
func (s *CatalogService) persist(ctx context.Context, c catalog.Catalog) error {
	err := persistCatalog(ctx, s.store, c)
	if s.metrics != nil {
		if err != nil {
			s.metrics.OverlayWriteErrors.Inc()
		} else {
			s.metrics.OverlayWrites.Inc()
		}
	}
	return err
}

func persistCatalog(ctx context.Context, store ports.OverlayStore, c catalog.Catalog) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return apperrors.NewPersistFailedError(err)
	}
	if err := store.WriteAll(ctx, doc); err != nil {
		return apperrors.NewPersistFailedError(err)
	}
	return nil
}

// decodeCatalog applies the structural shape check to a raw document and, if
// it passes, decodes it into a typed catalog.
func decodeCatalog(doc []byte) (catalog.Catalog, bool) {
	var raw any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return catalog.Catalog{}, false
	}
	if !catalog.ValidCatalogShape(raw) {
		return catalog.Catalog{}, false
	}
	var c catalog.Catalog
	if err := json.Unmarshal(doc, &c); err != nil {
		return catalog.Catalog{}, false
	}
	return c, true
}
