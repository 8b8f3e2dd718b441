// Package ops implements the catalog operations: the persisted catalog store,
// the product form controller and the admin actions binding them together.
package ops

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/model"
	"github.com/jacksmith/menu/internal/storage"
	"go.uber.org/zap"
)

// Renderer receives the full collection after every load and mutation.
// Render is called with the store locked and must not call back into it.
type Renderer interface {
	Render(products []model.Product)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(products []model.Product)

// Render calls f(products).
func (f RendererFunc) Render(products []model.Product) {
	f(products)
}

// Store is the authoritative holder of the product collection and the only
// writer of the durable catalog entry. Every mutation rewrites the whole
// entry before returning.
type Store struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	backend  storage.Backend
	renderer Renderer
	logger   *zap.Logger
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithRenderer registers the renderer called after every mutation.
func WithRenderer(r Renderer) StoreOption {
	return func(s *Store) {
		s.renderer = r
	}
}

// WithLogger sets the logger used for load and persistence warnings.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns an empty store persisting to backend. Call Load to read
// the saved catalog.
func NewStore(backend storage.Backend, opts ...StoreOption) *Store {
	s := &Store{
		catalog: catalog.New(nil),
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the durable entry.
// A missing entry yields an empty catalog. An unreadable or corrupt entry
// also yields an empty catalog, and a *LoadError describing the problem.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = catalog.New(nil)
	defer s.renderLocked()

	data, err := s.backend.Read()
	if errors.Is(err, storage.ErrNotExist) {
		return nil
	}
	if err != nil {
		s.logger.Warn("catalog unreadable, starting empty", zap.Error(err))
		return &LoadError{Err: err}
	}

	cf, err := model.DecodeCatalog(data)
	if err != nil {
		s.logger.Warn("catalog corrupt, starting empty", zap.Error(err))
		return &LoadError{Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}

	s.catalog = catalog.New(cf.Products)
	s.logger.Debug("catalog loaded", zap.Int("products", s.catalog.Len()))
	return nil
}

// Upsert replaces the product with the same ID in place, or appends it,
// then persists and re-renders. Products failing Validate are refused
// without any state change. A *PersistError means the in-memory change
// stands but the durable copy was not updated.
func (s *Store) Upsert(p model.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.catalog.Upsert(p)
	s.logger.Info("product saved", zap.String("id", p.ID), zap.Bool("replaced", replaced))

	err := s.persistLocked("save " + p.ID)
	s.renderLocked()
	return err
}

// Replace overwrites an existing product in place, then persists and
// re-renders. If no product has p's ID, it returns a *catalog.NotFoundError
// and nothing changes; the check and the write happen under one lock so a
// concurrent Remove cannot be undone.
func (s *Store) Replace(p model.Product) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Find(p.ID); !ok {
		return &catalog.NotFoundError{ID: p.ID}
	}
	s.catalog.Upsert(p)
	s.logger.Info("product saved", zap.String("id", p.ID), zap.Bool("replaced", true))

	err := s.persistLocked("save " + p.ID)
	s.renderLocked()
	return err
}

// Remove deletes the product with the given ID. An absent ID is not an
// error: removed is false and the entry is rewritten unchanged.
func (s *Store) Remove(id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed = s.catalog.Remove(id)
	if removed {
		s.logger.Info("product removed", zap.String("id", id))
	}

	err = s.persistLocked("remove " + id)
	s.renderLocked()
	return removed, err
}

// FindByID returns the product with the given ID.
func (s *Store) FindByID(id string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Find(id)
}

// Resolve maps a full ID or unique ID prefix to a product ID.
func (s *Store) Resolve(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Resolve(ref)
}

// List returns the collection in display order.
func (s *Store) List() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Products()
}

// Filter returns products matching query and category in display order.
func (s *Store) Filter(query string, category model.Category) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Filter(query, category)
}

// Refresh re-renders the current collection without mutating it.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderLocked()
}

func (s *Store) persistLocked(op string) error {
	data, err := model.EncodeCatalog(&model.CatalogFile{
		Version:  model.CurrentVersion,
		Products: s.catalog.Products(),
	})
	if err == nil {
		err = s.backend.Write(data)
	}
	if err != nil {
		s.logger.Warn("catalog not persisted", zap.String("op", op), zap.Error(err))
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) renderLocked() {
	if s.renderer != nil {
		s.renderer.Render(s.catalog.Products())
	}
}
