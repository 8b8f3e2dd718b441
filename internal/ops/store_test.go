package ops

import (
	"errors"
	"testing"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/model"
	"github.com/jacksmith/menu/internal/storage"
	"github.com/shopspring/decimal"
)

const imageA = "data:image/png;base64,QUFBQQ=="

func testProduct(id, name string) model.Product {
	return model.Product{
		ID:          id,
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString("5.99"),
		Category:    model.CategoryBurgers,
		Image:       imageA,
	}
}

// recordingRenderer keeps every rendered collection.
type recordingRenderer struct {
	renders [][]model.Product
}

func (r *recordingRenderer) Render(products []model.Product) {
	r.renders = append(r.renders, products)
}

func (r *recordingRenderer) last() []model.Product {
	if len(r.renders) == 0 {
		return nil
	}
	return r.renders[len(r.renders)-1]
}

// assertDurableMatches checks that the backend holds exactly the encoding of
// the in-memory collection.
func assertDurableMatches(t *testing.T, s *Store, backend storage.Backend) {
	t.Helper()

	want, err := model.EncodeCatalog(&model.CatalogFile{Version: model.CurrentVersion, Products: s.List()})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := backend.Read()
	if err != nil {
		t.Fatalf("read backend: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("durable copy differs from memory:\n got: %s\nwant: %s", got, want)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	r := &recordingRenderer{}
	s := NewStore(storage.NewMemory(), WithRenderer(r))

	if err := s.Load(); err != nil {
		t.Fatalf("Load on missing entry: %v", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(s.List()))
	}
	if len(r.renders) != 1 {
		t.Errorf("expected one render after load, got %d", len(r.renders))
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	backend := storage.NewMemory()
	backend.Write([]byte("products: [ {id: "))

	r := &recordingRenderer{}
	s := NewStore(backend, WithRenderer(r))

	err := s.Load()
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
	if len(s.List()) != 0 {
		t.Errorf("corrupt catalog should load as empty")
	}
	if len(r.renders) != 1 || len(r.last()) != 0 {
		t.Errorf("expected an empty render, got %v", r.renders)
	}
}

func TestStoreLoadUnreadable(t *testing.T) {
	s := NewStore(failingReader{storage.NewMemory()})
	err := s.Load()
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if errors.Is(err, ErrCorrupt) {
		t.Errorf("read failure should not be reported as corruption")
	}
}

type failingReader struct{ *storage.Memory }

func (failingReader) Read() ([]byte, error) { return nil, errors.New("permission denied") }

func TestStoreLoadRoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	first := NewStore(backend)
	first.Load()
	first.Upsert(testProduct("A", "Burger"))
	first.Upsert(testProduct("B", "Fries"))

	second := NewStore(backend)
	if err := second.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := second.List()
	if len(got) != 2 || got[0].ID != "A" || got[1].ID != "B" {
		t.Fatalf("unexpected products after reload: %+v", got)
	}
	if !got[0].Price.Equal(decimal.RequireFromString("5.99")) || got[0].Image != imageA {
		t.Errorf("fields lost in round trip: %+v", got[0])
	}
}

func TestStoreUpsert(t *testing.T) {
	backend := storage.NewMemory()
	r := &recordingRenderer{}
	s := NewStore(backend, WithRenderer(r))
	s.Load()

	// New ids append at the end.
	for _, p := range []model.Product{testProduct("A", "Burger"), testProduct("B", "Fries")} {
		before := len(s.List())
		if err := s.Upsert(p); err != nil {
			t.Fatalf("Upsert(%s): %v", p.ID, err)
		}
		list := s.List()
		if len(list) != before+1 || list[len(list)-1].ID != p.ID {
			t.Fatalf("expected %s appended, got %+v", p.ID, list)
		}
		assertDurableMatches(t, s, backend)
	}

	// Existing ids are replaced in place.
	updated := testProduct("A", "Double Burger")
	if err := s.Upsert(updated); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != "A" || list[0].Name != "Double Burger" {
		t.Fatalf("expected in-place replacement, got %+v", list)
	}
	assertDurableMatches(t, s, backend)

	if len(r.renders) != 4 {
		t.Errorf("expected a render per load and mutation, got %d", len(r.renders))
	}
	if r.last()[0].Name != "Double Burger" {
		t.Errorf("last render is stale: %+v", r.last())
	}
}

func TestStoreUpsertRejectsIncomplete(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)
	s.Load()

	p := testProduct("A", "Burger")
	p.Image = ""
	if err := s.Upsert(p); err == nil {
		t.Fatal("expected error for product without image")
	}
	if len(s.List()) != 0 {
		t.Error("invalid product must not enter the catalog")
	}
	if backend.Writes() != 0 {
		t.Error("invalid product must not be persisted")
	}
}

func TestStoreReplace(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)
	s.Load()
	s.Upsert(testProduct("A", "Burger"))
	s.Upsert(testProduct("B", "Fries"))

	if err := s.Replace(testProduct("A", "Double Burger")); err != nil {
		t.Fatalf("Replace(A): %v", err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != "A" || list[0].Name != "Double Burger" {
		t.Fatalf("expected in-place replacement, got %+v", list)
	}
	assertDurableMatches(t, s, backend)

	// A removed id is not brought back.
	s.Remove("A")
	writes := backend.Writes()
	err := s.Replace(testProduct("A", "Zombie Burger"))
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "A" {
		t.Fatalf("Replace of removed id = %v; want NotFoundError", err)
	}
	if list := s.List(); len(list) != 1 || list[0].ID != "B" {
		t.Fatalf("unexpected collection: %+v", list)
	}
	if backend.Writes() != writes {
		t.Error("failed replace must not be persisted")
	}
}

func TestStoreRemove(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)
	s.Load()
	s.Upsert(testProduct("A", "Burger"))
	s.Upsert(testProduct("B", "Fries"))

	removed, err := s.Remove("A")
	if err != nil || !removed {
		t.Fatalf("Remove(A) = %v, %v", removed, err)
	}
	assertDurableMatches(t, s, backend)

	// Absent id: no error, collection unchanged.
	removed, err = s.Remove("A")
	if err != nil || removed {
		t.Fatalf("Remove of absent id = %v, %v; want false, nil", removed, err)
	}
	if list := s.List(); len(list) != 1 || list[0].ID != "B" {
		t.Fatalf("unexpected collection: %+v", list)
	}
	assertDurableMatches(t, s, backend)
}

func TestStorePersistFailureKeepsMemory(t *testing.T) {
	backend := storage.NewMemory()
	s := NewStore(backend)
	s.Load()
	s.Upsert(testProduct("A", "Burger"))

	backend.FailWrites(errors.New("quota exceeded"))

	err := s.Upsert(testProduct("B", "Fries"))
	var perr *PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistError, got %v", err)
	}
	if len(s.List()) != 2 {
		t.Errorf("in-memory effect should stand after a failed write")
	}

	_, err = s.Remove("A")
	if !IsPersistError(err) {
		t.Fatalf("expected PersistError from Remove, got %v", err)
	}
	if list := s.List(); len(list) != 1 || list[0].ID != "B" {
		t.Errorf("unexpected collection: %+v", list)
	}

	// Once storage recovers the next write brings the durable copy in sync.
	backend.FailWrites(nil)
	if err := s.Upsert(testProduct("C", "Cola")); err != nil {
		t.Fatalf("Upsert after recovery: %v", err)
	}
	assertDurableMatches(t, s, backend)
}

func TestStoreResolveAndFilter(t *testing.T) {
	s := NewStore(storage.NewMemory())
	s.Load()
	s.Upsert(testProduct("01ABC", "Classic Burger"))
	s.Upsert(testProduct("01XYZ", "Bacon Burger"))

	id, err := s.Resolve("01a")
	if err != nil || id != "01ABC" {
		t.Errorf("Resolve(01a) = %q, %v", id, err)
	}
	if got := s.Filter("bacon", ""); len(got) != 1 || got[0].ID != "01XYZ" {
		t.Errorf("Filter(bacon) = %+v", got)
	}
}
