package ops

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/model"
	"github.com/shopspring/decimal"
)

// Mode is the state of a Form.
type Mode int

const (
	// ModeCreating means Submit appends a new product.
	ModeCreating Mode = iota
	// ModeEditing means Submit replaces the product being edited.
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "creating"
}

// Submit button labels per mode.
const (
	LabelCreate = "Save product"
	LabelUpdate = "Update product"
)

// FormValues are the raw text fields of the product form.
type FormValues struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// Upload is a user-selected image file.
type Upload struct {
	Name string
	Body io.Reader
}

// ImageDecoder turns an uploaded file into an embeddable data URI.
type ImageDecoder interface {
	Decode(ctx context.Context, name string, r io.Reader) (string, error)
}

// Form translates form input into products saved through a Store.
// It is either creating a new product or editing an existing one.
type Form struct {
	mu            sync.Mutex
	store         *Store
	decoder       ImageDecoder
	newID         func() string
	decodeTimeout time.Duration

	values    FormValues
	preview   string
	editingID string
	// generation advances whenever a submission, edit or clear starts;
	// a decode finishing under an older generation is discarded.
	generation uint64
}

// FormOption customises a Form.
type FormOption func(*Form)

// WithIDGenerator overrides how new product IDs are generated.
func WithIDGenerator(gen func() string) FormOption {
	return func(f *Form) {
		if gen != nil {
			f.newID = gen
		}
	}
}

// WithDecodeTimeout bounds each image decode. Zero means no timeout.
func WithDecodeTimeout(d time.Duration) FormOption {
	return func(f *Form) {
		f.decodeTimeout = d
	}
}

// NewForm returns a form in create mode.
func NewForm(store *Store, decoder ImageDecoder, opts ...FormOption) *Form {
	f := &Form{
		store:   store,
		decoder: decoder,
		newID:   model.NewID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mode returns the current mode.
func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editingID != "" {
		return ModeEditing
	}
	return ModeCreating
}

// EditingID returns the ID being edited, or "" in create mode.
func (f *Form) EditingID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

// Values returns the current field values.
func (f *Form) Values() FormValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Preview returns the image shown next to the form, or "".
func (f *Form) Preview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.preview
}

// SubmitLabel returns the label of the primary action for the current mode.
func (f *Form) SubmitLabel() string {
	if f.Mode() == ModeEditing {
		return LabelUpdate
	}
	return LabelCreate
}

// BeginEdit fills the form from the product with the given ID and switches
// to edit mode. An unknown ID leaves the form untouched and returns false.
func (f *Form) BeginEdit(id string) bool {
	p, ok := f.store.FindByID(id)
	if !ok {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.generation++
	f.editingID = p.ID
	f.values = FormValues{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Category:    string(p.Category),
	}
	f.preview = p.Image
	return true
}

// Clear resets the form to create mode with empty fields. Calling it
// repeatedly has the same effect as calling it once.
func (f *Form) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.values = FormValues{}
	f.preview = ""
	f.editingID = ""
}

// Submit validates values, resolves the image and saves the product.
//
// With an upload the image is decoded asynchronously; without one, edit
// mode keeps the prior image and create mode is rejected. On success the
// form returns to create mode. A returned *PersistError still counts as
// success: the product is in the store but not on disk.
func (f *Form) Submit(ctx context.Context, values FormValues, upload *Upload) (model.Product, error) {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	editingID := f.editingID
	f.mu.Unlock()

	fields, verr := validateValues(values)
	if upload == nil && editingID == "" {
		verr.add("image", "an image is required for a new product")
	}
	if len(verr.Fields) > 0 {
		return model.Product{}, verr
	}

	var image string
	if upload != nil {
		uri, err := f.decode(ctx, upload)
		if err != nil {
			return model.Product{}, err
		}
		image = uri
	} else {
		prior, ok := f.store.FindByID(editingID)
		if !ok {
			f.abandonEdit(gen)
			return model.Product{}, &catalog.NotFoundError{ID: editingID}
		}
		image = prior.Image
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.generation != gen {
		return model.Product{}, ErrStaleSubmission
	}

	id := editingID
	if id == "" {
		id = f.newID()
	}

	p := model.Product{
		ID:          id,
		Name:        fields.name,
		Description: fields.description,
		Price:       fields.price,
		Category:    fields.category,
		Image:       image,
	}

	var err error
	if editingID == "" {
		err = f.store.Upsert(p)
	} else {
		// Refuses an ID that was deleted while the image was decoding.
		err = f.store.Replace(p)
	}
	var nf *catalog.NotFoundError
	if errors.As(err, &nf) {
		f.resetLocked()
		return model.Product{}, err
	}
	if err != nil && !IsPersistError(err) {
		return model.Product{}, err
	}
	f.resetLocked()
	return p, err
}

// abandonEdit returns to create mode if no newer operation started.
func (f *Form) abandonEdit(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation == gen {
		f.resetLocked()
	}
}

// decode runs the decoder in its own goroutine so that cancellation of
// ctx returns immediately even if the decoder does not honor it.
func (f *Form) decode(ctx context.Context, upload *Upload) (string, error) {
	if f.decodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.decodeTimeout)
		defer cancel()
	}

	type result struct {
		uri string
		err error
	}
	done := make(chan result, 1)
	go func() {
		uri, err := f.decoder.Decode(ctx, upload.Name, upload.Body)
		done <- result{uri: uri, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", &DecodeError{Name: upload.Name, Err: ctx.Err()}
	case r := <-done:
		if r.err != nil {
			return "", &DecodeError{Name: upload.Name, Err: r.err}
		}
		if !model.IsImageDataURI(r.uri) {
			return "", &DecodeError{Name: upload.Name, Err: errors.New("decoder returned no image data")}
		}
		return r.uri, nil
	}
}

type validFields struct {
	name        string
	description string
	price       decimal.Decimal
	category    model.Category
}

// validateValues checks every field and collects all failures.
func validateValues(v FormValues) (validFields, *ValidationError) {
	verr := &ValidationError{}
	var out validFields

	out.name = strings.TrimSpace(v.Name)
	if out.name == "" {
		verr.add("name", "must not be empty")
	}

	out.description = strings.TrimSpace(v.Description)
	if out.description == "" {
		verr.add("description", "must not be empty")
	}

	priceText := strings.TrimSpace(v.Price)
	if priceText == "" {
		verr.add("price", "must not be empty")
	} else if price, err := model.ParsePrice(priceText); err != nil {
		verr.add("price", err.Error())
	} else {
		out.price = price
	}

	if strings.TrimSpace(v.Category) == "" {
		verr.add("category", "must be selected")
	} else if c, err := model.ParseCategory(v.Category); err != nil {
		verr.add("category", "must be one of "+model.CategoryList())
	} else {
		out.category = c
	}

	return out, verr
}
