package ops

import (
	"errors"
	"fmt"

	"github.com/jacksmith/menu/internal/model"
	"github.com/jacksmith/menu/internal/storage"
)

// IssueType classifies a problem found in the durable catalog.
type IssueType string

const (
	IssueDuplicateID   IssueType = "duplicate_id"
	IssueInvalidPrice  IssueType = "invalid_price"
	IssueInvalidRecord IssueType = "invalid_record"
	IssueLegacyID      IssueType = "legacy_id"
)

// Issue is one integrity problem in the stored catalog.
type Issue struct {
	Type    IssueType
	Index   int // 1-based record position
	ItemID  string
	Message string

	// Fixable issues are removed by Repair.
	Fixable bool
}

func (i Issue) String() string {
	id := i.ItemID
	if id == "" {
		id = fmt.Sprintf("#%d", i.Index)
	}
	return fmt.Sprintf("%s: %s - %s", id, i.Type, i.Message)
}

// Validate inspects the stored catalog without changing it. A missing entry
// has no issues; a document that is not YAML is an error.
func Validate(backend storage.Backend) ([]Issue, error) {
	_, issues, err := inspect(backend)
	return issues, err
}

// Repair drops every record with a fixable issue and writes the rest back,
// so the catalog loads again. It returns the issues it fixed. Nothing is
// written when there is nothing to fix.
func Repair(backend storage.Backend) ([]Issue, error) {
	cf, issues, err := inspect(backend)
	if err != nil {
		return nil, err
	}

	var fixed []Issue
	for _, issue := range issues {
		if issue.Fixable {
			fixed = append(fixed, issue)
		}
	}
	if len(fixed) == 0 {
		return nil, nil
	}

	cf.Version = model.CurrentVersion
	data, err := model.EncodeCatalog(cf)
	if err != nil {
		return nil, err
	}
	if err := backend.Write(data); err != nil {
		return nil, &PersistError{Op: "repair", Err: err}
	}
	return fixed, nil
}

func inspect(backend storage.Backend) (*model.CatalogFile, []Issue, error) {
	data, err := backend.Read()
	if errors.Is(err, storage.ErrNotExist) {
		return &model.CatalogFile{}, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog: %w", err)
	}

	cf, records, err := model.InspectCatalog(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var issues []Issue
	for _, r := range records {
		issues = append(issues, Issue{
			Type:    IssueType(r.Kind),
			Index:   r.Index,
			ItemID:  r.ID,
			Message: r.Err.Error(),
			Fixable: true,
		})
	}

	// IDs from older catalogs load fine but are not ULIDs.
	for _, p := range cf.Products {
		if _, err := model.ParseID(p.ID); err != nil {
			issues = append(issues, Issue{
				Type:    IssueLegacyID,
				ItemID:  p.ID,
				Message: "id is not a ULID; kept as is",
			})
		}
	}
	return cf, issues, nil
}
