package ops

import (
	"context"
	"fmt"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f(ctx, prompt).
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmed answers yes without asking. Use it when the confirmation step
// already happened elsewhere, such as a --yes flag or a confirmation page.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// Admin binds the per-item edit and delete triggers of a rendered list to
// the form and the store.
type Admin struct {
	Store   *Store
	Form    *Form
	Confirm Confirmer
}

// NewAdmin returns an Admin. A nil confirmer refuses every deletion.
func NewAdmin(store *Store, form *Form, confirm Confirmer) *Admin {
	if confirm == nil {
		confirm = ConfirmFunc(func(context.Context, string) (bool, error) {
			return false, nil
		})
	}
	return &Admin{Store: store, Form: form, Confirm: confirm}
}

// Edit is the "edit" trigger: it loads the product into the form.
// Unknown IDs are a no-op that refreshes the list.
func (a *Admin) Edit(id string) bool {
	if a.Form.BeginEdit(id) {
		return true
	}
	a.Store.Refresh()
	return false
}

// Delete is the "delete" trigger. The product is removed only after the
// confirmer answers yes. If the form was editing it, the form is cleared.
// Unknown IDs are a no-op that refreshes the list.
func (a *Admin) Delete(ctx context.Context, id string) (bool, error) {
	p, ok := a.Store.FindByID(id)
	if !ok {
		a.Store.Refresh()
		return false, nil
	}

	yes, err := a.Confirm.Confirm(ctx, fmt.Sprintf("Delete %q (%s)?", p.Name, p.ID))
	if err != nil {
		return false, err
	}
	if !yes {
		return false, nil
	}

	removed, err := a.Store.Remove(id)
	if a.Form != nil && a.Form.EditingID() == id {
		a.Form.Clear()
	}
	return removed, err
}
