package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/jacksmith/menu/internal/render"
)

const listPath = "/admin/products"

// multipartOverhead is allowed on top of the image for the text fields.
const multipartOverhead = 1 << 20

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) menu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	s.page(w, http.StatusOK, func(buf io.Writer) error {
		return s.html.Menu(buf, s.store.Filter(q, ""), q)
	})
}

// list shows the cached product list with an empty form. Leaving an edit
// by navigating here abandons it.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.form.Clear()
	s.renderAdmin(w, http.StatusOK, render.AdminPage{Form: s.formView()})
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.admin(nil).Edit(id) {
		s.logger.Debug("edit of unknown product", zap.String("id", id))
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	s.renderAdmin(w, http.StatusOK, render.AdminPage{Form: s.formView()})
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxImageBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.renderAdmin(w, http.StatusRequestEntityTooLarge, render.AdminPage{
				Form:   s.formView(),
				Errors: []string{"the upload is too large"},
			})
			return
		}
		if !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
		// Plain url-encoded forms are accepted without an image.
		if err := r.ParseForm(); err != nil {
			http.Error(w, "malformed form", http.StatusBadRequest)
			return
		}
	}

	// The hidden id field says which record this form was showing. Sync
	// the shared form to it so two browser tabs cannot cross-save.
	id := r.FormValue("id")
	switch {
	case id != "" && s.form.EditingID() != id:
		if !s.admin(nil).Edit(id) {
			http.Redirect(w, r, listPath, http.StatusSeeOther)
			return
		}
	case id == "" && s.form.Mode() == ops.ModeEditing:
		s.form.Clear()
	}

	values := ops.FormValues{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
	}

	var upload *ops.Upload
	if r.MultipartForm != nil {
		file, header, err := r.FormFile("image")
		switch {
		case err == nil && header.Size > 0:
			defer file.Close()
			upload = &ops.Upload{Name: header.Filename, Body: file}
		case err == nil:
			file.Close()
		case !errors.Is(err, http.ErrMissingFile):
			http.Error(w, "malformed upload", http.StatusBadRequest)
			return
		}
	}

	p, err := s.form.Submit(r.Context(), values, upload)

	var (
		verr *ops.ValidationError
		derr *ops.DecodeError
		nf   *catalog.NotFoundError
	)
	switch {
	case err == nil:
		s.logger.Debug("submission accepted", zap.String("id", p.ID))
		http.Redirect(w, r, listPath, http.StatusSeeOther)
	case ops.IsPersistError(err):
		s.renderAdmin(w, http.StatusOK, render.AdminPage{
			Form:    s.formView(),
			Warning: err.Error(),
		})
	case errors.As(err, &verr):
		s.renderAdmin(w, http.StatusUnprocessableEntity, render.AdminPage{
			Form:   s.submittedView(id, values),
			Errors: fieldMessages(verr),
		})
	case errors.As(err, &derr):
		s.renderAdmin(w, http.StatusUnprocessableEntity, render.AdminPage{
			Form:   s.submittedView(id, values),
			Errors: []string{derr.Error()},
		})
	case errors.As(err, &nf):
		http.Redirect(w, r, listPath, http.StatusSeeOther)
	case errors.Is(err, ops.ErrStaleSubmission):
		s.renderAdmin(w, http.StatusConflict, render.AdminPage{
			Form:   s.formView(),
			Errors: []string{"the form changed while the image was processing; submit again"},
		})
	default:
		s.logger.Error("saving product", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) confirmDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.FindByID(chi.URLParam(r, "id"))
	if !ok {
		s.store.Refresh()
		http.Redirect(w, r, listPath, http.StatusSeeOther)
		return
	}
	s.page(w, http.StatusOK, func(buf io.Writer) error {
		return s.html.Confirm(buf, p)
	})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	answer := r.FormValue("confirm") == "yes"

	removed, err := s.admin(ops.ConfirmFunc(func(context.Context, string) (bool, error) {
		return answer, nil
	})).Delete(r.Context(), id)

	if ops.IsPersistError(err) {
		s.renderAdmin(w, http.StatusOK, render.AdminPage{Form: s.formView(), Warning: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("deleting product", zap.String("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if removed {
		s.logger.Info("product deleted", zap.String("id", id))
	}
	http.Redirect(w, r, listPath, http.StatusSeeOther)
}

// admin binds the store and the shared form to a confirmer for one request.
func (s *Server) admin(confirm ops.Confirmer) *ops.Admin {
	return ops.NewAdmin(s.store, s.form, confirm)
}

func (s *Server) formView() render.FormView {
	v := s.form.Values()
	return render.FormView{
		ID:          s.form.EditingID(),
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Category:    v.Category,
		Preview:     s.form.Preview(),
		SubmitLabel: s.form.SubmitLabel(),
	}
}

// submittedView echoes a rejected submission back into the form.
func (s *Server) submittedView(id string, values ops.FormValues) render.FormView {
	v := s.formView()
	v.ID = id
	v.Name = values.Name
	v.Description = values.Description
	v.Price = values.Price
	v.Category = values.Category
	return v
}

func fieldMessages(verr *ops.ValidationError) []string {
	out := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		out[i] = f.Field + ": " + f.Message
	}
	return out
}

func (s *Server) renderAdmin(w http.ResponseWriter, status int, page render.AdminPage) {
	s.page(w, status, func(buf io.Writer) error {
		return s.html.Admin(buf, page)
	})
}

// page renders into memory first so a template failure turns into a clean
// 500 instead of a truncated page.
func (s *Server) page(w http.ResponseWriter, status int, fill func(io.Writer) error) {
	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
