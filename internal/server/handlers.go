package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"plycat/pkg/catalog/markup"
	"plycat/pkg/catalog/models"
)

// productView is a Product with its description rendered for embedding.
type productView struct {
	models.Product
	DescriptionHTML template.HTML
}

type indexView struct {
	Title     string
	Products  []productView
	Refreshed time.Time
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	cat, refreshed := s.snapshot()

	view := indexView{Title: s.cfg.Server.Title, Refreshed: refreshed}
	for _, p := range cat.Products {
		if !p.Visible() {
			continue
		}
		view.Products = append(view.Products, productView{
			Product:         p,
			DescriptionHTML: template.HTML(markup.Format(p.Description)),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, view); err != nil {
		s.log.Error("render catalog page", zap.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	lastErr := s.lastErr
	s.mu.RUnlock()

	body := map[string]string{"status": "ok"}
	if lastErr != nil {
		body["last_refresh_error"] = lastErr.Error()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	cat, _ := s.snapshot()
	visible := make([]models.Product, 0, len(cat.Products))
	for _, p := range cat.Products {
		if p.Visible() {
			visible = append(visible, p)
		}
	}
	writeJSON(w, http.StatusOK, visible)
}

func (s *Server) handleAllProducts(w http.ResponseWriter, r *http.Request) {
	cat, _ := s.snapshot()
	products := cat.Products
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleAppendRow(w http.ResponseWriter, r *http.Request) {
	row, ok := decodeRow(w, r)
	if !ok {
		return
	}
	if err := s.admin.AppendRow(r.Context(), row); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.refreshAfterEdit(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	row, ok := decodeRow(w, r)
	if !ok {
		return
	}
	if err := s.admin.UpdateRow(r.Context(), r.PathValue("id"), row); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.refreshAfterEdit(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteRow(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	s.refreshAfterEdit(r)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// refreshAfterEdit re-pulls the sheet so the next page load reflects the
// accepted edit. Failure is non-fatal; the scheduled refresh catches up.
func (s *Server) refreshAfterEdit(r *http.Request) {
	if err := s.Refresh(r.Context()); err != nil {
		s.log.Warn("refresh after edit failed", zap.Error(err))
	}
}

func decodeRow(w http.ResponseWriter, r *http.Request) (models.Record, bool) {
	var row models.Record
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return row, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
