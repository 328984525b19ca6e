package services

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matheustorresii/vitrine-sorocabana/internal/models"
)

// Manager defines the behaviors the handler requires from the store.
type Manager interface {
	Services() []models.Service
	Get(id int) (models.Service, bool)
	Add(ctx context.Context, fields models.ServiceFields) (models.Service, error)
	Update(ctx context.Context, id int, patch models.ServicePatch) (models.Service, bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Handler provides the JSON API over the services directory.
type Handler struct {
	store Manager
}

// NewHandler creates a new services Handler.
func NewHandler(store Manager) *Handler {
	return &Handler{store: store}
}

type createServiceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
}

type apiError struct {
	Message string `json:"message"`
}

// ServicesCollection handles /api/servicos for GET (list) and POST (create)
func (h *Handler) ServicesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.store.Services())
		return

	case http.MethodPost:
		var req createServiceRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Corpo da requisição inválido."})
			return
		}
		fields := models.ServiceFields(req)
		if !fields.Complete() {
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Preencha todos os campos!"})
			return
		}
		svc, err := h.store.Add(r.Context(), fields)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiError{Message: "Não foi possível salvar o serviço."})
			return
		}
		writeJSON(w, http.StatusCreated, svc)
		return

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
}

// ServicesItem handles /api/servicos/{id} for GET, PUT (partial merge), DELETE
func (h *Handler) ServicesItem(w http.ResponseWriter, r *http.Request) {
	id, ok := models.ParseServiceID(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Message: "Serviço não encontrado."})
		return
	}

	switch r.Method {
	case http.MethodGet:
		svc, ok := h.store.Get(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, apiError{Message: "Serviço não encontrado."})
			return
		}
		writeJSON(w, http.StatusOK, svc)
		return

	case http.MethodPut, http.MethodPatch:
		var patch models.ServicePatch
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&patch); err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Corpo da requisição inválido."})
			return
		}
		if blank(patch.Title) || blank(patch.Description) || blank(patch.Category) {
			writeJSON(w, http.StatusBadRequest, apiError{Message: "Preencha todos os campos!"})
			return
		}
		svc, found, err := h.store.Update(r.Context(), id, patch)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiError{Message: "Não foi possível salvar o serviço."})
			return
		}
		if !found {
			writeJSON(w, http.StatusNotFound, apiError{Message: "Serviço não encontrado."})
			return
		}
		writeJSON(w, http.StatusOK, svc)
		return

	case http.MethodDelete:
		found, err := h.store.Delete(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, apiError{Message: "Não foi possível excluir o serviço."})
			return
		}
		if !found {
			writeJSON(w, http.StatusNotFound, apiError{Message: "Serviço não encontrado."})
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return

	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
}

// blank reports a field that is present but empty.
func blank(v *string) bool {
	return v != nil && *v == ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
