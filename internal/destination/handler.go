package destination

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/vilkasoft/backoffice/internal"
	"github.com/vilkasoft/backoffice/internal/transport"
	"github.com/vilkasoft/backoffice/pkg/logger"
)

type ServiceAPI interface {
	GetAllDestinations() ([]*Destination, error)
	CreateDestination(dto *DestinationDTO) (*Destination, error)
	UpdateDestination(id int64, dto *DestinationDTO) (*Destination, error)
	DeleteDestination(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.Service.GetAllDestinations()
	if err != nil {
		h.Logger.Error("GetDestinations: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load destinations")
		return
	}
	h.WriteJSON(w, http.StatusOK, destinations)
}

func (h *Handler) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var dto DestinationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.CreateDestination(&dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("CreateDestination: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create destination")
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto DestinationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.UpdateDestination(id, &dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "destination not found")
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("UpdateDestination: service error", "destination_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update destination")
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteDestination(id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "destination not found")
			return
		}
		h.Logger.Error("DeleteDestination: service error", "destination_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid destination ID")
		return 0, false
	}
	return id, true
}
