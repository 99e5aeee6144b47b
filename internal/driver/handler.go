package driver

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
	GetAllDrivers() ([]*Driver, error)
	CreateDriver(dto *DriverDTO) (*Driver, error)
	UpdateDriver(id int64, dto *DriverDTO) (*Driver, error)
	DeleteDriver(id int64) error
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

func (h *Handler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Service.GetAllDrivers()
	if err != nil {
		h.Logger.Error("GetDrivers: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load drivers")
		return
	}
	h.WriteJSON(w, http.StatusOK, drivers)
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var dto DriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.CreateDriver(&dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("CreateDriver: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create driver")
		return
	}

	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto DriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.Service.UpdateDriver(id, &dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "driver not found")
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("UpdateDriver: service error", "driver_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update driver")
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteDriver(id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "driver not found")
			return
		}
		h.Logger.Error("DeleteDriver: service error", "driver_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete driver")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid driver ID")
		return 0, false
	}
	return id, true
}
