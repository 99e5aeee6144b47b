package vehicle

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
	GetAllVehicles() ([]*Vehicle, error)
	GetVehicle(id int64) (*Vehicle, error)
	CreateVehicle(dto *CreateVehicleDTO) (*Vehicle, error)
	UpdateVehicle(id int64, dto *UpdateVehicleDTO) (*Vehicle, error)
	DeleteVehicle(id int64) error
	AddFuelRecord(vehicleID int64, dto *CreateFuelRecordDTO) (*FuelRecord, error)
	GetFuelRecords(vehicleID int64) ([]FuelRecord, error)
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

func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Service.GetAllVehicles()
	if err != nil {
		h.Logger.Error("GetVehicles: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load vehicles")
		return
	}
	h.WriteJSON(w, http.StatusOK, vehicles)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	v, err := h.Service.GetVehicle(id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		h.Logger.Error("GetVehicle: service error", "vehicle_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load vehicle")
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var dto CreateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.CreateVehicle(&dto)
	if err != nil {
		if err == ErrRegistrationTaken {
			h.WriteError(w, http.StatusConflict, "registration already exists")
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("CreateVehicle: service error", "registration", dto.Registration, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create vehicle")
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto UpdateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.UpdateVehicle(id, &dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		h.Logger.Error("UpdateVehicle: service error", "vehicle_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update vehicle")
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteVehicle(id); err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		h.Logger.Error("DeleteVehicle: service error", "vehicle_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddFuelRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var dto CreateFuelRecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.AddFuelRecord(id, &dto)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("AddFuelRecord: service error", "vehicle_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to add fuel record")
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) GetFuelRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	records, err := h.Service.GetFuelRecords(id)
	if err != nil {
		if err == ErrNotFound {
			h.WriteError(w, http.StatusNotFound, "vehicle not found")
			return
		}
		h.Logger.Error("GetFuelRecords: service error", "vehicle_id", id, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load fuel records")
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle ID")
		return 0, false
	}
	return id, true
}
