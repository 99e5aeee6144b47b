package trip

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vilkasoft/backoffice/internal"
	"github.com/vilkasoft/backoffice/internal/transport"
	"github.com/vilkasoft/backoffice/pkg/logger"
)

type ServiceAPI interface {
	GenerateLog(dto *GenerateLogDTO) (*GenerateLogResponse, error)
	SaveLog(dto *SaveLogDTO) error
	GetLog(registration string, month, year int) ([]TripLeg, error)
	DeleteLog(registration string, month, year int) error
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

func (h *Handler) GenerateLog(w http.ResponseWriter, r *http.Request) {
	var dto GenerateLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.GenerateLog(&dto)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) SaveLog(w http.ResponseWriter, r *http.Request) {
	var dto SaveLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SaveLog(&dto); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("SaveLog: service error", "registration", dto.Registration, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to save trip log")
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"registration": dto.Registration,
		"month":        dto.Month,
		"year":         dto.Year,
		"legs":         len(dto.Legs),
	})
}

func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	registration, month, year, ok := h.logQueryParams(w, r)
	if !ok {
		return
	}

	legs, err := h.Service.GetLog(registration, month, year)
	if err != nil {
		h.Logger.Error("GetLog: service error", "registration", registration, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load trip log")
		return
	}

	h.WriteJSON(w, http.StatusOK, legs)
}

func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	registration, month, year, ok := h.logQueryParams(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteLog(registration, month, year); err != nil {
		h.Logger.Error("DeleteLog: service error", "registration", registration, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to delete trip log")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeGenerationError maps the generator's precondition failures to
// user-facing warnings; everything else is an internal error.
func (h *Handler) writeGenerationError(w http.ResponseWriter, err error) {
	switch err {
	case ErrVehicleNotFound:
		h.WriteError(w, http.StatusNotFound, "vehicle not found")
	case ErrNoConsumption:
		h.WriteError(w, http.StatusUnprocessableEntity, "vehicle has no fuel consumption rate")
	case ErrInsufficientFuel:
		h.WriteError(w, http.StatusUnprocessableEntity, "insufficient fuel for the selected month")
	case ErrNoDrivers:
		h.WriteError(w, http.StatusUnprocessableEntity, "no drivers available")
	case ErrNoDestinations:
		h.WriteError(w, http.StatusUnprocessableEntity, "no destinations available")
	default:
		if appErr, ok := internal.IsAppError(err); ok {
			appErr.WriteError(w)
			return
		}
		h.Logger.Error("GenerateLog: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to generate trip log")
	}
}

func (h *Handler) logQueryParams(w http.ResponseWriter, r *http.Request) (string, int, int, bool) {
	registration := r.URL.Query().Get("registration")
	if registration == "" {
		h.WriteError(w, http.StatusBadRequest, "registration is required")
		return "", 0, 0, false
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.WriteError(w, http.StatusBadRequest, "invalid month")
		return "", 0, 0, false
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return "", 0, 0, false
	}

	return registration, month, year, true
}
