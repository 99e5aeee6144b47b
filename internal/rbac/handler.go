package rbac

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/vilkasoft/backoffice/internal/auth"
	"github.com/vilkasoft/backoffice/internal/transport"
	"github.com/vilkasoft/backoffice/pkg/logger"
)

type ServiceAPI interface {
	GetAllRoles() ([]RoleResponse, error)
	GetAllPermissions() ([]PermissionResponse, error)
	GetRolePermissions(roleID int64) ([]PermissionResponse, error)
	CreateRole(dto *CreateRoleDTO, grantedBy *int64) (*RoleResponse, error)
	UpdateRole(roleID int64, dto *UpdateRoleDTO, grantedBy *int64) (*RoleResponse, error)
	DeleteRole(roleID int64) error
	HasPermission(roleName, required string) (bool, error)
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

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.GetAllRoles()
	if err != nil {
		h.Logger.Error("GetRoles: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load roles")
		return
	}
	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.Service.GetAllPermissions()
	if err != nil {
		h.Logger.Error("GetPermissions: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load permissions")
		return
	}
	h.WriteJSON(w, http.StatusOK, perms)
}

func (h *Handler) GetRolePermissions(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	perms, err := h.Service.GetRolePermissions(roleID)
	if err != nil {
		if err == ErrRoleNotFound {
			h.WriteError(w, http.StatusNotFound, "role not found")
			return
		}
		h.Logger.Error("GetRolePermissions: service error", "role_id", roleID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to load role permissions")
		return
	}
	h.WriteJSON(w, http.StatusOK, perms)
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.CreateRole(&dto, grantedByFromContext(r))
	if err != nil {
		switch err.(type) {
		case ValidationError:
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err == ErrRoleNameTaken {
			h.WriteError(w, http.StatusConflict, "role name already exists")
			return
		}
		h.Logger.Error("CreateRole: service error", "name", dto.Name, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create role")
		return
	}

	h.Logger.Info("CreateRole: role created", "role_id", role.ID, "name", role.Name)
	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.UpdateRole(roleID, &dto, grantedByFromContext(r))
	if err != nil {
		switch err.(type) {
		case ValidationError:
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err == ErrRoleNotFound {
			h.WriteError(w, http.StatusNotFound, "role not found")
			return
		}
		h.Logger.Error("UpdateRole: service error", "role_id", roleID, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role ID")
		return
	}

	if err := h.Service.DeleteRole(roleID); err != nil {
		switch err {
		case ErrRoleNotFound:
			h.WriteError(w, http.StatusNotFound, "role not found")
		case ErrSystemRole:
			h.WriteError(w, http.StatusForbidden, "system roles cannot be deleted")
		default:
			h.Logger.Error("DeleteRole: service error", "role_id", roleID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "failed to delete role")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func grantedByFromContext(r *http.Request) *int64 {
	if user, ok := auth.UserFromContext(r.Context()); ok && user != nil {
		return &user.ID
	}
	return nil
}
