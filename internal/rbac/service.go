package rbac

import (
	"context"
	"log/slog"

	"github.com/vilkasoft/backoffice/internal/core/events"

	rbacDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/rbac"
)

type RepositoryAPI interface {
	GetAllRoles() ([]*rbacDatamodel.Role, error)
	GetRoleByID(id int64) (*rbacDatamodel.Role, error)
	GetRoleByName(name string) (*rbacDatamodel.Role, error)
	GetAllPermissions() ([]*rbacDatamodel.Permission, error)
	GetRolePermissions(roleID int64) ([]*rbacDatamodel.Permission, error)
	GetPermissionNamesForRole(roleName string) ([]string, error)
	CreateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error
	UpdateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error
	DeleteRole(roleID int64) error
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

func (s *Service) GetAllRoles() ([]RoleResponse, error) {
	dataRoles, err := s.repo.GetAllRoles()
	if err != nil {
		s.logger.Error("failed to get roles from repository", "error", err)
		return nil, err
	}

	responses := make([]RoleResponse, 0, len(dataRoles))
	for _, dataRole := range dataRoles {
		responses = append(responses, toRoleResponse(dataRole))
	}
	return responses, nil
}

func (s *Service) GetAllPermissions() ([]PermissionResponse, error) {
	dataPerms, err := s.repo.GetAllPermissions()
	if err != nil {
		s.logger.Error("failed to get permissions from repository", "error", err)
		return nil, err
	}

	responses := make([]PermissionResponse, 0, len(dataPerms))
	for _, dataPerm := range dataPerms {
		responses = append(responses, toPermissionResponse(dataPerm))
	}
	return responses, nil
}

func (s *Service) GetRolePermissions(roleID int64) ([]PermissionResponse, error) {
	role, err := s.repo.GetRoleByID(roleID)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", roleID, "error", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	dataPerms, err := s.repo.GetRolePermissions(roleID)
	if err != nil {
		s.logger.Error("failed to get role permissions", "role_id", roleID, "error", err)
		return nil, err
	}

	responses := make([]PermissionResponse, 0, len(dataPerms))
	for _, dataPerm := range dataPerms {
		responses = append(responses, toPermissionResponse(dataPerm))
	}
	return responses, nil
}

// CreateRole inserts a non-system role plus one grant edge per permission id
// as a single transaction. Any insert error rolls the whole role back.
func (s *Service) CreateRole(dto *CreateRoleDTO, grantedBy *int64) (*RoleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetRoleByName(dto.Name)
	if err != nil {
		s.logger.Error("failed to check role name", "name", dto.Name, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrRoleNameTaken
	}

	role := &rbacDatamodel.Role{
		Name:        dto.Name,
		DisplayName: dto.DisplayName,
		Description: dto.Description,
		IsSystem:    false,
	}

	if err := s.repo.CreateRole(role, dto.PermissionIDs, grantedBy); err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("role created", "role_id", role.ID, "name", role.Name, "grants", len(dto.PermissionIDs))
	s.publish(events.NewRoleCreatedEvent(role.ID, role.Name, len(dto.PermissionIDs)))

	resp := toRoleResponse(role)
	return &resp, nil
}

// UpdateRole updates display metadata and replaces the grant set wholesale:
// every existing edge is deleted and the new set inserted. This is not a diff,
// so provenance on unchanged grants is reset.
func (s *Service) UpdateRole(roleID int64, dto *UpdateRoleDTO, grantedBy *int64) (*RoleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.GetRoleByID(roleID)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", roleID, "error", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	role.DisplayName = dto.DisplayName
	role.Description = dto.Description

	if err := s.repo.UpdateRole(role, dto.PermissionIDs, grantedBy); err != nil {
		s.logger.Error("failed to update role", "role_id", roleID, "error", err)
		return nil, err
	}

	s.logger.Info("role updated", "role_id", role.ID, "name", role.Name, "grants", len(dto.PermissionIDs))
	s.publish(events.NewRoleUpdatedEvent(role.ID, role.Name, len(dto.PermissionIDs)))

	resp := toRoleResponse(role)
	return &resp, nil
}

// DeleteRole removes a role and cascades its grant edges. System roles are
// never deletable.
func (s *Service) DeleteRole(roleID int64) error {
	role, err := s.repo.GetRoleByID(roleID)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", roleID, "error", err)
		return err
	}
	if role == nil {
		return ErrRoleNotFound
	}
	if role.IsSystem {
		s.logger.Warn("refusing to delete system role", "role_id", roleID, "name", role.Name)
		return ErrSystemRole
	}

	if err := s.repo.DeleteRole(roleID); err != nil {
		s.logger.Error("failed to delete role", "role_id", roleID, "error", err)
		return err
	}

	s.logger.Info("role deleted", "role_id", roleID, "name", role.Name)
	s.publish(events.NewRoleDeletedEvent(roleID, role.Name))
	return nil
}

// Capabilities resolves the effective capability set of a role. Builtin roles
// with hardcoded capabilities (admin) bypass the store entirely.
func (s *Service) Capabilities(roleName string) ([]string, error) {
	if caps := ParseBuiltinRole(roleName).Capabilities(); caps != nil {
		return caps, nil
	}
	return s.repo.GetPermissionNamesForRole(roleName)
}

// HasPermission reports whether the role grants the required capability,
// either through the wildcard or a literal grant.
func (s *Service) HasPermission(roleName, required string) (bool, error) {
	caps, err := s.Capabilities(roleName)
	if err != nil {
		s.logger.Error("failed to resolve capabilities", "role", roleName, "error", err)
		return false, err
	}

	for _, c := range caps {
		if c == PermissionAll || c == required {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) publish(event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func toRoleResponse(r *rbacDatamodel.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		Description: r.Description,
		IsSystem:    r.IsSystem,
	}
}

func toPermissionResponse(p *rbacDatamodel.Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Description: p.Description,
		Module:      p.Module,
	}
}
