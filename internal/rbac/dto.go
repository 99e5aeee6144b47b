package rbac

// CreateRoleDTO is the transport shape for creating a custom role together
// with its initial grant set.
type CreateRoleDTO struct {
	Name          string  `json:"name"`
	DisplayName   string  `json:"display_name"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permission_ids"`
}

// UpdateRoleDTO updates display metadata and replaces the grant set wholesale.
type UpdateRoleDTO struct {
	DisplayName   string  `json:"display_name"`
	Description   string  `json:"description"`
	PermissionIDs []int64 `json:"permission_ids"`
}

type RoleResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	IsSystem    bool   `json:"is_system"`
}

type PermissionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Module      string `json:"module"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateRoleDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if d.DisplayName == "" {
		return ValidationError{Msg: "display_name is required"}
	}
	return nil
}

func (d UpdateRoleDTO) Validate() error {
	if d.DisplayName == "" {
		return ValidationError{Msg: "display_name is required"}
	}
	return nil
}
