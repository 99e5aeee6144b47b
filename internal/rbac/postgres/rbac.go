package postgres

import (
	"time"

	"github.com/vilkasoft/backoffice/internal/rbac"
	"gorm.io/gorm"

	rbacDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/rbac"
)

// RBACRepository implements rbac.RepositoryAPI using GORM.
type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) rbac.RepositoryAPI {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) GetAllRoles() ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	err := r.db.Order("display_name ASC").Find(&roles).Error
	return roles, err
}

func (r *RBACRepository) GetRoleByID(id int64) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) GetRoleByName(name string) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) GetAllPermissions() ([]*rbacDatamodel.Permission, error) {
	var perms []*rbacDatamodel.Permission
	err := r.db.Order("module ASC, display_name ASC").Find(&perms).Error
	return perms, err
}

func (r *RBACRepository) GetRolePermissions(roleID int64) ([]*rbacDatamodel.Permission, error) {
	var perms []*rbacDatamodel.Permission
	err := r.db.
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.module ASC, permissions.display_name ASC").
		Find(&perms).Error
	return perms, err
}

func (r *RBACRepository) GetPermissionNamesForRole(roleName string) ([]string, error) {
	query := `SELECT p.name
	          FROM permissions p
	          JOIN role_permissions rp ON p.id = rp.permission_id
	          JOIN roles ro ON ro.id = rp.role_id
	          WHERE ro.name = ?`

	rows, err := r.db.Raw(query, roleName).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateRole inserts the role row and its grant edges inside one transaction;
// any failure rolls everything back.
func (r *RBACRepository) CreateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(role).Error; err != nil {
			return err
		}
		return insertGrants(tx, role.ID, permissionIDs, grantedBy)
	})
}

// UpdateRole saves display metadata and replaces the full grant set:
// delete-all then reinsert, not a diff.
func (r *RBACRepository) UpdateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(role).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", role.ID).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return insertGrants(tx, role.ID, permissionIDs, grantedBy)
	})
}

// DeleteRole cascades grant edges before removing the role row.
func (r *RBACRepository) DeleteRole(roleID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", roleID).Delete(&rbacDatamodel.Role{}).Error
	})
}

func insertGrants(tx *gorm.DB, roleID int64, permissionIDs []int64, grantedBy *int64) error {
	now := time.Now()
	for _, pid := range permissionIDs {
		grant := &rbacDatamodel.RolePermission{
			RoleID:       roleID,
			PermissionID: pid,
			GrantedBy:    grantedBy,
			GrantedAt:    now,
		}
		if err := tx.Create(grant).Error; err != nil {
			return err
		}
	}
	return nil
}
