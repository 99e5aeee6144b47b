package rbac_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/vilkasoft/backoffice/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	rbacDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/rbac"
)

func TestRBACService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Service Suite")
}

// MockRepository implements rbac.RepositoryAPI for testing
type MockRepository struct {
	roles      map[int64]*rbacDatamodel.Role
	grants     map[int64][]int64
	grantNames map[string][]string
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		roles:      make(map[int64]*rbacDatamodel.Role),
		grants:     make(map[int64][]int64),
		grantNames: make(map[string][]string),
		nextID:     1,
	}
}

func (m *MockRepository) addRole(name string, isSystem bool) *rbacDatamodel.Role {
	role := &rbacDatamodel.Role{ID: m.nextID, Name: name, DisplayName: name, IsSystem: isSystem}
	m.roles[role.ID] = role
	m.nextID++
	return role
}

func (m *MockRepository) GetAllRoles() ([]*rbacDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*rbacDatamodel.Role
	for _, r := range m.roles {
		result = append(result, r)
	}
	return result, nil
}

func (m *MockRepository) GetRoleByID(id int64) (*rbacDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.roles[id], nil
}

func (m *MockRepository) GetRoleByName(name string) (*rbacDatamodel.Role, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) GetAllPermissions() ([]*rbacDatamodel.Permission, error) {
	return nil, nil
}

func (m *MockRepository) GetRolePermissions(roleID int64) ([]*rbacDatamodel.Permission, error) {
	perms := make([]*rbacDatamodel.Permission, 0, len(m.grants[roleID]))
	for _, pid := range m.grants[roleID] {
		perms = append(perms, &rbacDatamodel.Permission{ID: pid})
	}
	return perms, nil
}

func (m *MockRepository) GetPermissionNamesForRole(roleName string) ([]string, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.grantNames[roleName], nil
}

func (m *MockRepository) CreateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error {
	if m.shouldFail {
		return m.failError
	}
	role.ID = m.nextID
	m.nextID++
	m.roles[role.ID] = role
	m.grants[role.ID] = permissionIDs
	return nil
}

func (m *MockRepository) UpdateRole(role *rbacDatamodel.Role, permissionIDs []int64, grantedBy *int64) error {
	if m.shouldFail {
		return m.failError
	}
	m.roles[role.ID] = role
	m.grants[role.ID] = permissionIDs
	return nil
}

func (m *MockRepository) DeleteRole(roleID int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.roles, roleID)
	delete(m.grants, roleID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("RBAC Service", func() {
	var (
		repo    *MockRepository
		service *rbac.Service
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		service = rbac.NewService(repo, nil, testLogger())
	})

	Describe("CreateRole", func() {
		It("creates a non-system role with its grant set", func() {
			resp, err := service.CreateRole(&rbac.CreateRoleDTO{
				Name:          "dispatcher",
				DisplayName:   "Dispatcher",
				PermissionIDs: []int64{1, 2},
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.IsSystem).To(BeFalse())
			Expect(repo.grants[resp.ID]).To(Equal([]int64{1, 2}))
		})

		It("rejects a duplicate role name", func() {
			repo.addRole("dispatcher", false)

			_, err := service.CreateRole(&rbac.CreateRoleDTO{
				Name:        "dispatcher",
				DisplayName: "Dispatcher",
			}, nil)
			Expect(err).To(MatchError(rbac.ErrRoleNameTaken))
		})

		It("rejects a role without a name", func() {
			_, err := service.CreateRole(&rbac.CreateRoleDTO{DisplayName: "X"}, nil)
			var vErr rbac.ValidationError
			Expect(errors.As(err, &vErr)).To(BeTrue())
		})
	})

	Describe("UpdateRole", func() {
		It("replaces the grant set wholesale", func() {
			role := repo.addRole("dispatcher", false)
			repo.grants[role.ID] = []int64{1, 2, 3}

			_, err := service.UpdateRole(role.ID, &rbac.UpdateRoleDTO{
				DisplayName:   "Dispatcher",
				PermissionIDs: []int64{4},
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.grants[role.ID]).To(Equal([]int64{4}))
		})

		It("returns ErrRoleNotFound for an unknown role", func() {
			_, err := service.UpdateRole(99, &rbac.UpdateRoleDTO{DisplayName: "X"}, nil)
			Expect(err).To(MatchError(rbac.ErrRoleNotFound))
		})
	})

	Describe("DeleteRole", func() {
		It("deletes a custom role", func() {
			role := repo.addRole("dispatcher", false)

			Expect(service.DeleteRole(role.ID)).To(Succeed())
			Expect(repo.roles).NotTo(HaveKey(role.ID))
		})

		It("refuses to delete a system role", func() {
			role := repo.addRole("admin", true)

			err := service.DeleteRole(role.ID)
			Expect(err).To(MatchError(rbac.ErrSystemRole))
			Expect(repo.roles).To(HaveKey(role.ID))
		})

		It("returns ErrRoleNotFound for an unknown role", func() {
			Expect(service.DeleteRole(99)).To(MatchError(rbac.ErrRoleNotFound))
		})
	})

	Describe("Capabilities", func() {
		It("resolves admin to the wildcard without touching the store", func() {
			repo.shouldFail = true
			repo.failError = errors.New("store down")

			caps, err := service.Capabilities("admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(caps).To(Equal([]string{rbac.PermissionAll}))
		})

		It("resolves other roles from their grant edges", func() {
			repo.grantNames["accountant"] = []string{"invoices.view", "accounting.view"}

			caps, err := service.Capabilities("accountant")
			Expect(err).NotTo(HaveOccurred())
			Expect(caps).To(ConsistOf("invoices.view", "accounting.view"))
		})
	})

	Describe("HasPermission", func() {
		It("grants admin any permission through the wildcard", func() {
			ok, err := service.HasPermission("admin", "warehouse.manage")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("grants a literal permission", func() {
			repo.grantNames["accountant"] = []string{"invoices.view"}

			ok, err := service.HasPermission("accountant", "invoices.view")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})

		It("denies a permission outside the capability set", func() {
			repo.grantNames["accountant"] = []string{"invoices.view"}

			ok, err := service.HasPermission("accountant", "roles.manage")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})
