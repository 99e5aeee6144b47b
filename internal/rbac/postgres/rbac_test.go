package postgres_test

import (
	"testing"

	"github.com/vilkasoft/backoffice/internal/rbac"
	rbacPostgres "github.com/vilkasoft/backoffice/internal/rbac/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rbacDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/rbac"
)

func TestRBACPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Postgres Suite")
}

var _ = Describe("RBAC Repository", func() {
	var (
		db   *gorm.DB
		repo rbac.RepositoryAPI
	)

	seedPermission := func(name, module string) *rbacDatamodel.Permission {
		p := &rbacDatamodel.Permission{Name: name, DisplayName: name, Module: module}
		Expect(db.Create(p).Error).To(Succeed())
		return p
	}

	grantCount := func(roleID int64) int64 {
		var count int64
		Expect(db.Model(&rbacDatamodel.RolePermission{}).Where("role_id = ?", roleID).Count(&count).Error).To(Succeed())
		return count
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&rbacDatamodel.Role{}, &rbacDatamodel.Permission{}, &rbacDatamodel.RolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = rbacPostgres.NewRBACRepository(db)
	})

	Describe("CreateRole", func() {
		It("inserts the role together with its grant edges", func() {
			p1 := seedPermission("invoices.view", "invoices")
			p2 := seedPermission("invoices.manage", "invoices")

			role := &rbacDatamodel.Role{Name: "dispatcher", DisplayName: "Dispatcher"}
			err := repo.CreateRole(role, []int64{p1.ID, p2.ID}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(role.ID).To(BeNumerically(">", 0))
			Expect(grantCount(role.ID)).To(Equal(int64(2)))
		})

		It("rolls the role back when a grant insert fails", func() {
			p1 := seedPermission("invoices.view", "invoices")

			role := &rbacDatamodel.Role{Name: "dispatcher", DisplayName: "Dispatcher"}
			// duplicate permission id violates the composite unique index
			err := repo.CreateRole(role, []int64{p1.ID, p1.ID}, nil)
			Expect(err).To(HaveOccurred())

			stored, err := repo.GetRoleByName("dispatcher")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})
	})

	Describe("UpdateRole", func() {
		It("replaces the grant set wholesale", func() {
			p1 := seedPermission("invoices.view", "invoices")
			p2 := seedPermission("accounting.view", "accounting")

			role := &rbacDatamodel.Role{Name: "dispatcher", DisplayName: "Dispatcher"}
			Expect(repo.CreateRole(role, []int64{p1.ID}, nil)).To(Succeed())

			role.DisplayName = "Dispatch Lead"
			Expect(repo.UpdateRole(role, []int64{p2.ID}, nil)).To(Succeed())

			perms, err := repo.GetRolePermissions(role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(HaveLen(1))
			Expect(perms[0].Name).To(Equal("accounting.view"))

			stored, err := repo.GetRoleByID(role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.DisplayName).To(Equal("Dispatch Lead"))
		})
	})

	Describe("DeleteRole", func() {
		It("removes the role and its grant edges", func() {
			p1 := seedPermission("invoices.view", "invoices")

			role := &rbacDatamodel.Role{Name: "dispatcher", DisplayName: "Dispatcher"}
			Expect(repo.CreateRole(role, []int64{p1.ID}, nil)).To(Succeed())

			Expect(repo.DeleteRole(role.ID)).To(Succeed())
			Expect(grantCount(role.ID)).To(Equal(int64(0)))

			stored, err := repo.GetRoleByID(role.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeNil())
		})
	})

	Describe("GetPermissionNamesForRole", func() {
		It("resolves names through the role's grant edges", func() {
			p1 := seedPermission("invoices.view", "invoices")
			p2 := seedPermission("accounting.view", "accounting")
			seedPermission("roles.manage", "roles")

			role := &rbacDatamodel.Role{Name: "accountant", DisplayName: "Accountant"}
			Expect(repo.CreateRole(role, []int64{p1.ID, p2.ID}, nil)).To(Succeed())

			names, err := repo.GetPermissionNamesForRole("accountant")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf("invoices.view", "accounting.view"))
		})

		It("returns nothing for an unknown role name", func() {
			names, err := repo.GetPermissionNamesForRole("ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
		})
	})

	Describe("GetAllRoles", func() {
		It("orders roles by display name", func() {
			Expect(db.Create(&rbacDatamodel.Role{Name: "b", DisplayName: "Zebra"}).Error).To(Succeed())
			Expect(db.Create(&rbacDatamodel.Role{Name: "a", DisplayName: "Alpha"}).Error).To(Succeed())

			roles, err := repo.GetAllRoles()
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].DisplayName).To(Equal("Alpha"))
		})
	})
})
