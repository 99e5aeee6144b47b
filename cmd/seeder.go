package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	userDatamodel "github.com/vilkasoft/backoffice/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with roles, permissions and sample registry data",
	Long:  `Seed the database with the system roles, the permission catalog, an admin account and sample registry data for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		seedRoles(db)
		seedPermissions(db)
		seedGrants(db)
		seedAdminUser(db, cfg.Security.BCryptCost)
		seedRegistry(db)

		fmt.Println("Seeding complete")
	},
}

type seedRole struct {
	Name        string
	DisplayName string
	Description string
	IsSystem    bool
}

type seedPermission struct {
	Name        string
	DisplayName string
	Module      string
}

// systemRoles cannot be deleted through the API; the seeder is the only
// place they are created.
var systemRoles = []seedRole{
	{"admin", "Administrator", "Full access to every module", true},
	{"accountant", "Accountant", "Accounting, invoicing and document access", true},
	{"user", "User", "Day-to-day access without management rights", true},
}

var permissionCatalog = []seedPermission{
	{"users.view", "View users", "users"},
	{"users.manage", "Manage users", "users"},
	{"roles.view", "View roles", "roles"},
	{"roles.manage", "Manage roles", "roles"},
	{"invoices.view", "View invoices", "invoices"},
	{"invoices.manage", "Manage invoices", "invoices"},
	{"accounting.view", "View accounting", "accounting"},
	{"accounting.manage", "Manage accounting", "accounting"},
	{"company.view", "View company data", "company"},
	{"company.manage", "Manage company data", "company"},
	{"documents.view", "View documents", "documents"},
	{"documents.manage", "Manage documents", "documents"},
	{"assets.view", "View assets", "assets"},
	{"assets.manage", "Manage assets", "assets"},
	{"transport.vehicles", "Manage vehicles and fuel", "transport"},
	{"transport.drivers", "Manage drivers", "transport"},
	{"transport.destinations", "Manage destinations", "transport"},
	{"transport.trips", "Generate and manage trip logs", "transport"},
	{"calendar.view", "View calendar", "calendar"},
	{"calendar.manage", "Manage calendar", "calendar"},
	{"warehouse.view", "View warehouse", "warehouse"},
	{"warehouse.manage", "Manage warehouse", "warehouse"},
	{"employees.view", "View employees", "employees"},
	{"employees.manage", "Manage employees", "employees"},
	{"maintenance.view", "View maintenance", "maintenance"},
	{"maintenance.manage", "Manage maintenance", "maintenance"},
}

var accountantPermissions = []string{
	"invoices.view", "invoices.manage",
	"accounting.view", "accounting.manage",
	"company.view",
	"documents.view", "documents.manage",
	"calendar.view",
}

var userPermissions = []string{
	"company.view",
	"documents.view",
	"calendar.view",
	"transport.trips",
}

func clearSeedData(db *gorm.DB) {
	// grant edges first, then the tables they reference
	for _, table := range []string{"role_permissions", "trip_legs", "fuel_records"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing seed data")
}

func seedRoles(db *gorm.DB) {
	for _, r := range systemRoles {
		var exists int
		if err := db.Raw("SELECT 1 FROM roles WHERE name = ?", r.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO roles (name, display_name, description, is_system, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
			r.Name, r.DisplayName, r.Description, r.IsSystem).Error; err != nil {
			log.Fatalf("failed to insert role %s: %v", r.Name, err)
		}
		fmt.Println("Seeded role:", r.Name)
	}
}

func seedPermissions(db *gorm.DB) {
	for _, p := range permissionCatalog {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row().Scan(&pid); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO permissions (name, display_name, description, module, created_at) VALUES (?, ?, ?, ?, now())",
			p.Name, p.DisplayName, p.DisplayName, p.Module).Error; err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Name, err)
		}
	}
	fmt.Println("Seeded permission catalog:", len(permissionCatalog), "permissions")
}

func seedGrants(db *gorm.DB) {
	// the admin role also carries the wildcard capability in code; the
	// exhaustive grant list keeps the role inspectable through the API
	adminGrants := make([]string, 0, len(permissionCatalog))
	for _, p := range permissionCatalog {
		adminGrants = append(adminGrants, p.Name)
	}

	grantsByRole := map[string][]string{
		"admin":      adminGrants,
		"accountant": accountantPermissions,
		"user":       userPermissions,
	}

	for roleName, grants := range grantsByRole {
		var roleID int64
		if err := db.Raw("SELECT id FROM roles WHERE name = ?", roleName).Row().Scan(&roleID); err != nil {
			log.Fatalf("role not found after insert %s: %v", roleName, err)
		}

		for _, permName := range grants {
			var pid int64
			if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
				log.Fatalf("permission not found after insert %s: %v", permName, err)
			}

			var exists int
			if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, pid).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO role_permissions (role_id, permission_id, granted_by, granted_at) VALUES (?, ?, NULL, now())",
				roleID, pid).Error; err != nil {
				log.Fatalf("failed to grant %s to %s: %v", permName, roleName, err)
			}
		}
		fmt.Printf("Granted %d permissions to role %s\n", len(grants), roleName)
	}
}

func seedAdminUser(db *gorm.DB, bcryptCost int) {
	adminEmail := "admin@vilkasoft.lt"

	var exists int
	if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err == nil {
		fmt.Println("admin user already exists:", adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	var adminRoleID int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", "admin").Row().Scan(&adminRoleID); err != nil {
		log.Fatalf("admin role not found: %v", err)
	}

	admin := &userDatamodel.User{
		Email:        adminEmail,
		Name:         "Administrator",
		PasswordHash: string(hash),
		RoleID:       adminRoleID,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatalf("failed to insert admin user: %v", err)
	}
	fmt.Println("Seeded admin user:", adminEmail)
}

func seedRegistry(db *gorm.DB) {
	vehicles := []struct {
		Registration string
		Make         string
		Model        string
		Consumption  float64
	}{
		{"ABC123", "Volkswagen", "Transporter", 9.5},
		{"DEF456", "Ford", "Transit", 11.0},
	}
	for _, v := range vehicles {
		var exists int
		if err := db.Raw("SELECT 1 FROM vehicles WHERE registration = ?", v.Registration).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO vehicles (registration, make, model, consumption, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
			v.Registration, v.Make, v.Model, v.Consumption).Error; err != nil {
			log.Fatalf("failed to insert vehicle %s: %v", v.Registration, err)
		}
	}

	drivers := []struct {
		FirstName string
		LastName  string
		Role      string
	}{
		{"Jonas", "Petrauskas", "driver"},
		{"Tomas", "Kazlauskas", "driver"},
	}
	for _, d := range drivers {
		var exists int
		if err := db.Raw("SELECT 1 FROM drivers WHERE first_name = ? AND last_name = ?", d.FirstName, d.LastName).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO drivers (first_name, last_name, role, created_at, updated_at) VALUES (?, ?, ?, now(), now())",
			d.FirstName, d.LastName, d.Role).Error; err != nil {
			log.Fatalf("failed to insert driver %s %s: %v", d.FirstName, d.LastName, err)
		}
	}

	destinations := []struct {
		StartPoint string
		EndPoint   string
		Company    string
		DistanceKm float64
	}{
		{"Vilnius", "Kaunas", "UAB Klientas", 102.0},
		{"Vilnius", "Klaipeda", "UAB Uostas", 311.0},
		{"Kaunas", "Siauliai", "UAB Partneris", 142.0},
	}
	for _, d := range destinations {
		var exists int
		if err := db.Raw("SELECT 1 FROM destinations WHERE start_point = ? AND end_point = ?", d.StartPoint, d.EndPoint).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO destinations (start_point, end_point, company, distance_km, note, created_at) VALUES (?, ?, ?, ?, '', now())",
			d.StartPoint, d.EndPoint, d.Company, d.DistanceKm).Error; err != nil {
			log.Fatalf("failed to insert destination %s-%s: %v", d.StartPoint, d.EndPoint, err)
		}
	}

	fmt.Println("Seeded sample registry data")
}
