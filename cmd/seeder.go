package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mindgraphix/platform/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the baseline access-control data",
	Long:  `Seed the standard permissions, the admin/manager/user roles and the initial superuser account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"user_roles", "role_permissions", "roles", "permissions"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing roles and permissions")
		}

		permissions := []struct {
			Name string
			Desc string
		}{
			{"view_users", "Can view users"},
			{"manage_users", "Can manage users"},
			{"view_roles", "Can view roles"},
			{"manage_roles", "Can manage roles"},
			{"view_permissions", "Can view permissions"},
			{"manage_permissions", "Can manage permissions"},
			{"view_projects", "Can view projects"},
			{"manage_projects", "Can manage projects"},
			{"view_services", "Can view services"},
			{"manage_services", "Can manage services"},
			{"view_contacts", "Can view contact messages"},
			{"manage_contacts", "Can manage contact messages"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}
		fmt.Printf("Seeded %d permissions\n", len(permissions))

		// The "user" role carries is_default, but registration never reads
		// the flag; new accounts start with no roles until one is assigned.
		roles := []struct {
			Name        string
			Desc        string
			IsDefault   bool
			Permissions []string
		}{
			{
				Name:      "admin",
				Desc:      "Administrator with full access",
				IsDefault: false,
				Permissions: []string{
					"view_users", "manage_users",
					"view_roles", "manage_roles",
					"view_permissions", "manage_permissions",
					"view_projects", "manage_projects",
					"view_services", "manage_services",
					"view_contacts", "manage_contacts",
				},
			},
			{
				Name:      "manager",
				Desc:      "Manager with content rights",
				IsDefault: false,
				Permissions: []string{
					"view_users", "view_roles", "view_permissions",
					"view_projects", "manage_projects",
					"view_services", "manage_services",
					"view_contacts", "manage_contacts",
				},
			},
			{
				Name:      "user",
				Desc:      "Standard user",
				IsDefault: true,
				Permissions: []string{
					"view_projects", "view_services", "view_contacts",
				},
			},
		}

		for _, r := range roles {
			var roleID int64
			row := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row()
			if err := row.Scan(&roleID); err != nil {
				if err := db.Exec("INSERT INTO roles (name, description, is_default, created_at) VALUES (?, ?, ?, now())", r.Name, r.Desc, r.IsDefault).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Name, err)
				}
				if err := db.Raw("SELECT id FROM roles WHERE name = ?", r.Name).Row().Scan(&roleID); err != nil {
					log.Fatalf("role not found after insert %s: %v", r.Name, err)
				}
			}

			for _, permName := range r.Permissions {
				var pid int64
				if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
					log.Fatalf("permission not found %s: %v", permName, err)
				}
				if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?) ON CONFLICT DO NOTHING", roleID, pid).Error; err != nil {
					log.Fatalf("failed to grant %s to role %s: %v", permName, r.Name, err)
				}
			}
		}
		fmt.Printf("Seeded %d roles\n", len(roles))

		adminEmail := getStringFlag(os.Getenv("SEED_ADMIN_EMAIL"), "admin@mindgraphix.com")
		adminPassword := getStringFlag(os.Getenv("SEED_ADMIN_PASSWORD"), "changeme")

		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", adminEmail).Row().Scan(&exists); err != nil {
			hash, err := auth.HashPassword(adminPassword, cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}
			if err := db.Exec("INSERT INTO users (email, full_name, password_hash, is_active, is_superuser, created_at, updated_at) VALUES (?, ?, ?, true, true, now(), now())", adminEmail, "Platform Admin", hash).Error; err != nil {
				log.Fatalf("failed to insert admin user: %v", err)
			}
			fmt.Println("Seeded superuser:", adminEmail)
		} else {
			fmt.Println("Superuser already exists:", adminEmail)
		}
	},
}

func getStringFlag(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}
