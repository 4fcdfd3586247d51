package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/employee-management/internal/auth"
	authPostgres "github.com/frahmantamala/employee-management/internal/auth/postgres"
	"github.com/frahmantamala/employee-management/pkg/logger"
	"github.com/spf13/cobra"
)

// Default accounts from the legacy seed script. Passwords are hashed at
// seed time; existing usernames are left untouched.
var defaultAccounts = []struct {
	Sno      int64
	Username string
	Password string
	Email    string
}{
	{Sno: 1, Username: "admin", Password: "pass123", Email: "admin@example.com"},
	{Sno: 2, Username: "user", Password: "pass123", Email: "user@example.com"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with default login accounts",
	Long:  `Seed the database with the default admin and user accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		gormDB, err := initGorm(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		repo := authPostgres.NewAccountRepository(gormDB)

		for _, a := range defaultAccounts {
			if _, err := repo.GetByUsername(a.Username); err == nil {
				fmt.Printf("User %s already exists.\n", a.Username)
				continue
			}

			hash, err := auth.HashPassword(a.Password, cfg.Security.BcryptCost)
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", a.Username, err)
			}

			account := &auth.Account{
				Sno:          a.Sno,
				Username:     a.Username,
				Email:        a.Email,
				PasswordHash: hash,
			}
			if err := repo.Create(account); err != nil {
				log.Fatalf("failed to seed user %s: %v", a.Username, err)
			}

			logger.L().Info("seeded account", "username", a.Username, "sno", a.Sno)
			fmt.Printf("User %s added successfully.\n", a.Username)
		}
	},
}
