// Command admincli provisions the admin account out of band. The running
// service never creates accounts, so this tool is the only way to add one.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/ppandzharov/blogadmin/internal/server/auth"
	"github.com/ppandzharov/blogadmin/internal/server/config"
	"github.com/ppandzharov/blogadmin/internal/server/models"
	"github.com/ppandzharov/blogadmin/internal/server/repositories/repomanager"
	"github.com/ppandzharov/blogadmin/internal/shared"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func getPassword(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return pw, nil
}

func run(ctx context.Context) error {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	dsn := flag.String("d", defaults.DatabaseDSN, "database DSN")
	email := flag.String("e", "", "admin email")
	cost := flag.Int("w", defaults.BcryptCost, "bcrypt cost")
	flag.Parse()

	if *email == "" {
		return fmt.Errorf("email is required (-e)")
	}

	password, err := getPassword("Enter password: ")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(password)

	confirm, err := getPassword("Confirm password: ")
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		return fmt.Errorf("passwords do not match")
	}
	if len(password) == 0 {
		return fmt.Errorf("password must not be empty")
	}

	hash, err := auth.HashPassword(string(password), *cost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	admin := &models.AdminUser{
		ID:           uuid.NewString(),
		Email:        *email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := m.Admins(db).Create(ctx, admin); err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}

	fmt.Printf("admin %s created with id %s\n", admin.Email, admin.ID)
	return nil
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}
