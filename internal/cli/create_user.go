// Package cli holds the operator commands exposed next to the server.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gatehouse/identity/internal/auth"
	"github.com/gatehouse/identity/internal/config"
	"github.com/gatehouse/identity/internal/database"
	"github.com/gatehouse/identity/internal/email"
	"github.com/gatehouse/identity/internal/security"
	"github.com/gatehouse/identity/internal/token"
	"github.com/gatehouse/identity/internal/tokenban"
	"github.com/gatehouse/identity/internal/twofa"
	"github.com/gatehouse/identity/internal/userstore"
)

// CreateUserCommand registers an account directly against the database,
// bypassing the HTTP surface. Useful for seeding the first accounts.
type CreateUserCommand struct {
	Email        string
	Password     string
	Requires2FA  bool
	DatabasePath string
	BcryptCost   int
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address of the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")
	fs.BoolVar(&cmd.Requires2FA, "2fa", false, "Require a two-factor challenge on every login")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sqlite database file")
	fs.IntVar(&cmd.BcryptCost, "bcrypt-cost", 12, "bcrypt cost factor for the password hash")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account directly in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -email admin@example.com -password s3cretpass\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -email admin@example.com -password s3cretpass -2fa\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}

	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	users := userstore.NewGormStore(db.DB, security.NewHasher(cmd.BcryptCost))

	// The signup path only needs the user store; the remaining
	// collaborators are inert placeholders.
	service := auth.NewService(
		users,
		tokenban.NewMemoryStore(0),
		twofa.NewMemoryStore(0),
		token.NewJWTService("unused", 0),
		email.NewLogClient(),
	)

	err = service.SignUp(context.Background(), auth.SignUpParams{
		Email:             cmd.Email,
		Password:          cmd.Password,
		RequiresTwoFactor: cmd.Requires2FA,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("Created user %s (requires 2FA: %v)\n", cmd.Email, cmd.Requires2FA)
	return nil
}
