package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/vibeoutfit-backend/internal/users"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/config"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/db"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/logger"
	"github.com/angelmondragon/vibeoutfit-backend/pkg/security"
)

const generatedPasswordLength = 20

func main() {
	logg := logger.New(logger.Options{ServiceName: "createadmin"})
	_ = godotenv.Load()

	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password; generated and printed when empty")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	flag.Parse()

	normalized := strings.ToLower(strings.TrimSpace(*email))
	if normalized == "" {
		fmt.Fprintln(os.Stderr, "missing -email")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg = logger.New(logger.Options{
		ServiceName: "createadmin",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{"env": cfg.App.Env, "email": normalized})

	secret := *password
	generated := secret == ""
	if generated {
		secret, err = security.GeneratePassword(generatedPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
	}

	hash, err := security.HashPassword(secret, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	user, err := users.NewRepository(dbClient.DB()).Create(ctx, users.CreateUserDTO{
		Email:        normalized,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(*firstName),
		LastName:     strings.TrimSpace(*lastName),
		Role:         enums.UserRoleAdmin,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			fmt.Fprintf(os.Stderr, "a user with email %s already exists\n", normalized)
			os.Exit(1)
		}
		logg.Error(ctx, "failed to create admin", err)
		os.Exit(1)
	}

	logg.Info(logg.WithUserID(ctx, user.ID.String()), "admin user created")
	if generated {
		fmt.Printf("generated password: %s\n", secret)
	}
}
