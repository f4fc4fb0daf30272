package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tracker/config"
	"tracker/internal/domain/entity"
	"tracker/internal/infra/auth"
	logs "tracker/internal/infra/log"
	"tracker/internal/infra/persistence/postgres"
	"tracker/internal/usecase"
	"tracker/internal/usecase/impl"

	"github.com/pkg/errors"
)

// seed creates the role groups and one account in the credential store.
//
//	go run ./cmd/seed -username alice -password secret -groups Admin
func main() {
	username := flag.String("username", "", "Username of the account to create (required)")
	password := flag.String("password", "", "Password of the account to create (required)")
	email := flag.String("email", "", "Email address")
	firstName := flag.String("first-name", "", "First name")
	lastName := flag.String("last-name", "", "Last name")
	gender := flag.String("gender", "", "Gender, M or F")
	phone := flag.String("phone", "", "Phone number")
	staff := flag.Bool("staff", false, "Mark the account as staff")
	groups := flag.String("groups", string(entity.RoleDeveloper), "Comma separated group names")
	migrate := flag.Bool("migrate", true, "Create or update tables before seeding")
	flag.Parse()

	input := &usecase.RegisterUserInput{
		Username:    *username,
		Password:    *password,
		Email:       *email,
		FirstName:   *firstName,
		LastName:    *lastName,
		PhoneNumber: *phone,
		IsStaff:     *staff,
		Groups:      splitGroups(*groups),
	}
	if *gender != "" {
		g := entity.Gender(strings.ToUpper(*gender))
		input.Gender = &g
	}

	if err := run(context.Background(), input, *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input *usecase.RegisterUserInput, migrate bool) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	userRepo := postgres.NewUserRepository(db)
	if err := userRepo.EnsureGroups(ctx, entity.RolePriority.ToStrings()); err != nil {
		return errors.Wrap(err, "failed to create role groups")
	}

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager: postgres.NewTransactionManager(db),
		UserRepo:  userRepo,
		Hasher:    auth.NewBcryptHasher(cfg),
		Logger:    logger,
	})

	user, err := userUC.RegisterUser(ctx, input)
	if err != nil {
		return err
	}

	logger.Info("Seeded account",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", user.Role().String()),
	)

	return nil
}

func splitGroups(raw string) []string {
	var groups []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			groups = append(groups, name)
		}
	}

	return groups
}
