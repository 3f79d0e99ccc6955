package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"linguista/internal/auth"
	"linguista/internal/config"
	"linguista/internal/database"
	"linguista/internal/repository/postgres"
	"linguista/internal/service"

	"go.uber.org/zap"
)

const usage = `Usage: manage <command> [flags]

Commands:
  importlanguages   import the built-in language table
  importexercises   import the built-in exercises
  importwordtypes   import the built-in word types (parts of speech, phrase kinds)
  makesuperuser     create a staff account (-username, -email, -password)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	cfg, err := config.LoadAPI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.Database.DSN(), database.DefaultRetry, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	switch command {
	case "importlanguages":
		languages := service.NewLanguageService(postgres.NewLanguageRepo(db))
		n, err := languages.Import(ctx, builtinLanguages())
		if err != nil {
			logger.Fatal("Failed to import languages", zap.Int("imported", n), zap.Error(err))
		}
		logger.Info("Languages imported", zap.Int("count", n))

	case "importexercises":
		exercises := service.NewExerciseService(
			postgres.NewExerciseRepo(db),
			postgres.NewSettingsRepo(db),
			postgres.NewHistoryRepo(db),
		)
		for _, in := range builtinExercises {
			e, err := exercises.Save(ctx, in)
			if err != nil {
				logger.Fatal("Failed to import exercise", zap.String("name", in.Name), zap.Error(err))
			}
			logger.Info("Exercise imported", zap.String("slug", e.Slug), zap.Bool("available", e.Available))
		}

	case "importwordtypes":
		types := service.NewWordTypeService(postgres.NewWordTypeRepo(db))
		n, err := types.Import(ctx, builtinWordTypes())
		if err != nil {
			logger.Fatal("Failed to import word types", zap.Int("imported", n), zap.Error(err))
		}
		logger.Info("Word types imported", zap.Int("count", n))

	case "makesuperuser":
		fs := flag.NewFlagSet("makesuperuser", flag.ExitOnError)
		username := fs.String("username", "", "Username of the new account")
		email := fs.String("email", "", "Email of the new account")
		password := fs.String("password", os.Getenv("SUPERUSER_PASSWORD"), "Password (defaults to $SUPERUSER_PASSWORD)")
		_ = fs.Parse(args)

		authService := service.NewAuthService(
			postgres.NewUserRepo(db),
			postgres.NewTokenRepo(db),
			postgres.NewConfirmationRepo(db),
			auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL),
			service.Confirmation{},
			logger,
		)
		user, err := authService.CreateSuperuser(ctx, *username, *email, *password)
		if err != nil {
			logger.Fatal("Failed to create superuser", zap.String("username", *username), zap.Error(err))
		}
		logger.Info("Superuser created", zap.String("username", user.Username), zap.String("id", user.ID.String()))

	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n%s", command, usage)
		os.Exit(2)
	}
}
