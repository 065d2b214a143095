package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	appidentity "github.com/iletigo/mutabakat/internal/application/identity"
	"github.com/iletigo/mutabakat/internal/domain/identity"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/config"
	"github.com/iletigo/mutabakat/internal/infrastructure/logger"
	"github.com/iletigo/mutabakat/internal/infrastructure/migration"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence"
	"github.com/iletigo/mutabakat/migrations"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)

	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the embedded set (create writes here, default: ./migrations)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("migrations_path", migrationsPath),
	)

	// create and list never touch the database
	switch command {
	case "create":
		runCreate(log, args[1:], migrationsPath)
		return
	case "list":
		runList(log, migrationSource(migrationsPath))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if command == "create-admin" {
		runCreateAdmin(log, cfg, args[1:])
		return
	}

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("Migrations only run against PostgreSQL; sqlite databases are auto-migrated at startup",
			zap.String("driver", cfg.Database.Driver))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, migrationSource(migrationsPath), log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "goto":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate goto <version>")
		}
		version, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.GoTo(uint(version)); err != nil {
			log.Fatal("Migration goto failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		log.Warn("Forcing migration version - use with caution!")
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// migrationSource prefers an explicit directory over the embedded files
func migrationSource(path string) fs.FS {
	if path == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}

func runCreate(log *zap.Logger, args []string, dir string) {
	if len(args) < 1 {
		log.Fatal("Migration name required. Usage: migrate create <name> [description]")
	}
	if dir == "" {
		dir = defaultMigrationsPath
	}
	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	mf, err := migration.CreateMigration(dir, args[0], description, time.Now())
	if err != nil {
		log.Fatal("Failed to create migration", zap.Error(err))
	}

	log.Info("Migration created successfully",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath),
	)
}

func runList(log *zap.Logger, source fs.FS) {
	names, err := migration.ListMigrations(source)
	if err != nil {
		log.Fatal("Failed to list migrations", zap.Error(err))
	}

	if len(names) == 0 {
		log.Info("No migrations found")
		return
	}

	log.Info("Available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
}

// runCreateAdmin provisions the first administrator, since accounts have
// no HTTP surface.
func runCreateAdmin(log *zap.Logger, cfg *config.Config, args []string) {
	fset := flag.NewFlagSet("create-admin", flag.ExitOnError)
	email := fset.String("email", "", "Login email (required)")
	password := fset.String("password", "", "Initial password (required)")
	firstName := fset.String("first-name", "Admin", "First name")
	lastName := fset.String("last-name", "User", "Last name")
	department := fset.String("department", "", "Department")
	_ = fset.Parse(args)

	if *email == "" || *password == "" {
		log.Fatal("Usage: migrate create-admin -email <email> -password <password>")
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	users := appidentity.NewUserService(persistence.NewGormUserRepository(db.DB), shared.SystemClock(), log)
	user, err := users.CreateUser(context.Background(), appidentity.CreateUserInput{
		Email:      *email,
		Password:   *password,
		FirstName:  *firstName,
		LastName:   *lastName,
		Role:       identity.RoleAdmin,
		Department: *department,
	})
	if err != nil {
		log.Fatal("Failed to create admin user", zap.Error(err))
	}

	log.Info("Admin user created",
		zap.String("id", user.ID.String()),
		zap.String("email", user.Email),
	)
}

func printUsage() {
	fmt.Println(`Mutabakat Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  create <name> [desc]  Create a new migration file pair
  list                  List available migrations
  create-admin          Create an administrator account
                        (-email, -password, -first-name, -last-name, -department)

Flags:
  -path string          Migrations directory (default: embedded set; create writes to ./migrations)
  -log-level string     Log level: debug, info, warn, error (default: info)

Environment Variables:
  MUTABAKAT_DATABASE_HOST, MUTABAKAT_DATABASE_PORT, MUTABAKAT_DATABASE_USER,
  MUTABAKAT_DATABASE_PASSWORD, MUTABAKAT_DATABASE_DBNAME, MUTABAKAT_DATABASE_SSLMODE

Examples:
  # Apply all pending migrations
  migrate up

  # Roll back the last migration
  migrate step -1

  # Create a new migration
  migrate create add_dispute_reason "Add dispute reason column"

  # Bootstrap the first login
  migrate create-admin -email admin@example.com -password 'change-me'`)
}
