package main

import (
	"fmt"
	"os"
	"strings"

	"miniblog/app/repositories"
	"miniblog/app/routes"
	"miniblog/app/sessions"
	"miniblog/config"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("miniblog version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	case "purge-users":
		purgeUsers(os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: miniblog <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [options]                Run the blog server.
    -a addr                      HTTP server address (default :8080)
    -d dir                       Badger data directory (default data/badger)
    -l level                     Log level (default info)
    -session-ttl d               Session lifetime (default 24h)
  purge-users [options]          Remove ALL users from the database.
`
	fmt.Println(helpText)
}

// serve runs the HTTP server for both the web and API surfaces.
func serve(args []string) {
	cfg := config.ParseFlags("serve", args)

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := badger.Open(badger.DefaultOptions(cfg.DataDir).WithLogger(nil))
	if err != nil {
		log.Fatal("failed to open database", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	defer db.Close()

	store := sessions.NewStore(cfg.SessionTTL)
	router := routes.SetupRoutes(db, store, "", log)

	log.Info("starting server", zap.String("addr", cfg.ServerAddress))
	if err := routes.StartServer(cfg.ServerAddress, router); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// purgeUsers removes every user record. Posts are left untouched; this is
// an administrative utility with no session or ownership implications.
func purgeUsers(args []string) {
	cfg := config.ParseFlags("purge-users", args)

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := badger.Open(badger.DefaultOptions(cfg.DataDir).WithLogger(nil))
	if err != nil {
		log.Fatal("failed to open database", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	defer db.Close()

	repo := repositories.NewBadgerUserRepository(db)
	n, err := repo.DeleteAll()
	if err != nil {
		log.Fatal("failed to remove users", zap.Error(err))
	}
	log.Info("all users removed", zap.Int("count", n))
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
