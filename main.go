package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/pdxmph/todo-tui/internal/config"
	"github.com/pdxmph/todo-tui/internal/db"
	"github.com/pdxmph/todo-tui/internal/logging"
	"github.com/pdxmph/todo-tui/internal/storage"
	"github.com/pdxmph/todo-tui/internal/tui"
)

type flags struct {
	configPath  string
	backend     string
	dataPath    string
	initDB      bool
	list        bool
	writeConfig bool
	fixtures    string
}

func main() {
	backends := append([]string{storage.AutoBackend}, storage.ListBackends()...)

	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to config file (default ~/.config/todo-tui/config.toml)")
	flag.StringVar(&f.backend, "backend", "", "storage backend: "+strings.Join(backends, ", "))
	flag.StringVar(&f.dataPath, "path", "", "database file (sqlite) or data directory (file)")
	flag.BoolVar(&f.initDB, "init", false, "create the SQLite database and exit")
	flag.BoolVar(&f.list, "list", false, "list the keys stored in the SQLite database and exit")
	flag.BoolVar(&f.writeConfig, "write-config", false, "write the effective configuration to the config file and exit")
	flag.StringVar(&f.fixtures, "fixtures", "", "create a SQLite database with sample tasks at `PATH` and exit")
	flag.Parse()

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}
	if f.backend != "" {
		cfg.Storage.Backend = f.backend
	}
	if f.dataPath != "" {
		cfg.Storage.Path = f.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.writeConfig {
		if f.configPath != "" {
			err = cfg.SaveTo(f.configPath)
		} else {
			err = cfg.Save()
		}
		if err != nil {
			return err
		}
		fmt.Println("Wrote configuration")
		return nil
	}

	// One-shot commands report on stderr; nothing else owns the terminal yet
	cliLogger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "todo"})

	if f.fixtures != "" {
		if err := db.CreateFixturesDatabase(f.fixtures, cfg.Storage.Key, cliLogger); err != nil {
			return err
		}
		fmt.Printf("Created fixtures database at %s\n", f.fixtures)
		return nil
	}

	if f.initDB || f.list {
		if err := requireSQLite(cfg.Storage.Backend, f.initDB); err != nil {
			return err
		}
	}

	if f.initDB {
		if err := db.Initialize(cfg.Storage.Path); err != nil {
			return err
		}
		fmt.Printf("Created database at %s\n", cfg.Storage.Path)
		return nil
	}

	if f.list {
		return listEntries(os.Stdout, cfg.Storage.Path, cliLogger)
	}

	opts := logging.DefaultOptions(cfg.Log.Path)
	opts.Level = cfg.Log.Level
	logger, err := logging.New(opts)
	if err != nil {
		return err
	}
	defer logger.Close()
	// The terminal belongs to the TUI from here on
	log.SetDefault(logger.Logger)

	manager, err := storage.NewManager(cfg.Storage.Backend, storage.Options{
		Path:   cfg.Storage.Path,
		Logger: logger.Logger,
	})
	if err != nil {
		return err
	}
	defer manager.Close()
	logger.Info("storage ready", "backend", manager.Name(), "path", cfg.Storage.Path, "key", cfg.Storage.Key)

	store := storage.NewTaskStore(manager.Backend(), cfg.Storage.Key, logger.Logger)
	model := tui.New(store, logger.Logger)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// requireSQLite rejects the database commands for any other backend
func requireSQLite(backend string, initDB bool) error {
	if backend == "sqlite" {
		return nil
	}
	flagName := "-list"
	if initDB {
		flagName = "-init"
	}
	return fmt.Errorf("%s only applies to the sqlite backend, not %q", flagName, backend)
}

// listEntries prints every stored key with its task count and last write time
func listEntries(w io.Writer, dbPath string, logger *log.Logger) error {
	database, err := db.Open(dbPath, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	entries, err := database.ListEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No keys stored")
		return nil
	}

	for _, e := range entries {
		count := "malformed"
		if tasks, err := storage.DecodeTaskList(e.Value); err == nil {
			count = fmt.Sprintf("%d tasks", len(tasks))
		}
		fmt.Fprintf(w, "%-20s %-12s %s\n", e.Key, count, e.LastWrite().Local().Format(time.DateTime))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}
