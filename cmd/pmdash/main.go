package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/app"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/credential"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/model"
	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/session"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(filepath.Dir(*configPath), *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: setting up logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sess := session.NewStore(credential.Ring{})
	m := app.New(cfg, sess, log)

	// Install the session after wiring so the channel manager observes
	// it. The token comes from the environment or the system keyring;
	// issuing one is the auth subsystem's job, not ours.
	if tok := os.Getenv("PMDASH_TOKEN"); tok != "" {
		sess.SetToken(tok)
	} else if err := sess.Load(); err != nil {
		log.Warn("could not restore session", zap.Error(err))
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a zap logger writing to pmdash.log next to the config
// file, keeping stdout free for the terminal UI.
func newLogger(dir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "pmdash.log")

	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
