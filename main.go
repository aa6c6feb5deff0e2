package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/sadopc/zenith/internal/config"
	"github.com/sadopc/zenith/internal/store"
	"github.com/sadopc/zenith/internal/tui"
)

type flagConfig struct {
	configPath string
	importPath string
	dbPath     string
}

func main() {
	flags := parseFlags()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error reading .env: %v\n", err)
		os.Exit(1)
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}

	logFile, err := config.SetupLogging(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := cfg.EnsureExportDir(); err != nil {
		log.Error().Err(err).Str("export_dir", cfg.ExportDir).Msg("create export dir")
		fmt.Fprintf(os.Stderr, "error creating export dir: %v\n", err)
		os.Exit(1)
	}

	log.Info().Str("db", cfg.DBPath).Str("export_dir", cfg.ExportDir).Msg("zenith starting")

	s, err := store.New(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Msg("open database")
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if flags.importPath != "" {
		n, err := importLegacy(s, flags.importPath)
		if err != nil {
			log.Error().Err(err).Str("path", flags.importPath).Msg("legacy import")
			fmt.Fprintf(os.Stderr, "error importing %s: %v\n", flags.importPath, err)
			os.Exit(1)
		}
		log.Info().Int("days", n).Str("path", flags.importPath).Msg("legacy import done")
		fmt.Printf("imported %d days from %s\n", n, flags.importPath)
	}

	app := tui.NewApp(s, cfg.ExportDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("ui exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("zenith exiting")
}

func parseFlags() flagConfig {
	var fc flagConfig
	flag.StringVar(&fc.configPath, "config", config.DefaultPath(), "path to config.yaml")
	flag.StringVar(&fc.importPath, "import", "", "import a weekly_timetable.json file before starting")
	flag.StringVar(&fc.dbPath, "db", "", "database path (overrides config and "+config.EnvDB+")")
	flag.Parse()
	return fc
}

func importLegacy(s *store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return s.ImportLegacy(f)
}
