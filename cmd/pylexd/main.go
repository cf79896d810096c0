package main

import (
	"log/slog"
	"os"

	"github.com/agenthands/pylex/pkg/registry"
	"github.com/agenthands/pylex/pkg/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	reg := registry.New()
	if path := os.Getenv("LANGUAGE_ALIASES"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			slog.Error("Failed to open language aliases", "path", path, "error", err)
			os.Exit(1)
		}
		if err := reg.LoadAliases(f); err != nil {
			f.Close()
			slog.Error("Failed to load language aliases", "path", path, "error", err)
			os.Exit(1)
		}
		f.Close()
		slog.Info("Loaded language aliases", "path", path)
	}

	s := server.New(cfg)

	router := server.NewTokenRouter(s.Echo, reg, cfg.MaxSourceBytes)
	router.Bind()

	slog.Info("Starting pylexd", "port", cfg.Port)
	if err := s.Start(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
