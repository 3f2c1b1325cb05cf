package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ironsheep/pnm-tools-mcp/internal/config"
	"github.com/ironsheep/pnm-tools-mcp/internal/logging"
	"github.com/ironsheep/pnm-tools-mcp/internal/server"
)

// Build information - set by ldflags during build
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, config.ErrShowVersion) {
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			os.Exit(0)
		}
		if errors.Is(err, config.ErrShowHelp) || errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "pnm-tools-mcp: %v\n", err)
		os.Exit(2)
	}

	// stdout carries the MCP protocol, so logs go to stderr
	log := logging.NewFromString(cfg.LogLevel, os.Stderr)
	log.Debug("pnm-tools-mcp v%s (built %s, commit %s)", config.Version, BuildTime, GitCommit)
	log.Debug("ocr language %s, cache %v", cfg.OCRLanguage, cfg.CacheImages)

	srv := server.New(server.OptionsFromConfig(cfg, log))
	if err := srv.Run(); err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}
