// Package config provides configuration for the pnm-tools-mcp server.
//
// Configuration is parsed from CLI flags. The log level flag defaults to
// the PNM_MCP_LOG_LEVEL environment variable when it is set, so MCP
// clients that only pass environment variables can still enable debug
// output.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// Version is the application version
	Version = "0.2.0"

	// LogLevelEnv names the environment variable consulted for the
	// default log level.
	LogLevelEnv = "PNM_MCP_LOG_LEVEL"

	defaultLogLevel    = "info"
	defaultOCRLanguage = "eng"
)

var (
	// ErrInvalidLogLevel is returned when log level is not recognized
	ErrInvalidLogLevel = errors.New("log-level must be one of: debug, info, warn, error")
	// ErrInvalidLanguage is returned when the OCR language is empty or malformed
	ErrInvalidLanguage = errors.New("ocr-lang must be one or more tesseract codes joined by '+'")
	// ErrShowHelp is returned when --help flag is requested
	ErrShowHelp = errors.New("help requested")
	// ErrShowVersion is returned when --version flag is requested
	ErrShowVersion = errors.New("version requested")
)

// Config holds all configuration values for the server.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// OCRLanguage is the default Tesseract language for OCR tools.
	OCRLanguage string

	// CacheImages keeps decoded images in memory between tool calls.
	CacheImages bool

	showHelp    bool
	showVersion bool
}

// Parse parses CLI flags into a Config struct.
// It returns ErrShowHelp or ErrShowVersion after printing to output when
// those flags are given.
func Parse(args []string, output io.Writer) (*Config, error) {
	c := &Config{}

	logDefault := defaultLogLevel
	if env := os.Getenv(LogLevelEnv); env != "" {
		logDefault = strings.ToLower(env)
	}

	fs := flag.NewFlagSet("pnm-tools-mcp", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&c.LogLevel, "log-level", logDefault, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.OCRLanguage, "ocr-lang", defaultOCRLanguage, "Default Tesseract language")
	fs.BoolVar(&c.CacheImages, "cache", true, "Cache decoded images between tool calls")
	fs.BoolVar(&c.showHelp, "help", false, "Show help message")
	fs.BoolVar(&c.showVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.showHelp {
		printHelp(output)
		return nil, ErrShowHelp
	}
	if c.showVersion {
		fmt.Fprintf(output, "pnm-tools-mcp %s\n", Version)
		return nil, ErrShowVersion
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	if c.OCRLanguage == "" {
		return ErrInvalidLanguage
	}
	for _, lang := range strings.Split(c.OCRLanguage, "+") {
		if lang == "" || strings.ContainsAny(lang, " /\\") {
			return ErrInvalidLanguage
		}
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `pnm-tools-mcp - MCP server for PGM/PPM raster images

USAGE:
    pnm-tools-mcp [FLAGS]

FLAGS:
    --log-level <LEVEL>    Log level: debug, info, warn, error (default: %s)
    --ocr-lang <LANG>      Default Tesseract language, e.g. eng or eng+deu (default: %s)
    --cache=<BOOL>         Cache decoded images between tool calls (default: true)
    --help                 Show this help message
    --version              Show version information

ENVIRONMENT:
    %s    Default for --log-level

This server communicates via MCP protocol over stdin/stdout.
Configure it in your MCP client.
`, defaultLogLevel, defaultOCRLanguage, LogLevelEnv)
}
