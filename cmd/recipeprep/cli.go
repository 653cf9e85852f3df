package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/recipeprep"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config recipeprep.Config
	Logger *slog.Logger

	Fetcher      recipeprep.Fetcher
	Preprocessor recipeprep.Preprocessor
	Converter    recipeprep.Converter
	Meta         recipeprep.MetaExtractor
	TokenCounter recipeprep.TokenCounter
	Metrics      recipeprep.MetricsService
	Excerpts     recipeprep.ExcerptService

	// ExcerptIndex records every excerpt a batch writes to disk.
	ExcerptIndex recipeprep.ExcerptWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config     string        `type:"path" env:"RECIPEPREP_CONFIG" help:"YAML configuration file"`
	DB         string        `type:"path" help:"Database path (default: $RECIPEPREP_DB or ~/.recipeprep/recipeprep.db)"`
	Verbose    bool          `short:"v" help:"Log strategy decisions and metrics to stderr"`
	Timeout    time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Render     bool          `help:"Render pages in headless Chrome before preprocessing"`
	Browser    string        `type:"path" help:"Chrome or Chromium binary used with --render"`
	Tokens     bool          `help:"Report token counts"`
	TokenModel string        `default:"gemini-2.0-flash" help:"Model whose tokenizer is used with --tokens"`

	Clean CleanCmd `cmd:"" help:"Preprocess a single page and print the excerpt"`
	Batch BatchCmd `cmd:"" help:"Preprocess many pages and write excerpts to a directory"`
	Stats StatsCmd `cmd:"" help:"Show recorded strategy and size metrics"`
}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	Source   string `arg:"" help:"URL, file path, or - for stdin"`
	URL      string `help:"Source URL reported for the page (defaults to the source)"`
	Markdown bool   `short:"m" help:"Convert the excerpt to Markdown"`
	JSON     bool   `help:"Print the full result as JSON"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Sources     []string `arg:"" optional:"" help:"URLs or file paths"`
	From        string   `short:"f" type:"existingfile" help:"File listing sources, one per line"`
	Out         string   `short:"o" type:"path" default:"." help:"Base directory for output"`
	Name        string   `short:"n" default:"excerpts" help:"Output directory name"`
	Markdown    bool     `short:"m" help:"Convert excerpts to Markdown"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	Rate        float64  `default:"1" help:"Requests per second per host (0 disables)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Recent int `short:"r" default:"0" help:"Also list the N most recent excerpts"`
}
