package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/recipeprep"
	"github.com/fwojciec/recipeprep/fs"
	"github.com/fwojciec/recipeprep/gemini"
	"github.com/fwojciec/recipeprep/goquery"
	"github.com/fwojciec/recipeprep/htmltomarkdown"
	rphttp "github.com/fwojciec/recipeprep/http"
	"github.com/fwojciec/recipeprep/pipeline"
	"github.com/fwojciec/recipeprep/readability"
	"github.com/fwojciec/recipeprep/rod"
	rpslog "github.com/fwojciec/recipeprep/slog"
	"github.com/fwojciec/recipeprep/sqlite"
	"github.com/fwojciec/recipeprep/trafilatura"
	"github.com/fwojciec/recipeprep/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read by "clean -". Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipeprep"),
		kong.Description("Reduce recipe web pages to the content that matters"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipeprep --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := yaml.LoadConfigFile(cli.Config)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set RECIPEPREP_CONFIG to a valid YAML configuration file")
		return fmt.Errorf("failed to load config: %s", recipeprep.ErrorMessage(err))
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := m.DBPath
	if cli.DB != "" {
		dbPath = cli.DB
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set RECIPEPREP_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	metricsStore := sqlite.NewMetricsStore(m.DB)
	excerptStore := sqlite.NewExcerptStore(m.DB)
	deps.Metrics = metricsStore
	deps.Excerpts = excerptStore
	deps.ExcerptIndex = excerptStore

	sink := rpslog.MultiMetrics{rpslog.NewMetrics(deps.Logger), metricsStore}
	strategies := rpslog.WrapStrategies(goquery.NewStrategies(cfg), deps.Logger)
	deps.Preprocessor = rpslog.NewLoggingPreprocessor(pipeline.New(cfg, strategies, sink), deps.Logger)

	web, err := newWebFetcher(cli, strings.HasPrefix(kongCtx.Command(), "batch"))
	if err != nil {
		fmt.Fprintln(stderr, "Hint: --render requires Chrome or Chromium; use --browser to point at the binary")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	deps.Fetcher = &sourceFetcher{
		web:   rpslog.NewLoggingFetcher(web, deps.Logger),
		files: fs.NewFetcher(),
	}
	defer deps.Fetcher.Close()

	deps.Converter = htmltomarkdown.NewConverter()
	deps.Meta = recipeprep.MetaExtractors{trafilatura.NewMetaExtractor(), readability.NewMetaExtractor()}

	if cli.Tokens {
		tokenCounter, err := gemini.NewTokenCounter(cli.TokenModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %s", recipeprep.ErrorMessage(err))
		}
		deps.TokenCounter = tokenCounter
	}

	return kongCtx.Run(deps)
}

// newWebFetcher returns the browser-backed fetcher when rendering is
// requested and the plain HTTP fetcher otherwise. Only batch runs are rate
// limited.
func newWebFetcher(cli *CLI, batch bool) (recipeprep.Fetcher, error) {
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithBrowser(cli.Browser))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	opts := []rphttp.Option{rphttp.WithTimeout(cli.Timeout)}
	if batch {
		opts = append(opts, rphttp.WithRateLimit(cli.Batch.Rate))
	}
	return rphttp.NewFetcher(opts...), nil
}

func defaultDBPath() string {
	if path := os.Getenv("RECIPEPREP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipeprep.db"
	}
	dir := filepath.Join(home, ".recipeprep")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "recipeprep.db")
}
