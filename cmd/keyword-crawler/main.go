package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"keyword-crawler/pkg/config"
	"keyword-crawler/pkg/crawler"
	"keyword-crawler/pkg/models"
	"keyword-crawler/pkg/storage"
	"keyword-crawler/pkg/utils"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "crawl":
		runCrawl(os.Args[2:])
	case "history":
		runHistory(os.Args[2:])
	case "version":
		fmt.Printf("keyword-crawler %s\n", version)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printUsageTo(os.Stdout)
}

// printUsageTo writes usage information to the provided writer.
func printUsageTo(w io.Writer) {
	fmt.Fprintln(w, `keyword-crawler - Search the web by keyword and fetch page previews

Usage:
  keyword-crawler <command> [options]

Commands:
  crawl       Run a keyword crawl and write results to a JSON file
  history     List archived crawl runs
  version     Show version info

Run 'keyword-crawler <command> -h' for command-specific help.`)
}

// loadConfig loads and parses the optional config file. An empty path yields
// a zero config (defaults applied later by Validate).
func loadConfig(path string) (*config.AppConfig, error) {
	var cfg config.AppConfig
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// setupLogger creates a configured logrus.Logger with the given log level.
func setupLogger(logLevelStr string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(logLevelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevelStr, err)
	} else {
		log.SetLevel(level)
	}
	return log
}

// runCrawl handles the crawl subcommand.
func runCrawl(args []string) {
	fs := flag.NewFlagSet("crawl", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to optional YAML config file")
	maxResults := fs.Int("max-results", config.DefaultMaxResults, "Number of search results to collect")
	maxPages := fs.Int("max-pages", config.DefaultMaxPages, "Number of result pages to fetch for previews")
	output := fs.String("output", config.DefaultOutputPath, "Output JSON file path")
	delay := fs.Float64("delay", config.DefaultDelay.Seconds(), "Delay between network requests in seconds")
	timeout := fs.Int("timeout", int(config.DefaultTimeout.Seconds()), "Request timeout in seconds")
	stateDir := fs.String("state-dir", "", "Directory for the run history DB (empty disables history)")
	logLevel := fs.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: keyword-crawler crawl [options] <keyword>\n\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyword-crawler crawl \"rust programming\"\n")
		fmt.Fprintf(os.Stderr, "  keyword-crawler crawl -max-results 20 -max-pages 5 -output out.json golang\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	keyword := fs.Arg(0)
	if keyword == "" {
		fmt.Fprintln(os.Stderr, "Error: a keyword argument is required")
		fs.Usage()
		os.Exit(1)
	}

	log := setupLogger(*logLevel)

	// --- Load Configuration ---
	appCfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Command-line flags override file values; flag defaults fill whatever
	// the file left unset.
	visited := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { visited[f.Name] = true })

	if visited["max-results"] || appCfg.MaxResults == 0 {
		appCfg.MaxResults = *maxResults
	}
	if visited["max-pages"] || appCfg.MaxPages == 0 {
		appCfg.MaxPages = *maxPages
	}
	if visited["output"] || appCfg.OutputPath == "" {
		appCfg.OutputPath = *output
	}
	if visited["delay"] || appCfg.Delay == 0 {
		appCfg.Delay = time.Duration(*delay * float64(time.Second))
	}
	if visited["timeout"] || appCfg.Timeout == 0 {
		appCfg.Timeout = time.Duration(*timeout) * time.Second
	}
	if visited["state-dir"] || appCfg.StateDir == "" {
		appCfg.StateDir = *stateDir
	}

	warnings, _ := appCfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}

	os.Exit(executeCrawl(appCfg, keyword, log))
}

// executeCrawl runs the crawl pipeline and writes output.
// Returns the process exit code.
func executeCrawl(appCfg *config.AppConfig, keyword string, log *logrus.Logger) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		log.Warnf("Received signal %v, cancelling crawl...", sig)
		cancel()
	}()

	logEntry := log.WithField("component", "crawl")
	c := crawler.New(appCfg, logEntry)

	results, err := c.Run(ctx, keyword)
	if err != nil {
		if errors.Is(err, utils.ErrSearchUnavailable) {
			log.Errorf("Search failed, no output written: %v", err)
		} else {
			log.Errorf("Crawl failed: %v", err)
		}
		return 1
	}

	if err := crawler.WriteResults(appCfg.OutputPath, results); err != nil {
		log.Errorf("Failed to write output: %v", err)
		return 1
	}

	archiveRun(appCfg, keyword, results, log)

	fmt.Printf("Saved %d results for '%s' to %s\n", len(results), keyword, appCfg.OutputPath)
	return 0
}

// archiveRun stores the completed crawl in the run history DB when a state
// directory is configured. Archive failures are logged but never fail the
// crawl, since the output file is already on disk.
func archiveRun(appCfg *config.AppConfig, keyword string, results []models.SearchResult, log *logrus.Logger) {
	if appCfg.StateDir == "" {
		return
	}

	logEntry := log.WithField("component", "history")
	store, err := storage.NewBadgerStore(appCfg.StateDir, logEntry)
	if err != nil {
		log.Errorf("Could not open run history store: %v", err)
		return
	}
	defer store.Close()

	run := &models.CrawlRun{
		ID:        uuid.NewString(),
		Keyword:   keyword,
		CreatedAt: time.Now().UTC(),
		Results:   results,
	}
	if err := store.SaveRun(run); err != nil {
		log.Errorf("Could not archive run: %v", err)
		return
	}
	logEntry.Infof("Archived run %s (%d results)", run.ID, len(run.Results))
}

// runHistory handles the history subcommand.
func runHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configFile := fs.String("config", "", "Path to optional YAML config file")
	stateDir := fs.String("state-dir", "", "Directory for the run history DB")
	logLevel := fs.String("loglevel", "warn", "Log level (debug, info, warn, error, fatal)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: keyword-crawler history [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	log := setupLogger(*logLevel)

	appCfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if *stateDir != "" {
		appCfg.StateDir = *stateDir
	}
	if appCfg.StateDir == "" {
		fmt.Fprintln(os.Stderr, "Error: -state-dir (or state_dir in the config file) is required")
		os.Exit(1)
	}

	store, err := storage.NewBadgerStore(appCfg.StateDir, log.WithField("component", "history"))
	if err != nil {
		log.Fatalf("Could not open run history store: %v", err)
	}
	defer store.Close()

	os.Exit(printHistory(store, os.Stdout, log))
}

// printHistory lists archived runs to the provided writer.
// Returns the process exit code.
func printHistory(store storage.RunStore, w io.Writer, log *logrus.Logger) int {
	summaries, err := store.ListRuns()
	if err != nil {
		log.Errorf("Could not list runs: %v", err)
		return 1
	}

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No archived runs.")
		return 0
	}

	for _, s := range summaries {
		fmt.Fprintf(w, "%s  %s  %3d results  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.ID, s.ResultCount, s.Keyword)
	}
	return 0
}
