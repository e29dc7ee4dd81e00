// Command showkit extracts component metadata from a React/TypeScript
// source tree and serves it to showcase hosts and coding agents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mde-pach/showkit/pkg/meta"
	mcpserver "github.com/mde-pach/showkit/pkg/mcp"
	"github.com/mde-pach/showkit/pkg/pipeline"
	"github.com/mde-pach/showkit/pkg/util"
	"github.com/mde-pach/showkit/pkg/watch"
)

const version = "0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch command := os.Args[1]; command {
	case "scan":
		err = runScan(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "inspect":
		err = runInspect(os.Args[2:])
	case "version":
		fmt.Printf("showkit %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: showkit <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan       Extract component metadata and write the document")
	fmt.Println("  serve      Start the MCP server over a metadata document")
	fmt.Println("  watch      Re-run extraction on source changes")
	fmt.Println("  inspect    Show one component's props and usage")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}

type commonFlags struct {
	configPath string
	logLevel   string
	jsonLogs   bool
}

func (cf *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&cf.configPath, "config", "", "path to showkit.json (default: ./showkit.json when present)")
	fs.StringVar(&cf.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&cf.jsonLogs, "json-logs", false, "emit logs as JSON")
}

func (cf *commonFlags) logger() *slog.Logger {
	lc := util.DefaultLoggerConfig()
	lc.Level = util.LogLevel(cf.logLevel)
	if cf.jsonLogs {
		lc.Format = util.FormatJSON
	}
	return util.NewLogger(lc)
}

func runScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	var cf commonFlags
	cf.register(fs)
	root := fs.String("root", ".", "project root to scan")
	out := fs.String("out", "", "metadata output path (default from config)")
	loaderOut := fs.String("loader-out", "", "loader spec output path (default: alongside the document)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := cf.logger()
	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		return err
	}
	if *out != "" {
		cfg.OutputPath = *out
	}

	result, err := runPipeline(cfg, logger, *root)
	if err != nil {
		return err
	}
	return writeOutputs(cfg, logger, result, *loaderOut)
}

func runPipeline(cfg pipeline.Config, logger *slog.Logger, root string) (*pipeline.Result, error) {
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer p.Close()
	return p.Run(context.Background(), root)
}

func writeOutputs(cfg pipeline.Config, logger *slog.Logger, result *pipeline.Result, loaderOut string) error {
	if err := result.Document.SaveToFile(cfg.OutputPath); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if loaderOut == "" {
		loaderOut = loaderPathFor(cfg.OutputPath)
	}
	data, err := json.MarshalIndent(result.Loader, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal loader spec: %w", err)
	}
	if err := os.WriteFile(loaderOut, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write loader spec: %w", err)
	}

	for _, w := range result.Warnings {
		if w.Soft {
			logger.Warn("extraction fallback", "file", w.File, "message", w.Message)
		} else {
			logger.Warn("extraction warning", "file", w.File, "message", w.Message)
		}
	}
	logger.Info("documents written",
		"document", cfg.OutputPath,
		"loader", loaderOut,
		"components", len(result.Document.Components),
		"warnings", len(result.Warnings))
	return nil
}

// loaderPathFor derives the loader spec path from the document path:
// showkit.meta.json becomes showkit.loader.json.
func loaderPathFor(docPath string) string {
	if rest, ok := strings.CutSuffix(docPath, ".meta.json"); ok {
		return rest + ".loader.json"
	}
	if rest, ok := strings.CutSuffix(docPath, ".json"); ok {
		return rest + ".loader.json"
	}
	return docPath + ".loader.json"
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var cf commonFlags
	cf.register(fs)
	metaPath := fs.String("meta", "showkit.meta.json", "metadata document to serve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	util.SetDefault(cf.logger())

	qs, err := meta.LoadAndQuery(*metaPath)
	if err != nil {
		return fmt.Errorf("load metadata document: %w", err)
	}
	srv := mcpserver.NewServer(qs, nil, nil)
	return srv.ServeStdio()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var cf commonFlags
	cf.register(fs)
	root := fs.String("root", ".", "project root to watch")
	debounce := fs.Int("debounce", 200, "debounce window in milliseconds")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := cf.logger()
	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		return err
	}

	rebuild := func() error {
		result, err := runPipeline(cfg, logger, *root)
		if err != nil {
			return err
		}
		return writeOutputs(cfg, logger, result, "")
	}

	// initial pass before watching
	if err := rebuild(); err != nil {
		return err
	}

	opts := watch.DefaultOptions()
	opts.DebounceMs = *debounce
	opts.IgnoreBasenames = cfg.ExcludedBasenames
	w, err := watch.New(rebuild, opts, logger)
	if err != nil {
		return err
	}
	defer w.Stop()
	if err := w.Start(*root); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var cf commonFlags
	cf.register(fs)
	metaPath := fs.String("meta", "showkit.meta.json", "metadata document to read")
	showExamples := fs.Bool("examples", false, "include example snippets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: showkit inspect [flags] <ComponentName>")
	}
	name := fs.Arg(0)

	qs, err := meta.LoadAndQuery(*metaPath)
	if err != nil {
		return fmt.Errorf("load metadata document: %w", err)
	}
	c, ok := qs.Get(name)
	if !ok {
		suggestions := qs.Search(name)
		if len(suggestions) > 0 {
			names := make([]string, 0, len(suggestions))
			for _, s := range suggestions {
				names = append(names, s.Name)
			}
			return fmt.Errorf("component %q not found; did you mean: %s", name, strings.Join(names, ", "))
		}
		return fmt.Errorf("component %q not found", name)
	}

	printComponent(os.Stdout, c, *showExamples)
	return nil
}
