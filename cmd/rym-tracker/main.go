package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexmv/rym-release-tracker/internal/config"
	"github.com/alexmv/rym-release-tracker/internal/pipeline"
)

func main() {
	// Command line flags
	var (
		pagesFlag   = flag.String("pages", "", "Directory of saved pages (overrides config)")
		outputFlag  = flag.String("output", "", "Output directory for snapshots and reports (overrides config)")
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		noOpenFlag  = flag.Bool("no-open", false, "Do not open the report in a browser")
		dryRunFlag  = flag.Bool("dry-run", false, "Parse and diff without writing snapshot or report")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	settings.ApplyEnv()

	// Apply flags
	if *pagesFlag != "" {
		settings.PagesDir = *pagesFlag
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if *noOpenFlag {
		settings.OpenReport = false
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := pipeline.NewManager(settings, func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "❌ "
		case pipeline.LevelWarning:
			prefix = "⚠️  "
		case pipeline.LevelSuccess:
			prefix = "✅ "
		case pipeline.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎵 RYM Release Tracker")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println()

	summary, err := manager.Run(ctx, *dryRunFlag)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nRun cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Done! %d pages processed, %d skipped\n", summary.FilesProcessed, len(summary.Skipped))
	fmt.Printf("   %d releases extracted, %d duplicates removed\n", summary.Extracted, summary.DuplicatesRemoved)
	fmt.Printf("   %d new releases found\n", len(summary.NewReleases))
	for _, skipped := range summary.Skipped {
		fmt.Printf("   ⚠️  skipped %s: %s\n", skipped.Name, skipped.Reason)
	}
	if summary.SnapshotPath != "" {
		fmt.Printf("   Snapshot: %s\n", summary.SnapshotPath)
	}
	if summary.ReportPath != "" {
		fmt.Printf("   Report:   %s\n", summary.ReportPath)
	}
}
