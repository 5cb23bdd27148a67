package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/anvil-mc/anvil/internal/domain-adapters/gateways"
	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
	"github.com/anvil-mc/anvil/internal/domain/services"
	"github.com/anvil-mc/anvil/internal/external-adapters/yaml"
)

func runBuilds(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("builds", flag.ExitOnError)
	var (
		version    = fs.String("version", "", "Game version to list loader builds for")
		configPath = fs.String("config", "", "Path to a settings YAML file")
		verbose    = fs.Bool("verbose", false, "Enable debug logging")
	)
	//nolint:errcheck // ExitOnError flag sets never return an error
	fs.Parse(args)

	if *version == "" {
		fmt.Fprintln(os.Stderr, "Error: -version is required")
		fs.Usage()
		os.Exit(1)
	}

	settings := entities.DefaultSettings()
	if *configPath != "" {
		parsed, err := yaml.NewSettingsParser().ParseFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		settings = *parsed
	}

	logger := &interfaces.StderrLogger{Verbose: *verbose}
	fetcher := gateways.NewMetadataFetcher(settings.Endpoints.LegacyVersions, settings.Endpoints.ModernVersions, logger)

	classification := services.Classify(*version)

	var legacy []string
	if classification.Kind == entities.KindRelease {
		var err error
		legacy, err = fetcher.LegacyVersions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	modern, err := fetcher.ModernVersions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	candidates, legacyAPI, err := services.Candidates(classification, *version, legacy, modern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	api := "modern"
	if legacyAPI {
		api = "legacy"
	}
	fmt.Printf("Builds for %s (%s API):\n", *version, api)
	for i, c := range candidates {
		marker := ""
		if i == len(candidates)-1 {
			marker = "  (latest)"
		}
		fmt.Printf("  %s%s\n", c, marker)
	}
}
