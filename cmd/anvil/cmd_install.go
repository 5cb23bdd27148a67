package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/anvil-mc/anvil/internal/domain-adapters/gateways"
	orchestrators "github.com/anvil-mc/anvil/internal/domain-orchestrators"
	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
	"github.com/anvil-mc/anvil/internal/external-adapters/gpg"
	"github.com/anvil-mc/anvil/internal/external-adapters/yaml"
)

func runInstall(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("install", flag.ExitOnError)
	var (
		version     = fs.String("version", "", "Game version to install the loader for (e.g. 1.20.4)")
		build       = fs.String("build", "latest", "Loader build: latest, recommended, or an exact build id")
		root        = fs.String("root", "", "Package store root (default ~/.anvil)")
		configPath  = fs.String("config", "", "Path to a settings YAML file")
		concurrency = fs.Int("concurrency", 0, "Concurrent library downloads (overrides config)")
		javaPath    = fs.String("java", "", "Java executable for the patch stage (overrides config)")
		verbose     = fs.Bool("verbose", false, "Enable debug logging")
	)
	//nolint:errcheck // ExitOnError flag sets never return an error
	fs.Parse(args)

	if *version == "" {
		fmt.Fprintln(os.Stderr, "Error: -version is required")
		fs.Usage()
		os.Exit(1)
	}

	settings, err := loadSettings(*configPath, *root, *concurrency, *javaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := &interfaces.StderrLogger{Verbose: *verbose}
	observer := newConsoleObserver()

	var verifier orchestrators.SignatureVerifier
	if settings.Verify.Signature {
		v := gpg.NewVerifier()
		if err := v.ImportKeyFromFile(settings.Verify.KeyFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		verifier = v
	}

	orch := orchestrators.NewInstallOrchestrator(
		gateways.NewMetadataFetcher(settings.Endpoints.LegacyVersions, settings.Endpoints.ModernVersions, logger),
		gateways.NewHTTPDownloader(logger),
		gateways.NewZipReader(),
		gateways.NewProcessorRunner(logger),
		verifier,
		*settings,
		observer,
		logger,
	)

	result, err := orch.Install(ctx, *version, *build)
	observer.Done()
	if err != nil {
		observer.Failure(fmt.Sprintf("install failed: %v", err))
		os.Exit(1)
	}

	fmt.Println(result.GetInstallSummary())
}

// loadSettings reads the optional settings file and applies flag overrides.
// The store root defaults to ~/.anvil when neither the file nor the flag set
// one.
func loadSettings(configPath, root string, concurrency int, javaPath string) (*entities.Settings, error) {
	settings := entities.DefaultSettings()
	if configPath != "" {
		parsed, err := yaml.NewSettingsParser().ParseFile(configPath)
		if err != nil {
			return nil, err
		}
		settings = *parsed
	}

	if root != "" {
		settings.Root = root
	}
	if settings.Root == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		settings.Root = filepath.Join(home, ".anvil")
	}
	if concurrency > 0 {
		settings.Concurrency = concurrency
	}
	if javaPath != "" {
		settings.JavaPath = javaPath
	}
	return &settings, nil
}
