// Package orchestrators coordinates the loader install workflow across the
// metadata, download, archive, and patch gateways.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
	"github.com/anvil-mc/anvil/internal/domain/services"
)

// MetadataSource lists the available loader builds per metadata API.
type MetadataSource interface {
	LegacyVersions(ctx context.Context) ([]string, error)
	ModernVersions(ctx context.Context) ([]string, error)
}

// FileDownloader interface for single, batch, and mirror-aware downloads.
// Implementations must invoke progress callbacks serially, never from more
// than one goroutine at a time, so observers stay free of locking.
type FileDownloader interface {
	DownloadFile(ctx context.Context, url, dest string, fallbackSize int64, progress interfaces.ProgressFunc) error
	DownloadBatch(ctx context.Context, tasks []entities.DownloadTask, totalSize int64, width int, progress interfaces.ProgressFunc) error
	CheckMirror(ctx context.Context, relPath string, mirrors []string) (*entities.MirrorHit, error)
}

// ArchiveReader interface for reading installer archives. Absent entries are
// reported as nil, never as errors.
type ArchiveReader interface {
	ReadEntry(archivePath, entryName string) ([]byte, error)
	ListEntries(archivePath, pathPrefix string) ([]string, error)
	ExtractEntry(archivePath, entryName, destPath string) error
}

// PatchEngine interface for the external post-processing engine
type PatchEngine interface {
	IsPatched(profile *entities.Profile, cfg entities.PatchConfig) bool
	Apply(ctx context.Context, profile *entities.Profile, cfg entities.PatchConfig, legacyAPI bool, events interfaces.Observer) error
}

// SignatureVerifier interface for optional installer signature checks
type SignatureVerifier interface {
	VerifyDetached(ctx context.Context, filePath, sigURL string) error
}

// InstallOrchestrator runs the install pipeline for one loader build: version
// classification, build selection, installer fetch, profile extraction,
// library materialization and resolution, and the patch stage. Stages run
// strictly sequentially; only the library batch download fans out. A single
// orchestrator instance owns its profile and derived collections for the
// duration of one run; concurrent runs against the same store are not
// supported.
type InstallOrchestrator struct {
	metadata   MetadataSource
	downloader FileDownloader
	archive    ArchiveReader
	patcher    PatchEngine
	verifier   SignatureVerifier
	settings   entities.Settings
	observer   interfaces.Observer
	logger     interfaces.Logger
}

// NewInstallOrchestrator creates a new install orchestrator. verifier may be
// nil when signature verification is disabled; observer and logger default to
// no-ops.
func NewInstallOrchestrator(
	metadata MetadataSource,
	downloader FileDownloader,
	archive ArchiveReader,
	patcher PatchEngine,
	verifier SignatureVerifier,
	settings entities.Settings,
	observer interfaces.Observer,
	logger interfaces.Logger,
) *InstallOrchestrator {
	if observer == nil {
		observer = &interfaces.NoOpObserver{}
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &InstallOrchestrator{
		metadata:   metadata,
		downloader: downloader,
		archive:    archive,
		patcher:    patcher,
		verifier:   verifier,
		settings:   settings,
		observer:   observer,
		logger:     logger,
	}
}

// InstallResult contains the result of one install run
type InstallResult struct {
	Classification entities.VersionClassification
	Build          *entities.SelectedBuild
	Installer      *entities.InstallerArtifact
	Profile        *entities.Profile
	Libraries      []entities.Library
	Patched        bool

	FetchDuration   time.Duration
	ResolveDuration time.Duration
	PatchDuration   time.Duration
	TotalDuration   time.Duration

	Success bool
	Error   error
}

// Install executes the complete install workflow for a game version and a
// requested loader build ("latest", "recommended", or an exact build id).
// Each stage can short-circuit the pipeline; later stages are not attempted.
func (o *InstallOrchestrator) Install(ctx context.Context, version, build string) (*InstallResult, error) {
	startTime := time.Now()
	result := &InstallResult{}

	// Step 1: classify the game version
	result.Classification = services.Classify(version)
	o.logger.Debug("classified version",
		interfaces.F("version", version),
		interfaces.F("kind", result.Classification.Kind))

	// Step 2: select a build across the two metadata APIs
	selected, err := o.selectBuild(ctx, result.Classification, version, build)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Build = selected

	// Step 3: fetch the installer artifact (idempotent)
	fetchStart := time.Now()
	artifact, err := o.fetchInstaller(ctx, selected)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Installer = artifact
	result.FetchDuration = time.Since(fetchStart)

	// Step 4: extract and normalize the profile
	profile, err := o.extractProfile(artifact)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Profile = profile

	// Step 5: materialize loader-owned files into the package store
	skipLoader, err := o.materializeLoaderFiles(profile, artifact)
	if err != nil {
		result.Error = err
		return result, result.Error
	}

	// Step 6: resolve and download the library set
	resolveStart := time.Now()
	libraries, err := o.resolveLibraries(ctx, profile, skipLoader)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Libraries = libraries
	result.ResolveDuration = time.Since(resolveStart)

	// Step 7: patch stage, when the profile declares processors
	patchStart := time.Now()
	patched, err := o.runPatchStage(ctx, profile, artifact)
	if err != nil {
		result.Error = err
		return result, result.Error
	}
	result.Patched = patched
	result.PatchDuration = time.Since(patchStart)

	result.Success = true
	result.TotalDuration = time.Since(startTime)
	return result, nil
}

// selectBuild fetches the metadata documents and picks the concrete build.
// The legacy document is only consulted for release versions; every other
// kind resolves against the modern API alone.
func (o *InstallOrchestrator) selectBuild(ctx context.Context, c entities.VersionClassification, version, build string) (*entities.SelectedBuild, error) {
	var legacy []string
	if c.Kind == entities.KindRelease {
		var err error
		legacy, err = o.metadata.LegacyVersions(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch legacy build list: %w", err)
		}
	}
	modern, err := o.metadata.ModernVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modern build list: %w", err)
	}

	candidates, legacyAPI, err := services.Candidates(c, version, legacy, modern)
	if err != nil {
		return nil, err
	}
	return services.SelectBuild(version, build, candidates, legacyAPI)
}

func (o *InstallOrchestrator) librariesDir() string {
	return filepath.Join(o.settings.Root, "libraries")
}

// GetInstallSummary returns a human-readable summary of the install
func (r *InstallResult) GetInstallSummary() string {
	if !r.Success {
		return fmt.Sprintf("Install failed: %v", r.Error)
	}

	summary := fmt.Sprintf(`Install successful!
Build: %s
Libraries: %d
Fetch: %v
Resolve: %v
Total: %v`,
		r.Build.ID,
		len(r.Libraries),
		r.FetchDuration,
		r.ResolveDuration,
		r.TotalDuration,
	)

	if r.Patched {
		summary += fmt.Sprintf("\nPatch stage: done in %v", r.PatchDuration)
	}
	return summary
}
