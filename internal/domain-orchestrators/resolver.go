package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
)

// loaderCoreNames are the coordinates the filter flag suppresses: loader-core
// jars that the installer already materialized. They are only skipped when
// they carry no direct download URL of their own.
var loaderCoreNames = []string{
	entities.ForgeLoaderPrefix,
	entities.LegacyLoaderPrefix,
}

// resolveLibraries merges, dedups, and resolves the profile's library set,
// then submits everything missing from the store as one concurrent batch.
// Evaluation is strictly sequential in manifest order so dedup and the
// reported check indices stay deterministic; only the queued downloads run
// concurrently. Returns the deduplicated library list for downstream
// consumers (minus loader-core entries removed by the filter flag).
func (o *InstallOrchestrator) resolveLibraries(ctx context.Context, profile *entities.Profile, skipLoader bool) ([]entities.Library, error) {
	merged := make([]entities.Library, 0, len(profile.Version.Libraries)+len(profile.Install.Libraries))
	merged = append(merged, profile.Version.Libraries...)
	merged = append(merged, profile.Install.Libraries...)
	deduped := dedupLibraries(merged)

	var kept []entities.Library
	var tasks []entities.DownloadTask
	var totalSize int64

	total := len(deduped)
	for i, lib := range deduped {
		o.observer.Check(i+1, total, "libraries")

		if skipLoader && isLoaderCore(lib.Name) && !lib.HasArtifactURL() {
			continue
		}
		kept = append(kept, lib)

		// Rule-carrying libraries are never evaluated; they stay in the
		// returned list but are not downloaded.
		if len(lib.Rules) > 0 {
			continue
		}

		rel, err := lib.ArtifactRelPath()
		if err != nil {
			return nil, &entities.UnresolvableLibraryError{Name: lib.Name}
		}
		dest := filepath.Join(o.librariesDir(), filepath.FromSlash(rel))
		if _, err := os.Stat(dest); err == nil {
			continue
		}

		url, size, sha1, err := o.resolveSource(ctx, &lib, rel)
		if err != nil {
			return nil, err
		}

		tasks = append(tasks, entities.DownloadTask{
			URL:    url,
			Folder: filepath.Dir(dest),
			Path:   dest,
			Name:   path.Base(rel),
			Size:   size,
			SHA1:   sha1,
		})
		totalSize += size
	}

	if len(tasks) > 0 {
		o.logger.Info("downloading libraries",
			interfaces.F("count", len(tasks)),
			interfaces.F("bytes", totalSize))

		err := o.downloader.DownloadBatch(ctx, tasks, totalSize, o.settings.Concurrency, func(downloaded, total int64) {
			o.observer.Progress(downloaded, total, "libraries")
		})
		if err != nil {
			return nil, fmt.Errorf("library download failed: %w", err)
		}
	}

	return kept, nil
}

// resolveSource picks a download location: the mirror wins whenever it
// answers, the library's own declared artifact is the fallback, and having
// neither fails the whole resolution.
func (o *InstallOrchestrator) resolveSource(ctx context.Context, lib *entities.Library, rel string) (url string, size int64, sha1 string, err error) {
	if a := lib.Artifact(); a != nil {
		sha1 = a.SHA1
	}

	if len(o.settings.Mirrors) > 0 {
		hit, mirrorErr := o.downloader.CheckMirror(ctx, rel, o.settings.Mirrors)
		if mirrorErr == nil && hit != nil {
			return hit.URL, hit.Size, sha1, nil
		}
		// Mirror failures fall through to the declared artifact.
	}

	if a := lib.Artifact(); a != nil && a.URL != "" {
		return a.URL, a.Size, sha1, nil
	}
	return "", 0, "", &entities.UnresolvableLibraryError{Name: lib.Name}
}

// dedupLibraries keeps the first occurrence of each coordinate name,
// preserving order. Running it on already-deduplicated input is a no-op.
func dedupLibraries(libs []entities.Library) []entities.Library {
	seen := make(map[string]bool, len(libs))
	out := make([]entities.Library, 0, len(libs))
	for _, lib := range libs {
		if seen[lib.Name] {
			continue
		}
		seen[lib.Name] = true
		out = append(out, lib)
	}
	return out
}

func isLoaderCore(name string) bool {
	for _, prefix := range loaderCoreNames {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func writeFile(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0640)
}
