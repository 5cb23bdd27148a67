package orchestrators

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// mavenSubtreePrefix is where installers without a direct file path keep
// their loader-owned artifacts.
const mavenSubtreePrefix = "maven/"

// clientDataEntry is the installer's embedded client patch payload.
const clientDataEntry = "data/client.lzma"

// materializeLoaderFiles extracts loader-owned payloads from the installer
// into the package store and decides whether the resolver should later skip
// loader-core library names. Installers that ship their own loader files
// (either a single filePath entry or a maven/ subtree) set that flag; bare
// manifests leave every library to the resolver.
func (o *InstallOrchestrator) materializeLoaderFiles(profile *entities.Profile, artifact *entities.InstallerArtifact) (bool, error) {
	skipLoader := false

	switch {
	case profile.Install.FilePath != "":
		dest, err := o.loaderFileDest(profile)
		if err != nil {
			return false, err
		}
		if err := o.archive.ExtractEntry(artifact.Path, profile.Install.FilePath, dest); err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", profile.Install.FilePath, err)
		}
		o.observer.Extract("extracted " + filepath.Base(dest))
		skipLoader = true

	case profile.Install.Path != "":
		entries, err := o.archive.ListEntries(artifact.Path, mavenSubtreePrefix)
		if err != nil {
			return false, fmt.Errorf("failed to enumerate loader files: %w", err)
		}
		for _, entry := range entries {
			rel := strings.TrimPrefix(entry, mavenSubtreePrefix)
			dest := filepath.Join(o.librariesDir(), filepath.FromSlash(rel))
			if err := o.archive.ExtractEntry(artifact.Path, entry, dest); err != nil {
				return false, fmt.Errorf("failed to extract %s: %w", entry, err)
			}
			o.observer.Extract("extracted " + path.Base(entry))
		}
		skipLoader = true
	}

	if len(profile.Install.Processors) > 0 {
		if err := o.extractClientData(profile, artifact); err != nil {
			return skipLoader, err
		}
	}
	return skipLoader, nil
}

// loaderFileDest computes where a direct-filePath loader jar lands: the maven
// location of the install coordinate when declared, the entry's own base name
// under the libraries root otherwise.
func (o *InstallOrchestrator) loaderFileDest(profile *entities.Profile) (string, error) {
	if profile.Install.Path != "" {
		rel, err := entities.MavenPath(profile.Install.Path)
		if err != nil {
			return "", fmt.Errorf("invalid loader coordinate: %w", err)
		}
		return filepath.Join(o.librariesDir(), filepath.FromSlash(rel)), nil
	}
	return filepath.Join(o.librariesDir(), filepath.Base(profile.Install.FilePath)), nil
}

// extractClientData places the installer's client patch payload beside the
// loader library so the patch stage can find it by convention. Nothing is
// extracted when the archive carries no payload or the runtime manifest has
// no loader entry.
func (o *InstallOrchestrator) extractClientData(profile *entities.Profile, artifact *entities.InstallerArtifact) error {
	prefix := entities.ModernLoaderPrefix
	if artifact.LegacyAPI {
		prefix = entities.LegacyLoaderPrefix
	}

	var loaderLib *entities.Library
	for i := range profile.Version.Libraries {
		if strings.HasPrefix(profile.Version.Libraries[i].Name, prefix) {
			loaderLib = &profile.Version.Libraries[i]
			break
		}
	}
	if loaderLib == nil {
		return nil
	}

	data, err := o.archive.ReadEntry(artifact.Path, clientDataEntry)
	if err != nil {
		return fmt.Errorf("failed to read installer: %w", err)
	}
	if data == nil {
		return nil
	}

	rel, err := entities.MavenPath(loaderLib.Name)
	if err != nil {
		return fmt.Errorf("invalid loader library coordinate: %w", err)
	}
	rel = strings.TrimSuffix(rel, ".jar") + "-clientdata.lzma"
	dest := filepath.Join(o.librariesDir(), filepath.FromSlash(rel))

	if err := writeFile(dest, data); err != nil {
		return fmt.Errorf("failed to write client data: %w", err)
	}
	o.observer.Extract("extracted " + filepath.Base(dest))
	return nil
}
