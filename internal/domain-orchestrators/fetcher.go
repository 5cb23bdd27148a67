package orchestrators

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anvil-mc/anvil/internal/domain/entities"
	"github.com/anvil-mc/anvil/internal/domain/interfaces"
	"github.com/anvil-mc/anvil/internal/domain/services"
)

// fetchInstaller downloads the installer jar for the selected build into the
// package store, skipping the network entirely when the file is already
// cached. The cache path is deterministic from the build id, so re-runs are
// idempotent without hashing.
func (o *InstallOrchestrator) fetchInstaller(ctx context.Context, build *entities.SelectedBuild) (*entities.InstallerArtifact, error) {
	dest := o.installerPath(build)

	if _, err := os.Stat(dest); err == nil {
		o.logger.Debug("installer already cached", interfaces.F("path", dest))
		return &entities.InstallerArtifact{Path: dest, LegacyAPI: build.LegacyAPI}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return nil, fmt.Errorf("failed to create installer directory: %w", err)
	}

	url := o.installerURL(build)
	name := filepath.Base(dest)
	o.logger.Info("downloading installer", interfaces.F("build", build.ID), interfaces.F("url", url))

	err := o.downloader.DownloadFile(ctx, url, dest, 0, func(downloaded, total int64) {
		o.observer.Progress(downloaded, total, name)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download installer: %w", err)
	}

	if o.settings.Verify.Signature && o.verifier != nil {
		if err := o.verifier.VerifyDetached(ctx, dest, url+".asc"); err != nil {
			return nil, fmt.Errorf("installer signature verification failed: %w", err)
		}
	}

	return &entities.InstallerArtifact{Path: dest, LegacyAPI: build.LegacyAPI}, nil
}

// installerPath computes the deterministic cache location for a build. The
// loader artifact name follows the API generation that produced the build.
func (o *InstallOrchestrator) installerPath(build *entities.SelectedBuild) string {
	name := "neoforge"
	if build.LegacyAPI {
		name = "forge"
	}
	file := fmt.Sprintf("%s-%s-installer.jar", name, build.ID)
	return filepath.Join(o.librariesDir(), "net", "neoforged", name, build.ID, file)
}

func (o *InstallOrchestrator) installerURL(build *entities.SelectedBuild) string {
	template := o.settings.Endpoints.ModernInstaller
	if build.LegacyAPI {
		template = o.settings.Endpoints.LegacyInstaller
	}
	return services.InstallerURL(template, build.ID)
}
