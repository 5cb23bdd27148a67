package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// runPatchStage coordinates the external patch engine. Profiles without
// processors need no patching; profiles the engine already completed are not
// re-patched. Any engine error is fatal to the pipeline. Returns whether the
// install ends in a patched state.
func (o *InstallOrchestrator) runPatchStage(ctx context.Context, profile *entities.Profile, artifact *entities.InstallerArtifact) (bool, error) {
	if len(profile.Install.Processors) == 0 {
		return false, nil
	}

	cfg := o.patchConfig(profile)
	if o.patcher.IsPatched(profile, cfg) {
		o.logger.Debug("patch stage already complete")
		return true, nil
	}

	if err := o.patcher.Apply(ctx, profile, cfg, artifact.LegacyAPI, o.observer); err != nil {
		return false, fmt.Errorf("patch stage failed: %w", err)
	}
	return true, nil
}

// patchConfig builds the minimal engine configuration: the java runtime and
// the base client jar and manifest the processors transform.
func (o *InstallOrchestrator) patchConfig(profile *entities.Profile) entities.PatchConfig {
	base := profile.Install.Minecraft
	if base == "" {
		base = profile.Version.InheritsFrom
	}
	return entities.PatchConfig{
		JavaPath:     o.settings.JavaPath,
		ClientJar:    filepath.Join(o.settings.Root, "versions", base, base+".jar"),
		ClientJSON:   filepath.Join(o.settings.Root, "versions", base, base+".json"),
		LibrariesDir: o.librariesDir(),
		Root:         o.settings.Root,
	}
}
