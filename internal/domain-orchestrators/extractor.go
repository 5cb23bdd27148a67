package orchestrators

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// profileEntryName is the manifest entry every installer artifact carries.
const profileEntryName = "install_profile.json"

// extractProfile reads the embedded manifest and normalizes its two possible
// shapes into one Profile. Older installers wrap everything in
// "install"/"versionInfo" keys; newer ones put the install manifest at the
// top level and reference a secondary version manifest file.
func (o *InstallOrchestrator) extractProfile(artifact *entities.InstallerArtifact) (*entities.Profile, error) {
	data, err := o.archive.ReadEntry(artifact.Path, profileEntryName)
	if err != nil {
		return nil, fmt.Errorf("failed to read installer: %w", err)
	}
	if data == nil {
		return nil, &entities.InvalidInstallerError{Reason: "missing " + profileEntryName}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &entities.InvalidInstallerError{Reason: fmt.Sprintf("unparsable %s: %v", profileEntryName, err)}
	}

	profile := &entities.Profile{}

	if rawInstall, ok := probe["install"]; ok {
		if err := json.Unmarshal(rawInstall, &profile.Install); err != nil {
			return nil, &entities.InvalidInstallerError{Reason: fmt.Sprintf("unparsable install manifest: %v", err)}
		}
		rawVersion, ok := probe["versionInfo"]
		if !ok {
			return nil, &entities.InvalidInstallerError{Reason: "manifest carries install but no versionInfo"}
		}
		if err := json.Unmarshal(rawVersion, &profile.Version); err != nil {
			return nil, &entities.InvalidInstallerError{Reason: fmt.Sprintf("unparsable versionInfo: %v", err)}
		}
		return profile, nil
	}

	if err := json.Unmarshal(data, &profile.Install); err != nil {
		return nil, &entities.InvalidInstallerError{Reason: fmt.Sprintf("unparsable install manifest: %v", err)}
	}
	if profile.Install.JSON == "" {
		return nil, &entities.InvalidInstallerError{Reason: "manifest declares no version manifest reference"}
	}

	// The reference is a path like "/version.json"; only its base name exists
	// inside the archive.
	name := path.Base(strings.TrimPrefix(profile.Install.JSON, "/"))
	versionData, err := o.archive.ReadEntry(artifact.Path, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read installer: %w", err)
	}
	if versionData == nil {
		return nil, &entities.InvalidInstallerError{Reason: "unable to read additional manifest " + name}
	}
	if err := json.Unmarshal(versionData, &profile.Version); err != nil {
		return nil, &entities.InvalidInstallerError{Reason: fmt.Sprintf("unparsable version manifest %s: %v", name, err)}
	}
	return profile, nil
}
