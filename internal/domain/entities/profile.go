package entities

import "encoding/json"

// Profile is the normalized manifest extracted from an installer artifact.
// Installers embed it in two shapes: newer ones ship the install manifest at
// the top level plus a separate version manifest file; older ones wrap both in
// a single document under "install"/"versionInfo" keys. Extraction resolves
// the shape once, so later stages never probe for it.
type Profile struct {
	Install InstallManifest
	Version VersionManifest
}

// InstallManifest holds installer-stage metadata.
type InstallManifest struct {
	Profile   string `json:"profile,omitempty"`
	Version   string `json:"version,omitempty"`
	Minecraft string `json:"minecraft,omitempty"`

	// JSON references the secondary version manifest inside the archive,
	// e.g. "/version.json". Only set by top-level-shape installers.
	JSON string `json:"json,omitempty"`

	// FilePath is a direct archive entry holding the loader jar itself.
	FilePath string `json:"filePath,omitempty"`

	// Path is the loader's maven coordinate; when FilePath is absent the
	// loader files live under the archive's maven/ subtree instead.
	Path string `json:"path,omitempty"`

	Libraries  []Library             `json:"libraries,omitempty"`
	Processors []Processor           `json:"processors,omitempty"`
	Data       map[string]SidedValue `json:"data,omitempty"`
}

// VersionManifest lists the libraries contributing to the runtime classpath.
type VersionManifest struct {
	ID                 string          `json:"id,omitempty"`
	InheritsFrom       string          `json:"inheritsFrom,omitempty"`
	MainClass          string          `json:"mainClass,omitempty"`
	MinecraftArguments string          `json:"minecraftArguments,omitempty"`
	Arguments          json.RawMessage `json:"arguments,omitempty"`
	Libraries          []Library       `json:"libraries"`
}

// Processor is one post-processing step delegated to the patch engine.
type Processor struct {
	Jar       string            `json:"jar"`
	Classpath []string          `json:"classpath,omitempty"`
	Args      []string          `json:"args,omitempty"`
	Sides     []string          `json:"sides,omitempty"`
	Outputs   map[string]string `json:"outputs,omitempty"`
}

// ClientSide reports whether the processor applies to the client install.
// Processors without an explicit side list apply everywhere.
func (p *Processor) ClientSide() bool {
	if len(p.Sides) == 0 {
		return true
	}
	for _, s := range p.Sides {
		if s == "client" {
			return true
		}
	}
	return false
}

// SidedValue is a patch-stage substitution variable with per-side values.
type SidedValue struct {
	Client string `json:"client"`
	Server string `json:"server"`
}
