package entities

// Loader maven coordinates. The modern metadata API serves builds of the
// "neoforge" artifact; the legacy API serves forge-style "<mc-version>-<build>"
// entries for the transitional 1.20.1 line.
const (
	// LegacyLoaderPrefix is the loader coordinate prefix used by legacy-API builds.
	LegacyLoaderPrefix = "net.neoforged:forge"
	// ModernLoaderPrefix is the loader coordinate prefix used by modern-API builds.
	ModernLoaderPrefix = "net.neoforged:neoforge"
	// ForgeLoaderPrefix is the upstream forge coordinate that legacy profiles may
	// still declare in their library lists.
	ForgeLoaderPrefix = "net.minecraftforge:forge"
)

// SelectedBuild is the loader build chosen for one pipeline run. Chosen once,
// immutable thereafter.
type SelectedBuild struct {
	// ID is the concrete build identifier as listed by the metadata API,
	// e.g. "20.4.237" (modern) or "1.20.1-47.1.106" (legacy).
	ID string

	// LegacyAPI reports which metadata API the build came from; it also decides
	// the installer URL template and the on-disk installer location.
	LegacyAPI bool
}

// InstallerArtifact is a locally cached installer jar, content-addressed by
// build id in its file name.
type InstallerArtifact struct {
	Path      string
	LegacyAPI bool
}
