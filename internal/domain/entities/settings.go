package entities

// Settings configures one pipeline instance.
type Settings struct {
	// Root is the package store root. The installer cache and resolved
	// libraries live under Root/libraries, the base client under Root/versions.
	Root string

	// Concurrency is the batch download width; zero lets the downloader pick.
	Concurrency int

	// Mirrors are alternate hosting roots probed before a library's own
	// declared URL, in order.
	Mirrors []string

	// JavaPath is the java executable used for the patch stage.
	JavaPath string

	Endpoints MetadataEndpoints
	Verify    VerifySettings
}

// MetadataEndpoints are the two upstream metadata documents and the installer
// URL templates keyed by API generation. Templates substitute the chosen build
// id wherever ${version} occurs.
type MetadataEndpoints struct {
	LegacyVersions  string
	ModernVersions  string
	LegacyInstaller string
	ModernInstaller string
}

// VerifySettings controls optional GPG verification of the installer jar.
type VerifySettings struct {
	Signature bool
	KeyFile   string
}

// DefaultSettings returns settings pointing at the upstream loader maven
// repository with a conservative download width.
func DefaultSettings() Settings {
	return Settings{
		Concurrency: 4,
		JavaPath:    "java",
		Endpoints: MetadataEndpoints{
			LegacyVersions:  "https://maven.neoforged.net/api/maven/versions/releases/net/neoforged/forge",
			ModernVersions:  "https://maven.neoforged.net/api/maven/versions/releases/net/neoforged/neoforge",
			LegacyInstaller: "https://maven.neoforged.net/releases/net/neoforged/forge/${version}/forge-${version}-installer.jar",
			ModernInstaller: "https://maven.neoforged.net/releases/net/neoforged/neoforge/${version}/neoforge-${version}-installer.jar",
		},
	}
}
