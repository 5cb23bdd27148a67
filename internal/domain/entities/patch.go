package entities

// PatchConfig is the minimal configuration handed to the patch engine.
type PatchConfig struct {
	JavaPath     string
	ClientJar    string
	ClientJSON   string
	LibrariesDir string
	Root         string
}
