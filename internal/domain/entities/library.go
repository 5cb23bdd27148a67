package entities

import (
	"fmt"
	"strings"
)

// Library is one runtime or installer dependency declared by a profile.
// Identity is the maven coordinate in Name; library sets are deduplicated by
// it, first occurrence wins.
type Library struct {
	Name      string            `json:"name"`
	Rules     []Rule            `json:"rules,omitempty"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
}

// LibraryDownloads contains the declared artifact download info.
type LibraryDownloads struct {
	Artifact *LibraryArtifact `json:"artifact,omitempty"`
}

// LibraryArtifact is a downloadable file declared by a library.
type LibraryArtifact struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// Rule is a conditional-applicability rule attached to a library.
type Rule struct {
	Action string  `json:"action"`
	OS     *OSRule `json:"os,omitempty"`
}

// OSRule restricts a rule to an operating system.
type OSRule struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
	Arch    string `json:"arch,omitempty"`
}

// Artifact returns the declared artifact download info, or nil.
func (l *Library) Artifact() *LibraryArtifact {
	if l.Downloads == nil {
		return nil
	}
	return l.Downloads.Artifact
}

// HasArtifactURL reports whether the library declares a direct download URL.
func (l *Library) HasArtifactURL() bool {
	a := l.Artifact()
	return a != nil && a.URL != ""
}

// ArtifactRelPath returns the library's path relative to the libraries root,
// preferring the declared artifact path over the coordinate-derived one.
func (l *Library) ArtifactRelPath() (string, error) {
	if a := l.Artifact(); a != nil && a.Path != "" {
		return a.Path, nil
	}
	return MavenPath(l.Name)
}

// MavenPath converts a "group:artifact:version[:classifier][@ext]" coordinate
// into its repository-relative path, e.g.
// "net.neoforged:neoforge:20.4.237" -> "net/neoforged/neoforge/20.4.237/neoforge-20.4.237.jar".
func MavenPath(coord string) (string, error) {
	ext := "jar"
	if at := strings.LastIndex(coord, "@"); at >= 0 {
		ext = coord[at+1:]
		coord = coord[:at]
	}

	parts := strings.Split(coord, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return "", fmt.Errorf("invalid maven coordinate: %q", coord)
	}

	group, artifact, version := parts[0], parts[1], parts[2]
	if group == "" || artifact == "" || version == "" {
		return "", fmt.Errorf("invalid maven coordinate: %q", coord)
	}

	file := artifact + "-" + version
	if len(parts) == 4 {
		file += "-" + parts[3]
	}
	file += "." + ext

	return strings.ReplaceAll(group, ".", "/") + "/" + artifact + "/" + version + "/" + file, nil
}
