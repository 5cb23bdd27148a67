package entities

import (
	"fmt"
	"strings"
)

// UnsupportedVersionError means no candidate loader build exists for the
// requested game version.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("version %s is not supported", e.Version)
}

// UnsupportedKindError means the requested version is a pre-release or release
// candidate with no modern-API builds yet; these kinds never fall back to the
// legacy API.
type UnsupportedKindError struct {
	Version string
	Kind    VersionKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("version %s is not yet supported (%s)", e.Version, e.Kind)
}

// UnsupportedBuildError means the requested build token is not among the
// candidate builds for the version.
type UnsupportedBuildError struct {
	Version    string
	Build      string
	Candidates []string
}

func (e *UnsupportedBuildError) Error() string {
	return fmt.Sprintf("build %s not found for version %s, available builds: %s",
		e.Build, e.Version, strings.Join(e.Candidates, ", "))
}

// InvalidInstallerError means the installer artifact's embedded manifest is
// missing, unparsable, or references a missing secondary manifest.
type InvalidInstallerError struct {
	Reason string
}

func (e *InvalidInstallerError) Error() string {
	return "invalid installer: " + e.Reason
}

// UnresolvableLibraryError means a required library has neither a mirror hit
// nor a declared artifact URL. This fails the whole resolution, it is never
// skipped.
type UnresolvableLibraryError struct {
	Name string
}

func (e *UnresolvableLibraryError) Error() string {
	return fmt.Sprintf("cannot download library %s: no mirror or artifact URL available", e.Name)
}
