package services

import (
	"strings"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// Candidates filters the two metadata documents down to the builds compatible
// with the classified version. It returns the candidate list and which API it
// came from. The documents are assumed pre-sorted ascending by the upstream
// source; no local sort is applied.
//
// Releases try the legacy document first and fall back to the modern one.
// Pre-releases and release candidates never fall back: an empty modern
// candidate set fails immediately as not-yet-supported.
func Candidates(c entities.VersionClassification, version string, legacy, modern []string) ([]string, bool, error) {
	var out []string
	legacyAPI := false

	switch c.Kind {
	case entities.KindWeeklySnapshot:
		id := strings.ToLower(c.Snapshot)
		for _, v := range modern {
			lv := strings.ToLower(v)
			if strings.Contains(lv, id) || strings.HasPrefix(lv, "0."+id) {
				out = append(out, v)
			}
		}

	case entities.KindNewSnapshot:
		prefix := c.Base + "."
		for _, v := range modern {
			if strings.HasPrefix(v, prefix) || strings.Contains(v, "snapshot") {
				out = append(out, v)
			}
		}

	case entities.KindPreRelease, entities.KindReleaseCandidate:
		out = withPrefix(modern, shortVersion(c.Base))
		if len(out) == 0 {
			return nil, false, &entities.UnsupportedKindError{Version: version, Kind: c.Kind}
		}

	case entities.KindRelease:
		token := c.Base + "-"
		for _, v := range legacy {
			if strings.Contains(v, token) {
				out = append(out, v)
			}
		}
		if len(out) > 0 {
			legacyAPI = true
			break
		}
		out = withPrefix(modern, shortVersion(c.Base))
	}

	if len(out) == 0 {
		return nil, false, &entities.UnsupportedVersionError{Version: version}
	}
	return out, legacyAPI, nil
}

// SelectBuild picks one build from the candidate list. The tokens "latest" and
// "recommended" take the lexicographically-last candidate (the list arrives
// pre-sorted ascending from upstream); any other token must match exactly.
func SelectBuild(version, build string, candidates []string, legacyAPI bool) (*entities.SelectedBuild, error) {
	if len(candidates) == 0 {
		return nil, &entities.UnsupportedVersionError{Version: version}
	}

	if build == "latest" || build == "recommended" {
		return &entities.SelectedBuild{ID: candidates[len(candidates)-1], LegacyAPI: legacyAPI}, nil
	}

	for _, v := range candidates {
		if v == build {
			return &entities.SelectedBuild{ID: v, LegacyAPI: legacyAPI}, nil
		}
	}
	return nil, &entities.UnsupportedBuildError{Version: version, Build: build, Candidates: candidates}
}

// InstallerURL substitutes the chosen build id into a URL template wherever a
// ${version} placeholder occurs.
func InstallerURL(template, buildID string) string {
	return strings.ReplaceAll(template, "${version}", buildID)
}

// shortVersion derives the modern-API build prefix from a base game version:
// "1.21.5" -> "21.5.", "1.21" -> "21.0.". Modern build ids drop the leading
// major component and always carry a patch digit.
func shortVersion(base string) string {
	parts := strings.SplitN(base, ".", 3)
	if len(parts) < 2 {
		return base + "."
	}
	patch := "0"
	if len(parts) == 3 {
		patch = parts[2]
	}
	return parts[1] + "." + patch + "."
}

func withPrefix(versions []string, prefix string) []string {
	var out []string
	for _, v := range versions {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
