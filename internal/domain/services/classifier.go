// Package services implements pure domain logic: version classification and
// loader build selection.
package services

import (
	"regexp"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// Classification patterns, tested in priority order. First match wins.
var (
	newSnapshotPattern      = regexp.MustCompile(`^(\d+\.\d+)-snapshot-\d+$`)
	weeklySnapshotPattern   = regexp.MustCompile(`^\d{2}w\d{2}[a-z]+$`)
	preReleasePattern       = regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)?)-pre\d+$`)
	releaseCandidatePattern = regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)?)-rc\d+$`)
)

// Classify parses a game version string into its tagged classification. It
// never fails: any string not matching a recognized pattern classifies as a
// release with itself as the base version.
func Classify(version string) entities.VersionClassification {
	if m := newSnapshotPattern.FindStringSubmatch(version); m != nil {
		return entities.VersionClassification{Kind: entities.KindNewSnapshot, Base: m[1]}
	}
	if weeklySnapshotPattern.MatchString(version) {
		return entities.VersionClassification{Kind: entities.KindWeeklySnapshot, Snapshot: version}
	}
	if m := preReleasePattern.FindStringSubmatch(version); m != nil {
		return entities.VersionClassification{Kind: entities.KindPreRelease, Base: m[1]}
	}
	if m := releaseCandidatePattern.FindStringSubmatch(version); m != nil {
		return entities.VersionClassification{Kind: entities.KindReleaseCandidate, Base: m[1]}
	}
	return entities.VersionClassification{Kind: entities.KindRelease, Base: version}
}
