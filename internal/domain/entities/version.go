// Package entities defines core domain models and data structures.
package entities

// VersionKind tags how a game version string was classified.
type VersionKind int

const (
	// KindRelease is a stable game release, e.g. "1.20.4".
	KindRelease VersionKind = iota
	// KindWeeklySnapshot is a development snapshot named by year and week, e.g. "25w14a".
	KindWeeklySnapshot
	// KindPreRelease is a pre-release of an upcoming release, e.g. "1.21.5-pre1".
	KindPreRelease
	// KindReleaseCandidate is a release candidate, e.g. "1.21.5-rc2".
	KindReleaseCandidate
	// KindNewSnapshot is the newer "<major>.<minor>-snapshot-<n>" naming scheme.
	KindNewSnapshot
)

// String returns a human-readable name for the kind.
func (k VersionKind) String() string {
	switch k {
	case KindWeeklySnapshot:
		return "snapshot"
	case KindPreRelease:
		return "pre-release"
	case KindReleaseCandidate:
		return "release-candidate"
	case KindNewSnapshot:
		return "snapshot"
	default:
		return "release"
	}
}

// VersionClassification is the immutable result of classifying a game version
// string. It is derived purely from the input string and never carries state
// from the metadata APIs.
type VersionClassification struct {
	Kind VersionKind

	// Base is the numeric base version ("1.21.5" for "1.21.5-pre1"). For
	// releases it is the input string itself. Empty for weekly snapshots.
	Base string

	// Snapshot is the full snapshot identifier for weekly snapshots ("25w14a").
	Snapshot string
}
