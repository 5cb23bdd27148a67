package services

import (
	"testing"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		version      string
		wantKind     entities.VersionKind
		wantBase     string
		wantSnapshot string
	}{
		{
			name:     "plain release",
			version:  "1.20.4",
			wantKind: entities.KindRelease,
			wantBase: "1.20.4",
		},
		{
			name:     "release without patch",
			version:  "1.21",
			wantKind: entities.KindRelease,
			wantBase: "1.21",
		},
		{
			name:         "weekly snapshot",
			version:      "25w14a",
			wantKind:     entities.KindWeeklySnapshot,
			wantSnapshot: "25w14a",
		},
		{
			name:         "weekly snapshot with multi-letter suffix",
			version:      "20w14infinite",
			wantKind:     entities.KindWeeklySnapshot,
			wantSnapshot: "20w14infinite",
		},
		{
			name:     "pre-release",
			version:  "1.21.5-pre1",
			wantKind: entities.KindPreRelease,
			wantBase: "1.21.5",
		},
		{
			name:     "pre-release without patch",
			version:  "1.21-pre3",
			wantKind: entities.KindPreRelease,
			wantBase: "1.21",
		},
		{
			name:     "release candidate",
			version:  "1.21.5-rc2",
			wantKind: entities.KindReleaseCandidate,
			wantBase: "1.21.5",
		},
		{
			name:     "new snapshot scheme",
			version:  "1.21-snapshot-3",
			wantKind: entities.KindNewSnapshot,
			wantBase: "1.21",
		},
		{
			name:     "new snapshot wins over pre-release shapes",
			version:  "1.22-snapshot-1",
			wantKind: entities.KindNewSnapshot,
			wantBase: "1.22",
		},
		{
			name:     "unrecognized string falls back to release",
			version:  "experimental-combat-7",
			wantKind: entities.KindRelease,
			wantBase: "experimental-combat-7",
		},
		{
			name:     "empty string falls back to release",
			version:  "",
			wantKind: entities.KindRelease,
			wantBase: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.version)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.version, got.Kind, tt.wantKind)
			}
			if got.Base != tt.wantBase {
				t.Errorf("Classify(%q).Base = %q, want %q", tt.version, got.Base, tt.wantBase)
			}
			if got.Snapshot != tt.wantSnapshot {
				t.Errorf("Classify(%q).Snapshot = %q, want %q", tt.version, got.Snapshot, tt.wantSnapshot)
			}
		})
	}
}

func TestClassify_NeverErrorsOnGarbage(t *testing.T) {
	inputs := []string{"w05a", "1.x.y-pre1", "25w1a", "1.20.4-pre", "snapshot"}
	for _, in := range inputs {
		got := Classify(in)
		if got.Kind != entities.KindRelease {
			t.Errorf("Classify(%q).Kind = %v, want release fallback", in, got.Kind)
		}
		if got.Base != in {
			t.Errorf("Classify(%q).Base = %q, want input itself", in, got.Base)
		}
	}
}
