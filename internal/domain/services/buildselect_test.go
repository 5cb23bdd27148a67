package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

func TestCandidates_ReleaseUsesLegacyFirst(t *testing.T) {
	c := Classify("1.20.4")
	legacy := []string{"1.20.3-20.3.8", "1.20.4-20.4.237"}
	modern := []string{"20.4.100", "20.4.237"}

	got, legacyAPI, err := Candidates(c, "1.20.4", legacy, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if !legacyAPI {
		t.Error("Candidates() legacyAPI = false, want true")
	}
	if !reflect.DeepEqual(got, []string{"1.20.4-20.4.237"}) {
		t.Errorf("Candidates() = %v, want legacy entry only", got)
	}
}

func TestCandidates_ReleaseFallsBackToModern(t *testing.T) {
	c := Classify("1.20.4")
	modern := []string{"20.4.100", "20.4.237", "21.0.1"}

	got, legacyAPI, err := Candidates(c, "1.20.4", nil, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if legacyAPI {
		t.Error("Candidates() legacyAPI = true, want false after fallback")
	}
	if !reflect.DeepEqual(got, []string{"20.4.100", "20.4.237"}) {
		t.Errorf("Candidates() = %v, want modern 20.4.* entries", got)
	}
}

func TestCandidates_ReleaseWithoutPatchUsesZero(t *testing.T) {
	c := Classify("1.21")
	modern := []string{"21.0.1-beta", "21.0.25", "21.1.3"}

	got, _, err := Candidates(c, "1.21", nil, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"21.0.1-beta", "21.0.25"}) {
		t.Errorf("Candidates() = %v, want 21.0.* entries", got)
	}
}

func TestCandidates_WeeklySnapshot(t *testing.T) {
	c := Classify("25w14a")
	modern := []string{"21.5.1", "0.25w14a.3-beta", "0.25W14A.4-beta"}

	got, legacyAPI, err := Candidates(c, "25w14a", nil, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if legacyAPI {
		t.Error("Candidates() legacyAPI = true, want false for snapshots")
	}
	want := []string{"0.25w14a.3-beta", "0.25W14A.4-beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v (case-insensitive match)", got, want)
	}
}

func TestCandidates_NewSnapshot(t *testing.T) {
	c := Classify("1.21-snapshot-3")
	modern := []string{"21.0.1", "1.21.5-snapshot-x", "20.4.237", "other-snapshot-build"}

	got, _, err := Candidates(c, "1.21-snapshot-3", nil, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	want := []string{"1.21.5-snapshot-x", "other-snapshot-build"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
}

func TestCandidates_PreReleaseNoLegacyFallback(t *testing.T) {
	c := Classify("1.21.5-pre1")
	// A legacy document with matching entries must NOT be consulted.
	legacy := []string{"1.21.5-21.5.1"}
	modern := []string{"21.4.100"}

	_, _, err := Candidates(c, "1.21.5-pre1", legacy, modern)
	if err == nil {
		t.Fatal("Candidates() error = nil, want not-yet-supported")
	}

	var kindErr *entities.UnsupportedKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("Candidates() error type = %T, want *UnsupportedKindError", err)
	}
	if kindErr.Version != "1.21.5-pre1" || kindErr.Kind != entities.KindPreRelease {
		t.Errorf("error carries %q/%v, want version and kind", kindErr.Version, kindErr.Kind)
	}
}

func TestCandidates_ReleaseCandidateMatches(t *testing.T) {
	c := Classify("1.21.5-rc2")
	modern := []string{"21.5.1-beta", "21.5.30"}

	got, _, err := Candidates(c, "1.21.5-rc2", nil, modern)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"21.5.1-beta", "21.5.30"}) {
		t.Errorf("Candidates() = %v, want 21.5.* entries", got)
	}
}

func TestCandidates_EmptySetFails(t *testing.T) {
	c := Classify("1.2.3")

	_, _, err := Candidates(c, "1.2.3", []string{"1.9.9-x"}, []string{"99.0.1"})
	if err == nil {
		t.Fatal("Candidates() error = nil, want unsupported version")
	}
	var verr *entities.UnsupportedVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("Candidates() error type = %T, want *UnsupportedVersionError", err)
	}
	if verr.Version != "1.2.3" {
		t.Errorf("error names %q, want requested version", verr.Version)
	}
}

func TestSelectBuild_LatestPicksLastCandidate(t *testing.T) {
	candidates := []string{"20.4.100", "20.4.200", "20.4.237"}

	for _, token := range []string{"latest", "recommended"} {
		got, err := SelectBuild("1.20.4", token, candidates, false)
		if err != nil {
			t.Fatalf("SelectBuild(%q) error = %v", token, err)
		}
		if got.ID != "20.4.237" {
			t.Errorf("SelectBuild(%q) = %s, want last candidate", token, got.ID)
		}
	}
}

func TestSelectBuild_ExactMatch(t *testing.T) {
	candidates := []string{"20.4.100", "20.4.200", "20.4.237"}

	got, err := SelectBuild("1.20.4", "20.4.200", candidates, true)
	if err != nil {
		t.Fatalf("SelectBuild() error = %v", err)
	}
	if got.ID != "20.4.200" {
		t.Errorf("SelectBuild() = %s, want the literal token", got.ID)
	}
	if !got.LegacyAPI {
		t.Error("SelectBuild() LegacyAPI = false, want flag preserved")
	}
}

func TestSelectBuild_UnknownBuildListsCandidates(t *testing.T) {
	candidates := []string{"20.4.100", "20.4.237"}

	_, err := SelectBuild("1.20.4", "20.4.999", candidates, false)
	if err == nil {
		t.Fatal("SelectBuild() error = nil, want unsupported build")
	}
	var berr *entities.UnsupportedBuildError
	if !errors.As(err, &berr) {
		t.Fatalf("SelectBuild() error type = %T, want *UnsupportedBuildError", err)
	}
	if !reflect.DeepEqual(berr.Candidates, candidates) {
		t.Errorf("error candidates = %v, want full candidate list", berr.Candidates)
	}
}

func TestInstallerURL(t *testing.T) {
	got := InstallerURL("https://example.com/${version}/loader-${version}.jar", "20.4.237")
	want := "https://example.com/20.4.237/loader-20.4.237.jar"
	if got != want {
		t.Errorf("InstallerURL() = %s, want %s", got, want)
	}
}

func TestShortVersion(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"1.21.5", "21.5."},
		{"1.21", "21.0."},
		{"1.20.4", "20.4."},
		{"weird", "weird."},
	}
	for _, tt := range tests {
		if got := shortVersion(tt.base); got != tt.want {
			t.Errorf("shortVersion(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}
