package version

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetBuildInfo_DefaultsToDev(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != "dev" {
		t.Fatalf("expected default Version %q, got %q", "dev", info.Version)
	}
	if info.Commit != "unknown" || info.Date != "unknown" {
		t.Fatalf("expected unknown Commit/Date defaults, got %+v", info)
	}
}

func TestBuildInfo_String(t *testing.T) {
	b := BuildInfo{Version: "v1.2.3", Commit: "abc123", Date: "2026-07-30"}
	got := b.String()
	for _, want := range []string{"v1.2.3", "abc123", "2026-07-30"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected String() to contain %q, got %q", want, got)
		}
	}
}

func TestBuildInfo_JSON(t *testing.T) {
	b := BuildInfo{Version: "v1.2.3", Commit: "abc123", Date: "2026-07-30"}
	data, err := b.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var round BuildInfo
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if round != b {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", round, b)
	}
}

func TestBuildInfo_Short(t *testing.T) {
	b := BuildInfo{Version: "v9.9.9"}
	if got := b.Short(); got != "v9.9.9" {
		t.Fatalf("expected Short() to return Version, got %q", got)
	}
}
