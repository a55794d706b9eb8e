package version

import (
	"testing"
)

// withBuild подменяет метаданные сборки на время теста. Тесты пакета не параллельные.
func withBuild(t *testing.T, date, commit string) {
	t.Helper()
	oldDate, oldCommit := BuildDate, BuildCommit
	t.Cleanup(func() { BuildDate, BuildCommit = oldDate, oldCommit })
	BuildDate, BuildCommit = date, commit
}

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-01-01", expected: 0},
		{name: "next day after epoch", date: "2026-01-02", expected: 1},
		{name: "one year later", date: "2027-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1096},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-31", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildNumber(tt.date)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (n=%d)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("buildNumber(%q) = %d, want %d", tt.date, got, tt.expected)
			}
		})
	}
}

func TestBuildStrings(t *testing.T) {
	tests := []struct {
		name        string
		date        string
		commit      string
		wantUA      string
		wantString  string
		wantRelease bool
	}{
		{"dev", "", "", "autobattler-client/dev", "autobattler-client dev build", false},
		{"bad date is dev", "yesterday", "abc123", "autobattler-client/dev", "autobattler-client dev build", false},
		{"release", "2026-02-01", "abc123", "autobattler-client/31 (abc123)", "autobattler-client build 31 (2026-02-01) commit[abc123]", true},
		{"release without commit", "2026-02-01", "", "autobattler-client/31 (unknown)", "autobattler-client build 31 (2026-02-01) commit[unknown]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuild(t, tt.date, tt.commit)
			if got := UserAgent(); got != tt.wantUA {
				t.Errorf("UserAgent() = %q, want %q", got, tt.wantUA)
			}
			if got := String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
			if info := Info(); info.Release != tt.wantRelease || info.Name != Name {
				t.Errorf("Info() = %+v", info)
			}
		})
	}
}
