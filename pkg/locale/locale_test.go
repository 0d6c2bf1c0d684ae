package locale

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTable_Translate(t *testing.T) {
	table := Table{
		"greeting":      "Hello, {name}!",
		"speaker.player": "You",
	}

	tests := []struct {
		name     string
		key      string
		params   map[string]string
		fallback string
		want     string
	}{
		{
			name: "known key",
			key:  "speaker.player",
			want: "You",
		},
		{
			name:   "params interpolated",
			key:    "greeting",
			params: map[string]string{"name": "Mira"},
			want:   "Hello, Mira!",
		},
		{
			name:     "unknown key uses fallback",
			key:      "missing",
			fallback: "Fallback",
			want:     "Fallback",
		},
		{
			name: "unknown key without fallback returns key",
			key:  "missing",
			want: "missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Translate(tt.key, tt.params, tt.fallback); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestTable_NilTranslatesFallback(t *testing.T) {
	var table Table
	if got := table.Translate("key", nil, "raw"); got != "raw" {
		t.Errorf("Expected fallback from nil table, got %q", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "en.json", `{"hello": "Hello"}`)
	writeLocale(t, dir, "pt-BR.json", `{"hello": "Olá"}`)

	catalog, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if got := catalog.Pick("en").Translate("hello", nil, ""); got != "Hello" {
		t.Errorf("Expected English table, got %q", got)
	}
	if got := catalog.Pick("pt-BR").Translate("hello", nil, ""); got != "Olá" {
		t.Errorf("Expected Brazilian Portuguese table, got %q", got)
	}

	// Unsupported locale falls back to a supported one.
	table := catalog.Pick("ja")
	if got := table.Translate("hello", nil, ""); got == "" {
		t.Error("Expected a fallback table for unsupported locale")
	}

	// Later preferences are considered when the first has no match.
	if got := catalog.Pick("ja", "pt").Translate("hello", nil, ""); got != "Olá" {
		t.Errorf("Expected Portuguese from second preference, got %q", got)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	if _, err := LoadCatalog(t.TempDir()); err == nil {
		t.Error("Expected error for empty locale dir")
	}

	dir := t.TempDir()
	writeLocale(t, dir, "not a tag!.json", `{}`)
	if _, err := LoadCatalog(dir); err == nil {
		t.Error("Expected error for invalid locale file name")
	}
}

func writeLocale(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write locale file: %v", err)
	}
}
