package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveThemeUnknownFallsBackToDefault(t *testing.T) {
	for _, name := range []string{"", "no_such_theme", "???", "DEFAULT2"} {
		theme := ResolveTheme(name, "")
		if theme.Name != DefaultThemeName {
			t.Errorf("ResolveTheme(%q) = %q, want default", name, theme.Name)
		}
	}
}

func TestResolveThemeBuiltins(t *testing.T) {
	for _, name := range []string{
		"default", "modern_blue", "corporate_green",
		"minimalist_gray", "vibrant_orange", "elegant_purple",
	} {
		theme := ResolveTheme(name, "")
		if theme.Name != name {
			t.Errorf("ResolveTheme(%q) = %q", name, theme.Name)
		}
		if theme.TitleColor == "" || theme.AccentColor == "" {
			t.Errorf("theme %q has missing colors", name)
		}
	}
}

func TestNormalizeThemeName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Modern Blue", "modern_blue"},
		{"modern-blue", "modern_blue"},
		{"  DEFAULT ", "default"},
		{"Corporate Green", "corporate_green"},
	}
	for _, tt := range tests {
		if got := NormalizeThemeName(tt.in); got != tt.want {
			t.Errorf("NormalizeThemeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScanThemesLoadsCustomFiles(t *testing.T) {
	dir := t.TempDir()
	custom := `{"description": "Night mode deck", "title_color": "FFEEEEEE", "body_color": "FFCCCCCC", "accent_color": "FF4444AA", "background": "FF111111"}`
	if err := os.WriteFile(filepath.Join(dir, "Dark Mode.json"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	themes := ScanThemes(dir)
	theme, ok := themes["dark_mode"]
	if !ok {
		t.Fatalf("custom theme not found in %v", themes)
	}
	if theme.TitleColor != "FFEEEEEE" || theme.Description != "Night mode deck" {
		t.Errorf("theme = %+v", theme)
	}
	if _, ok := themes["broken"]; ok {
		t.Error("unparseable theme files must be skipped")
	}
	if _, ok := themes["notes"]; ok {
		t.Error("non-json files must be skipped")
	}
}

func TestResolveThemeCustomFile(t *testing.T) {
	dir := t.TempDir()
	custom := `{"title_color": "FF010203"}`
	if err := os.WriteFile(filepath.Join(dir, "brand.json"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	theme := ResolveTheme("brand", dir)
	if theme.Name != "brand" || theme.TitleColor != "FF010203" {
		t.Errorf("theme = %+v", theme)
	}
	// Unspecified fields inherit the default theme.
	if theme.AccentColor != builtinThemes[DefaultThemeName].AccentColor {
		t.Errorf("accent = %s", theme.AccentColor)
	}
}

func TestListThemesDefaultFirst(t *testing.T) {
	themes := ListThemes("")
	if len(themes) != len(builtinThemes) {
		t.Fatalf("got %d themes, want %d", len(themes), len(builtinThemes))
	}
	if themes[0].Name != DefaultThemeName {
		t.Errorf("first theme = %q, want default", themes[0].Name)
	}
	for i := 2; i < len(themes); i++ {
		if themes[i-1].Name > themes[i].Name {
			t.Errorf("themes not sorted: %q before %q", themes[i-1].Name, themes[i].Name)
		}
	}
}

func TestScanThemesMissingDir(t *testing.T) {
	themes := ScanThemes(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(themes) != len(builtinThemes) {
		t.Errorf("got %d themes, want builtins only", len(themes))
	}
}
