package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Theme is a named visual style for a deck. Colors are ARGB hex.
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TitleColor  string `json:"title_color"`
	BodyColor   string `json:"body_color"`
	AccentColor string `json:"accent_color"`
	Background  string `json:"background"`
}

// DefaultThemeName is applied whenever no template is requested or the
// requested name is unknown.
const DefaultThemeName = "default"

var builtinThemes = map[string]Theme{
	"default": {
		Name:        "default",
		Description: "Default professional template with blue accents",
		TitleColor:  "FF1E293B",
		BodyColor:   "FF334155",
		AccentColor: "FF2E86AB",
		Background:  "FFFFFFFF",
	},
	"modern_blue": {
		Name:        "modern_blue",
		Description: "Modern blue template with clean design",
		TitleColor:  "FF1B4965",
		BodyColor:   "FF2C5F7C",
		AccentColor: "FF5FA8D3",
		Background:  "FFF5FAFD",
	},
	"corporate_green": {
		Name:        "corporate_green",
		Description: "Corporate green template for business presentations",
		TitleColor:  "FF1B4332",
		BodyColor:   "FF2D6A4F",
		AccentColor: "FF52B788",
		Background:  "FFF6FBF8",
	},
	"minimalist_gray": {
		Name:        "minimalist_gray",
		Description: "Minimalist gray template with blue accents",
		TitleColor:  "FF343A40",
		BodyColor:   "FF495057",
		AccentColor: "FF4A90D9",
		Background:  "FFFAFAFA",
	},
	"vibrant_orange": {
		Name:        "vibrant_orange",
		Description: "Vibrant orange template for creative presentations",
		TitleColor:  "FF7F2D00",
		BodyColor:   "FF9C4A1A",
		AccentColor: "FFF18F01",
		Background:  "FFFFF8F2",
	},
	"elegant_purple": {
		Name:        "elegant_purple",
		Description: "Elegant purple template with sophisticated styling",
		TitleColor:  "FF3C1361",
		BodyColor:   "FF52307C",
		AccentColor: "FF9B72CF",
		Background:  "FFFAF7FD",
	},
}

// NormalizeThemeName folds a user-supplied template name to registry form:
// lowercase, spaces and dashes as underscores.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}

// ScanThemes returns all available themes: the built-ins plus any *.json
// theme files found in dir. A file theme with a built-in's name overrides it.
// A missing or unreadable dir leaves just the built-ins.
func ScanThemes(dir string) map[string]Theme {
	themes := make(map[string]Theme, len(builtinThemes))
	for name, t := range builtinThemes {
		themes[name] = t
	}

	if dir == "" {
		return themes
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		base := builtinThemes[DefaultThemeName]
		if err := json.Unmarshal(data, &base); err != nil {
			continue
		}
		name := NormalizeThemeName(strings.TrimSuffix(e.Name(), ".json"))
		base.Name = name
		if base.Description == "" {
			base.Description = "Custom template"
		}
		themes[name] = base
	}
	return themes
}

// ResolveTheme looks up a theme by name, falling back to the default theme
// for any unknown name. It never fails.
func ResolveTheme(name, dir string) Theme {
	themes := ScanThemes(dir)
	if t, ok := themes[NormalizeThemeName(name)]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// ListThemes returns the available themes sorted by name, default first.
func ListThemes(dir string) []Theme {
	themes := ScanThemes(dir)
	names := make([]string, 0, len(themes))
	for name := range themes {
		if name != DefaultThemeName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{DefaultThemeName}, names...)

	out := make([]Theme, 0, len(names))
	for _, name := range names {
		out = append(out, themes[name])
	}
	return out
}
