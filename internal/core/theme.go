package core

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Theme is the color table for one mode. Display metadata only; the
// ledger never interprets these values.
type Theme struct {
	Mode          ThemeMode `json:"mode"`
	Bg            string    `json:"bg"`
	Surface       string    `json:"surface"`
	SurfaceHigh   string    `json:"surfaceHigh"`
	Border        string    `json:"border"`
	CardHighlight string    `json:"cardHighlight"`
	Text          string    `json:"text"`
	TextSub       string    `json:"textSub"`
	Accent        string    `json:"accent"`
	AccentSurface string    `json:"accentSurface"`
	Green         string    `json:"green"`
	GreenSurface  string    `json:"greenSurface"`
	Red           string    `json:"red"`
	Amber         string    `json:"amber"`
}

var lightTheme = Theme{
	Mode:          ThemeLight,
	Bg:            "#FFFFFF",
	Surface:       "#F5F5F7",
	SurfaceHigh:   "#FFFFFF",
	Border:        "#E5E5EA",
	CardHighlight: "transparent",
	Text:          "#1C1C1E",
	TextSub:       "#8E8E93",
	Accent:        "#007AFF",
	AccentSurface: "#EBF4FF",
	Green:         "#34C759",
	GreenSurface:  "#EBFAF0",
	Red:           "#FF3B30",
	Amber:         "#FF9500",
}

// Dark: deep purple-tinted slate with 3-level elevation.
var darkTheme = Theme{
	Mode:          ThemeDark,
	Bg:            "#0C0C12",
	Surface:       "#13131A",
	SurfaceHigh:   "#1C1C26",
	Border:        "#26263A",
	CardHighlight: "#FFFFFF0D",
	Text:          "#EEF0FF",
	TextSub:       "#7B7B90",
	Accent:        "#4DA3FF",
	AccentSurface: "#0A153A",
	Green:         "#3DDC68",
	GreenSurface:  "#0A2218",
	Red:           "#FF5A52",
	Amber:         "#FFBE4D",
}

// ThemeFor returns the color table for a mode, defaulting to light for
// anything unrecognized.
func ThemeFor(mode ThemeMode) Theme {
	if mode == ThemeDark {
		return darkTheme
	}
	return lightTheme
}
