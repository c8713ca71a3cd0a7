// Package theme derives the portal's color and typography tokens from the
// cookie-persisted light/dark flag. The palettes follow the portal's
// spiritual styling: golden accents on dark, saddle brown on light.
package theme

import "html/template"

// CookieName is the cookie persisting the dark-mode flag.
const CookieName = "portal_theme"

// Palette holds the color tokens a view needs. Values are trusted
// constants, typed template.CSS so the template engine injects them
// verbatim into the stylesheet.
type Palette struct {
	Background      template.CSS
	Card            template.CSS
	Text            template.CSS
	Heading         template.CSS
	Accent          template.CSS
	AccentSecondary template.CSS
	Border          template.CSS
	Credit          template.CSS
	Debit           template.CSS
	InputBg         template.CSS
	InputBorder     template.CSS
	Shadow          template.CSS
}

// Theme is the resolved set of presentation tokens.
type Theme struct {
	Dark          bool
	Colors        Palette
	FontPrimary   template.CSS
	FontSecondary template.CSS
}

var dark = Palette{
	Background:      "#131118",
	Card:            "rgba(31, 28, 38, 0.95)",
	Text:            "#E8D5B5",
	Heading:         "#FFD700",
	Accent:          "#C0A080",
	AccentSecondary: "#B8860B",
	Border:          "rgba(255, 215, 0, 0.3)",
	Credit:          "rgba(144, 238, 144, 0.15)",
	Debit:           "rgba(255, 99, 71, 0.15)",
	InputBg:         "rgba(19, 17, 24, 0.9)",
	InputBorder:     "#C0A080",
	Shadow:          "0 4px 20px rgba(0, 0, 0, 0.5)",
}

var light = Palette{
	Background:      "#FDFCF8",
	Card:            "rgba(255, 253, 247, 0.95)",
	Text:            "#2C1810",
	Heading:         "#8B4513",
	Accent:          "#8B4513",
	AccentSecondary: "#CD853F",
	Border:          "rgba(139, 69, 19, 0.2)",
	Credit:          "rgba(34, 139, 34, 0.1)",
	Debit:           "rgba(178, 34, 34, 0.1)",
	InputBg:         "rgba(255, 253, 247, 0.9)",
	InputBorder:     "#8B4513",
	Shadow:          "0 4px 20px rgba(139, 69, 19, 0.1)",
}

// Resolve returns the theme for a cookie value; anything other than
// "dark" resolves to the light theme.
func Resolve(cookieValue string) Theme {
	isDark := cookieValue == "dark"
	colors := light
	if isDark {
		colors = dark
	}
	return Theme{
		Dark:          isDark,
		Colors:        colors,
		FontPrimary:   "'Roboto', 'Arial', sans-serif",
		FontSecondary: "'Roboto Slab', serif",
	}
}

// ToggleValue returns the cookie value that flips the given theme.
func ToggleValue(t Theme) string {
	if t.Dark {
		return "light"
	}
	return "dark"
}
