package condition

// Icon describes how a category is drawn in each shell
type Icon struct {
	Name  string `json:"name"`  // Icon identifier, e.g. "cloud-rain"
	Glyph string `json:"glyph"` // Terminal glyph
	Class string `json:"class"` // CSS classes for the page shell
}

// Theme is a background style selected from a category
type Theme struct {
	Class string `json:"class"` // CSS class on the page body
	From  string `json:"from"`  // Gradient start colour
	To    string `json:"to"`    // Gradient end colour
}

var icons = map[Category]Icon{
	CategoryRain:    {Name: "cloud-rain", Glyph: "🌧", Class: "text-primary animate-bounce"},
	CategorySun:     {Name: "sun", Glyph: "☀", Class: "text-warning animate-spin-slow"},
	CategoryCloud:   {Name: "cloud", Glyph: "☁", Class: "text-secondary"},
	CategoryStorm:   {Name: "cloud-lightning", Glyph: "⛈", Class: "text-purple animate-pulse"},
	CategorySnow:    {Name: "cloud-snow", Glyph: "❄", Class: "text-info animate-pulse"},
	CategoryDefault: {Name: "cloud", Glyph: "☁", Class: "text-muted"},
}

var themes = map[Category]Theme{
	CategoryRain:    {Class: "bg-rain", From: "#4b6cb7", To: "#182848"},
	CategorySun:     {Class: "bg-sunny", From: "#ffb347", To: "#ffcc33"},
	CategoryCloud:   {Class: "bg-cloudy", From: "#bdc3c7", To: "#2c3e50"},
	CategoryStorm:   {Class: "bg-storm", From: "#0f2027", To: "#2c5364"},
	CategorySnow:    {Class: "bg-snow", From: "#e0eafc", To: "#cfdef3"},
	CategoryDefault: {Class: "bg-default", From: "#f5f7fa", To: "#c3cfe2"},
}

// DefaultTheme is shown before the first successful search and after errors
var DefaultTheme = themes[CategoryDefault]

// IconFor returns the icon for a category, falling back to the default icon
func IconFor(c Category) Icon {
	if icon, ok := icons[c]; ok {
		return icon
	}
	return icons[CategoryDefault]
}

// ThemeFor returns the background theme for a category, falling back to the default theme
func ThemeFor(c Category) Theme {
	if theme, ok := themes[c]; ok {
		return theme
	}
	return DefaultTheme
}

// IconForText classifies the text and returns its icon
func IconForText(text string) Icon {
	return IconFor(Classify(text))
}

// ThemeForText classifies the text and returns its theme
func ThemeForText(text string) Theme {
	return ThemeFor(Classify(text))
}
