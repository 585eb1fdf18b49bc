// Package condition maps free-text weather conditions to a small set of
// presentation categories and looks up the icon and background theme for each.
package condition

import "strings"

// Category is the classifier's output tag
type Category string

const (
	CategoryRain    Category = "rain"
	CategorySun     Category = "sun"
	CategoryCloud   Category = "cloud"
	CategoryStorm   Category = "storm"
	CategorySnow    Category = "snow"
	CategoryDefault Category = "default"
)

// Categories lists every tag in classification priority order
var Categories = []Category{
	CategoryRain,
	CategorySun,
	CategoryCloud,
	CategoryStorm,
	CategorySnow,
	CategoryDefault,
}

type rule struct {
	category Category
	needles  []string
}

// Order matters: "rain and thunder" must classify as rain.
var rules = []rule{
	{CategoryRain, []string{"rain"}},
	{CategorySun, []string{"sun", "clear"}},
	{CategoryCloud, []string{"cloud"}},
	{CategoryStorm, []string{"lightning", "thunder"}},
	{CategorySnow, []string{"snow", "ice"}},
}

// Classify returns the first category whose keywords appear in the text
func Classify(text string) Category {
	c := strings.ToLower(text)
	for _, r := range rules {
		for _, needle := range r.needles {
			if strings.Contains(c, needle) {
				return r.category
			}
		}
	}
	return CategoryDefault
}
