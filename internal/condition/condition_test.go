package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"rain", "Rain", CategoryRain},
		{"rain overcast", "Rain, Overcast", CategoryRain},
		{"rain wins over sun", "Sun and rain", CategoryRain},
		{"rain wins over thunder", "rain and thunder", CategoryRain},
		{"clear", "Clear", CategorySun},
		{"sunny", "SUNNY", CategorySun},
		{"sun wins over cloud", "Sunny with clouds", CategorySun},
		{"partially cloudy", "Partially cloudy", CategoryCloud},
		{"thunderstorm", "Thunderstorm", CategoryStorm},
		{"lightning", "Lightning", CategoryStorm},
		{"snow", "Snow, Overcast", CategorySnow},
		{"ice", "Freezing Drizzle/Freezing Rain, Ice", CategoryRain},
		{"ice only", "Ice pellets", CategorySnow},
		{"overcast", "Overcast", CategoryDefault},
		{"empty", "", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, CategoryRain, Classify("Rain and sun"))
	}
}

func TestTablesCoverEveryCategory(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Categories {
		icon := IconFor(c)
		theme := ThemeFor(c)
		assert.NotEmpty(t, icon.Name, "icon for %s", c)
		assert.NotEmpty(t, icon.Glyph, "glyph for %s", c)
		assert.NotEmpty(t, theme.Class, "theme for %s", c)
		assert.False(t, seen[theme.Class], "duplicate theme class %s", theme.Class)
		seen[theme.Class] = true
	}
	assert.Len(t, icons, 6)
	assert.Len(t, themes, 6)
}

func TestPartiallyCloudyIsNotDefault(t *testing.T) {
	assert.Equal(t, "bg-cloudy", ThemeForText("Partially cloudy").Class)
	assert.Equal(t, "cloud", IconForText("Partially cloudy").Name)
	assert.NotEqual(t, IconFor(CategoryDefault).Class, IconForText("Partially cloudy").Class)
}

func TestUnknownCategoryFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTheme, ThemeFor(Category("hail")))
	assert.Equal(t, IconFor(CategoryDefault), IconFor(Category("hail")))
}
