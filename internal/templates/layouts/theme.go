package layouts

import (
	"fmt"
	"strings"

	"github.com/codr1/airbnbviz/internal/models"
)

func getThemeCssVars(theme models.Theme) string {
	defaultTheme := models.DefaultTheme()
	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;}",
		themeColorOrDefault(theme.PrimaryColor, defaultTheme.PrimaryColor),
		themeColorOrDefault(theme.SecondaryColor, defaultTheme.SecondaryColor),
		themeColorOrDefault(theme.AccentColor, defaultTheme.AccentColor),
	)
}

func themeColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
