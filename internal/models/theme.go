// internal/models/theme.go
package models

import (
	"regexp"
	"strings"
)

const defaultThemePrimary = "#FF5A5F"
const defaultThemeSecondary = "#484848"
const defaultThemeAccent = "#00A699"

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Theme holds the page colours exposed as CSS variables.
type Theme struct {
	PrimaryColor   string `yaml:"primary_color"`
	SecondaryColor string `yaml:"secondary_color"`
	AccentColor    string `yaml:"accent_color"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   defaultThemePrimary,
		SecondaryColor: defaultThemeSecondary,
		AccentColor:    defaultThemeAccent,
	}
}
