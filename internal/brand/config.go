// Package brand loads, validates and exposes brand configuration: identity,
// colour palette, typography, logo placement and effect presets.
package brand

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks a brand file that cannot be read or parsed at all.
// Incomplete but parseable configs are reported through Validate instead.
var ErrInvalidConfig = errors.New("invalid brand configuration")

// DefaultFontFamily is used when the brand names no typography.
const DefaultFontFamily = "Inter"

// LogoPlacement is where the logo sits on an asset.
type LogoPlacement string

const (
	PlacementTopLeft     LogoPlacement = "top-left"
	PlacementTopRight    LogoPlacement = "top-right"
	PlacementBottomLeft  LogoPlacement = "bottom-left"
	PlacementBottomRight LogoPlacement = "bottom-right"
	PlacementCenter      LogoPlacement = "center"
)

// Valid reports whether p is a known placement.
func (p LogoPlacement) Valid() bool {
	switch p {
	case PlacementTopLeft, PlacementTopRight, PlacementBottomLeft, PlacementBottomRight, PlacementCenter:
		return true
	}
	return false
}

type Identity struct {
	Name    string `yaml:"name" json:"name" validate:"required"`
	Tagline string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
}

type Typography struct {
	HeadlineFont  string `yaml:"headline_font" json:"headline_font"`
	BodyFont      string `yaml:"body_font" json:"body_font"`
	HeadlineSizes []int  `yaml:"headline_sizes,omitempty" json:"headline_sizes,omitempty" validate:"dive,gt=0"`
	BodySizes     []int  `yaml:"body_sizes,omitempty" json:"body_sizes,omitempty" validate:"dive,gt=0"`
}

type Logo struct {
	Primary    string          `yaml:"primary" json:"primary"`
	Placements []LogoPlacement `yaml:"placements,omitempty" json:"placements,omitempty" validate:"dive,oneof=top-left top-right bottom-left bottom-right center"`
}

type Effects struct {
	Gradients []string `yaml:"gradients,omitempty" json:"gradients,omitempty"`
	Shadows   []string `yaml:"shadows,omitempty" json:"shadows,omitempty"`
}

type Shapes struct {
	Decorative []string `yaml:"decorative,omitempty" json:"decorative,omitempty"`
	Containers []string `yaml:"containers,omitempty" json:"containers,omitempty"`
}

// Config is a brand configuration document.
type Config struct {
	Brand      Identity          `yaml:"brand" json:"brand"`
	Colors     map[string]string `yaml:"colors" json:"colors"`
	Typography *Typography       `yaml:"typography" json:"typography" validate:"required"`
	Logo       *Logo             `yaml:"logo,omitempty" json:"logo,omitempty"`
	Effects    Effects           `yaml:"effects,omitempty" json:"effects,omitempty"`
	Shapes     Shapes            `yaml:"shapes,omitempty" json:"shapes,omitempty"`
}

// Parse decodes a YAML brand configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// Load reads and decodes a brand configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Palette returns the brand colours normalised to 6-digit hex. Malformed
// entries are dropped so that lookups fall back to DefaultPalette.
func (c *Config) Palette() Palette {
	p := Palette{}
	if c == nil {
		return p
	}
	for k, v := range c.Colors {
		if hex, err := ParseColor(v); err == nil {
			p[k] = hex
		}
	}
	return p
}

// Fonts returns the allowed font families, falling back to DefaultFontFamily.
func (c *Config) Fonts() []string {
	var fonts []string
	if c != nil && c.Typography != nil {
		for _, f := range []string{c.Typography.HeadlineFont, c.Typography.BodyFont} {
			if f != "" && !contains(fonts, f) {
				fonts = append(fonts, f)
			}
		}
	}
	if len(fonts) == 0 {
		fonts = []string{DefaultFontFamily}
	}
	return fonts
}

// HeadlineFont returns the headline family or the default.
func (c *Config) HeadlineFont() string {
	if c != nil && c.Typography != nil && c.Typography.HeadlineFont != "" {
		return c.Typography.HeadlineFont
	}
	return c.BodyFont()
}

// BodyFont returns the body family or the default.
func (c *Config) BodyFont() string {
	if c != nil && c.Typography != nil && c.Typography.BodyFont != "" {
		return c.Typography.BodyFont
	}
	return DefaultFontFamily
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
