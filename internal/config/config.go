// Package config loads the service configuration from a YAML file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"avatar/internal/anim"
	"avatar/internal/avatar"
	"avatar/internal/export"
	"avatar/internal/option"
)

// Config is the whole configuration file.
type Config struct {
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"logLevel"`
	Templates string `yaml:"templates"`
	// SessionIdle closes avatars nobody has touched for this long.
	SessionIdle Millis `yaml:"sessionIdle"`

	Defaults   option.Values `yaml:"defaults"`
	Style      string        `yaml:"style"`
	Background string        `yaml:"background"`
	Animation  Animation     `yaml:"animation"`
	Export     Export        `yaml:"export"`
}

// Animation mirrors anim.Config with YAML-friendly types.
type Animation struct {
	IdleInterval  Millis           `yaml:"idleInterval"`
	HoverScale    float64          `yaml:"hoverScale"`
	HoverSequence Sequence         `yaml:"hoverSequence"`
	HoverInterval Millis           `yaml:"hoverInterval"`
	Original      *anim.Expression `yaml:"original"`
}

type Export struct {
	GIFDelay Millis `yaml:"gifDelay"`
	Width    int    `yaml:"width"`
}

// Millis is a duration written as a whole number of milliseconds.
type Millis time.Duration

func (m *Millis) UnmarshalYAML(value *yaml.Node) error {
	var n int64
	if err := value.Decode(&n); err != nil {
		return errors.Wrapf(err, "line %d: expected milliseconds", value.Line)
	}
	*m = Millis(time.Duration(n) * time.Millisecond)
	return nil
}

func (m Millis) Duration() time.Duration { return time.Duration(m) }

// Sequence is a list of expressions, or the word "default" for the
// built-in preset.
type Sequence []anim.Expression

func (s *Sequence) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		if value.Value != "default" {
			return errors.Errorf("line %d: hoverSequence must be a list or \"default\", got %q", value.Line, value.Value)
		}
		*s = append(Sequence(nil), anim.DefaultHoverSequence...)
		return nil
	}
	var list []anim.Expression
	if err := value.Decode(&list); err != nil {
		return errors.Wrapf(err, "line %d: hoverSequence", value.Line)
	}
	*s = list
	return nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen:      ":8080",
		LogLevel:    "info",
		Templates:   "templates",
		SessionIdle: Millis(30 * time.Minute),
		Style:       string(avatar.StyleCircle),
		Background:  avatar.DefaultBackground,
		Export: Export{
			GIFDelay: Millis(export.DefaultDelay),
			Width:    export.DefaultWidth,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults alone.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return c, nil
}

// Anim converts the animation section.
func (a Animation) Anim() anim.Config {
	return anim.Config{
		IdleInterval:  a.IdleInterval.Duration(),
		HoverScale:    a.HoverScale,
		HoverSequence: append([]anim.Expression(nil), a.HoverSequence...),
		HoverInterval: a.HoverInterval.Duration(),
		Original:      a.Original,
	}
}

// Props is the avatar every new visitor starts with.
func (c *Config) Props() avatar.Props {
	return avatar.Props{
		Values:     c.Defaults.Clone(),
		Style:      avatar.Style(c.Style),
		Background: c.Background,
		Anim:       c.Animation.Anim(),
	}
}

// ExportOptions are the encoder settings from the export section.
func (c *Config) ExportOptions() export.Options {
	return export.Options{Width: c.Export.Width, Delay: c.Export.GIFDelay.Duration()}
}
