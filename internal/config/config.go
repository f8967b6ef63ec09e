// Package config loads the declarative reminder configuration file and
// produces an immutable reminder.Catalogue.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hzerrad/reminderd/internal/cronx"
	"github.com/hzerrad/reminderd/internal/reminder"
)

// ConfigFileName is the name of the declarative configuration file expected
// inside the configuration directory.
const ConfigFileName = "config.toml"

// DefaultDir returns $HOME/.config/reminder-system, the default
// configuration directory when the host doesn't override it.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "reminder-system")
	}
	return filepath.Join(home, ".config", "reminder-system")
}

// ErrConfigMissing is returned by Load when dir/config.toml does not exist.
// Callers (the CLI) respond by calling WriteExampleConfig and exiting
// non-zero, exactly as spec.md §7's ConfigMissing taxonomy entry requires.
var ErrConfigMissing = errors.New("config: configuration file not found")

// Warning is a non-fatal issue discovered while loading the catalogue (the
// only kind spec.md §4.2 permits is a missing icon file).
type Warning struct {
	ReminderName string
	Message      string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.ReminderName, w.Message)
}

// rawTable distinguishes the reserved [general] table from reminder tables
// before either is strictly decoded, mirroring the source's dynamic-typing
// dispatch over the top-level TOML map (spec.md §9).
type rawTable struct {
	primitive toml.Primitive
	name      string
}

// Load reads dir/config.toml and returns the parsed catalogue together with
// any non-fatal warnings. Missing required keys or an invalid schedule are
// fatal and returned as an error naming the offending reminder.
func Load(dir string) (*reminder.Catalogue, []Warning, error) {
	path := filepath.Join(dir, ConfigFileName)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrConfigMissing
		}
		return nil, nil, fmt.Errorf("config: failed to stat %s: %w", path, err)
	}

	var raw map[string]toml.Primitive
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	general := reminder.DefaultGeneralSettings()
	var tables []rawTable

	// toml.MetaData.Keys() preserves source order; Go map iteration over
	// raw would not, and spec.md §4.2 requires insertion-order preservation
	// for deterministic catalogue display.
	seenTop := make(map[string]bool)
	for _, key := range meta.Keys() {
		if len(key) != 1 {
			continue // nested keys belong to a table already captured by its top-level name
		}
		name := key[0]
		if seenTop[name] {
			continue
		}
		seenTop[name] = true

		if meta.Type(name) != "Hash" {
			continue // bare top-level scalar, not a table; ignored per spec.md §4.2
		}

		primitive, ok := raw[name]
		if !ok {
			continue
		}

		if name == "general" {
			var g generalSection
			if err := meta.PrimitiveDecode(primitive, &g); err != nil {
				return nil, nil, fmt.Errorf("config: failed to parse [general]: %w", err)
			}
			general = g.toSettings()
			continue
		}

		tables = append(tables, rawTable{primitive: primitive, name: name})
	}

	var warnings []Warning
	reminders := make([]reminder.Definition, 0, len(tables))

	for _, t := range tables {
		var section reminderSection
		if err := meta.PrimitiveDecode(t.primitive, &section); err != nil {
			return nil, nil, fmt.Errorf("config: reminder %q is malformed: %w", t.name, err)
		}

		def, warning, err := section.toDefinition(t.name, dir)
		if err != nil {
			return nil, nil, err
		}
		if warning != nil {
			warnings = append(warnings, *warning)
		}

		reminders = append(reminders, def)
	}

	return &reminder.Catalogue{General: general, Reminders: reminders}, warnings, nil
}

// generalSection is the strict decode target for [general]; zero values are
// indistinguishable from "absent" under BurntSushi/toml for non-pointer
// fields, so every field defaults via toSettings rather than a struct tag.
type generalSection struct {
	TextFont        *string  `toml:"text_font"`
	TextSize        *int     `toml:"text_size"`
	IconScale       *float64 `toml:"icon_scale"`
	MaxOpacity      *float64 `toml:"max_opacity"`
	FadeInDuration  *int     `toml:"fade_in_duration"`
	FadeOutDuration *int     `toml:"fade_out_duration"`
}

func (g generalSection) toSettings() reminder.GeneralSettings {
	settings := reminder.DefaultGeneralSettings()
	if g.TextFont != nil {
		settings.TextFont = *g.TextFont
	}
	if g.TextSize != nil {
		settings.TextSize = *g.TextSize
	}
	if g.IconScale != nil {
		settings.IconScale = *g.IconScale
	}
	if g.MaxOpacity != nil {
		settings.MaxOpacity = *g.MaxOpacity
	}
	if g.FadeInDuration != nil {
		settings.FadeInDuration = *g.FadeInDuration
	}
	if g.FadeOutDuration != nil {
		settings.FadeOutDuration = *g.FadeOutDuration
	}
	return settings
}

type reminderSection struct {
	Schedule       *string `toml:"schedule"`
	Icon           *string `toml:"icon"`
	SnoozeDuration *int    `toml:"snooze_duration"`
	Text           *string `toml:"text"`
}

func (s reminderSection) toDefinition(name, dir string) (reminder.Definition, *Warning, error) {
	if s.Schedule == nil {
		return reminder.Definition{}, nil, fmt.Errorf("config: reminder %q is missing required field %q", name, "schedule")
	}
	if s.Icon == nil {
		return reminder.Definition{}, nil, fmt.Errorf("config: reminder %q is missing required field %q", name, "icon")
	}

	parser := cronx.NewParser()
	schedule, err := parser.Parse(*s.Schedule)
	if err != nil {
		return reminder.Definition{}, nil, fmt.Errorf("config: reminder %q has invalid schedule %q: %w", name, *s.Schedule, err)
	}

	iconPath := filepath.Join(dir, *s.Icon)

	var warning *Warning
	if _, err := os.Stat(iconPath); err != nil {
		warning = &Warning{
			ReminderName: name,
			Message:      fmt.Sprintf("icon file not found: %s", iconPath),
		}
	}

	def := reminder.Definition{
		Name:          name,
		Schedule:      schedule,
		Icon:          *s.Icon,
		IconPath:      iconPath,
		SnoozeSeconds: reminder.DefaultSnoozeSeconds,
	}
	if s.SnoozeDuration != nil {
		def.SnoozeSeconds = *s.SnoozeDuration
	}
	if s.Text != nil {
		def.Text = *s.Text
	}

	return def, warning, nil
}
