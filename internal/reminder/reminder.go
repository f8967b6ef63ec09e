// Package reminder defines the immutable data model for a single scheduled
// reminder and the catalogue of reminders loaded from configuration.
package reminder

import "github.com/hzerrad/reminderd/internal/cronx"

// DefaultSnoozeSeconds is used when a reminder's configuration omits
// snooze_duration.
const DefaultSnoozeSeconds = 300

// Definition is the immutable record for one scheduled reminder. Once
// loaded, its fields are never mutated — only the scheduler's entry for it
// changes over the process lifetime.
type Definition struct {
	// Name uniquely identifies the reminder and is used in every
	// cross-component message (dispatch, snooze, complete).
	Name string

	// Schedule is the parsed, validated recurrence.
	Schedule *cronx.Schedule

	// Icon is the raw icon filename as written in configuration.
	Icon string

	// IconPath is Icon resolved to an absolute path against the
	// configuration directory, computed once at load time.
	IconPath string

	// SnoozeSeconds is the duration a snooze() postpones this reminder by.
	// Defaults to DefaultSnoozeSeconds.
	SnoozeSeconds int

	// Text is the optional display string shown by the presenter.
	Text string
}

// GeneralSettings holds presentation tunables consumed only by the
// presenter; the scheduler never inspects these fields.
type GeneralSettings struct {
	TextFont        string
	TextSize        int
	IconScale       float64
	MaxOpacity      float64
	FadeInDuration  int // milliseconds
	FadeOutDuration int // milliseconds
}

// DefaultGeneralSettings returns the documented defaults for [general],
// used when the section is absent or a key is omitted.
func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{
		TextFont:        "Sans Serif",
		TextSize:        24,
		IconScale:       1.0,
		MaxOpacity:      0.85,
		FadeInDuration:  2000,
		FadeOutDuration: 500,
	}
}

// Catalogue is the immutable set of reminders loaded from one
// configuration directory, together with the general presentation
// settings. Order preserves insertion order from the configuration file
// for deterministic status display.
type Catalogue struct {
	General   GeneralSettings
	Reminders []Definition
}

// Get returns the definition with the given name, if present.
func (c *Catalogue) Get(name string) (Definition, bool) {
	for _, d := range c.Reminders {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
