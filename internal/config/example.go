package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// exampleConfig is the literal normative example from spec.md §6, carried
// almost verbatim from the source's ConfigManager.create_example_config.
const exampleConfig = `# Reminder System Configuration
# Place icon files in ~/.config/reminder-system/

# General settings (optional - these are the defaults)
[general]
text_font = "Sans Serif"  # Font for reminder text
text_size = 24            # Font size for reminder text
icon_scale = 1.0          # Scale factor for icons (1.0 = 200px)
max_opacity = 0.85        # Maximum opacity of dark overlay (0.0-1.0)
fade_in_duration = 2000   # Fade-in animation duration in milliseconds
fade_out_duration = 500   # Fade-out animation duration in milliseconds

[water_break]
schedule = "0 * * * *"  # Every hour
icon = "water.png"
snooze_duration = 300  # 5 minutes
text = "Time to drink some water!"

[stretch_break]
schedule = "30 9-17 * * 1-5"  # At minute 30 of every hour from 9 to 17 on weekdays
icon = "stretch.png"
snooze_duration = 600  # 10 minutes
text = "Stand up and stretch for a minute"

[eye_rest]
schedule = "*/20 * * * *"  # Every 20 minutes (20-20-20 rule)
icon = "eye.png"
snooze_duration = 120  # 2 minutes
text = "Look at something 20 feet away for 20 seconds"
`

// WriteExampleConfig creates dir (if needed) and writes a ready-to-edit
// config.toml into it. Used by the CLI when Load returns ErrConfigMissing.
func WriteExampleConfig(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}
