package cmd

import (
	"github.com/hzerrad/reminderd/internal/config"
	"github.com/hzerrad/reminderd/internal/reminder"
)

// loadCatalogue loads the reminder catalogue from dir, defaulting to
// config.DefaultDir() when dir is empty. Shared by check, list, next and run
// so the config-resolution rule lives in exactly one place.
func loadCatalogue(dir string) (*reminder.Catalogue, []config.Warning, error) {
	if dir == "" {
		dir = config.DefaultDir()
	}
	return config.Load(dir)
}
