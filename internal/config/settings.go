// Package config loads and persists the tool's settings file.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"yt-playlist-downloader/internal/statefile"
)

const (
	DefaultSettingsPath = "config/config.json"

	DefaultDownloadDir      = "downloads"
	DefaultMaxQualityHeight = 1080
	DefaultArchivePath      = "state/archive.txt"
	DefaultLogPath          = "logs/app.log"
	DefaultRecordPath       = "state/job.json"
)

type Settings struct {
	DownloadDir      string `json:"download_dir"`
	CookiesPath      string `json:"cookies_path,omitempty"`
	MaxQualityHeight int    `json:"max_quality_height"`
	ArchivePath      string `json:"archive_path"`
}

func DefaultSettings() Settings {
	return Settings{
		DownloadDir:      DefaultDownloadDir,
		MaxQualityHeight: DefaultMaxQualityHeight,
		ArchivePath:      DefaultArchivePath,
	}
}

func normalizeSettings(raw Settings) Settings {
	norm := raw
	norm.DownloadDir = strings.TrimSpace(norm.DownloadDir)
	if norm.DownloadDir == "" {
		norm.DownloadDir = DefaultDownloadDir
	}
	norm.CookiesPath = strings.TrimSpace(norm.CookiesPath)
	if norm.MaxQualityHeight < 0 {
		norm.MaxQualityHeight = DefaultMaxQualityHeight
	}
	norm.ArchivePath = strings.TrimSpace(norm.ArchivePath)
	if norm.ArchivePath == "" {
		norm.ArchivePath = DefaultArchivePath
	}
	return norm
}

func normalizeSettingsPath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return DefaultSettingsPath
	}
	return p
}

// ReadSettings returns the stored settings merged over defaults. A missing
// or malformed file yields defaults, not an error.
func ReadSettings(path string) Settings {
	data, err := os.ReadFile(normalizeSettingsPath(path))
	if err != nil {
		return DefaultSettings()
	}
	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings()
	}
	return normalizeSettings(settings)
}

// EnsureSettings creates the settings file with defaults when absent and
// reports whether it was created.
func EnsureSettings(path string) (Settings, bool, error) {
	p := normalizeSettingsPath(path)
	if _, err := os.Stat(p); err == nil {
		return ReadSettings(p), false, nil
	} else if !os.IsNotExist(err) {
		return Settings{}, false, err
	}
	settings := DefaultSettings()
	if err := statefile.WriteJSON(p, settings); err != nil {
		return Settings{}, false, err
	}
	return settings, true, nil
}

// UpdateSettings normalizes and atomically rewrites the settings file.
func UpdateSettings(path string, settings Settings) (Settings, error) {
	p := normalizeSettingsPath(path)
	norm := normalizeSettings(settings)
	if err := statefile.WriteJSON(p, norm); err != nil {
		return Settings{}, err
	}
	return norm, nil
}
