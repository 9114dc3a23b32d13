package cli

import (
	"fmt"
	"strconv"
	"strings"

	"yt-playlist-downloader/internal/config"

	"github.com/charmbracelet/bubbles/textinput"
)

func newDownloadForm(settings config.Settings, width int) *menuForm {
	fields := []menuFormField{
		{Key: "playlist_url", Label: "Playlist URL", Help: "YouTube playlist to fetch", Kind: menuFieldString, Required: true},
		{Key: "download_dir", Label: "Download directory", Kind: menuFieldString, Value: settings.DownloadDir},
		{Key: "cookies_path", Label: "Cookies file (optional)", Kind: menuFieldString, Value: settings.CookiesPath},
		{Key: "last_videos", Label: "Only the newest N videos (0 = all)", Kind: menuFieldInt, Value: "0"},
		{Key: "max_height", Label: "Max video height (0 = best available)", Kind: menuFieldInt, Value: strconv.Itoa(settings.MaxQualityHeight)},
		{Key: "background", Label: "Run in background", Kind: menuFieldBool, Value: "no"},
	}
	return newMenuForm(menuFormKindDownload, "Start a download", fields, width)
}

func newSettingsForm(settings config.Settings, width int) *menuForm {
	fields := []menuFormField{
		{Key: "download_dir", Label: "Download directory", Kind: menuFieldString, Value: settings.DownloadDir, Required: true},
		{Key: "cookies_path", Label: "Cookies file (optional)", Kind: menuFieldString, Value: settings.CookiesPath},
		{Key: "max_height", Label: "Max video height (0 = best available)", Kind: menuFieldInt, Value: strconv.Itoa(settings.MaxQualityHeight)},
		{Key: "archive_path", Label: "Download archive path", Kind: menuFieldString, Value: settings.ArchivePath, Required: true},
	}
	return newMenuForm(menuFormKindSettings, "Configuration", fields, width)
}

func newMenuForm(kind menuFormKind, title string, fields []menuFormField, width int) *menuForm {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 1024
	input.Width = clampInt(width-8, 20, 120)
	f := &menuForm{Kind: kind, Title: title, Fields: fields, Input: input}
	f.loadFieldIntoInput()
	return f
}

func (f *menuForm) currentField() menuFormField {
	if f.Index < 0 || f.Index >= len(f.Fields) {
		return menuFormField{}
	}
	return f.Fields[f.Index]
}

func (f *menuForm) loadFieldIntoInput() {
	curr := f.currentField()
	f.Input.SetValue(curr.Value)
	f.Input.CursorEnd()
	if curr.Kind == menuFieldBool {
		f.Input.Blur()
	} else {
		f.Input.Focus()
	}
}

func (f *menuForm) commitInput() {
	if f.Index < 0 || f.Index >= len(f.Fields) {
		return
	}
	if f.Fields[f.Index].Kind == menuFieldBool {
		return
	}
	f.Fields[f.Index].Value = f.Input.Value()
}

func (f *menuForm) toggleBoolField() {
	if f.Index < 0 || f.Index >= len(f.Fields) {
		return
	}
	curr, _ := parseBool(f.Fields[f.Index].Value)
	f.Fields[f.Index].Value = yesNo(!curr)
}

func (f *menuForm) setBoolField(v bool) {
	if f.Index < 0 || f.Index >= len(f.Fields) {
		return
	}
	f.Fields[f.Index].Value = yesNo(v)
}

func (f *menuForm) stringValue(key string) string {
	for _, field := range f.Fields {
		if field.Key == key {
			return strings.TrimSpace(field.Value)
		}
	}
	return ""
}

func (f *menuForm) intValue(key string) (int, error) {
	raw := f.stringValue(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", key)
	}
	return n, nil
}

func (f *menuForm) boolValue(key string) bool {
	v, _ := parseBool(f.stringValue(key))
	return v
}

func (f *menuForm) validateRequired() error {
	for _, field := range f.Fields {
		if field.Required && strings.TrimSpace(field.Value) == "" {
			return fmt.Errorf("%s is required", field.Label)
		}
	}
	return nil
}

func (f *menuForm) toSettings() (config.Settings, error) {
	if err := f.validateRequired(); err != nil {
		return config.Settings{}, err
	}
	maxHeight, err := f.intValue("max_height")
	if err != nil {
		return config.Settings{}, err
	}
	if maxHeight < 0 {
		return config.Settings{}, fmt.Errorf("max video height cannot be negative (0 = best available)")
	}
	return config.Settings{
		DownloadDir:      f.stringValue("download_dir"),
		CookiesPath:      f.stringValue("cookies_path"),
		MaxQualityHeight: maxHeight,
		ArchivePath:      f.stringValue("archive_path"),
	}, nil
}

func (f *menuForm) toDownloadParams(settings config.Settings, logPath, statePath string) (downloadParams, bool, error) {
	if err := f.validateRequired(); err != nil {
		return downloadParams{}, false, err
	}
	lastVideos, err := f.intValue("last_videos")
	if err != nil {
		return downloadParams{}, false, err
	}
	if lastVideos < 0 {
		return downloadParams{}, false, fmt.Errorf("newest N videos cannot be negative")
	}
	maxHeight, err := f.intValue("max_height")
	if err != nil {
		return downloadParams{}, false, err
	}
	if maxHeight < 0 {
		return downloadParams{}, false, fmt.Errorf("max video height cannot be negative (0 = best available)")
	}
	params := downloadParams{
		PlaylistURL: f.stringValue("playlist_url"),
		DownloadDir: defaultIfEmpty(f.stringValue("download_dir"), settings.DownloadDir),
		CookiesPath: f.stringValue("cookies_path"),
		LastVideos:  lastVideos,
		MaxHeight:   maxHeight,
		ArchivePath: settings.ArchivePath,
		LogPath:     logPath,
		StatePath:   statePath,
	}
	return params, f.boolValue("background"), nil
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true", "1", "on":
		return true, true
	case "n", "no", "false", "0", "off", "":
		return false, true
	default:
		return false, false
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func kv(key, value string) string {
	return fmt.Sprintf("%s: %s", key, value)
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
