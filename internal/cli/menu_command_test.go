package cli

import (
	"os"
	"path/filepath"
	"testing"

	"yt-playlist-downloader/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func testSettings() config.Settings {
	return config.Settings{
		DownloadDir:      "/srv/media",
		CookiesPath:      "",
		MaxQualityHeight: 1080,
		ArchivePath:      "state/archive.txt",
	}
}

func TestMenuBoolFieldTogglesWithSpaceAndArrows(t *testing.T) {
	m := menuModel{
		mode: menuModeForm,
		form: newDownloadForm(testSettings(), 80),
	}
	m.form.Index = menuFieldIndexByKey(m.form, "background")
	if m.form.Index < 0 {
		t.Fatal("background field not found")
	}

	model, _ := m.updateForm(tea.KeyMsg{Type: tea.KeySpace})
	m2 := model.(menuModel)
	if got := m2.form.currentField().Value; got != "yes" {
		t.Fatalf("expected background yes after space, got %q", got)
	}

	model, _ = m2.updateForm(tea.KeyMsg{Type: tea.KeyLeft})
	m3 := model.(menuModel)
	if got := m3.form.currentField().Value; got != "no" {
		t.Fatalf("expected background no after left, got %q", got)
	}

	model, _ = m3.updateForm(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m4 := model.(menuModel)
	if got := m4.form.currentField().Value; got != "yes" {
		t.Fatalf("expected background yes after 'y', got %q", got)
	}
}

func TestMenuDownloadFormRequiresPlaylistURL(t *testing.T) {
	m := menuModel{
		mode: menuModeForm,
		form: newDownloadForm(testSettings(), 80),
	}

	model, _ := m.submitForm()
	m2 := model.(menuModel)
	if m2.pendingRun != nil {
		t.Fatal("expected no pending download without a playlist URL")
	}
	if m2.form.Error == "" {
		t.Fatal("expected a validation error on the form")
	}
}

func TestMenuDownloadFormProducesParams(t *testing.T) {
	m := menuModel{
		mode:    menuModeForm,
		logPath: "logs/app.log",
		form:    newDownloadForm(testSettings(), 80),
	}
	setMenuField(t, m.form, "playlist_url", "https://youtube.com/playlist?list=abc")
	setMenuField(t, m.form, "last_videos", "5")
	setMenuField(t, m.form, "background", "yes")

	model, cmd := m.submitForm()
	m2 := model.(menuModel)
	if m2.form.Error != "" {
		t.Fatalf("unexpected form error: %q", m2.form.Error)
	}
	if cmd == nil {
		t.Fatal("expected quit command after submit")
	}
	if m2.pendingRun == nil {
		t.Fatal("expected a pending download request")
	}
	if !m2.pendingBG {
		t.Fatal("expected background launch to be requested")
	}
	if m2.pendingRun.PlaylistURL != "https://youtube.com/playlist?list=abc" {
		t.Fatalf("PlaylistURL: got %q", m2.pendingRun.PlaylistURL)
	}
	if m2.pendingRun.DownloadDir != "/srv/media" {
		t.Fatalf("DownloadDir: got %q want configured default", m2.pendingRun.DownloadDir)
	}
	if m2.pendingRun.LastVideos != 5 {
		t.Fatalf("LastVideos: got %d want 5", m2.pendingRun.LastVideos)
	}
}

func TestMenuSettingsFormRejectsBadHeight(t *testing.T) {
	form := newSettingsForm(testSettings(), 80)
	setMenuField(t, form, "max_height", "abc")
	if _, err := form.toSettings(); err == nil {
		t.Fatal("expected error for non-numeric height")
	}

	setMenuField(t, form, "max_height", "-1")
	if _, err := form.toSettings(); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestMenuFormsAcceptZeroMaxHeight(t *testing.T) {
	form := newSettingsForm(testSettings(), 80)
	setMenuField(t, form, "max_height", "0")
	got, err := form.toSettings()
	if err != nil {
		t.Fatalf("max_height 0 rejected: %v", err)
	}
	if got.MaxQualityHeight != 0 {
		t.Fatalf("MaxQualityHeight: got %d want 0 (best available)", got.MaxQualityHeight)
	}

	dl := newDownloadForm(testSettings(), 80)
	setMenuField(t, dl, "playlist_url", "https://youtube.com/playlist?list=abc")
	setMenuField(t, dl, "max_height", "0")
	params, _, err := dl.toDownloadParams(testSettings(), "logs/app.log", "state/job.json")
	if err != nil {
		t.Fatalf("max_height 0 rejected in download form: %v", err)
	}
	if params.MaxHeight != 0 {
		t.Fatalf("MaxHeight: got %d want 0 (best available)", params.MaxHeight)
	}
}

func TestMenuSettingsFormProducesSettings(t *testing.T) {
	form := newSettingsForm(testSettings(), 80)
	setMenuField(t, form, "download_dir", "/tmp/out")
	setMenuField(t, form, "max_height", "720")

	got, err := form.toSettings()
	if err != nil {
		t.Fatalf("toSettings: %v", err)
	}
	if got.DownloadDir != "/tmp/out" {
		t.Fatalf("DownloadDir: got %q want %q", got.DownloadDir, "/tmp/out")
	}
	if got.MaxQualityHeight != 720 {
		t.Fatalf("MaxQualityHeight: got %d want 720", got.MaxQualityHeight)
	}
	if got.ArchivePath != "state/archive.txt" {
		t.Fatalf("ArchivePath: got %q", got.ArchivePath)
	}
}

func TestMenuLoadSeedsSettingsFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	statePath := filepath.Join(dir, "job.json")

	msg := loadMenuCmd(configPath, statePath)()
	loaded, ok := msg.(menuLoadedMsg)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if loaded.err != nil {
		t.Fatalf("load: %v", loaded.err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("settings file not created on first load: %v", err)
	}
	if loaded.settings.DownloadDir != config.DefaultDownloadDir {
		t.Fatalf("DownloadDir: got %q want %q", loaded.settings.DownloadDir, config.DefaultDownloadDir)
	}
}

func TestParseBool(t *testing.T) {
	for _, raw := range []string{"y", "YES", "true", "1", "on"} {
		v, ok := parseBool(raw)
		if !ok || !v {
			t.Fatalf("parseBool(%q): got (%v, %v) want (true, true)", raw, v, ok)
		}
	}
	for _, raw := range []string{"n", "No", "false", "0", "off", ""} {
		v, ok := parseBool(raw)
		if !ok || v {
			t.Fatalf("parseBool(%q): got (%v, %v) want (false, true)", raw, v, ok)
		}
	}
	if _, ok := parseBool("maybe"); ok {
		t.Fatal("parseBool(\"maybe\"): expected not ok")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("short", 10); got != "short" {
		t.Fatalf("got %q want %q", got, "short")
	}
	if got := truncateRunes("a longer label", 8); got != "a lon..." {
		t.Fatalf("got %q want %q", got, "a lon...")
	}
	if got := truncateRunes("abc", 0); got != "" {
		t.Fatalf("got %q want empty", got)
	}
}

func setMenuField(t *testing.T, f *menuForm, key, value string) {
	t.Helper()
	idx := menuFieldIndexByKey(f, key)
	if idx < 0 {
		t.Fatalf("field %q not found", key)
	}
	f.Fields[idx].Value = value
}

func menuFieldIndexByKey(f *menuForm, key string) int {
	if f == nil {
		return -1
	}
	for i, field := range f.Fields {
		if field.Key == key {
			return i
		}
	}
	return -1
}
