package cli

import (
	"flag"
	"fmt"
	"strings"

	"yt-playlist-downloader/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func runConfigure(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	downloadDir := fs.String("download-dir", "", "set the download directory")
	cookies := fs.String("cookies", "", "set the cookies.txt path (\"-\" clears it)")
	maxHeight := fs.Int("max-height", -1, "set the max video height in pixels, 0 = best available")
	archive := fs.String("archive", "", "set the download archive path")
	show := fs.Bool("show", false, "print the effective settings and exit")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := strings.TrimSpace(*configPath)
	settings, _, err := config.EnsureSettings(path)
	if err != nil {
		return err
	}

	changed := false
	if v := strings.TrimSpace(*downloadDir); v != "" {
		settings.DownloadDir = v
		changed = true
	}
	if v := strings.TrimSpace(*cookies); v != "" {
		if v == "-" {
			settings.CookiesPath = ""
		} else {
			settings.CookiesPath = v
		}
		changed = true
	}
	if *maxHeight >= 0 {
		settings.MaxQualityHeight = *maxHeight
		changed = true
	}
	if v := strings.TrimSpace(*archive); v != "" {
		settings.ArchivePath = v
		changed = true
	}

	if changed {
		saved, err := config.UpdateSettings(path, settings)
		if err != nil {
			return err
		}
		return printSettings(saved, path, *jsonOut)
	}
	if *show || !stdinIsTTY() {
		return printSettings(settings, path, *jsonOut)
	}
	return configureInteractive(path)
}

func configureInteractive(configPath string) error {
	m := menuModel{
		configPath:    configPath,
		statePath:     config.DefaultRecordPath,
		logPath:       config.DefaultLogPath,
		mode:          menuModeForm,
		quitAfterSave: true,
	}
	settings, _, err := config.EnsureSettings(configPath)
	if err != nil {
		return err
	}
	m.form = newSettingsForm(settings, 0)
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, ok := finalModel.(menuModel)
	if !ok {
		return nil
	}
	if fm.fatalErr != nil {
		return fm.fatalErr
	}
	if fm.savedSettings {
		fmt.Println("settings saved to", configPath)
	}
	return nil
}

func printSettings(settings config.Settings, path string, jsonOut bool) error {
	if jsonOut {
		return printJSON(settings)
	}
	fmt.Println("settings file:", path)
	fmt.Println(kv("download_dir", settings.DownloadDir))
	fmt.Println(kv("cookies_path", defaultIfEmpty(settings.CookiesPath, "(none)")))
	fmt.Println(kv("max_quality_height", fmt.Sprintf("%d", settings.MaxQualityHeight)))
	fmt.Println(kv("archive_path", settings.ArchivePath))
	return nil
}
