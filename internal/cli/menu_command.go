package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"yt-playlist-downloader/internal/config"
	"yt-playlist-downloader/internal/job"
	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuMode int

const (
	menuModeBrowse menuMode = iota
	menuModeForm
)

type menuFormKind int

const (
	menuFormKindDownload menuFormKind = iota
	menuFormKindSettings
)

type menuFieldKind int

const (
	menuFieldString menuFieldKind = iota
	menuFieldInt
	menuFieldBool
)

type menuItem int

const (
	menuItemDownload menuItem = iota
	menuItemConfigure
	menuItemQuit
	menuItemCount
)

type menuFormField struct {
	Key      string
	Label    string
	Help     string
	Kind     menuFieldKind
	Value    string
	Required bool
}

type menuForm struct {
	Kind   menuFormKind
	Title  string
	Fields []menuFormField
	Index  int
	Input  textinput.Model
	Error  string
	Saving bool
}

type menuModel struct {
	configPath string
	statePath  string
	logPath    string
	settings   config.Settings
	jobStatus  job.StatusReport
	cursor     int
	width      int
	height     int
	mode       menuMode
	form       *menuForm

	statusMessage string
	pendingRun    *downloadParams
	pendingBG     bool
	quitAfterSave bool
	savedSettings bool
	fatalErr      error
}

type menuLoadedMsg struct {
	settings  config.Settings
	jobStatus job.StatusReport
	err       error
}

type menuSaveMsg struct {
	settings config.Settings
	message  string
	err      error
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	menuOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	menuPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	menuSelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
)

func runMenu(args []string) error {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	statePath := fs.String("state", config.DefaultRecordPath, "background job record path")
	logPath := fs.String("log", config.DefaultLogPath, "log file path")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !stdinIsTTY() {
		return errors.New("menu requires an interactive terminal (TTY)")
	}

	m := menuModel{
		configPath: strings.TrimSpace(*configPath),
		statePath:  strings.TrimSpace(*statePath),
		logPath:    strings.TrimSpace(*logPath),
		mode:       menuModeBrowse,
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "tty") {
			return errors.New("menu requires an interactive terminal (TTY)")
		}
		return err
	}
	fm, ok := finalModel.(menuModel)
	if !ok {
		return nil
	}
	if fm.fatalErr != nil {
		return fm.fatalErr
	}
	if fm.pendingRun != nil {
		if fm.pendingBG {
			return launchBackground(*fm.pendingRun, false)
		}
		return downloadForeground(*fm.pendingRun)
	}
	return nil
}

func loadMenuCmd(configPath, statePath string) tea.Cmd {
	return func() tea.Msg {
		settings, _, err := config.EnsureSettings(configPath)
		if err != nil {
			return menuLoadedMsg{err: err}
		}
		monitor := job.NewMonitor(jobstore.New(statePath), proc.System())
		status, err := monitor.Status()
		if err != nil {
			return menuLoadedMsg{err: err}
		}
		return menuLoadedMsg{settings: settings, jobStatus: status}
	}
}

func saveSettingsCmd(configPath string, settings config.Settings) tea.Cmd {
	return func() tea.Msg {
		saved, err := config.UpdateSettings(configPath, settings)
		if err != nil {
			return menuSaveMsg{err: err}
		}
		return menuSaveMsg{settings: saved, message: "settings saved"}
	}
}

func (m menuModel) Init() tea.Cmd {
	return loadMenuCmd(m.configPath, m.statePath)
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form.Input.Width = clampInt(m.width-8, 20, 120)
		}
		return m, nil
	case menuLoadedMsg:
		if msg.err != nil {
			m.fatalErr = msg.err
			return m, tea.Quit
		}
		m.settings = msg.settings
		m.jobStatus = msg.jobStatus
		return m, nil
	case menuSaveMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.Error = msg.err.Error()
				m.form.Saving = false
			}
			return m, nil
		}
		m.settings = msg.settings
		m.savedSettings = true
		if m.quitAfterSave {
			return m, tea.Quit
		}
		m.mode = menuModeBrowse
		m.form = nil
		m.statusMessage = msg.message
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case menuModeForm:
		return m.updateForm(keyMsg)
	default:
		return m.updateBrowse(keyMsg)
	}
}

func (m menuModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < int(menuItemCount)-1 {
			m.cursor++
		}
		return m, nil
	case "r":
		return m, loadMenuCmd(m.configPath, m.statePath)
	case "enter":
		switch menuItem(m.cursor) {
		case menuItemDownload:
			m.mode = menuModeForm
			m.form = newDownloadForm(m.settings, m.width)
			m.statusMessage = ""
			return m, nil
		case menuItemConfigure:
			m.mode = menuModeForm
			m.form = newSettingsForm(m.settings, m.width)
			m.statusMessage = ""
			return m, nil
		case menuItemQuit:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m menuModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = menuModeBrowse
		return m, nil
	}
	if m.form.Saving {
		return m, nil
	}

	key := strings.ToLower(msg.String())
	switch key {
	case "ctrl+c", "esc":
		if m.quitAfterSave {
			return m, tea.Quit
		}
		m.mode = menuModeBrowse
		m.form = nil
		m.statusMessage = "cancelled"
		return m, nil
	case "up", "shift+tab":
		m.form.commitInput()
		if m.form.Index > 0 {
			m.form.Index--
		}
		m.form.loadFieldIntoInput()
		return m, nil
	case "down", "tab":
		m.form.commitInput()
		if m.form.Index < len(m.form.Fields)-1 {
			m.form.Index++
		}
		m.form.loadFieldIntoInput()
		return m, nil
	case " ", "space", "left", "right":
		if m.form.currentField().Kind == menuFieldBool {
			m.form.toggleBoolField()
			return m, nil
		}
	case "enter", "ctrl+s":
		m.form.commitInput()
		if m.form.Index < len(m.form.Fields)-1 && key != "ctrl+s" {
			m.form.Index++
			m.form.loadFieldIntoInput()
			return m, nil
		}
		return m.submitForm()
	}

	if m.form.currentField().Kind == menuFieldBool {
		switch key {
		case "y":
			m.form.setBoolField(true)
		case "n":
			m.form.setBoolField(false)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.form.Input, cmd = m.form.Input.Update(msg)
	m.form.Fields[m.form.Index].Value = m.form.Input.Value()
	return m, cmd
}

func (m menuModel) submitForm() (tea.Model, tea.Cmd) {
	if m.form.Kind == menuFormKindSettings {
		settings, err := m.form.toSettings()
		if err != nil {
			m.form.Error = err.Error()
			return m, nil
		}
		m.form.Error = ""
		m.form.Saving = true
		return m, saveSettingsCmd(m.configPath, settings)
	}

	params, background, err := m.form.toDownloadParams(m.settings, m.logPath, m.statePath)
	if err != nil {
		m.form.Error = err.Error()
		return m, nil
	}
	m.pendingRun = &params
	m.pendingBG = background
	return m, tea.Quit
}

func (m menuModel) View() string {
	if m.fatalErr != nil {
		return menuErrorStyle.Render("fatal: " + m.fatalErr.Error())
	}
	if m.width <= 0 {
		m.width = 100
	}
	if m.height <= 0 {
		m.height = 30
	}
	if m.mode == menuModeForm && m.form != nil {
		return m.viewForm()
	}
	return m.viewBrowse()
}

func (m menuModel) viewBrowse() string {
	header := menuTitleStyle.Render("YouTube playlist downloader") + "\n" +
		menuMutedStyle.Render("up/down: move | enter: select | r: refresh | q: quit")

	labels := []string{
		"Start a download",
		"Configuration",
		"Quit",
	}
	lines := make([]string, 0, len(labels))
	for i, label := range labels {
		line := truncateRunes(label, maxInt(m.width-8, 10))
		if i == m.cursor {
			line = menuSelStyle.Width(maxInt(m.width/2-4, 10)).Render(line)
		}
		lines = append(lines, line)
	}
	list := menuPanelStyle.Width(maxInt(m.width/2, 24)).Render(strings.Join(lines, "\n"))

	details := []string{"Current settings", ""}
	details = append(details, kv("download_dir", m.settings.DownloadDir))
	details = append(details, kv("cookies_path", defaultIfEmpty(m.settings.CookiesPath, "(none)")))
	details = append(details, kv("max_quality_height", strconv.Itoa(m.settings.MaxQualityHeight)))
	details = append(details, kv("archive_path", m.settings.ArchivePath))
	details = append(details, "")
	switch m.jobStatus.State {
	case job.StateRunning:
		details = append(details, menuOKStyle.Render(fmt.Sprintf("background download running (pid %d)", m.jobStatus.PID)))
	default:
		details = append(details, menuMutedStyle.Render("no background download tracked"))
	}
	panel := menuPanelStyle.Width(maxInt(m.width/2-2, 24)).Render(strings.Join(details, "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, panel)
	status := menuMutedStyle.Render(defaultIfEmpty(m.statusMessage, " "))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m menuModel) viewForm() string {
	header := menuTitleStyle.Render(m.form.Title)
	hints := menuMutedStyle.Render("tab/up/down: move | left/right/space: toggle | y/n: set yes/no | enter: next/submit | ctrl+s: submit | esc: back")

	lines := make([]string, 0, len(m.form.Fields)+5)
	for i, f := range m.form.Fields {
		prefix := "  "
		if i == m.form.Index {
			prefix = "> "
		}
		display := strings.TrimSpace(f.Value)
		if f.Kind == menuFieldBool {
			v, _ := parseBool(display)
			display = yesNo(v)
		}
		if display == "" {
			display = menuMutedStyle.Render("(empty)")
		}
		lines = append(lines, truncateRunes(fmt.Sprintf("%s%s: %s", prefix, f.Label, display), maxInt(m.width-6, 20)))
	}

	curr := m.form.currentField()
	inputLabel := fmt.Sprintf("\n%s\n", curr.Label)
	inputHelp := ""
	if strings.TrimSpace(curr.Help) != "" {
		inputHelp = menuMutedStyle.Render(curr.Help) + "\n"
	}
	status := ""
	if m.form.Saving {
		status = menuMutedStyle.Render("\nSaving...")
	}
	if strings.TrimSpace(m.form.Error) != "" {
		status = "\n" + menuErrorStyle.Render(m.form.Error)
	}

	panel := menuPanelStyle.Width(maxInt(m.width, 40)).Render(
		strings.Join(lines, "\n") + inputLabel + inputHelp + m.form.Input.View() + status)
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, panel)
}
