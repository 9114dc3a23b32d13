package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"yt-playlist-downloader/internal/config"
	"yt-playlist-downloader/internal/job"
	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/logging"
	"yt-playlist-downloader/internal/proc"
	"yt-playlist-downloader/internal/ytdlp"
)

type downloadParams struct {
	PlaylistURL string
	DownloadDir string
	CookiesPath string
	LastVideos  int
	MaxHeight   int
	ArchivePath string
	LogPath     string
	StatePath   string
}

func runDownload(args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	playlistURL := fs.String("playlist-url", "", "YouTube playlist URL (required)")
	downloadDir := fs.String("download-dir", "", "download directory (default: configured)")
	cookies := fs.String("cookies", "", "path to cookies.txt (default: configured)")
	lastVideos := fs.Int("last-videos", 0, "only the newest N playlist entries (0 = whole playlist)")
	maxHeight := fs.Int("max-height", -1, "max video height in pixels, 0 = best (default: configured)")
	archive := fs.String("archive", "", "download archive path for dedupe (default: configured)")
	configPath := fs.String("config", config.DefaultSettingsPath, "settings file path")
	logPath := fs.String("log", config.DefaultLogPath, "log file path")
	statePath := fs.String("state", config.DefaultRecordPath, "background job record path")
	background := fs.Bool("background", false, "run detached in the background")
	jsonOut := fs.Bool("json", false, "print JSON output (background launch only)")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, _, err := config.EnsureSettings(*configPath)
	if err != nil {
		return err
	}
	params := resolveDownloadParams(downloadParams{
		PlaylistURL: strings.TrimSpace(*playlistURL),
		DownloadDir: strings.TrimSpace(*downloadDir),
		CookiesPath: strings.TrimSpace(*cookies),
		LastVideos:  *lastVideos,
		MaxHeight:   *maxHeight,
		ArchivePath: strings.TrimSpace(*archive),
		LogPath:     strings.TrimSpace(*logPath),
		StatePath:   strings.TrimSpace(*statePath),
	}, settings)
	if params.PlaylistURL == "" {
		return fmt.Errorf("--playlist-url is required")
	}

	if *background {
		return launchBackground(params, *jsonOut)
	}
	return downloadForeground(params)
}

func resolveDownloadParams(params downloadParams, settings config.Settings) downloadParams {
	out := params
	if out.DownloadDir == "" {
		out.DownloadDir = settings.DownloadDir
	}
	if out.CookiesPath == "" {
		out.CookiesPath = settings.CookiesPath
	}
	if out.MaxHeight < 0 {
		out.MaxHeight = settings.MaxQualityHeight
	}
	if out.ArchivePath == "" {
		out.ArchivePath = settings.ArchivePath
	}
	if out.LogPath == "" {
		out.LogPath = config.DefaultLogPath
	}
	if out.StatePath == "" {
		out.StatePath = config.DefaultRecordPath
	}
	if out.LastVideos < 0 {
		out.LastVideos = 0
	}
	return out
}

func downloadForeground(params downloadParams) error {
	if err := ytdlp.CheckDependencies(); err != nil {
		return err
	}
	// Interactive runs mirror log lines to stderr alongside the file.
	logger, err := logging.Open(params.LogPath, true)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Close()
	}()

	logger.Infof("starting playlist download: %s", params.PlaylistURL)
	logger.Infof("saving to: %s", params.DownloadDir)
	if params.CookiesPath != "" {
		logger.Infof("using cookies file: %s", params.CookiesPath)
	}

	result, err := ytdlp.DownloadPlaylist(ytdlp.DownloadOptions{
		PlaylistURL: params.PlaylistURL,
		DownloadDir: params.DownloadDir,
		CookiesPath: params.CookiesPath,
		LastVideos:  params.LastVideos,
		MaxHeight:   params.MaxHeight,
		ArchivePath: params.ArchivePath,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LogWriter:   logger.Writer(),
		EchoOutput:  true,
	})
	if err != nil {
		logger.Errorf("playlist download failed: %v", err)
		return err
	}
	if result.PlaylistEnd > 0 {
		logger.Infof("downloaded playlist range %d-%d", result.PlaylistStart, result.PlaylistEnd)
	} else if params.LastVideos > 0 {
		logger.Warnf("playlist size unknown, fetched the whole playlist")
	}
	logger.Infof("playlist download finished: %s", params.PlaylistURL)
	fmt.Println("All downloads attempted. Review", params.LogPath, "for details.")
	return nil
}

func launchBackground(params downloadParams, jsonOut bool) error {
	if err := ytdlp.CheckDependencies(); err != nil {
		return err
	}
	launcher := job.NewLauncher(jobstore.New(params.StatePath), proc.System())
	rec, err := launcher.Launch(job.Spec{
		Args:        workerArgs(params),
		LogPath:     params.LogPath,
		PlaylistURL: params.PlaylistURL,
	})
	if err != nil {
		var conflict job.AlreadyRunningError
		if errors.As(err, &conflict) {
			return fmt.Errorf("%w; cancel it first or wait for it to finish", conflict)
		}
		return err
	}

	if jsonOut {
		return printJSON(rec)
	}
	fmt.Printf("background download started (pid %d)\n", rec.PID)
	fmt.Printf("output is appended to %s\n", params.LogPath)
	fmt.Println("use 'yt-playlist-downloader status' or 'cancel' to manage it")
	return nil
}

// workerArgs is the argument vector the background worker is re-invoked
// with; it doubles as the job's identity signature on the command line.
func workerArgs(params downloadParams) []string {
	args := []string{
		job.WorkerSubcommand,
		"--playlist-url", params.PlaylistURL,
		"--download-dir", params.DownloadDir,
		"--last-videos", strconv.Itoa(params.LastVideos),
		"--max-height", strconv.Itoa(params.MaxHeight),
		"--log", params.LogPath,
	}
	if params.CookiesPath != "" {
		args = append(args, "--cookies", params.CookiesPath)
	}
	if params.ArchivePath != "" {
		args = append(args, "--archive", params.ArchivePath)
	}
	return args
}
