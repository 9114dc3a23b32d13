package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"yt-playlist-downloader/internal/config"
	"yt-playlist-downloader/internal/logging"
	"yt-playlist-downloader/internal/ytdlp"
)

// runWorker is the background entry point: the launcher re-invokes this
// binary with these flags, with stdout and stderr already redirected to
// the shared log file.
func runWorker(args []string) error {
	fs := flag.NewFlagSet("worker", flag.ContinueOnError)
	playlistURL := fs.String("playlist-url", "", "YouTube playlist URL (required)")
	downloadDir := fs.String("download-dir", "", "download directory (required)")
	cookies := fs.String("cookies", "", "path to cookies.txt")
	lastVideos := fs.Int("last-videos", 0, "only the newest N playlist entries (0 = whole playlist)")
	maxHeight := fs.Int("max-height", 0, "max video height in pixels (0 = best)")
	archive := fs.String("archive", "", "download archive path for dedupe")
	logPath := fs.String("log", config.DefaultLogPath, "log file path")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	url := strings.TrimSpace(*playlistURL)
	dir := strings.TrimSpace(*downloadDir)
	if url == "" {
		return fmt.Errorf("--playlist-url is required")
	}
	if dir == "" {
		return fmt.Errorf("--download-dir is required")
	}

	logger, err := logging.Open(strings.TrimSpace(*logPath), false)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Close()
	}()

	logger.Infof("worker pid %d: starting playlist download: %s", os.Getpid(), url)
	result, err := ytdlp.DownloadPlaylist(ytdlp.DownloadOptions{
		PlaylistURL: url,
		DownloadDir: dir,
		CookiesPath: strings.TrimSpace(*cookies),
		LastVideos:  *lastVideos,
		MaxHeight:   *maxHeight,
		ArchivePath: strings.TrimSpace(*archive),
		// Stdout is the log file here; echoing keeps raw yt-dlp lines in
		// the shared chronological record.
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		EchoOutput: true,
	})
	if err != nil {
		logger.Errorf("worker pid %d: playlist download failed: %v", os.Getpid(), err)
		return err
	}
	if *lastVideos > 0 && result.PlaylistEnd == 0 {
		logger.Warnf("worker pid %d: playlist size unknown, fetched the whole playlist", os.Getpid())
	}
	logger.Infof("worker pid %d: playlist download finished: %s", os.Getpid(), url)
	return nil
}
