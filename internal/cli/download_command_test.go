package cli

import (
	"strings"
	"testing"

	"yt-playlist-downloader/internal/config"
)

func TestResolveDownloadParamsFillsConfiguredDefaults(t *testing.T) {
	settings := config.Settings{
		DownloadDir:      "/srv/media",
		CookiesPath:      "/srv/cookies.txt",
		MaxQualityHeight: 720,
		ArchivePath:      "state/archive.txt",
	}

	got := resolveDownloadParams(downloadParams{
		PlaylistURL: "https://youtube.com/playlist?list=abc",
		MaxHeight:   -1,
		LastVideos:  -3,
	}, settings)

	if got.DownloadDir != "/srv/media" {
		t.Fatalf("DownloadDir: got %q want %q", got.DownloadDir, "/srv/media")
	}
	if got.CookiesPath != "/srv/cookies.txt" {
		t.Fatalf("CookiesPath: got %q want %q", got.CookiesPath, "/srv/cookies.txt")
	}
	if got.MaxHeight != 720 {
		t.Fatalf("MaxHeight: got %d want 720", got.MaxHeight)
	}
	if got.ArchivePath != "state/archive.txt" {
		t.Fatalf("ArchivePath: got %q want %q", got.ArchivePath, "state/archive.txt")
	}
	if got.LastVideos != 0 {
		t.Fatalf("LastVideos: got %d want 0", got.LastVideos)
	}
	if got.LogPath != config.DefaultLogPath {
		t.Fatalf("LogPath: got %q want %q", got.LogPath, config.DefaultLogPath)
	}
	if got.StatePath != config.DefaultRecordPath {
		t.Fatalf("StatePath: got %q want %q", got.StatePath, config.DefaultRecordPath)
	}
}

func TestResolveDownloadParamsKeepsExplicitValues(t *testing.T) {
	settings := config.Settings{DownloadDir: "/srv/media", MaxQualityHeight: 1080}

	got := resolveDownloadParams(downloadParams{
		PlaylistURL: "https://youtube.com/playlist?list=abc",
		DownloadDir: "/tmp/out",
		MaxHeight:   0,
		LogPath:     "custom.log",
		StatePath:   "custom.json",
	}, settings)

	if got.DownloadDir != "/tmp/out" {
		t.Fatalf("DownloadDir: got %q want %q", got.DownloadDir, "/tmp/out")
	}
	if got.MaxHeight != 0 {
		t.Fatalf("MaxHeight: explicit 0 (best) should be kept, got %d", got.MaxHeight)
	}
	if got.LogPath != "custom.log" {
		t.Fatalf("LogPath: got %q want %q", got.LogPath, "custom.log")
	}
	if got.StatePath != "custom.json" {
		t.Fatalf("StatePath: got %q want %q", got.StatePath, "custom.json")
	}
}

func TestWorkerArgsRoundTripThroughWorkerFlags(t *testing.T) {
	params := downloadParams{
		PlaylistURL: "https://youtube.com/playlist?list=abc",
		DownloadDir: "/srv/media",
		CookiesPath: "/srv/cookies.txt",
		LastVideos:  5,
		MaxHeight:   720,
		ArchivePath: "state/archive.txt",
		LogPath:     "logs/app.log",
	}

	args := workerArgs(params)
	if args[0] != "worker" {
		t.Fatalf("first arg: got %q want %q", args[0], "worker")
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"--playlist-url https://youtube.com/playlist?list=abc",
		"--download-dir /srv/media",
		"--last-videos 5",
		"--max-height 720",
		"--log logs/app.log",
		"--cookies /srv/cookies.txt",
		"--archive state/archive.txt",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("worker args missing %q in %q", want, joined)
		}
	}
}

func TestWorkerArgsOmitsOptionalFlags(t *testing.T) {
	args := workerArgs(downloadParams{
		PlaylistURL: "https://youtube.com/playlist?list=abc",
		DownloadDir: "/srv/media",
		LogPath:     "logs/app.log",
	})
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "--cookies") {
		t.Fatalf("expected no --cookies flag, got %q", joined)
	}
	if strings.Contains(joined, "--archive") {
		t.Fatalf("expected no --archive flag, got %q", joined)
	}
}
