// Package ytdlp drives the external yt-dlp binary for playlist probing and
// playlist downloads.
package ytdlp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

type OutputStream string

const (
	StreamStdout OutputStream = "stdout"
	StreamStderr OutputStream = "stderr"
)

const (
	downloadRetries  = 10
	fragmentRetries  = 20
	socketTimeoutSec = 30
	outputTemplate   = "%(playlist_index)03d-%(title).200B.%(ext)s"
)

type PlaylistSizeOptions struct {
	PlaylistURL string
	CookiesPath string
}

type DownloadOptions struct {
	PlaylistURL string
	DownloadDir string
	CookiesPath string
	// LastVideos limits the run to the newest N playlist entries; 0 means
	// the whole playlist.
	LastVideos int
	// MaxHeight caps the format selector; 0 means best available.
	MaxHeight int
	// ArchivePath enables yt-dlp's download archive so already-fetched
	// videos are skipped on re-runs.
	ArchivePath string

	Stdout     io.Writer
	Stderr     io.Writer
	LogWriter  io.Writer
	EchoOutput bool
	Progress   func(stream OutputStream, line string)
}

type DownloadResult struct {
	Command       []string
	PlaylistStart int
	PlaylistEnd   int
}

type DependencyReport struct {
	YTDLPFound  bool   `json:"yt_dlp_found"`
	YTDLPPath   string `json:"yt_dlp_path,omitempty"`
	FFmpegFound bool   `json:"ffmpeg_found"`
	FFmpegPath  string `json:"ffmpeg_path,omitempty"`
}

func DependencyStatus() DependencyReport {
	report := DependencyReport{}
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		report.FFmpegFound = true
		report.FFmpegPath = path
	}
	return report
}

func CheckDependencies() error {
	report := DependencyStatus()
	if !report.YTDLPFound {
		return fmt.Errorf("missing dependency: yt-dlp is not installed or not on PATH")
	}
	if !report.FFmpegFound {
		return fmt.Errorf("missing dependency: ffmpeg is required to merge video and audio streams and was not found on PATH")
	}
	return nil
}

// PlaylistSize counts playlist entries via a flat extraction, without
// downloading anything.
func PlaylistSize(opts PlaylistSizeOptions) (int, error) {
	if strings.TrimSpace(opts.PlaylistURL) == "" {
		return 0, fmt.Errorf("playlist URL is required")
	}

	args := []string{"--flat-playlist", "-J"}
	if strings.TrimSpace(opts.CookiesPath) != "" {
		cookiesPath, err := resolveCookiesPath(opts.CookiesPath)
		if err != nil {
			return 0, err
		}
		args = append(args, "--cookies", cookiesPath)
	}
	args = append(args, opts.PlaylistURL)

	cmd := exec.Command("yt-dlp", args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return 0, fmt.Errorf("yt-dlp returned empty output")
	}

	var manifest struct {
		Entries []json.RawMessage `json:"entries"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &manifest); err != nil {
		return 0, fmt.Errorf("parse flat playlist manifest: %w", err)
	}
	return len(manifest.Entries), nil
}

// ResolveRange maps "last N videos" onto yt-dlp's 1-based playlist range.
// end == 0 means no upper bound.
func ResolveRange(total, lastVideos int) (start, end int) {
	if lastVideos <= 0 || total <= 0 {
		return 1, 0
	}
	start = total - lastVideos + 1
	if start < 1 {
		start = 1
	}
	return start, total
}

// DownloadPlaylist runs yt-dlp over the playlist with resume and archive
// dedupe enabled, streaming output lines to the configured writers.
func DownloadPlaylist(opts DownloadOptions) (DownloadResult, error) {
	if strings.TrimSpace(opts.PlaylistURL) == "" {
		return DownloadResult{}, fmt.Errorf("playlist URL is required")
	}
	if strings.TrimSpace(opts.DownloadDir) == "" {
		return DownloadResult{}, fmt.Errorf("download directory is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0o755); err != nil {
		return DownloadResult{}, fmt.Errorf("create download directory %s: %w", opts.DownloadDir, err)
	}

	start, end := 1, 0
	if opts.LastVideos > 0 {
		total, err := PlaylistSize(PlaylistSizeOptions{
			PlaylistURL: opts.PlaylistURL,
			CookiesPath: opts.CookiesPath,
		})
		if err == nil && total > 0 {
			start, end = ResolveRange(total, opts.LastVideos)
		}
		// Unknown playlist size degrades to the full playlist.
	}

	args := buildDownloadArgs(opts, start, end)
	if strings.TrimSpace(opts.CookiesPath) != "" {
		cookiesPath, err := resolveCookiesPath(opts.CookiesPath)
		if err != nil {
			return DownloadResult{}, err
		}
		args = append(args, "--cookies", cookiesPath)
	}
	args = append(args, opts.PlaylistURL)

	result := DownloadResult{
		Command:       append([]string{"yt-dlp"}, args...),
		PlaylistStart: start,
		PlaylistEnd:   end,
	}
	if err := runCommand(args, opts); err != nil {
		return result, err
	}
	return result, nil
}

func buildDownloadArgs(opts DownloadOptions, start, end int) []string {
	args := []string{
		"--yes-playlist",
		"--newline",
		"--ignore-errors",
		"--continue",
		"--retries", fmt.Sprintf("%d", downloadRetries),
		"--fragment-retries", fmt.Sprintf("%d", fragmentRetries),
		"--socket-timeout", fmt.Sprintf("%d", socketTimeoutSec),
		"--concurrent-fragments", "1",
		"-P", opts.DownloadDir,
		"-o", outputTemplate,
		"-f", selectFormat(opts.MaxHeight),
	}
	if start > 1 {
		args = append(args, "--playlist-start", fmt.Sprintf("%d", start))
	}
	if end > 0 {
		args = append(args, "--playlist-end", fmt.Sprintf("%d", end))
	}
	if strings.TrimSpace(opts.ArchivePath) != "" {
		args = append(args, "--download-archive", opts.ArchivePath)
	}
	return args
}

func selectFormat(maxHeight int) string {
	if maxHeight > 0 {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", maxHeight, maxHeight)
	}
	return "bestvideo+bestaudio/best"
}

func runCommand(args []string, opts DownloadOptions) error {
	cmd := exec.Command("yt-dlp", args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("setup stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("setup stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start yt-dlp: %w", err)
	}

	var outBuf strings.Builder
	var errBuf strings.Builder
	var mu sync.Mutex
	var wg sync.WaitGroup

	read := func(stream OutputStream, r io.Reader, echoW io.Writer) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 1024*1024)
		scanner.Split(splitByNewlineOrCR)
		for scanner.Scan() {
			line := scanner.Text()
			mu.Lock()
			appendLimited(&outBuf, &errBuf, stream, line)
			if opts.LogWriter != nil {
				_, _ = io.WriteString(opts.LogWriter, line+"\n")
			}
			mu.Unlock()

			if opts.EchoOutput && echoW != nil {
				_, _ = io.WriteString(echoW, line+"\n")
			}
			if opts.Progress != nil {
				opts.Progress(stream, line)
			}
		}
	}

	wg.Add(2)
	go read(StreamStdout, stdoutPipe, opts.Stdout)
	go read(StreamStderr, stderrPipe, opts.Stderr)
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		mu.Lock()
		defer mu.Unlock()
		return fmt.Errorf("yt-dlp failed: %w\n%s\n%s", err, strings.TrimSpace(errBuf.String()), strings.TrimSpace(outBuf.String()))
	}
	return nil
}

func splitByNewlineOrCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' || data[i] == '\r' {
			if i == 0 {
				return 1, nil, nil
			}
			return i + 1, data[:i], nil
		}
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func appendLimited(outBuf, errBuf *strings.Builder, stream OutputStream, line string) {
	const maxKeep = 8192
	b := outBuf
	if stream == StreamStderr {
		b = errBuf
	}
	if b.Len() >= maxKeep {
		return
	}
	toWrite := line + "\n"
	remain := maxKeep - b.Len()
	if len(toWrite) > remain {
		toWrite = toWrite[:remain]
	}
	b.WriteString(toWrite)
}

func resolveCookiesPath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", nil
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve cookies path %s: %w", p, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("cookies file %s: %w", abs, err)
	}
	return abs, nil
}
