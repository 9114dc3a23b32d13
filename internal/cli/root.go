package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		if stdinIsTTY() {
			return runMenu(nil)
		}
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "download":
		return runDownload(args[1:])
	case "worker":
		return runWorker(args[1:])
	case "cancel":
		return runCancel(args[1:])
	case "status":
		return runStatus(args[1:])
	case "configure":
		return runConfigure(args[1:])
	case "menu":
		return runMenu(args[1:])
	case "doctor":
		return runDoctor(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("yt-playlist-downloader: resumable YouTube playlist downloader with background runs")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  yt-playlist-downloader download --playlist-url <url>")
	fmt.Println("  yt-playlist-downloader download --playlist-url <url> --background")
	fmt.Println("  yt-playlist-downloader status")
	fmt.Println("  yt-playlist-downloader cancel")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  download   download a playlist, foreground or --background")
	fmt.Println("  status     show the tracked background job, if any")
	fmt.Println("  cancel     terminate the tracked background job")
	fmt.Println("  configure  interactive settings editor")
	fmt.Println("  menu       interactive menu (default on a terminal)")
	fmt.Println("  doctor     check yt-dlp/ffmpeg availability")
	fmt.Println("  worker     internal entry point for background runs")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on cancel/status/doctor for machine-readable output")
	fmt.Println("  - Background output is appended to the shared log file (default logs/app.log)")
}
