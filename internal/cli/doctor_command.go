package cli

import (
	"flag"
	"fmt"

	"yt-playlist-downloader/internal/ytdlp"
)

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	report := ytdlp.DependencyStatus()
	if *jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printDependency("yt-dlp", report.YTDLPFound, report.YTDLPPath)
		printDependency("ffmpeg", report.FFmpegFound, report.FFmpegPath)
	}
	return ytdlp.CheckDependencies()
}

func printDependency(name string, found bool, path string) {
	if found {
		fmt.Printf("%-8s OK  %s\n", name, path)
		return
	}
	fmt.Printf("%-8s MISSING\n", name)
}
