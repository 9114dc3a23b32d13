package cli

import (
	"flag"
	"fmt"

	"yt-playlist-downloader/internal/config"
	"yt-playlist-downloader/internal/job"
	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"
)

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	statePath := fs.String("state", config.DefaultRecordPath, "background job record path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	monitor := job.NewMonitor(jobstore.New(*statePath), proc.System())
	report, err := monitor.Status()
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(report)
	}

	switch report.State {
	case job.StateNone:
		fmt.Println("no background download is tracked")
	case job.StateStaleCleared:
		fmt.Printf("tracked pid %d is gone; stale record cleared\n", report.PID)
	case job.StateRunning:
		fmt.Printf("background download running (pid %d, started %s)\n", report.PID, report.StartedAt)
		if report.Playlist != "" {
			fmt.Printf("playlist: %s\n", report.Playlist)
		}
		if report.LogPath != "" {
			fmt.Printf("log: %s\n", report.LogPath)
		}
		if report.Confidence == job.ConfidenceLivenessOnly {
			fmt.Println("note: job identity could not be inspected on this platform; matched on liveness only")
		}
	}
	return nil
}
