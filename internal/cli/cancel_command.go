package cli

import (
	"flag"
	"fmt"

	"yt-playlist-downloader/internal/config"
	"yt-playlist-downloader/internal/job"
	"yt-playlist-downloader/internal/jobstore"
	"yt-playlist-downloader/internal/proc"
)

func runCancel(args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	statePath := fs.String("state", config.DefaultRecordPath, "background job record path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	canceller := job.NewCanceller(jobstore.New(*statePath), proc.System())
	report, err := canceller.Cancel()
	if err != nil {
		return err
	}

	if *jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printCancelReport(report)
	}

	if report.Outcome == job.OutcomePermissionDenied {
		return fmt.Errorf("not permitted to signal pid %d; the job record was kept", report.PID)
	}
	return nil
}

func printCancelReport(report job.Report) {
	switch report.Outcome {
	case job.OutcomeNothingToCancel:
		fmt.Println("no background download is tracked; nothing to cancel")
	case job.OutcomeStaleCleared:
		fmt.Printf("tracked pid %d no longer belongs to a download job; stale record cleared\n", report.PID)
	case job.OutcomeTerminated:
		fmt.Printf("termination signal delivered to background download (pid %d)\n", report.PID)
		if report.Confidence == job.ConfidenceLivenessOnly {
			fmt.Println("note: job identity could not be inspected on this platform; matched on liveness only")
		}
	case job.OutcomeAlreadyDeadCleared:
		fmt.Printf("background download (pid %d) had already exited; record cleared\n", report.PID)
	case job.OutcomePermissionDenied:
		fmt.Printf("permission denied signalling pid %d\n", report.PID)
	}
}
