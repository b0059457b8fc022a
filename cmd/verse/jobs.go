package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativityverse/verse-cli/internal/jobboard"
	"github.com/creativityverse/verse-cli/internal/jobs"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse and apply to job listings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show open job listings",
	RunE:  runJobsList,
}

var jobsAppliedCmd = &cobra.Command{
	Use:   "applied",
	Short: "Show jobs you applied to through Verse",
	RunE:  runJobsApplied,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <job-id>",
	Short: "Show one job listing",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsApplyCmd = &cobra.Command{
	Use:   "apply <job-id>",
	Short: "Apply to a job, optionally attaching a resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsApply,
}

var jobsBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show external listings from an RSS job feed",
	RunE:  runJobsBoard,
}

var (
	applyName   string
	applyEmail  string
	applyLetter string
	applyResume string
	boardFeed   string
)

func init() {
	jobsApplyCmd.Flags().StringVar(&applyName, "name", "", "Applicant name")
	jobsApplyCmd.Flags().StringVar(&applyEmail, "email", "", "Applicant email")
	jobsApplyCmd.Flags().StringVar(&applyLetter, "cover-letter", "", "Cover letter text")
	jobsApplyCmd.Flags().StringVar(&applyResume, "resume", "", "Path to a resume file")
	if err := jobsApplyCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}
	if err := jobsApplyCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}

	jobsBoardCmd.Flags().StringVar(&boardFeed, "feed", "", "RSS feed URL (required)")
	if err := jobsBoardCmd.MarkFlagRequired("feed"); err != nil {
		panic(fmt.Sprintf("failed to mark feed flag as required: %v", err))
	}

	jobsCmd.AddCommand(jobsListCmd, jobsAppliedCmd, jobsShowCmd, jobsApplyCmd, jobsBoardCmd)
	rootCmd.AddCommand(jobsCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.jobs.Fetch(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load jobs: %s", app.jobs.Err())
	}
	app.printer.PrintJobs("Jobs", app.jobs.Jobs())
	return nil
}

func runJobsApplied(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.jobs.FetchApplied(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load applied jobs: %s", app.jobs.Err())
	}
	app.printer.PrintJobs("Applied jobs", app.jobs.Applied())
	return nil
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	listing, err := app.jobs.Job(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load job: %s", app.jobs.Err())
	}

	fmt.Printf("%s at %s\n\n%s\n", listing.Title, listing.Company, listing.Description)
	if app.jobs.HasApplied(listing.ID) {
		fmt.Println("\nYou applied to this job.")
	}
	return nil
}

func runJobsApply(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	form := jobs.ApplicationForm{
		Name:        applyName,
		Email:       applyEmail,
		CoverLetter: applyLetter,
		ResumePath:  applyResume,
	}
	if err := app.jobs.Apply(cmd.Context(), args[0], form); err != nil {
		return fmt.Errorf("application failed: %s", app.jobs.Err())
	}
	fmt.Println("Application submitted.")
	return nil
}

func runJobsBoard(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	fetcher := jobboard.NewFetcher(app.cfg.HTTPTimeout)
	listings, err := fetcher.Fetch(cmd.Context(), boardFeed)
	if err != nil {
		return fmt.Errorf("failed to load job board: %w", err)
	}
	app.printer.PrintJobs("Job board", listings)
	return nil
}
