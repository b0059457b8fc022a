package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/creativityverse/verse-cli/internal/talents"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch feed, jobs, contests and talents in one shot",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard loads every listing concurrently. Each store guards its
// own state, so the fetches are free to overlap; the first failure
// cancels the rest.
func runDashboard(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error { return app.feed.Fetch(ctx) })
	g.Go(func() error { return app.jobs.Fetch(ctx) })
	g.Go(func() error { return app.contests.Fetch(ctx, "") })
	g.Go(func() error { return app.talents.Fetch(ctx, talents.Options{}) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	app.printer.PrintPosts(app.feed.Posts())
	app.printer.PrintJobs("Jobs", app.jobs.Jobs())
	app.printer.PrintContests(app.contests.Contests())
	app.printer.PrintTalents(app.talents.Talents())
	return nil
}
