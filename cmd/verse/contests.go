package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var contestsCmd = &cobra.Command{
	Use:   "contests",
	Short: "Browse creative contests",
}

var contestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show contests, optionally filtered by category",
	RunE:  runContestsList,
}

var contestsShowCmd = &cobra.Command{
	Use:   "show <contest-id>",
	Short: "Show one contest",
	Args:  cobra.ExactArgs(1),
	RunE:  runContestsShow,
}

var contestCategory string

func init() {
	contestsListCmd.Flags().StringVar(&contestCategory, "category", "", "Category filter")

	contestsCmd.AddCommand(contestsListCmd, contestsShowCmd)
	rootCmd.AddCommand(contestsCmd)
}

func runContestsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.contests.Fetch(cmd.Context(), contestCategory); err != nil {
		return fmt.Errorf("failed to load contests: %s", app.contests.Err())
	}
	app.printer.PrintContests(app.contests.Contests())
	return nil
}

func runContestsShow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	contest, err := app.contests.Contest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load contest: %s", app.contests.Err())
	}

	fmt.Printf("%s (%s)\n", contest.Title, contest.Status)
	fmt.Printf("Prize pool: %.0f  Entry fee: %.0f\n", contest.PrizePool, contest.EntryFee)
	fmt.Printf("Entrants: %d/%d  Deadline: %s\n", contest.Participants, contest.MaxParticipants, contest.Deadline)
	fmt.Printf("Tags: %s\n", strings.Join(contest.Tags, ", "))
	if contest.Description != "" {
		fmt.Printf("\n%s\n", contest.Description)
	}
	return nil
}
