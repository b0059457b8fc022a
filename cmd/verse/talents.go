package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/creativityverse/verse-cli/internal/talents"
)

var talentsCmd = &cobra.Command{
	Use:   "talents",
	Short: "Browse verified talents",
}

var talentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show verified talents",
	RunE:  runTalentsList,
}

var (
	talentSearch string
	talentSkills []string
)

func init() {
	talentsListCmd.Flags().StringVar(&talentSearch, "search", "", "Free-text search")
	talentsListCmd.Flags().StringSliceVar(&talentSkills, "skills", nil, "Skills filter (comma separated)")

	talentsCmd.AddCommand(talentsListCmd)
	rootCmd.AddCommand(talentsCmd)
}

func runTalentsList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	opts := talents.Options{Search: talentSearch, Skills: talentSkills}
	if err := app.talents.Fetch(cmd.Context(), opts); err != nil {
		return fmt.Errorf("failed to load talents: %s", app.talents.Err())
	}

	listing := app.talents.Talents()
	if talentSearch != "" || len(talentSkills) > 0 {
		fmt.Printf("Filters: search=%q skills=%s\n", talentSearch, strings.Join(talentSkills, ","))
	}
	app.printer.PrintTalents(listing)
	return nil
}
