package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativityverse/verse-cli/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your local profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE:  runProfileSet,
}

var profileSkillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage profile skills",
}

var profileSkillAddCmd = &cobra.Command{
	Use:   "add <skill>",
	Short: "Add a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSkillAdd,
}

var profileSkillRemoveCmd = &cobra.Command{
	Use:   "remove <skill>",
	Short: "Remove a skill",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSkillRemove,
}

var profileLinkCmd = &cobra.Command{
	Use:   "link <platform> <url>",
	Short: "Set a social link (twitter, linkedin, github, instagram)",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileLink,
}

var profilePublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Push the local profile to your account",
	RunE:  runProfilePublish,
}

var (
	profileBio      string
	profileLocation string
	profileWebsite  string
)

func init() {
	profileSetCmd.Flags().StringVar(&profileBio, "bio", "", "Profile bio")
	profileSetCmd.Flags().StringVar(&profileLocation, "location", "", "Location")
	profileSetCmd.Flags().StringVar(&profileWebsite, "website", "", "Website URL")

	profileSkillCmd.AddCommand(profileSkillAddCmd, profileSkillRemoveCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileSkillCmd, profileLinkCmd, profilePublishCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	app.printer.PrintProfile(app.profile.Profile())
	return nil
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	var changes profile.Changes
	if cmd.Flags().Changed("bio") {
		changes.Bio = &profileBio
	}
	if cmd.Flags().Changed("location") {
		changes.Location = &profileLocation
	}
	if cmd.Flags().Changed("website") {
		changes.Website = &profileWebsite
	}

	if err := app.profile.Update(changes); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	fmt.Println("Profile updated")
	return nil
}

func runProfileSkillAdd(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.profile.AddSkill(args[0]); err != nil {
		return fmt.Errorf("failed to add skill: %w", err)
	}
	fmt.Printf("Added skill %q\n", args[0])
	return nil
}

func runProfileSkillRemove(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.profile.RemoveSkill(args[0]); err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}
	fmt.Printf("Removed skill %q\n", args[0])
	return nil
}

func runProfileLink(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.profile.SetSocialLink(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set link: %w", err)
	}
	fmt.Printf("Set %s link\n", args[0])
	return nil
}

func runProfilePublish(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	if err := app.profile.Publish(cmd.Context(), app.client); err != nil {
		return fmt.Errorf("failed to publish profile: %s", app.profile.Err())
	}
	fmt.Println("Profile published")
	return nil
}
