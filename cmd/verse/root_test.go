package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	expected := []string{
		"login", "register", "confirm-email", "forgot-password", "reset-password",
		"logout", "whoami",
		"feed", "jobs", "contests", "talents", "chat", "profile", "dashboard",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestChatSendRequiresMessage(t *testing.T) {
	flag := chatSendCmd.Flags().Lookup("message")
	require.NotNil(t, flag)

	required, ok := flag.Annotations[cobra.BashCompOneRequiredFlag]
	require.True(t, ok)
	assert.Equal(t, []string{"true"}, required)
}

func TestProfileSkillSubcommands(t *testing.T) {
	names := make([]string, 0, 2)
	for _, cmd := range profileSkillCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"add", "remove"}, names)
}
