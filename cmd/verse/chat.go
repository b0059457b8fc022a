package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Conversations and direct messages",
}

var chatConversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List your conversations",
	RunE:  runChatConversations,
}

var chatMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Show messages for a conversation or a user",
	RunE:  runChatMessages,
}

var chatSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to a conversation or a user",
	RunE:  runChatSend,
}

var (
	chatConversationID string
	chatUserID         string
	chatContent        string
	chatAttachments    []string
)

func init() {
	chatMessagesCmd.Flags().StringVar(&chatConversationID, "conversation", "", "Conversation id")
	chatMessagesCmd.Flags().StringVar(&chatUserID, "user", "", "User id")

	chatSendCmd.Flags().StringVar(&chatConversationID, "conversation", "", "Conversation id")
	chatSendCmd.Flags().StringVar(&chatUserID, "user", "", "User id")
	chatSendCmd.Flags().StringVar(&chatContent, "message", "", "Message content")
	chatSendCmd.Flags().StringSliceVar(&chatAttachments, "attachment", nil, "Attachment URL (repeatable)")
	if err := chatSendCmd.MarkFlagRequired("message"); err != nil {
		panic(fmt.Sprintf("failed to mark message flag as required: %v", err))
	}

	chatCmd.AddCommand(chatConversationsCmd, chatMessagesCmd, chatSendCmd)
	rootCmd.AddCommand(chatCmd)
}

func runChatConversations(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.chat.FetchConversations(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load conversations: %s", app.chat.Err())
	}
	app.printer.PrintConversations(app.chat.Conversations())
	return nil
}

func runChatMessages(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	switch {
	case chatConversationID != "":
		if err := app.chat.FetchConversationMessages(cmd.Context(), chatConversationID); err != nil {
			return fmt.Errorf("failed to load messages: %s", app.chat.Err())
		}
		app.printer.PrintMessages("Conversation "+chatConversationID, app.chat.ConversationMessages(chatConversationID))
	case chatUserID != "":
		if err := app.chat.FetchUserMessages(cmd.Context(), chatUserID); err != nil {
			return fmt.Errorf("failed to load messages: %s", app.chat.Err())
		}
		app.printer.PrintMessages("Messages with "+chatUserID, app.chat.UserMessages(chatUserID))
	default:
		return fmt.Errorf("either --conversation or --user is required")
	}
	return nil
}

func runChatSend(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	switch {
	case chatConversationID != "":
		msg, err := app.chat.SendToConversation(cmd.Context(), chatConversationID, chatContent, chatAttachments)
		if err != nil {
			return fmt.Errorf("failed to send message: %s", app.chat.Err())
		}
		fmt.Printf("Sent message %s\n", msg.ID)
	case chatUserID != "":
		msg, err := app.chat.SendToUser(cmd.Context(), chatUserID, chatContent, chatAttachments)
		if err != nil {
			return fmt.Errorf("failed to send message: %s", app.chat.Err())
		}
		fmt.Printf("Sent message %s\n", msg.ID)
	default:
		return fmt.Errorf("either --conversation or --user is required")
	}
	return nil
}
