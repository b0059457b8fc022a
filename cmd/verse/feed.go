package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativityverse/verse-cli/internal/feed"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse and interact with the community feed",
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the community feed",
	RunE:  runFeedList,
}

var feedPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Publish a new post",
	RunE:  runFeedPost,
}

var feedLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedLike,
}

var feedCommentCmd = &cobra.Command{
	Use:   "comment <post-id>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedComment,
}

var feedFollowCmd = &cobra.Command{
	Use:   "follow <user-id>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedFollow,
}

var feedUnfollowCmd = &cobra.Command{
	Use:   "unfollow <user-id>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedUnfollow,
}

var (
	postContent  string
	postType     string
	postCategory string
	commentText  string
)

func init() {
	feedPostCmd.Flags().StringVarP(&postContent, "content", "c", "", "Post content")
	feedPostCmd.Flags().StringVar(&postType, "type", "", "Post type")
	feedPostCmd.Flags().StringVar(&postCategory, "category", "", "Post category")
	if err := feedPostCmd.MarkFlagRequired("content"); err != nil {
		panic(fmt.Sprintf("failed to mark content flag as required: %v", err))
	}

	feedCommentCmd.Flags().StringVarP(&commentText, "message", "m", "", "Comment text")
	if err := feedCommentCmd.MarkFlagRequired("message"); err != nil {
		panic(fmt.Sprintf("failed to mark message flag as required: %v", err))
	}

	feedCmd.AddCommand(feedListCmd, feedPostCmd, feedLikeCmd, feedCommentCmd, feedFollowCmd, feedUnfollowCmd)
	rootCmd.AddCommand(feedCmd)
}

func runFeedList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.feed.Fetch(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load feed: %s", app.feed.Err())
	}
	app.printer.PrintPosts(app.feed.Posts())
	return nil
}

func runFeedPost(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	req := feed.CreatePostRequest{Content: postContent, Type: postType, Category: postCategory}
	if err := app.feed.CreatePost(cmd.Context(), req); err != nil {
		return fmt.Errorf("failed to publish post: %s", app.feed.Err())
	}
	fmt.Println("Post published.")
	return nil
}

func runFeedLike(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.feed.Like(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to like post: %s", app.feed.Err())
	}
	fmt.Println("Liked.")
	return nil
}

func runFeedComment(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.feed.Comment(cmd.Context(), args[0], commentText); err != nil {
		return fmt.Errorf("failed to comment: %s", app.feed.Err())
	}
	fmt.Println("Comment added.")
	return nil
}

func runFeedFollow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.feed.Follow(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to follow: %s", app.feed.Err())
	}
	fmt.Println("Following.")
	return nil
}

func runFeedUnfollow(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	if err := app.feed.Unfollow(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to unfollow: %s", app.feed.Err())
	}
	fmt.Println("Unfollowed.")
	return nil
}
