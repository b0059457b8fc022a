// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/creativityverse/verse-cli/internal/chat"
	"github.com/creativityverse/verse-cli/internal/contests"
	"github.com/creativityverse/verse-cli/internal/feed"
	"github.com/creativityverse/verse-cli/internal/jobs"
	"github.com/creativityverse/verse-cli/internal/profile"
	"github.com/creativityverse/verse-cli/internal/talents"
)

// maxPreviewLen caps content previews in list views.
const maxPreviewLen = 100

// Printer handles formatted output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) heading(title string) {
	fmt.Fprintf(p.out, "%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

// PrintPosts renders the community feed.
func (p *Printer) PrintPosts(posts []feed.Post) {
	p.heading(fmt.Sprintf("Feed (%d posts)", len(posts)))
	for _, post := range posts {
		author := "unknown"
		if post.Author != nil {
			author = strings.TrimSpace(post.Author.FirstName + " " + post.Author.LastName)
		}
		fmt.Fprintf(p.out, "[%s] %s — %d likes, %d comments\n", post.ID, author, post.LikeCount(), post.CommentCount())
		fmt.Fprintf(p.out, "    %s\n", preview(post.Content))
	}
}

// PrintJobs renders a job listing.
func (p *Printer) PrintJobs(title string, listings []jobs.Listing) {
	p.heading(fmt.Sprintf("%s (%d)", title, len(listings)))
	for _, job := range listings {
		fmt.Fprintf(p.out, "[%s] %s at %s", job.ID, job.Title, job.Company)
		if job.ApplicationMethod == jobs.ApplyExternal && job.ApplicationLink != "" {
			fmt.Fprintf(p.out, " (apply: %s)", job.ApplicationLink)
		}
		fmt.Fprintln(p.out)
	}
}

// PrintContests renders a contest listing.
func (p *Printer) PrintContests(list []contests.Contest) {
	p.heading(fmt.Sprintf("Contests (%d)", len(list)))
	for _, contest := range list {
		fmt.Fprintf(p.out, "[%s] %s — %s, prize %.0f, %d/%d entrants, deadline %s\n",
			contest.ID, contest.Title, contest.Status,
			contest.PrizePool, contest.Participants, contest.MaxParticipants, contest.Deadline)
		if len(contest.Tags) > 0 {
			fmt.Fprintf(p.out, "    tags: %s\n", strings.Join(contest.Tags, ", "))
		}
	}
}

// PrintTalents renders the verified-talent listing.
func (p *Printer) PrintTalents(list []talents.Talent) {
	p.heading(fmt.Sprintf("Talents (%d)", len(list)))
	for _, talent := range list {
		name := strings.TrimSpace(talent.FirstName + " " + talent.LastName)
		fmt.Fprintf(p.out, "[%s] %s (%s plan)", talent.ID, name, talent.Plan)
		if len(talent.Skills) > 0 {
			fmt.Fprintf(p.out, " — %s", strings.Join(talent.Skills, ", "))
		}
		fmt.Fprintln(p.out)
	}
}

// PrintConversations renders the chat thread list.
func (p *Printer) PrintConversations(list []chat.Conversation) {
	p.heading(fmt.Sprintf("Conversations (%d)", len(list)))
	for _, conversation := range list {
		fmt.Fprintf(p.out, "[%s] %s", conversation.ID, strings.Join(conversation.Participants, ", "))
		if conversation.LastMessage != nil {
			fmt.Fprintf(p.out, " — %s", preview(conversation.LastMessage.Content))
		}
		fmt.Fprintln(p.out)
	}
}

// PrintMessages renders one message thread.
func (p *Printer) PrintMessages(title string, messages []chat.Message) {
	p.heading(title)
	for _, message := range messages {
		fmt.Fprintf(p.out, "%s %s: %s\n", message.CreatedAt, message.SenderID, message.Content)
	}
}

// PrintProfile renders the local profile draft.
func (p *Printer) PrintProfile(draft profile.Profile) {
	p.heading("Profile")
	fmt.Fprintf(p.out, "Bio:      %s\n", draft.Bio)
	fmt.Fprintf(p.out, "Location: %s\n", draft.Location)
	fmt.Fprintf(p.out, "Website:  %s\n", draft.Website)
	fmt.Fprintf(p.out, "Skills:   %s\n", strings.Join(draft.Skills, ", "))
	links := draft.SocialLinks
	for platform, link := range map[string]string{
		"twitter": links.Twitter, "linkedin": links.LinkedIn,
		"github": links.GitHub, "instagram": links.Instagram,
	} {
		if link != "" {
			fmt.Fprintf(p.out, "%-9s %s\n", platform+":", link)
		}
	}
}

func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	runes := []rune(content)
	if len(runes) > maxPreviewLen {
		return string(runes[:maxPreviewLen-3]) + "..."
	}
	return content
}
