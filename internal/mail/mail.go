// Package mail defines the email collaborators at their interface: fetching
// source newsletters and delivering the finished podcast are external
// concerns, only the contracts and the message bodies live here.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newsbrief/newsletter-podcast/podcast"
)

// Fetcher retrieves labeled newsletters and marks them processed once the
// podcast has been delivered
type Fetcher interface {
	Fetch(ctx context.Context, label string) ([]podcast.Newsletter, error)
	MarkProcessed(ctx context.Context, ids []string, label string) error
}

// Message is one outgoing delivery
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string // file path, empty for none
}

// Sender delivers the finished podcast or a failure notice
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Notification builds the delivery email body listing the newsletters the
// podcast covers
func Notification(newsletters []podcast.Newsletter, podcastFile string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Good morning!\n\nYour daily newsletter podcast for %s is ready. This briefing covers the following newsletters:\n\n",
		now.Format("January 2, 2006"))

	for i, n := range newsletters {
		sender := n.Sender
		if idx := strings.Index(sender, "<"); idx > 0 {
			sender = strings.TrimSpace(sender[:idx])
		}
		fmt.Fprintf(&b, "%d. %s\n   From: %s\n\n", i+1, n.Subject, sender)
	}

	fmt.Fprintf(&b, "\nThe podcast is attached as %s.\n\nEnjoy your listening!\n", podcastFile)
	return b.String()
}

// FailureNotice builds the body sent when a run fails
func FailureNotice(runErr error, now time.Time) string {
	return fmt.Sprintf("An error occurred while generating your podcast on %s:\n\n%v\n\nPlease check the logs for more details.\n",
		now.Format("January 2, 2006"), runErr)
}
