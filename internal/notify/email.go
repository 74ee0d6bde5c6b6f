package notify

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"contact-service/internal/contact"

	"github.com/wneessen/go-mail"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate

// Email is one rendered notification.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

func Subject(name string) string {
	return "New Contact Form Submission from " + name
}

// BuildEmail renders the notification for event. Replies go to the submitter.
func BuildEmail(ctx context.Context, event contact.SubmissionEvent, from, to string) (Email, error) {
	var html bytes.Buffer
	if err := HTMLBody(event).Render(ctx, &html); err != nil {
		return Email{}, fmt.Errorf("failed to render html body: %w", err)
	}
	return Email{
		From:    from,
		To:      to,
		ReplyTo: event.Email,
		Subject: Subject(event.Name),
		Text:    TextBody(event),
		HTML:    html.String(),
	}, nil
}

func TextBody(event contact.SubmissionEvent) string {
	var b strings.Builder
	b.WriteString("New contact form submission received:\n\n")
	b.WriteString("Submission Details:\n")
	fmt.Fprintf(&b, "- Submission ID: %s\n", event.SubmissionID)
	fmt.Fprintf(&b, "- Timestamp: %s\n", formatTimestamp(event.Timestamp))
	fmt.Fprintf(&b, "- Name: %s\n", event.Name)
	fmt.Fprintf(&b, "- Email: %s\n", event.Email)
	fmt.Fprintf(&b, "- Phone: %s\n", phoneOrDefault(event.Phone))
	if event.Subject != "" {
		fmt.Fprintf(&b, "- Subject: %s\n", event.Subject)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n", event.Message)
	fmt.Fprintf(&b, "You can reply directly to this email to respond to %s.\n", event.Name)
	return b.String()
}

// Msg builds the multipart/alternative message. An unparsable reply address
// is dropped rather than failing the notification.
func (e Email) Msg() (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(e.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", e.From, err)
	}
	if err := msg.To(e.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", e.To, err)
	}
	if e.ReplyTo != "" {
		_ = msg.ReplyTo(e.ReplyTo)
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextPlain, e.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, e.HTML)
	return msg, nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func phoneOrDefault(phone string) string {
	if phone == "" {
		return contact.PhoneNotProvided
	}
	return phone
}
