// Package mailer implements the delivery gateway: assembled transfers are
// handed to a Mailer, which dispatches them as email. Providers never retry
// on their own; a submission is sent at most once, and a failure is reported
// back for the user to resubmit explicitly.
package mailer

import "context"

// Message is an outbound email with attachments.
type Message struct {
	To          []string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment is a file attached to an outbound message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Mailer is the interface delivery providers must implement.
type Mailer interface {
	// Send dispatches the message. It makes exactly one delivery attempt
	// and returns an error if that attempt fails.
	Send(ctx context.Context, msg *Message) error

	// Name returns the human-readable name of the provider.
	Name() string
}
