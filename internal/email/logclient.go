package email

import (
	"context"
	"log"
)

// LogClient writes messages to the process log instead of sending them.
// For local runs the log line is the delivery channel, so the body (and
// with it the one-time code) is printed in full.
type LogClient struct{}

func NewLogClient() *LogClient {
	return &LogClient{}
}

func (c *LogClient) Send(_ context.Context, msg Message) error {
	log.Printf("Sending email to %s with subject %q: %s", msg.Recipient.String(), msg.Subject, msg.Body)
	return nil
}
