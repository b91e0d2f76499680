// Package email defines the outbound email capability used to deliver
// one-time codes. Transport is an external concern; implementations only
// have to honor the Send contract.
package email

import (
	"context"

	"github.com/gatehouse/identity/internal/domain"
)

// Message is one outbound email.
type Message struct {
	Recipient domain.Email
	Subject   string
	Body      string
}

// Client sends email on behalf of the login service.
type Client interface {
	Send(ctx context.Context, msg Message) error
}
