package mail

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies which template a message was rendered from.
type Kind string

const (
	KindConfirmation  Kind = "confirmation"
	KindPasswordReset Kind = "password_reset"
)

// Message is a rendered email waiting for delivery. It is serialized as JSON on the queue
// and in the fallback buffer.
type Message struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Link      string    `json:"link"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessage renders the template for kind addressed to the recipient.
func NewMessage(kind Kind, to, link string) (Message, error) {
	subject, body, err := Render(kind, link)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        uuid.NewString(),
		Kind:      kind,
		To:        to,
		Subject:   subject,
		Body:      body,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}, nil
}
