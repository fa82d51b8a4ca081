package buffer

import (
	"time"

	"github.com/fastygo/blog/internal/mail"
)

// Entry is an outgoing message parked while the mail queue is unreachable.
type Entry struct {
	Message  mail.Message `json:"message"`
	Reason   string       `json:"reason,omitempty"`
	StoredAt time.Time    `json:"stored_at"`

	key []byte
}

func (e *Entry) normalize() {
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now()
	}
}
