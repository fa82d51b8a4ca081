package monitor

import "time"

type Status struct {
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	MailQueue  int64     `json:"mail_queue"`
	LastCheck  time.Time `json:"last_check"`
}

// Healthy reports whether the primary datastore is reachable. Redis and the buffer only carry
// mail, so their loss degrades delivery without taking the API down.
func (s Status) Healthy() bool {
	return s.PostgreSQL
}
