package transport

import (
	"encoding/json"

	"github.com/fastygo/blog/domain"
)

// Envelope wraps every response body. Errors carry the domain code and a client-safe message.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// FromDomain reports err's code and message. The wrapped cause is never exposed.
func FromDomain(err *domain.Error) Envelope {
	return NewError(string(err.Code), err.Message, nil)
}

// Bytes marshals the envelope, falling back to a bare error body.
func (e Envelope) Bytes() []byte {
	out, err := json.Marshal(e)
	if err != nil {
		return []byte(`{"status":"error"}`)
	}
	return out
}

func (e Envelope) String() string {
	return string(e.Bytes())
}
