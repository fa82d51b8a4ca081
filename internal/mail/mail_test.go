package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fastygo/blog/internal/config"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		subject string
		wantErr bool
	}{
		{name: "confirmation", kind: KindConfirmation, subject: "Confirm your email"},
		{name: "password reset", kind: KindPasswordReset, subject: "Reset your password"},
		{name: "unknown", kind: Kind("newsletter"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := Render(tt.kind, "http://localhost/api/auth/confirm/abc")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
			assert.Contains(t, body, `href="http://localhost/api/auth/confirm/abc"`)
		})
	}
}

func TestRender_EscapesLink(t *testing.T) {
	_, body, err := Render(KindConfirmation, `http://x/"><script>`)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(KindPasswordReset, "alice@x.com", "http://x/reset/tok")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "alice@x.com", msg.To)
	assert.Equal(t, KindPasswordReset, msg.Kind)
	assert.Zero(t, msg.Attempts)
	assert.False(t, msg.CreatedAt.IsZero())
}

func TestNewSender(t *testing.T) {
	_, ok := NewSender(config.MailConfig{}, zap.NewNop()).(*LogSender)
	assert.True(t, ok)

	_, ok = NewSender(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587}, zap.NewNop()).(*SMTPSender)
	assert.True(t, ok)
}

func TestSMTPSender_Send(t *testing.T) {
	var (
		gotAddr string
		gotTo   []string
		gotBody string
		gotAuth smtp.Auth
	)
	sender := NewSender(config.MailConfig{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUsername: "user",
		SMTPPassword: "pass",
		From:         "noreply@example.com",
		FromName:     "Blog",
	}, nil).(*SMTPSender)
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotBody = addr, a, to, string(msg)
		return nil
	}

	err := sender.Send(context.Background(), Message{To: "alice@x.com", Subject: "Hi", Body: "<p>body</p>"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.NotNil(t, gotAuth)
	assert.Equal(t, []string{"alice@x.com"}, gotTo)
	assert.Contains(t, gotBody, "From: Blog <noreply@example.com>\r\n")
	assert.Contains(t, gotBody, "Subject: Hi\r\n")
	assert.Contains(t, gotBody, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, gotBody, "<p>body</p>")
}

func TestSMTPSender_SendError(t *testing.T) {
	sender := NewSender(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 25}, nil).(*SMTPSender)
	sender.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}

	err := sender.Send(context.Background(), Message{To: "alice@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSMTPSender_CanceledContext(t *testing.T) {
	sender := NewSender(config.MailConfig{SMTPHost: "smtp.example.com"}, nil).(*SMTPSender)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, sender.Send(ctx, Message{}), context.Canceled)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, NewLogSender(nil).Send(context.Background(), Message{ID: "m1"}))
}
