package mail

import (
	"fmt"
	"html/template"
	"strings"
)

var templates = map[Kind]struct {
	subject string
	body    *template.Template
}{
	KindConfirmation: {
		subject: "Confirm your email",
		body: template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Confirm your email address</h1>
	<p>Thanks for signing up. Follow the link below to confirm your email:</p>
	<p><a href="{{.Link}}">{{.Link}}</a></p>
	<p>The link expires in 7 days. If you did not create an account, ignore this email.</p>
</body>
</html>`)),
	},
	KindPasswordReset: {
		subject: "Reset your password",
		body: template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Reset your password</h1>
	<p>We received a request to reset your password. Follow the link below to choose a new one:</p>
	<p><a href="{{.Link}}">{{.Link}}</a></p>
	<p>If you did not request a reset, ignore this email. Your password stays unchanged.</p>
</body>
</html>`)),
	},
}

// Render returns the subject and HTML body for kind.
func Render(kind Kind, link string) (string, string, error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", "", fmt.Errorf("mail: unknown template %q", kind)
	}

	var buf strings.Builder
	if err := tpl.body.Execute(&buf, struct{ Link string }{Link: link}); err != nil {
		return "", "", fmt.Errorf("mail: render %s: %w", kind, err)
	}
	return tpl.subject, buf.String(), nil
}
