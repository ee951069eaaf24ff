package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type renderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

type emailTemplate struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

const layoutHTML = `<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
      .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
      .button { display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
      .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>{{template "heading" .}}</h1></div>
      <div class="content">{{template "body" .}}
        <p>Or copy and paste this link into your browser:</p>
        <p style="word-break: break-all; color: #667eea;">{{.URL}}</p>
        <p>Best regards,<br/>The TaskFlow Team</p>
      </div>
      <div class="footer"><p>TaskFlow</p></div>
    </div>
  </body>
</html>`

var verificationTemplate = mustParseTemplate(
	"Verify your email - TaskFlow",
	`{{define "heading"}}Welcome to TaskFlow!{{end}}
{{define "body"}}
        <p>Hi {{.Name}},</p>
        <p>Thanks for signing up! Please verify your email address by clicking the button below:</p>
        <div style="text-align: center;"><a href="{{.URL}}" class="button">Verify Email Address</a></div>
        <p>This link will expire in 24 hours.</p>
        <p>If you didn't create an account, you can safely ignore this email.</p>{{end}}`,
	`Hi {{.Name}},

Thanks for signing up for TaskFlow!

Please verify your email address by clicking this link:
{{.URL}}

This link will expire in 24 hours.

If you didn't create an account, you can safely ignore this email.

Best regards,
The TaskFlow Team`,
)

var passwordResetTemplate = mustParseTemplate(
	"Reset your password - TaskFlow",
	`{{define "heading"}}Password Reset Request{{end}}
{{define "body"}}
        <p>Hi {{.Name}},</p>
        <p>We received a request to reset your password for your TaskFlow account.</p>
        <div style="text-align: center;"><a href="{{.URL}}" class="button">Reset Password</a></div>
        <p><strong>Security note:</strong> this link will expire in 1 hour.</p>
        <p>If you didn't request a password reset, please ignore this email.</p>{{end}}`,
	`Hi {{.Name}},

We received a request to reset your password for your TaskFlow account.

Click this link to reset your password:
{{.URL}}

This link will expire in 1 hour.

If you didn't request a password reset, please ignore this email.

Best regards,
The TaskFlow Team`,
)

var teamInviteTemplate = mustParseTemplate(
	`{{.InviterName}} invited you to join "{{.ProjectTitle}}" on TaskFlow`,
	`{{define "heading"}}You've been invited!{{end}}
{{define "body"}}
        <p><strong>{{.InviterName}}</strong> has added you to a project in TaskFlow.</p>
        <p><strong>{{.ProjectTitle}}</strong><br/>Role: <strong>{{.Role}}</strong></p>
        <div style="text-align: center;"><a href="{{.URL}}" class="button">Open Project</a></div>{{end}}`,
	`{{.InviterName}} has added you to "{{.ProjectTitle}}" on TaskFlow!

Role: {{.Role}}

Open the project here:
{{.URL}}

Best regards,
The TaskFlow Team`,
)

func mustParseTemplate(subject string, body string, text string) *emailTemplate {
	html := htmltemplate.Must(htmltemplate.New("layout").Parse(layoutHTML))
	html = htmltemplate.Must(html.Parse(body))

	return &emailTemplate{
		subject: texttemplate.Must(texttemplate.New("subject").Parse(subject)),
		html:    html,
		text:    texttemplate.Must(texttemplate.New("text").Parse(text)),
	}
}

func (t *emailTemplate) render(data any) (*renderedEmail, error) {
	var subject, html, text bytes.Buffer

	if err := t.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}

	if err := t.html.ExecuteTemplate(&html, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}

	if err := t.text.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to render text: %w", err)
	}

	return &renderedEmail{
		Subject: subject.String(),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

type linkEmailData struct {
	Name string
	URL  string
}

type teamInviteEmailData struct {
	InviterName  string
	ProjectTitle string
	Role         string
	URL          string
}
