package mailer

import (
	"bytes"
	"context"
	"embed"
	ht "html/template"
	tt "text/template"
	"time"

	"github.com/wneessen/go-mail"
)

//go:embed "templates"
var templateFS embed.FS

// Mailer stores the mail.Client instance to connect to SMTP server and sender info
type Mailer struct {
	client *mail.Client
	sender string
}

// New initialises a new mail.Client with the given SMTP settings. No connection
// is made until the first Send.
func New(host string, port int, username, password, sender string) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTimeout(5 * time.Second),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	// local relays like mailpit take mail without auth
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthLogin),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}

	mailer := &Mailer{
		client: client,
		sender: sender,
	}

	return mailer, nil
}

// Send renders the subject, plainBody and htmlBody templates defined in templateFile
// with data, and delivers the message to recipient. It makes a single attempt.
func (m *Mailer) Send(ctx context.Context, recipient, templateFile string, data any) error {
	msg, err := m.compose(recipient, templateFile, data)
	if err != nil {
		return err
	}

	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *Mailer) compose(recipient, templateFile string, data any) (*mail.Msg, error) {
	textTmpl, err := tt.New("").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	subject := new(bytes.Buffer)
	err = textTmpl.ExecuteTemplate(subject, "subject", data)
	if err != nil {
		return nil, err
	}

	plainBody := new(bytes.Buffer)
	err = textTmpl.ExecuteTemplate(plainBody, "plainBody", data)
	if err != nil {
		return nil, err
	}

	htmlTmpl, err := ht.New("").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	htmlBody := new(bytes.Buffer)
	err = htmlTmpl.ExecuteTemplate(htmlBody, "htmlBody", data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	err = msg.To(recipient)
	if err != nil {
		return nil, err
	}

	err = msg.From(m.sender)
	if err != nil {
		return nil, err
	}

	msg.Subject(subject.String())
	msg.SetBodyString(mail.TypeTextPlain, plainBody.String())
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody.String())

	return msg, nil
}
