package email

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Attachment is an optional binary attachment, content base64-encoded as
// received from the client.
type Attachment struct {
	Filename string
	Content  string
	Type     string
}

// Message is a single outbound mail to one recipient.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Sender is the mail transport. Notification dispatch only depends on this
// interface so tests can substitute a recording fake.
type Sender interface {
	Send(msg Message) error
}

// Config holds sendgrid transport configuration.
type Config struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// SendgridSender sends messages through the SendGrid v3 mail API.
type SendgridSender struct {
	config Config
	from   *sgmail.Email
	logger zerolog.Logger
}

var _ Sender = (*SendgridSender)(nil)

// NewSendgridSender creates a SendgridSender.
func NewSendgridSender(config Config, logger zerolog.Logger) *SendgridSender {
	return &SendgridSender{
		config: config,
		from:   sgmail.NewEmail(config.FromName, config.FromEmail),
		logger: logger,
	}
}

// Send submits one message to the transport. When no API key is configured
// the message is logged and reported as sent, which keeps local
// development working without credentials.
func (s *SendgridSender) Send(msg Message) error {
	if s.config.APIKey == "" {
		s.logger.Warn().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("Sendgrid API key not configured - message not sent")
		return nil
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)

	p := sgmail.NewPersonalization()
	p.AddTos(sgmail.NewEmail("", msg.To))
	p.Subject = msg.Subject
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/html", msg.Body))

	if msg.Attachment != nil {
		m.AddAttachment(&sgmail.Attachment{
			Content:     msg.Attachment.Content,
			Type:        msg.Attachment.Type,
			Filename:    msg.Attachment.Filename,
			Disposition: "attachment",
		})
	}

	req := sendgrid.GetRequest(s.config.APIKey, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", msg.To, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sending email to %s: status %d: %s", msg.To, res.StatusCode, res.Body)
	}

	return nil
}
