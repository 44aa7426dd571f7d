package notify

import (
	"bindays-backend/internal/collection"
	"bindays-backend/lib/telemetry"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("bindays.internal.notify")

type SmtpConfig struct {
	Server       string   `json:"server"`
	Port         int      `json:"port"`
	EmailAddress string   `json:"email_address"`
	Password     string   `json:"password"`
	Recipients   []string `json:"recipients"`
}

// Mailer e-mails bin day reminders to a fixed set of recipients.
type Mailer struct {
	config SmtpConfig
	// send is swapped out in tests
	send func(mail *email.Email, addr string, auth smtp.Auth) error
}

func NewMailer(config SmtpConfig) Mailer {
	return Mailer{
		config: config,
		send: func(mail *email.Email, addr string, auth smtp.Auth) error {
			return mail.Send(addr, auth)
		},
	}
}

// FormatReminder returns the subject and body of the reminder e-mail for a
// collection.
func FormatReminder(next collection.Collection) (subject, body string) {
	date := next.Date.Format("Mon 2 Jan")
	subject = fmt.Sprintf("Bin day: %s on %s", next.Type, date)
	body = fmt.Sprintf(`The next bin collection is the %s bin on %s.

Please put it out the night before.`, next.Type, next.Date.Format("Monday 2 January 2006"))
	return subject, body
}

func (m Mailer) message(info collection.Info, next collection.Collection) *email.Email {
	subject, body := FormatReminder(next)

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Bin Days <%s>", m.config.EmailAddress)
	mail.To = m.config.Recipients
	mail.Subject = subject
	mail.Text = []byte(fmt.Sprintf("%s\n\nSource: %s (%s)\n", body, info.Title, info.Url))
	return mail
}

// SendNext e-mails a reminder for `next` to every recipient.
func (m Mailer) SendNext(ctx context.Context, info collection.Info, next collection.Collection) error {
	_, span := tracer.Start(ctx, "SendNext")
	defer span.End()
	span.SetAttributes(
		attribute.String("type", next.Type),
		attribute.Int("recipients", len(m.config.Recipients)),
	)

	if len(m.config.Recipients) == 0 {
		err := fmt.Errorf("no recipients configured")
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	mail := m.message(info, next)
	addr := fmt.Sprintf("%s:%d", m.config.Server, m.config.Port)
	err := m.send(mail, addr, smtp.PlainAuth("", m.config.EmailAddress, m.config.Password, m.config.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = m.send(mail, addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
