package inquiry

import (
	"context"
	"fmt"
	"html"

	"github.com/fjod/frocone/internal/domain"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Notifier interface {
	Notify(ctx context.Context, inq *domain.ContactInquiry) error
}

// SendGridNotifier mails every new inquiry to the shop inbox.
type SendGridNotifier struct {
	apiKey  string
	from    string
	to      string
	baseURL string
}

func NewSendGridNotifier(apiKey, from, to string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from, to: to}
}

func (n *SendGridNotifier) Notify(ctx context.Context, inq *domain.ContactInquiry) error {
	if n.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if n.from == "" || n.to == "" {
		return fmt.Errorf("sendgrid sender or recipient is empty")
	}

	body := inquiryBody(inq)
	message := mail.NewSingleEmail(
		mail.NewEmail("Frocone", n.from),
		fmt.Sprintf("New inquiry from %s", inq.Name),
		mail.NewEmail("", n.to),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)
	message.SetReplyTo(mail.NewEmail(inq.Name, inq.Email))

	client := sendgrid.NewSendClient(n.apiKey)
	if n.baseURL != "" {
		client.BaseURL = n.baseURL + "/v3/mail/send"
	}

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}
	return nil
}

func inquiryBody(inq *domain.ContactInquiry) string {
	phone := "-"
	if inq.Phone != nil {
		phone = *inq.Phone
	}
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", inq.Name, inq.Email, phone, inq.Message)
}
