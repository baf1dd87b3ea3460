package notify

import (
	"context"
	"fmt"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends verification-code emails.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

func (m *Mailgun) SendCode(ctx context.Context, job Job) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	subject := "Your verification code"
	text := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s.\nIt expires in 15 minutes.\n", job.Name, job.Code)
	html := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; line-height: 1.5;">
<p>Hello %s,</p>
<p>Your verification code is: <b style="font-size: 24px;">%s</b></p>
<p>It expires in 15 minutes.</p>
</div>`, job.Name, job.Code)

	msg := client.NewMessage(m.Sender, subject, text, job.To)
	msg.SetHtml(html)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
