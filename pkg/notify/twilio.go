package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Twilio sends verification-code SMS messages.
type Twilio struct {
	client *twilio.RestClient
	From   string
}

func NewTwilio(accountSID, authToken, from string) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Twilio{client: client, From: from}
}

func (t *Twilio) SendCode(_ context.Context, job Job) error {
	if job.To == t.From {
		return fmt.Errorf("sms recipient equals sender number")
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", job.Code)
	params := &twapi.CreateMessageParams{}
	params.SetTo(job.To)
	params.SetFrom(t.From)
	params.SetBody(body)
	_, err := t.client.Api.CreateMessage(params)
	return err
}
