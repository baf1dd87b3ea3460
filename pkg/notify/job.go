package notify

// Channel selects the delivery mechanism for a notification.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Job is the JSON payload put on the queue for out-of-band delivery of a
// verification code. The API publishes it; the notify worker consumes it.
type Job struct {
	Channel Channel `json:"channel"`
	To      string  `json:"to"`   // email address or E.164 number
	Name    string  `json:"name"` // recipient display name
	Code    string  `json:"code"` // one-time verification code
}
