package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer sends alert emails via SES. NewMailer returns nil when no sender
// address is configured; a nil Mailer means email alerts are off.
type Mailer struct {
	client *ses.Client
	sender string
}

func NewMailer(region, sender string) *Mailer {
	if sender == "" {
		return nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Printf("AWS config load failed, email alerts disabled: %v", err)
		return nil
	}
	return &Mailer{client: ses.NewFromConfig(cfg), sender: sender}
}

func (m *Mailer) send(to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	_, err := m.client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendGlucoseAlert mails an urgent-low notification to the reading's owner.
func (m *Mailer) SendGlucoseAlert(to string, value float64, at time.Time) error {
	subject := "Urgent low glucose alert"
	body := fmt.Sprintf("A glucose reading of %.1f mg/dL was recorded at %s.\n\nPlease check on the wearer.",
		value, at.Format(time.RFC1123))
	return m.send(to, subject, body)
}
