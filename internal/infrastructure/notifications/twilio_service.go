package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/you/blogsvc/domain"
)

// TwilioServiceImpl implements domain.SmsSender.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioService creates a new Twilio SMS sender. With no from-number
// configured it logs the message instead of sending, which keeps local
// development working without credentials.
func NewTwilioService(accountSID, authToken, fromNumber string, logger *zap.Logger) domain.SmsSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// Send implements domain.SmsSender.
func (t *TwilioServiceImpl) Send(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info("sms delivery skipped, no from-number configured",
			zap.String("to", to))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
