package twilio

import (
	"fmt"

	"github.com/Daskott/folio/server/logger"
	"github.com/Daskott/folio/shared"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var logg = logger.NewLogger()

type ClientWrapper struct {
	client  *twilio.RestClient
	config  shared.TwilioConfig
	devMode bool
}

// NewClient returns an SMS client. In 'devMode', or when no credentials are
// configured, messages are logged instead of sent.
func NewClient(config shared.TwilioConfig, devMode bool) *ClientWrapper {
	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{
		client:  client,
		config:  config,
		devMode: devMode || config.AccountSid == "",
	}
}

func (cw *ClientWrapper) SendMessage(to, msg string) error {
	if cw.devMode {
		logg.Infof("[dev] SMS to %v: %v", to, msg)
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetMessagingServiceSid(cw.config.MessagingServiceSid)
	params.SetTo(to)
	params.SetBody(msg)

	resp, err := cw.client.ApiV2010.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("SendMessage: %v", err)
	}

	if resp.ErrorMessage != nil {
		return fmt.Errorf("SendMessage: %v", *resp.ErrorMessage)
	}

	return nil
}
