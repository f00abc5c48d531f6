// Package whatsapp implements the WhatsApp messaging adapter on Twilio.
// It provides the outbound "send a message, get a correlation ID" capability
// used to deliver statement links to guardians.
package whatsapp

import (
	"context"
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/aja-school/aja-fees-hub/internal/domain/notification"
	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// ClientConfig contains configuration for the WhatsApp client.
type ClientConfig struct {
	// AccountSID is the Twilio account SID.
	AccountSID string

	// AuthToken is the Twilio auth token.
	AuthToken string

	// From is the sender identity in provider format
	// (e.g. "whatsapp:+14155238886").
	From string

	// Logger for structured logging.
	Logger *logger.Logger
}

// Validate checks the required provider settings.
func (c ClientConfig) Validate() error {
	if c.AccountSID == "" {
		return errors.New("whatsapp: account SID is required")
	}
	if c.AuthToken == "" {
		return errors.New("whatsapp: auth token is required")
	}
	if c.From == "" {
		return errors.New("whatsapp: sender identity is required")
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the Twilio-backed WhatsApp messenger.
// It implements notification.Messenger.
type Client struct {
	config ClientConfig
	rest   *twilio.RestClient
	log    *logger.Logger
}

// NewClient creates a new WhatsApp client.
func NewClient(config ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = logger.Default()
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})

	return &Client{
		config: config,
		rest:   rest,
		log:    config.Logger.With(logger.Component("whatsapp")),
	}, nil
}

// Send delivers one message and returns Twilio's message SID as the
// correlation identifier. Provider rejections (invalid destination, auth
// failure, rate limit) surface as DispatchFailed errors; nothing is retried.
// The Twilio SDK manages its own HTTP timeouts, so ctx is only consulted
// before the call.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", shared.WrapError("notification", "Send", shared.ErrDispatchFailed, "context cancelled", err)
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom(c.config.From)
	params.SetTo(to)
	params.SetBody(body)

	msg, err := c.rest.Api.CreateMessage(params)
	if err != nil {
		return "", c.wrapProviderError(to, err)
	}

	if msg.Sid == nil {
		return "", shared.NewDomainError("notification", "Send", shared.ErrDispatchFailed, "provider returned no message SID")
	}

	c.log.Debug("message accepted by provider",
		logger.Destination(to),
		logger.String("sid", *msg.Sid),
	)

	return *msg.Sid, nil
}

// wrapProviderError maps Twilio errors onto notification.ErrProviderFailed,
// preserving both the sentinel and the provider cause in the chain.
func (c *Client) wrapProviderError(to string, err error) error {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) {
		c.log.Error("provider rejected message",
			logger.Destination(to),
			logger.Int("provider_code", restErr.Code),
			logger.Int("status", restErr.Status),
		)
		return shared.WrapError("notification", "Send", shared.ErrDispatchFailed,
			fmt.Sprintf("provider error %d: %s", restErr.Code, restErr.Message),
			fmt.Errorf("%w: %w", notification.ErrProviderFailed, err))
	}

	c.log.Error("provider request failed", logger.Destination(to), logger.Err(err))
	return shared.WrapError("notification", "Send", shared.ErrDispatchFailed, "provider request failed",
		fmt.Errorf("%w: %w", notification.ErrProviderFailed, err))
}

// compile-time interface check
var _ notification.Messenger = (*Client)(nil)
