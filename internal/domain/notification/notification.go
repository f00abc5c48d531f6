// Package notification contains the guardian-notification domain model.
package notification

import (
	"context"
	"time"

	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHANNEL TYPE
// ══════════════════════════════════════════════════════════════════════════════

// ChannelType identifies the delivery channel of a notification.
type ChannelType string

const (
	// ChannelWhatsApp - delivery via the WhatsApp messaging provider.
	ChannelWhatsApp ChannelType = "whatsapp"

	// ChannelSMS - plain SMS delivery (future).
	ChannelSMS ChannelType = "sms"
)

// IsValid checks that the channel type is known.
func (ct ChannelType) IsValid() bool {
	switch ct {
	case ChannelWhatsApp, ChannelSMS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the channel type.
func (ct ChannelType) String() string {
	return string(ct)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrProviderFailed is returned when the messaging provider rejects or
	// fails to deliver a send request.
	ErrProviderFailed = shared.NewDomainError("notification", "Send", shared.ErrDispatchFailed, "messaging provider request failed")
)

// ══════════════════════════════════════════════════════════════════════════════
// MESSENGER PORT
// Implemented in infrastructure/external.
// ══════════════════════════════════════════════════════════════════════════════

// Messenger sends one message to a destination address and returns the
// provider's correlation identifier. The sender identity is part of the
// implementation's configuration, not of each call. Provider-level failures
// surface as ErrProviderFailed; sends are never retried here.
type Messenger interface {
	Send(ctx context.Context, to, body string) (correlationID string, err error)
}

// Delivery records one dispatched notification for logging and auditing.
type Delivery struct {
	// ID is an internal identifier for this delivery attempt.
	ID string

	// Channel is the delivery channel used.
	Channel ChannelType

	// To is the destination address.
	To string

	// CorrelationID is the provider's message identifier.
	CorrelationID string

	// SentAt is when the provider accepted the message.
	SentAt time.Time
}
