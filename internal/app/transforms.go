/**
 * @description
 * This file defines the message transforms the notifier worker applies to
 * notification events, and the dispatcher that binds them to the event
 * channel. The transforms themselves are pure: they log the delivery they
 * represent and return a derived value for the next stage. The dispatcher
 * owns the one side effect of the pipeline, publishing the sms projection
 * on the acknowledgment channel.
 */
package app

import (
	"context"
	"encoding/json"
	"log"

	"github.com/eazybank/accounts-service/internal/domain"
	"github.com/eazybank/accounts-service/internal/eventbus"
)

// Subscriber group names for the two transform channels. Each group gets
// its own copy of every notification event; email and sms delivery are
// independent and unordered relative to each other.
const (
	EmailSubscriberGroup = "message.email"
	SMSSubscriberGroup   = "message.sms"
)

// EmailTransform represents the email channel: it logs the send and
// returns the event unchanged for possible chaining.
func EmailTransform(event domain.NotificationEvent) domain.NotificationEvent {
	log.Printf("Sending email with the details received: account %d, email %s", event.AccountNumber, event.Email)
	return event
}

// SMSTransform represents the sms channel: it logs the send and projects
// the event down to its account number.
func SMSTransform(event domain.NotificationEvent) int64 {
	log.Printf("Sending sms with the details received: account %d, mobile %s", event.AccountNumber, event.MobileNumber)
	return event.AccountNumber
}

// NotificationDispatcher wires the transforms to the event channel.
type NotificationDispatcher struct {
	bus eventbus.Channel
}

// NewNotificationDispatcher creates a new NotificationDispatcher.
func NewNotificationDispatcher(bus eventbus.Channel) *NotificationDispatcher {
	return &NotificationDispatcher{bus: bus}
}

// HandleEmail runs the email transform on one delivered event.
func (d *NotificationDispatcher) HandleEmail(body []byte) bool {
	event, ok := decodeNotificationEvent(body)
	if !ok {
		return true // Acknowledge malformed message.
	}
	EmailTransform(event)
	return true
}

// HandleSMS runs the sms transform on one delivered event and publishes
// the resulting account number as the communication acknowledgment. The
// ack publish is best-effort like every other publish: if the broker
// rejects it the account's flag simply stays unset.
func (d *NotificationDispatcher) HandleSMS(body []byte) bool {
	event, ok := decodeNotificationEvent(body)
	if !ok {
		return true
	}

	accountNumber := SMSTransform(event)
	accepted := d.bus.Publish(context.Background(), CommunicationAckChannel, accountNumber)
	if !accepted {
		log.Printf("Communication ack for account %d was not accepted by the broker", accountNumber)
	}
	return true
}

func decodeNotificationEvent(body []byte) (domain.NotificationEvent, bool) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error unmarshaling notification event: %v", err)
		return domain.NotificationEvent{}, false
	}
	return event, true
}
