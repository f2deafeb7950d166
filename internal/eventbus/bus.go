/**
 * @description
 * This file defines the event channel abstraction used by the accounts
 * service and the notifier worker. A Channel is a named publish/subscribe
 * destination; the concrete transport (RabbitMQ in production, in-memory
 * in tests) is injected into the application layer.
 *
 * @notes
 * - Publish reports broker acceptance only. There is no delivery
 *   confirmation and no implicit retry: a rejected message is gone
 *   (at-most-once delivery).
 * - Handlers return true to acknowledge a message and false to have the
 *   transport redeliver it where the transport supports that.
 */
package eventbus

import "context"

// Handler processes a single delivered message body. The return value is
// the acknowledgment decision.
type Handler func(body []byte) bool

// Channel is a named publish/subscribe destination.
type Channel interface {
	// Publish sends payload on the named channel and reports whether the
	// broker accepted it.
	Publish(ctx context.Context, channel string, payload any) bool

	// Subscribe registers handler for messages on the named channel.
	// Subscribers in distinct groups each receive their own copy of every
	// message; subscribers sharing a group compete for messages.
	Subscribe(channel, group string, handler Handler) error
}
