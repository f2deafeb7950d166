/**
 * @description
 * This file defines the message contracts exchanged over the broker.
 * These structs are the wire format between the accounts service and the
 * downstream notification channels.
 *
 * @notes
 * - NotificationEvent is an immutable snapshot taken at publish time. It
 *   is never persisted; it only exists as a transient publish payload.
 */
package domain

// NotificationEvent is published when a new account has been provisioned
// and downstream channels (email, sms) should notify the customer.
type NotificationEvent struct {
	AccountNumber int64  `json:"accountNumber"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	MobileNumber  string `json:"mobileNumber"`
}

// CommunicationAck is the inbound acknowledgment that a notification for
// the given account was handled. On the wire it is a bare integer account
// number; this struct exists for documentation and test helpers.
type CommunicationAck struct {
	AccountNumber int64
}
