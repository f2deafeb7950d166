/**
 * @description
 * This file defines the event handler that processes communication
 * acknowledgments from the broker and flips the durable communication
 * flag on the matching account.
 *
 * @dependencies
 * - context, encoding/json, log: Standard Go libraries.
 * - The service's internal app and domain packages.
 */
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/eazybank/accounts-service/internal/domain"
)

const ackHandlerTimeout = 30 * time.Second

// CommunicationEventHandler consumes communication.sent acknowledgments.
type CommunicationEventHandler struct {
	service *AccountService
}

// NewCommunicationEventHandler creates a new CommunicationEventHandler.
func NewCommunicationEventHandler(service *AccountService) *CommunicationEventHandler {
	return &CommunicationEventHandler{service: service}
}

// HandleCommunicationSent processes one acknowledgment message. The wire
// payload is a bare JSON integer account number.
func (h *CommunicationEventHandler) HandleCommunicationSent(body []byte) bool {
	var accountNumber int64
	if err := json.Unmarshal(body, &accountNumber); err != nil {
		log.Printf("Error unmarshaling communication ack: %v", err)
		return true // Acknowledge malformed message.
	}

	log.Printf("Updating communication status for account number: %d", accountNumber)
	ctx, cancel := context.WithTimeout(context.Background(), ackHandlerTimeout)
	defer cancel()

	if err := h.service.UpdateCommunicationStatus(ctx, accountNumber); err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			// An ack for an unknown account means another service's view of
			// the world has drifted from ours. Surface it loudly, then drop
			// the message: requeueing would hot-loop forever.
			log.Printf("ERROR: Received communication ack for unknown account %d", accountNumber)
			return true
		}
		log.Printf("ERROR: Failed to update communication status for account %d: %v", accountNumber, err)
		return false // Retryable database error.
	}
	return true
}
