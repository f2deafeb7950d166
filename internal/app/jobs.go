/**
 * @description
 * Periodic jobs for the accounts-service. The pending-communication sweep
 * reports how many provisioned accounts are still waiting for a
 * notification acknowledgment.
 *
 * @notes
 * - The sweep observes only. It never re-publishes notification events;
 *   delivery stays at-most-once.
 */
package app

import (
	"context"
	"log"
	"time"

	"github.com/eazybank/accounts-service/internal/store"
)

const sweepTimeout = 30 * time.Second

// Jobs holds the dependencies for the service's scheduled jobs.
type Jobs struct {
	accounts store.AccountRepository
}

// NewJobs creates a new Jobs instance.
func NewJobs(accounts store.AccountRepository) *Jobs {
	return &Jobs{accounts: accounts}
}

// ReportPendingCommunications logs the number of accounts whose
// communication flag is still unset.
func (j *Jobs) ReportPendingCommunications() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	count, err := j.accounts.CountPendingCommunications(ctx)
	if err != nil {
		log.Printf("Pending-communication sweep failed: %v", err)
		return
	}
	log.Printf("Accounts awaiting communication acknowledgment: %d", count)
}
