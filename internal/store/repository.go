/**
 * @description
 * This file defines the interfaces for the data access layer (repositories).
 * Defining interfaces decouples the application logic from the PostgreSQL
 * implementation and allows the logic to be tested against in-memory stubs.
 *
 * @dependencies
 * - context: Standard Go library.
 * - internal/domain: For the service's domain models.
 */
package store

import (
	"context"
	"errors"

	"github.com/eazybank/accounts-service/internal/domain"
)

// ErrNotFound is returned by repositories when a requested row does not
// exist. The application layer maps it to a typed domain.NotFoundError
// with the lookup key attached.
var ErrNotFound = errors.New("record not found")

// CustomerRepository defines the data access contract for customers.
type CustomerRepository interface {
	FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error)
	FindByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	DeleteByID(ctx context.Context, customerID int64) error
}

// AccountRepository defines the data access contract for accounts.
type AccountRepository interface {
	FindByAccountNumber(ctx context.Context, accountNumber int64) (*domain.Account, error)
	FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	UpdateCommunicationStatus(ctx context.Context, accountNumber int64, sent bool) error
	DeleteByCustomerID(ctx context.Context, customerID int64) error
	CountPendingCommunications(ctx context.Context) (int64, error)
}
