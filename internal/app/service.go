/**
 * @description
 * This file contains the core business logic for the accounts-service,
 * implemented as an `AccountService`. It orchestrates account provisioning
 * by coordinating the customer and account repositories and the event
 * channel used to notify downstream communication workers.
 *
 * @notes
 * - The notification publish is best-effort: its boolean result is logged
 *   but a rejected publish neither rolls back the database writes nor
 *   fails the provisioning request.
 */
package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/eazybank/accounts-service/internal/domain"
	"github.com/eazybank/accounts-service/internal/eventbus"
	"github.com/eazybank/accounts-service/internal/store"
)

const (
	// CommunicationChannel carries NotificationEvent payloads to the
	// notifier worker's email and sms subscribers.
	CommunicationChannel = "communication.send"

	// CommunicationAckChannel carries the bare account number back once a
	// notification has been handled downstream.
	CommunicationAckChannel = "communication.sent"
)

// ErrNothingToUpdate is returned by UpdateAccount when the request carries
// no account payload to apply.
var ErrNothingToUpdate = errors.New("no account details to update")

// AccountService provides the provisioning and maintenance operations for
// customers and their accounts.
type AccountService struct {
	customers store.CustomerRepository
	accounts  store.AccountRepository
	bus       eventbus.Channel
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(customers store.CustomerRepository, accounts store.AccountRepository, bus eventbus.Channel) *AccountService {
	return &AccountService{
		customers: customers,
		accounts:  accounts,
		bus:       bus,
	}
}

// CreateCustomerInput defines the required input for provisioning.
type CreateCustomerInput struct {
	Name         string
	Email        string
	MobileNumber string
}

// CreateAccount provisions a customer together with their account and
// publishes the notification event. It fails with a
// domain.AlreadyExistsError when the mobile number is already registered.
func (s *AccountService) CreateAccount(ctx context.Context, input CreateCustomerInput) error {
	// Pre-insert existence check for a friendly error. Two concurrent
	// creates can both pass it; the unique index on mobile_number decides
	// the race and the repository maps that conflict to the same error.
	_, err := s.customers.FindByMobileNumber(ctx, input.MobileNumber)
	if err == nil {
		return &domain.AlreadyExistsError{
			Resource: "Customer",
			Field:    "mobileNumber",
			Value:    input.MobileNumber,
		}
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("could not check for existing customer: %w", err)
	}

	customer, err := s.customers.Save(ctx, &domain.Customer{
		Name:         input.Name,
		Email:        input.Email,
		MobileNumber: input.MobileNumber,
	})
	if err != nil {
		return fmt.Errorf("could not save customer: %w", err)
	}

	account := domain.NewAccount(customer.CustomerID)
	if err := s.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("could not save account: %w", err)
	}

	s.sendCommunication(ctx, account, customer)
	return nil
}

// sendCommunication builds the notification snapshot and publishes it.
// Publish failure is logged and swallowed.
func (s *AccountService) sendCommunication(ctx context.Context, account *domain.Account, customer *domain.Customer) {
	event := domain.NotificationEvent{
		AccountNumber: account.AccountNumber,
		Name:          customer.Name,
		Email:         customer.Email,
		MobileNumber:  customer.MobileNumber,
	}
	log.Printf("Sending communication request for account %d", event.AccountNumber)
	accepted := s.bus.Publish(ctx, CommunicationChannel, event)
	log.Printf("Is the communication request successfully triggered? : %t", accepted)
}

// FetchAccount returns the customer and account for a mobile number.
func (s *AccountService) FetchAccount(ctx context.Context, mobileNumber string) (*domain.CustomerDetails, error) {
	customer, err := s.customers.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &domain.NotFoundError{Resource: "Customer", Field: "mobileNumber", Value: mobileNumber}
		}
		return nil, fmt.Errorf("could not find customer: %w", err)
	}

	account, err := s.accounts.FindByCustomerID(ctx, customer.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &domain.NotFoundError{
				Resource: "Account",
				Field:    "customerId",
				Value:    fmt.Sprintf("%d", customer.CustomerID),
			}
		}
		return nil, fmt.Errorf("could not find account: %w", err)
	}

	return &domain.CustomerDetails{
		Name:         customer.Name,
		Email:        customer.Email,
		MobileNumber: customer.MobileNumber,
		Account:      account,
	}, nil
}

// UpdateAccount applies new account and customer details, keyed by the
// account number in details.Account.
func (s *AccountService) UpdateAccount(ctx context.Context, details *domain.CustomerDetails) error {
	if details.Account == nil {
		return ErrNothingToUpdate
	}

	account, err := s.accounts.FindByAccountNumber(ctx, details.Account.AccountNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{
				Resource: "Account",
				Field:    "accountNumber",
				Value:    fmt.Sprintf("%d", details.Account.AccountNumber),
			}
		}
		return fmt.Errorf("could not find account: %w", err)
	}

	account.AccountType = details.Account.AccountType
	account.BranchAddress = details.Account.BranchAddress
	if err := s.accounts.Update(ctx, account); err != nil {
		return fmt.Errorf("could not update account: %w", err)
	}

	customer, err := s.customers.FindByID(ctx, account.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{
				Resource: "Customer",
				Field:    "customerId",
				Value:    fmt.Sprintf("%d", account.CustomerID),
			}
		}
		return fmt.Errorf("could not find customer: %w", err)
	}

	customer.Name = details.Name
	customer.Email = details.Email
	customer.MobileNumber = details.MobileNumber
	if err := s.customers.Update(ctx, customer); err != nil {
		return fmt.Errorf("could not update customer: %w", err)
	}
	return nil
}

// DeleteAccount removes the customer identified by mobile number together
// with their account.
func (s *AccountService) DeleteAccount(ctx context.Context, mobileNumber string) error {
	customer, err := s.customers.FindByMobileNumber(ctx, mobileNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{Resource: "Customer", Field: "mobileNumber", Value: mobileNumber}
		}
		return fmt.Errorf("could not find customer: %w", err)
	}

	if err := s.accounts.DeleteByCustomerID(ctx, customer.CustomerID); err != nil {
		return fmt.Errorf("could not delete account: %w", err)
	}
	if err := s.customers.DeleteByID(ctx, customer.CustomerID); err != nil {
		return fmt.Errorf("could not delete customer: %w", err)
	}
	return nil
}

// UpdateCommunicationStatus marks the account's notification as
// acknowledged. The operation is idempotent: acknowledging an account
// whose flag is already set succeeds and leaves the same final state.
func (s *AccountService) UpdateCommunicationStatus(ctx context.Context, accountNumber int64) error {
	if _, err := s.accounts.FindByAccountNumber(ctx, accountNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{
				Resource: "Account",
				Field:    "accountNumber",
				Value:    fmt.Sprintf("%d", accountNumber),
			}
		}
		return fmt.Errorf("could not find account: %w", err)
	}

	if err := s.accounts.UpdateCommunicationStatus(ctx, accountNumber, true); err != nil {
		return fmt.Errorf("could not update communication status: %w", err)
	}
	return nil
}
