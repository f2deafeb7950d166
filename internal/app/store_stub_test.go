package app

import (
	"context"

	"github.com/eazybank/accounts-service/internal/domain"
	"github.com/eazybank/accounts-service/internal/eventbus"
	"github.com/eazybank/accounts-service/internal/store"
)

// storeStub is an in-memory implementation of both repository interfaces
// used by the application-layer tests.
type storeStub struct {
	customers map[int64]*domain.Customer
	accounts  map[int64]*domain.Account
	nextID    int64

	customerSaveErr error
	accountSaveErr  error
}

func newStoreStub() *storeStub {
	return &storeStub{
		customers: make(map[int64]*domain.Customer),
		accounts:  make(map[int64]*domain.Account),
		nextID:    1,
	}
}

func (s *storeStub) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error) {
	for _, c := range s.customers {
		if c.MobileNumber == mobileNumber {
			copied := *c
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *storeStub) FindByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	c, ok := s.customers[customerID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *storeStub) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if s.customerSaveErr != nil {
		return nil, s.customerSaveErr
	}
	saved := *customer
	saved.CustomerID = s.nextID
	s.nextID++
	s.customers[saved.CustomerID] = &saved
	copied := saved
	return &copied, nil
}

func (s *storeStub) Update(ctx context.Context, customer *domain.Customer) error {
	if _, ok := s.customers[customer.CustomerID]; !ok {
		return store.ErrNotFound
	}
	copied := *customer
	s.customers[customer.CustomerID] = &copied
	return nil
}

func (s *storeStub) DeleteByID(ctx context.Context, customerID int64) error {
	delete(s.customers, customerID)
	return nil
}

// accountStoreStub exposes the same storeStub through the
// store.AccountRepository interface.
type accountStoreStub struct {
	*storeStub
}

func (s accountStoreStub) FindByAccountNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	a, ok := s.accounts[accountNumber]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (s accountStoreStub) FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error) {
	for _, a := range s.accounts {
		if a.CustomerID == customerID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s accountStoreStub) Save(ctx context.Context, account *domain.Account) error {
	if s.accountSaveErr != nil {
		return s.accountSaveErr
	}
	copied := *account
	s.accounts[account.AccountNumber] = &copied
	return nil
}

func (s accountStoreStub) Update(ctx context.Context, account *domain.Account) error {
	existing, ok := s.accounts[account.AccountNumber]
	if !ok {
		return store.ErrNotFound
	}
	existing.AccountType = account.AccountType
	existing.BranchAddress = account.BranchAddress
	return nil
}

func (s accountStoreStub) UpdateCommunicationStatus(ctx context.Context, accountNumber int64, sent bool) error {
	a, ok := s.accounts[accountNumber]
	if !ok {
		return store.ErrNotFound
	}
	a.CommunicationSw = sent
	return nil
}

func (s accountStoreStub) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	for number, a := range s.accounts {
		if a.CustomerID == customerID {
			delete(s.accounts, number)
		}
	}
	return nil
}

func (s accountStoreStub) CountPendingCommunications(ctx context.Context) (int64, error) {
	var count int64
	for _, a := range s.accounts {
		if !a.CommunicationSw {
			count++
		}
	}
	return count, nil
}

// newTestService wires an AccountService onto fresh in-memory stubs.
func newTestService(bus eventbus.Channel) (*AccountService, *storeStub) {
	st := newStoreStub()
	return NewAccountService(st, accountStoreStub{st}, bus), st
}
