package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/eazybank/accounts-service/internal/domain"
	"github.com/eazybank/accounts-service/internal/eventbus"
)

func TestCreateAccount_ProvisionsCustomerAndPublishesEvent(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	service, st := newTestService(bus)

	input := CreateCustomerInput{Name: "Jane Doe", Email: "jane@x.com", MobileNumber: "9876543210"}
	if err := service.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	details, err := service.FetchAccount(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("FetchAccount returned error: %v", err)
	}
	if details.Account == nil {
		t.Fatal("expected a provisioned account")
	}
	if n := details.Account.AccountNumber; n < 1_000_000_000 || n > 1_899_999_999 {
		t.Fatalf("account number %d outside expected range", n)
	}
	if details.Account.CommunicationSw {
		t.Fatal("freshly provisioned account must have the communication flag unset")
	}
	if details.Account.AccountType != domain.AccountTypeSavings {
		t.Fatalf("expected default account type, got %q", details.Account.AccountType)
	}

	published := bus.PublishedOn(CommunicationChannel)
	if len(published) != 1 {
		t.Fatalf("expected exactly one notification event, got %d", len(published))
	}
	var event domain.NotificationEvent
	if err := json.Unmarshal(published[0].Body, &event); err != nil {
		t.Fatalf("could not decode published event: %v", err)
	}
	if event.AccountNumber != details.Account.AccountNumber {
		t.Fatalf("event account number %d does not match provisioned account %d", event.AccountNumber, details.Account.AccountNumber)
	}
	if event.Name != "Jane Doe" || event.Email != "jane@x.com" || event.MobileNumber != "9876543210" {
		t.Fatalf("event snapshot does not match customer input: %+v", event)
	}

	_ = st
}

func TestCreateAccount_DuplicateMobileNumberFails(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	service, st := newTestService(bus)

	input := CreateCustomerInput{Name: "Jane Doe", Email: "jane@x.com", MobileNumber: "9876543210"}
	if err := service.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("first CreateAccount returned error: %v", err)
	}

	err := service.CreateAccount(context.Background(), CreateCustomerInput{
		Name: "Someone Else", Email: "other@x.com", MobileNumber: "9876543210",
	})
	var alreadyExists *domain.AlreadyExistsError
	if !errors.As(err, &alreadyExists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
	if alreadyExists.Value != "9876543210" {
		t.Fatalf("error must carry the offending mobile number, got %q", alreadyExists.Value)
	}

	if len(st.customers) != 1 || len(st.accounts) != 1 {
		t.Fatalf("duplicate create must not add rows: %d customers, %d accounts", len(st.customers), len(st.accounts))
	}
	if got := len(bus.PublishedOn(CommunicationChannel)); got != 1 {
		t.Fatalf("duplicate create must not publish, got %d events", got)
	}
}

func TestCreateAccount_PublishRejectionIsNonFatal(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	bus.FailPublishes = true
	service, _ := newTestService(bus)

	input := CreateCustomerInput{Name: "Jane Doe", Email: "jane@x.com", MobileNumber: "9876543210"}
	if err := service.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("publish rejection must not fail provisioning, got %v", err)
	}

	details, err := service.FetchAccount(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("FetchAccount returned error: %v", err)
	}
	if details.Account.CommunicationSw {
		t.Fatal("flag must stay unset when the notification never went out")
	}
}

func TestFetchAccount_UnknownMobileNumber(t *testing.T) {
	service, _ := newTestService(eventbus.NewMemoryBus())

	_, err := service.FetchAccount(context.Background(), "0000000000")
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Field != "mobileNumber" {
		t.Fatalf("error must name the lookup key, got %q", notFound.Field)
	}
}

func TestUpdateAccount_RequiresAccountPayload(t *testing.T) {
	service, _ := newTestService(eventbus.NewMemoryBus())

	err := service.UpdateAccount(context.Background(), &domain.CustomerDetails{Name: "Jane Doe"})
	if !errors.Is(err, ErrNothingToUpdate) {
		t.Fatalf("expected ErrNothingToUpdate, got %v", err)
	}
}

func TestUpdateAccount_AppliesAccountAndCustomerFields(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	service, _ := newTestService(bus)

	if err := service.CreateAccount(context.Background(), CreateCustomerInput{
		Name: "Jane Doe", Email: "jane@x.com", MobileNumber: "9876543210",
	}); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}
	created, err := service.FetchAccount(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("FetchAccount returned error: %v", err)
	}

	update := &domain.CustomerDetails{
		Name:         "Jane A. Doe",
		Email:        "jane.doe@x.com",
		MobileNumber: "9876543210",
		Account: &domain.Account{
			AccountNumber: created.Account.AccountNumber,
			AccountType:   "Current",
			BranchAddress: "456 Elm Street, Boston",
		},
	}
	if err := service.UpdateAccount(context.Background(), update); err != nil {
		t.Fatalf("UpdateAccount returned error: %v", err)
	}

	after, err := service.FetchAccount(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("FetchAccount after update returned error: %v", err)
	}
	if after.Name != "Jane A. Doe" || after.Email != "jane.doe@x.com" {
		t.Fatalf("customer fields not updated: %+v", after)
	}
	if after.Account.AccountType != "Current" || after.Account.BranchAddress != "456 Elm Street, Boston" {
		t.Fatalf("account fields not updated: %+v", after.Account)
	}
}

func TestDeleteAccount_RemovesCustomerAndAccount(t *testing.T) {
	bus := eventbus.NewMemoryBus()
	service, st := newTestService(bus)

	if err := service.CreateAccount(context.Background(), CreateCustomerInput{
		Name: "Jane Doe", Email: "jane@x.com", MobileNumber: "9876543210",
	}); err != nil {
		t.Fatalf("CreateAccount returned error: %v", err)
	}

	if err := service.DeleteAccount(context.Background(), "9876543210"); err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if len(st.customers) != 0 || len(st.accounts) != 0 {
		t.Fatalf("expected empty store after delete: %d customers, %d accounts", len(st.customers), len(st.accounts))
	}

	_, err := service.FetchAccount(context.Background(), "9876543210")
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestUpdateCommunicationStatus_UnknownAccount(t *testing.T) {
	service, _ := newTestService(eventbus.NewMemoryBus())

	err := service.UpdateCommunicationStatus(context.Background(), 1234567890)
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
