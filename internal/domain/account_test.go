package domain

import "testing"

func TestNewAccount_DefaultsAndNumberRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		account := NewAccount(42)

		if account.AccountNumber < 1_000_000_000 || account.AccountNumber > 1_899_999_999 {
			t.Fatalf("account number %d outside [1000000000, 1899999999]", account.AccountNumber)
		}
		if account.CustomerID != 42 {
			t.Fatalf("expected customer id 42, got %d", account.CustomerID)
		}
		if account.AccountType != AccountTypeSavings {
			t.Fatalf("expected account type %q, got %q", AccountTypeSavings, account.AccountType)
		}
		if account.BranchAddress != DefaultBranchAddress {
			t.Fatalf("expected branch address %q, got %q", DefaultBranchAddress, account.BranchAddress)
		}
		if account.CommunicationSw {
			t.Fatal("new accounts must start with the communication flag unset")
		}
	}
}
