/**
 * @description
 * This file defines the account domain model and the account number
 * generator used during provisioning.
 *
 * @notes
 * - The generator does not check for collisions. The accounts table's
 *   primary key is the actual uniqueness invariant; a collision surfaces
 *   as a persistence error to the caller.
 */
package domain

import "math/rand"

const (
	// AccountTypeSavings is the account type assigned to every newly
	// provisioned account.
	AccountTypeSavings = "Savings"

	// DefaultBranchAddress is the branch recorded on newly provisioned
	// accounts.
	DefaultBranchAddress = "123 Main Street, New York"

	accountNumberBase  = 1_000_000_000
	accountNumberRange = 900_000_000
)

// Account is a bank account owned by exactly one customer.
type Account struct {
	AccountNumber int64  `json:"account_number"`
	CustomerID    int64  `json:"customer_id"`
	AccountType   string `json:"account_type"`
	BranchAddress string `json:"branch_address"`
	// CommunicationSw records whether a notification acknowledgment has
	// been received for this account. It starts false and is only ever
	// flipped to true.
	CommunicationSw bool `json:"communication_sw"`
}

// NewAccount builds a fresh account for the given customer with a random
// 10-digit account number in [1000000000, 1899999999].
func NewAccount(customerID int64) *Account {
	return &Account{
		AccountNumber: accountNumberBase + rand.Int63n(accountNumberRange),
		CustomerID:    customerID,
		AccountType:   AccountTypeSavings,
		BranchAddress: DefaultBranchAddress,
	}
}
