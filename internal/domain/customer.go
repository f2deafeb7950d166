/**
 * @description
 * This file defines the customer domain model for the accounts-service.
 * A customer is identified internally by a database-assigned id and
 * externally by their mobile number, which is the unique business key.
 */
package domain

// Customer is the owner of a provisioned bank account.
type Customer struct {
	CustomerID   int64  `json:"customer_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
}

// CustomerDetails is the combined view returned by fetch operations:
// the customer together with their account.
type CustomerDetails struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	MobileNumber string   `json:"mobile_number"`
	Account      *Account `json:"account,omitempty"`
}
