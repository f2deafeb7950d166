/**
 * @description
 * This file implements the data access layer for account records. It
 * provides a clean interface for the application logic to interact with
 * the `accounts` table in the database.
 *
 * @dependencies
 * - context, errors, log: Standard Go libraries.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver.
 * - The service's internal domain package for the Account model.
 */
package store

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eazybank/accounts-service/internal/domain"
)

// PostgresAccountRepository is the PostgreSQL implementation of the
// AccountRepository.
type PostgresAccountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresAccountRepository creates a new instance of PostgresAccountRepository.
func NewPostgresAccountRepository(db *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// FindByAccountNumber retrieves an account by its primary key.
func (r *PostgresAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	query := `
        SELECT account_number, customer_id, account_type, branch_address, communication_sw
        FROM accounts WHERE account_number = $1
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, accountNumber))
}

// FindByCustomerID retrieves the account owned by the given customer.
func (r *PostgresAccountRepository) FindByCustomerID(ctx context.Context, customerID int64) (*domain.Account, error) {
	query := `
        SELECT account_number, customer_id, account_type, branch_address, communication_sw
        FROM accounts WHERE customer_id = $1
    `
	return r.scanAccount(r.db.QueryRow(ctx, query, customerID))
}

// Save inserts a new account record into the database. A generated account
// number that collides with an existing row fails on the primary key; the
// error is returned to the caller, not retried.
func (r *PostgresAccountRepository) Save(ctx context.Context, account *domain.Account) error {
	query := `
        INSERT INTO accounts (account_number, customer_id, account_type, branch_address, communication_sw)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query,
		account.AccountNumber,
		account.CustomerID,
		account.AccountType,
		account.BranchAddress,
		account.CommunicationSw,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Error creating account: unique constraint violation on account_number %d", account.AccountNumber)
			return err
		}
		log.Printf("Error inserting account into database: %v", err)
		return err
	}
	return nil
}

// Update rewrites the mutable fields of an existing account.
func (r *PostgresAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	query := `
        UPDATE accounts SET account_type = $2, branch_address = $3
        WHERE account_number = $1
    `
	tag, err := r.db.Exec(ctx, query,
		account.AccountNumber,
		account.AccountType,
		account.BranchAddress,
	)
	if err != nil {
		log.Printf("Error updating account %d: %v", account.AccountNumber, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCommunicationStatus sets the communication flag on an account.
// Setting an already-set flag is a no-op, which keeps the operation
// idempotent under concurrent acknowledgments.
func (r *PostgresAccountRepository) UpdateCommunicationStatus(ctx context.Context, accountNumber int64, sent bool) error {
	query := `UPDATE accounts SET communication_sw = $2 WHERE account_number = $1`
	tag, err := r.db.Exec(ctx, query, accountNumber, sent)
	if err != nil {
		log.Printf("Error updating communication status for account %d: %v", accountNumber, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCustomerID removes the account rows owned by a customer.
func (r *PostgresAccountRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	query := `DELETE FROM accounts WHERE customer_id = $1`
	if _, err := r.db.Exec(ctx, query, customerID); err != nil {
		log.Printf("Error deleting accounts for customer %d: %v", customerID, err)
		return err
	}
	return nil
}

// CountPendingCommunications returns how many accounts are still waiting
// for a notification acknowledgment.
func (r *PostgresAccountRepository) CountPendingCommunications(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM accounts WHERE communication_sw = FALSE`
	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		log.Printf("Error counting pending communications: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *PostgresAccountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountNumber,
		&account.CustomerID,
		&account.AccountType,
		&account.BranchAddress,
		&account.CommunicationSw,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("Error scanning account row: %v", err)
		return nil, err
	}
	return &account, nil
}
