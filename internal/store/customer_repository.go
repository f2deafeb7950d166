/**
 * @description
 * This file implements the data access layer for customer records. It
 * provides a clean interface for the application logic to interact with
 * the `customers` table in the database.
 *
 * @dependencies
 * - context, errors, log: Standard Go libraries.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver.
 * - The service's internal domain package for the Customer model.
 *
 * @notes
 * - The customers table carries a unique index on mobile_number. An insert
 *   that races past the service-level existence check loses here: the
 *   23505 unique violation is mapped to a domain.AlreadyExistsError.
 */
package store

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eazybank/accounts-service/internal/domain"
)

const pgUniqueViolation = "23505"

// PostgresCustomerRepository is the PostgreSQL implementation of the
// CustomerRepository.
type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCustomerRepository creates a new instance of PostgresCustomerRepository.
func NewPostgresCustomerRepository(db *pgxpool.Pool) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

// FindByMobileNumber retrieves a customer by their mobile number.
func (r *PostgresCustomerRepository) FindByMobileNumber(ctx context.Context, mobileNumber string) (*domain.Customer, error) {
	query := `SELECT customer_id, name, email, mobile_number FROM customers WHERE mobile_number = $1`
	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, mobileNumber).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Email,
		&customer.MobileNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("Error finding customer by mobile number: %v", err)
		return nil, err
	}
	return &customer, nil
}

// FindByID retrieves a customer by their internal id.
func (r *PostgresCustomerRepository) FindByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT customer_id, name, email, mobile_number FROM customers WHERE customer_id = $1`
	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Email,
		&customer.MobileNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Printf("Error finding customer by id: %v", err)
		return nil, err
	}
	return &customer, nil
}

// Save inserts a new customer and returns it with the assigned id.
func (r *PostgresCustomerRepository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
        INSERT INTO customers (name, email, mobile_number)
        VALUES ($1, $2, $3)
        RETURNING customer_id
    `
	saved := *customer
	err := r.db.QueryRow(ctx, query,
		customer.Name,
		customer.Email,
		customer.MobileNumber,
	).Scan(&saved.CustomerID)
	if err != nil {
		if isUniqueViolation(err) {
			log.Printf("Error creating customer: unique constraint violation on mobile_number %s", customer.MobileNumber)
			return nil, &domain.AlreadyExistsError{
				Resource: "Customer",
				Field:    "mobileNumber",
				Value:    customer.MobileNumber,
			}
		}
		log.Printf("Error inserting customer into database: %v", err)
		return nil, err
	}
	return &saved, nil
}

// Update rewrites the mutable fields of an existing customer.
func (r *PostgresCustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	query := `UPDATE customers SET name = $2, email = $3, mobile_number = $4 WHERE customer_id = $1`
	tag, err := r.db.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Email,
		customer.MobileNumber,
	)
	if err != nil {
		log.Printf("Error updating customer %d: %v", customer.CustomerID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByID removes a customer row.
func (r *PostgresCustomerRepository) DeleteByID(ctx context.Context, customerID int64) error {
	query := `DELETE FROM customers WHERE customer_id = $1`
	if _, err := r.db.Exec(ctx, query, customerID); err != nil {
		log.Printf("Error deleting customer %d: %v", customerID, err)
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres 23505 unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
