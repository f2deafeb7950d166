/**
 * @description
 * This file defines the HTTP handlers for the accounts-service's CRUD API.
 * Handlers are responsible for parsing requests, validating payloads,
 * calling the appropriate service method, and writing the response.
 *
 * @dependencies
 * - Standard Go libraries for HTTP, JSON, etc.
 * - github.com/go-playground/validator/v10: Request payload validation.
 * - The service's internal packages for app logic and domain models.
 */
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eazybank/accounts-service/internal/app"
	"github.com/eazybank/accounts-service/internal/domain"
)

// Status messages returned by the CRUD endpoints.
const (
	MessageCreated      = "Account created successfully"
	MessageProcessed    = "Request processed successfully"
	MessageUpdateFailed = "Update operation failed. Please try again or contact the Dev team"
)

var validate = validator.New()

// Response is the envelope for status-only endpoints.
type Response struct {
	StatusCode string `json:"status_code"`
	StatusMsg  string `json:"status_msg"`
}

// ErrorResponse carries the diagnostics for a failed request.
type ErrorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// AccountHandler holds the dependencies for the account CRUD handlers.
type AccountHandler struct {
	service *app.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *app.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccountRequest defines the expected JSON body for provisioning.
type CreateAccountRequest struct {
	Name         string `json:"name" validate:"required,min=5,max=30"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobile_number" validate:"required,len=10,numeric"`
}

// UpdateAccountRequest defines the expected JSON body for updates.
type UpdateAccountRequest struct {
	Name         string          `json:"name" validate:"required,min=5,max=30"`
	Email        string          `json:"email" validate:"required,email"`
	MobileNumber string          `json:"mobile_number" validate:"required,len=10,numeric"`
	Account      *domain.Account `json:"account"`
}

// CreateAccount handles the provisioning of a new customer and account.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.service.CreateAccount(r.Context(), app.CreateCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{StatusCode: "201", StatusMsg: MessageCreated})
}

// FetchAccount handles fetching customer and account details by mobile number.
func (h *AccountHandler) FetchAccount(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := validate.Var(mobileNumber, "required,len=10,numeric"); err != nil {
		writeError(w, http.StatusBadRequest, "Mobile number must be 10 digits")
		return
	}

	details, err := h.service.FetchAccount(r.Context(), mobileNumber)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// UpdateAccount handles updating customer and account details.
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	err := h.service.UpdateAccount(r.Context(), &domain.CustomerDetails{
		Name:         req.Name,
		Email:        req.Email,
		MobileNumber: req.MobileNumber,
		Account:      req.Account,
	})
	if err != nil {
		if errors.Is(err, app.ErrNothingToUpdate) {
			writeJSON(w, http.StatusExpectationFailed, Response{StatusCode: "417", StatusMsg: MessageUpdateFailed})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{StatusCode: "200", StatusMsg: MessageProcessed})
}

// DeleteAccount handles deleting a customer and their account by mobile number.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	mobileNumber := r.URL.Query().Get("mobileNumber")
	if err := validate.Var(mobileNumber, "required,len=10,numeric"); err != nil {
		writeError(w, http.StatusBadRequest, "Mobile number must be 10 digits")
		return
	}

	if err := h.service.DeleteAccount(r.Context(), mobileNumber); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{StatusCode: "200", StatusMsg: MessageProcessed})
}

// writeDomainError maps typed domain errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var alreadyExists *domain.AlreadyExistsError
	if errors.As(err, &alreadyExists) {
		writeError(w, http.StatusConflict, alreadyExists.Error())
		return
	}
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, notFound.Error())
		return
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return "Invalid value for field " + first.Field()
	}
	return "Invalid request payload"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{ErrorCode: status, ErrorMessage: message})
}
