/**
 * @description
 * Diagnostic read endpoints wrapped in resilience decorators. Neither
 * endpoint can fail visibly: the build-info read retries before degrading
 * to a placeholder version, and the env-info read is rate limited and
 * degrades to a placeholder when over budget. Contact info is served
 * straight from configuration.
 */
package api

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/eazybank/accounts-service/internal/config"
	"github.com/eazybank/accounts-service/pkg/resilience"
)

const (
	fallbackBuildVersion = "0.9"
	fallbackEnvInfo      = "go1.24"
)

// ContactInfo is the payload of the contact-info endpoint.
type ContactInfo struct {
	Message        string            `json:"message"`
	ContactDetails map[string]string `json:"contact_details"`
	OnCallSupport  []string          `json:"on_call_support"`
}

// DiagnosticsHandler serves the build-info, env-info and contact-info
// endpoints.
type DiagnosticsHandler struct {
	cfg       *config.Config
	buildInfo func(ctx context.Context) string
	envInfo   func(ctx context.Context) string
}

// NewDiagnosticsHandler builds the handler with its decorated reads. The
// limiter is injected so deployments can choose between the local and the
// Redis-backed variant.
func NewDiagnosticsHandler(cfg *config.Config, limiter resilience.Limiter) *DiagnosticsHandler {
	h := &DiagnosticsHandler{cfg: cfg}

	h.buildInfo = resilience.Retry(
		resilience.RetryPolicy{MaxAttempts: cfg.RetryMaxAttempts, Delay: cfg.RetryDelay()},
		h.readBuildVersion,
		func(error) string { return fallbackBuildVersion },
	)
	h.envInfo = resilience.RateLimit(
		limiter,
		h.readEnvInfo,
		func(error) string { return fallbackEnvInfo },
	)
	return h
}

func (h *DiagnosticsHandler) readBuildVersion(_ context.Context) (string, error) {
	if h.cfg.BuildVersion == "" {
		return "", errors.New("build version not configured")
	}
	return h.cfg.BuildVersion, nil
}

func (h *DiagnosticsHandler) readEnvInfo(_ context.Context) (string, error) {
	value := os.Getenv(h.cfg.EnvInfoKey)
	if value == "" {
		return "", errors.New("environment variable " + h.cfg.EnvInfoKey + " not set")
	}
	return value, nil
}

// BuildInfo returns the deployed build version, or the placeholder after
// the retry budget is exhausted.
func (h *DiagnosticsHandler) BuildInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.buildInfo(r.Context()))
}

// EnvInfo returns the configured environment value, or the placeholder
// when rate limited.
func (h *DiagnosticsHandler) EnvInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.envInfo(r.Context()))
}

// GetContactInfo returns the support contact details.
func (h *DiagnosticsHandler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ContactInfo{
		Message: h.cfg.ContactMessage,
		ContactDetails: map[string]string{
			"name":  h.cfg.ContactName,
			"email": h.cfg.ContactEmail,
		},
		OnCallSupport: []string{h.cfg.OnCallPhone},
	})
}
