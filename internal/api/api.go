// Package api exposes the notification over HTTP: GET /{email} sends the
// notification to the address in the path.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sgaunet/notifymail/internal/dispatcher"
	"github.com/sgaunet/notifymail/internal/logger"
	"github.com/sgaunet/notifymail/internal/metrics"
	"github.com/sgaunet/notifymail/internal/validation"
	"golang.org/x/time/rate"
)

const defaultRequestTimeout = 30 * time.Second

// Notifier sends the notification to one recipient.
type Notifier interface {
	Notify(ctx context.Context, recipient string) error
}

// Response is the JSON body returned by the notification endpoint.
type Response struct {
	Recipient string   `json:"recipient"`
	Sent      bool     `json:"sent"`
	Error     string   `json:"error,omitempty"`
	Errors    []string `json:"errors,omitempty"`
	Attempts  int      `json:"attempts,omitempty"`
}

type Server struct {
	notifier Notifier
	log      logger.Logger
	limiter  *rate.Limiter
	timeout  time.Duration
}

// NewServer creates the HTTP handler. limiter bounds the rate of
// notification requests; nil disables rate limiting.
func NewServer(notifier Notifier, log logger.Logger, limiter *rate.Limiter) *Server {
	return &Server{
		notifier: notifier,
		log:      log,
		limiter:  limiter,
		timeout:  defaultRequestTimeout,
	}
}

// SetTimeout bounds every notification request.
func (s *Server) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.MetricsHandler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Get("/{email}", s.handleNotify)
	})
	return r
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			metrics.HTTPRateLimited.Inc()
			writeJSON(w, http.StatusTooManyRequests, Response{Error: "too many requests"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	recipient, err := recipientParam(r)
	if err != nil {
		status, resp := toResponse(chi.URLParam(r, "email"), err)
		s.log.Warn("malformed recipient in path", "path", r.URL.RawPath, "error", err)
		writeJSON(w, status, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	err = s.notifier.Notify(ctx, recipient)
	status, resp := toResponse(recipient, err)
	if err != nil {
		s.log.Error("notification failed", "recipient", recipient, "status", status, "error", err)
	}
	writeJSON(w, status, resp)
}

// recipientParam returns the decoded {email} segment. chi routes on
// URL.RawPath when it is set, and the segment is then still escaped.
func recipientParam(r *http.Request) (string, error) {
	param := chi.URLParam(r, "email")
	if r.URL.RawPath == "" {
		return param, nil
	}
	recipient, err := url.PathUnescape(param)
	if err != nil {
		return "", fmt.Errorf("%w: %w", dispatcher.ErrInvalidRecipient, err)
	}
	return recipient, nil
}

func toResponse(recipient string, err error) (int, Response) {
	resp := Response{Recipient: recipient, Sent: err == nil}
	if err == nil {
		return http.StatusOK, resp
	}
	resp.Error = err.Error()

	var verr *validation.Error
	var terr *dispatcher.TransportError
	switch {
	case errors.Is(err, dispatcher.ErrInvalidRecipient):
		return http.StatusBadRequest, resp
	case errors.As(err, &verr):
		resp.Errors = verr.Messages
		return http.StatusInternalServerError, resp
	case errors.As(err, &terr):
		resp.Attempts = terr.Attempts
		return http.StatusBadGateway, resp
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, resp
	default:
		return http.StatusInternalServerError, resp
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
