package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chatwire/internal/constants"
	"chatwire/internal/errors"
	"chatwire/internal/httputil"
	"chatwire/internal/metrics"
	"chatwire/internal/middleware"
	"chatwire/internal/models"
	"chatwire/internal/service"
	"chatwire/internal/tracing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router        *mux.Router
	logger        *logrus.Logger
	errLogger     *errors.Logger
	msgService    *service.MessageService
	eventService  *service.EventService
	webhookSecret string
	server        *http.Server
}

func NewServer(cfg models.ServerConfig, msgService *service.MessageService, eventService *service.EventService, webhookSecret string, logger *logrus.Logger) *Server {
	s := &Server{
		router:        mux.NewRouter(),
		logger:        logger,
		errLogger:     errors.WrapLogger(logger),
		msgService:    msgService,
		eventService:  eventService,
		webhookSecret: webhookSecret,
	}

	s.router.Use(middleware.Observability(logger))
	s.setupRoutes()

	port := cfg.Port
	if port == 0 {
		port = constants.DefaultServerPort
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.router,
		ReadTimeout:  serverTimeout(cfg.ReadTimeoutSec, constants.DefaultServerReadTimeoutSec),
		WriteTimeout: serverTimeout(cfg.WriteTimeoutSec, constants.DefaultServerWriteTimeoutSec),
		IdleTimeout:  serverTimeout(cfg.IdleTimeoutSec, constants.DefaultServerIdleTimeoutSec),
	}

	return s
}

func serverTimeout(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics()).Methods(http.MethodGet)

	s.router.HandleFunc("/webhook/conversations", s.handleConversationsWebhook()).Methods(http.MethodPost)

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/messages", s.handleSendMessage()).Methods(http.MethodPost)
}

func (s *Server) Start() error {
	s.logger.WithField(service.LogFieldEndpoint, s.server.Addr).Info("Starting server")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (s *Server) handleMetrics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(metrics.GetAllMetrics()); err != nil {
			s.logger.WithError(err).Error("Failed to encode metrics response")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
	}
}

func (s *Server) handleConversationsWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.WithFields(logrus.Fields{
			service.LogFieldRequestID: tracing.RequestID(r.Context()),
			service.LogFieldRemoteIP:  httputil.GetClientIP(r),
			service.LogFieldEndpoint:  "/webhook/conversations",
		})

		body, err := verifySignature(r, s.webhookSecret)
		if err != nil {
			logger.WithError(err).Warn("Webhook signature verification failed")
			metrics.IncrementCounter("webhook_auth_failures_total", nil, "Webhook requests rejected during signature verification")
			s.writeError(w, r, errors.NewAuthError("invalid webhook signature"))
			return
		}

		var event models.WebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			logger.WithError(err).Warn("Failed to decode webhook payload")
			s.writeError(w, r, errors.NewValidationError("body", "", "invalid JSON payload"))
			return
		}
		if event.Type == "" {
			s.writeError(w, r, errors.NewValidationError("type", "", "event type is required"))
			return
		}

		if err := s.eventService.HandleEvent(r.Context(), &event); err != nil {
			s.errLogger.LogError(err, "Failed to process webhook event", logrus.Fields{
				service.LogFieldRequestID: tracing.RequestID(r.Context()),
				service.LogFieldEvent:     string(event.Type),
			})
			s.writeError(w, r, err)
			return
		}

		logger.WithField(service.LogFieldEvent, string(event.Type)).Debug("Webhook event processed")
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) handleSendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.WithFields(logrus.Fields{
			service.LogFieldRequestID: tracing.RequestID(r.Context()),
			service.LogFieldEndpoint:  "/api/v1/messages",
		})

		var req models.SendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, r, errors.NewValidationError("body", "", "invalid JSON payload"))
			return
		}
		if req.ConversationID == "" && req.To == "" {
			s.writeError(w, r, errors.NewValidationError("to", "", "either conversationId or to is required"))
			return
		}

		result, err := s.msgService.Send(r.Context(), &req)
		if err != nil {
			s.errLogger.LogRetryableError(err, "Failed to send message", logrus.Fields{
				service.LogFieldRequestID: tracing.RequestID(r.Context()),
			})
			s.writeError(w, r, err)
			return
		}

		logger.WithFields(logrus.Fields{
			service.LogFieldMessageID:      result.MessageID,
			service.LogFieldConversationID: result.ConversationID,
			service.LogFieldStatus:         result.Status,
		}).Info("Message accepted for delivery")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(result)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errors.ToHTTPResponse(err, tracing.RequestID(r.Context()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errors.HTTPStatusCode(err))
	_ = json.NewEncoder(w).Encode(resp)
}
