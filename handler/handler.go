package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"antisocial-agent/internal/domain"
	"antisocial-agent/internal/usecase"
)

const maxBodySize = 64 << 10

type Service interface {
	Generate(ctx context.Context, in usecase.GenerateInput) (usecase.GenerateOutput, error)
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.SessionSummary, error)
	Conversation(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	Platforms() []domain.PlatformInfo
}

type Handler struct {
	svc    Service
	router chi.Router
}

type generateRequest struct {
	Platform string `json:"platform"`
	Topic    string `json:"topic"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

type generateResponse struct {
	domain.ContentPlan
	SessionID string `json:"session_id"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Message        string              `json:"message"`
	UpdatedContent *domain.ContentPlan `json:"updated_content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type platformsResponse struct {
	Platforms []domain.PlatformInfo `json:"platforms"`
}

type sessionsResponse struct {
	Sessions []domain.SessionSummary `json:"sessions"`
}

type conversationResponse struct {
	SessionID string               `json:"session_id"`
	Messages  []domain.ChatMessage `json:"messages"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Reason string `json:"reason,omitempty"`
}

func NewHandler(svc Service) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: service must not be nil")
	}
	h := &Handler{svc: svc}
	h.router = h.routes()
	return h, nil
}

// Routes returns the HTTP API. The Lambda entry point serves the same router.
func (h *Handler) Routes() http.Handler {
	return h.router
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(correlationID)
	r.Use(cors)

	r.Get("/", h.handleRoot)
	r.Get("/platforms", h.handlePlatforms)
	r.Post("/generate", h.handleGenerate)
	r.Post("/chat", h.handleChat)
	r.Get("/sessions", h.handleListSessions)
	r.Get("/sessions/{id}", h.handleGetSession)
	r.Get("/sessions/{id}/conversation", h.handleConversation)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found", Code: string(usecase.ErrorNotFound)})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed", Code: string(usecase.ErrorInvalidInput)})
	})
	return r
}

func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "AntiSocial API is running"})
}

func (h *Handler) handlePlatforms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, platformsResponse{Platforms: h.svc.Platforms()})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.svc.Generate(r.Context(), usecase.GenerateInput{
		Platform: req.Platform,
		Topic:    req.Topic,
		Audience: req.Audience,
		Tone:     req.Tone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{ContentPlan: out.Content, SessionID: out.SessionID})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.svc.Chat(r.Context(), usecase.ChatInput{SessionID: req.SessionID, Message: req.Message})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Message: out.Message, UpdatedContent: out.UpdatedContent})
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListSessions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: list})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	msgs, err := h.svc.Conversation(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conversationResponse{SessionID: id, Messages: msgs})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "Invalid request body",
			Code:   string(usecase.ErrorInvalidInput),
			Reason: "invalid_body",
		})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := toErrorResponse(err)
	attrs := []any{
		"correlation_id", w.Header().Get(correlationHeader),
		"method", r.Method,
		"path", r.URL.Path,
		"code", body.Code,
		"err", err,
	}
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", attrs...)
	} else {
		slog.Warn("request rejected", attrs...)
	}
	writeJSON(w, status, body)
}

func toErrorResponse(err error) (int, errorResponse) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, errorResponse{Error: "Internal server error", Code: string(usecase.ErrorInternal)}
	}
	body := errorResponse{Code: string(ue.Code), Reason: ue.Reason}
	switch ue.Code {
	case usecase.ErrorInvalidInput:
		body.Error = invalidInputMessage(ue.Reason)
		return http.StatusBadRequest, body
	case usecase.ErrorNotFound:
		body.Error = "Session not found"
		return http.StatusNotFound, body
	case usecase.ErrorRateLimited:
		body.Error = "Model provider rate limit reached"
		return http.StatusTooManyRequests, body
	case usecase.ErrorUpstream:
		body.Error = "Model provider request failed"
		return http.StatusBadGateway, body
	case usecase.ErrorConfiguration:
		body.Error = "Model provider is not configured"
		return http.StatusServiceUnavailable, body
	default:
		body.Error = "Internal server error"
		return http.StatusInternalServerError, body
	}
}

func invalidInputMessage(reason string) string {
	switch reason {
	case "unsupported_platform":
		return "Invalid platform"
	case "empty_topic":
		return "Topic is required"
	case "empty_message":
		return "Message is required"
	case "message_too_long":
		return "Message is too long"
	default:
		return "Invalid request"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}
