package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/pkg/logger"
	"github.com/futig/ai-tutor/internal/pkg/response"
	"github.com/futig/ai-tutor/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxAskBodySize caps the JSON body of a question request
const maxAskBodySize = 1 << 20

type Handler struct {
	usecase   SessionUsecase
	validator *validator.Validator
}

func NewHandler(
	usecase SessionUsecase,
	validator *validator.Validator,
) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// StartSession handles POST /sessions - Start new session
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	snap := h.usecase.StartSession(ctx)

	ctxzap.Info(ctx, "session created", zap.String("session_id", snap.ID))
	response.Created(w, entity.CreateSessionResponse{
		ID:        snap.ID,
		CreatedAt: snap.CreatedAt,
	})
}

// GetSession handles GET /sessions/{id} - Current pair and history size
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GetSession")

	snap, err := h.usecase.GetSession(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDTO(snap))
}

// EndSession handles DELETE /sessions/{id} - Discard session
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "EndSession")

	if err := h.usecase.EndSession(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// AskQuestion handles POST /sessions/{id}/questions - Ask the tutor
func (h *Handler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "AskQuestion")

	var req entity.AskQuestionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBodySize)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateAskQuestion(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	rec, result, err := h.usecase.AskQuestion(ctx, sessionID, *req.Question)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, entity.AskQuestionResponse{
		Question: rec.Question,
		Answer:   rec.Answer,
		Kind:     string(result.Kind),
	})
}

// GetHistory handles GET /sessions/{id}/history?limit=N - Recent questions, newest first
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "GetHistory")

	limit, err := h.validator.ParseHistoryLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	items, total, err := h.usecase.History(ctx, sessionID, limit)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toHistoryDTO(items, total))
}

// ClearHistory handles DELETE /sessions/{id}/history - Clear chat history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ClearHistory")

	if err := h.usecase.ClearHistory(ctx, sessionID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ExportCurrent handles GET /sessions/{id}/export?format=pdf - Download summary of the current answer
func (h *Handler) ExportCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, sessionID := h.sessionContext(r, "ExportCurrent")

	format, err := h.validator.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	doc, err := h.usecase.ExportCurrent(ctx, sessionID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "session summary exported",
		zap.String("filename", doc.Filename),
		zap.Int("size_bytes", len(doc.Content)),
	)
	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

func (h *Handler) sessionContext(r *http.Request, action string) (context.Context, string) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", action),
	)
	return ctx, sessionID
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrSessionNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, entity.ErrInvalidParameter), errors.Is(err, entity.ErrInvalidFormat), errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrNoCurrentAnswer):
		h.respondError(ctx, w, http.StatusConflict, "ask a question before exporting", err)
	case errors.Is(err, entity.ErrExportFailed):
		h.respondError(ctx, w, http.StatusInternalServerError, "export failed", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
