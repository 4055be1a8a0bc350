package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labops/evidence-desk/internal/delivery"
	"github.com/labops/evidence-desk/internal/repository"
	"github.com/labops/evidence-desk/internal/rules"
	"github.com/labops/evidence-desk/internal/session"
	"github.com/labops/evidence-desk/internal/submission"
	"go.uber.org/zap"
)

// Handler exposes the submission sessions over HTTP. It is the UI
// collaborator's boundary: every edit lands here, triggers one full
// re-evaluation, and the response carries the current requirement set and
// verdict for rendering.
type Handler struct {
	sessions  *session.Manager
	deliverer delivery.Deliverer
	log       *repository.SubmissionLogRepository
	logger    *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(
	sessions *session.Manager,
	deliverer delivery.Deliverer,
	log *repository.SubmissionLogRepository,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sessions:  sessions,
		deliverer: deliverer,
		log:       log,
		logger:    logger,
	}
}

// RegisterRoutes mounts the session API on a router group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/sessions", h.OpenSession)
	api.GET("/sessions/:id", h.GetSession)
	api.DELETE("/sessions/:id", h.CloseSession)
	api.PUT("/sessions/:id/answers", h.SetAnswer)
	api.PUT("/sessions/:id/files/:slot", h.SetFilePresence)
	api.POST("/sessions/:id/submit", h.Submit)
}

// OpenSession starts a new submission session
func (h *Handler) OpenSession(c *gin.Context) {
	id, state := h.sessions.Open()
	c.JSON(http.StatusCreated, h.sessionView(id, state))
}

// GetSession returns the current snapshot, requirement set and verdict
func (h *Handler) GetSession(c *gin.Context) {
	state, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.sessionView(c.Param("id"), state))
}

// CloseSession discards a session without sending
func (h *Handler) CloseSession(c *gin.Context) {
	if _, ok := h.lookup(c); !ok {
		return
	}
	h.sessions.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type setAnswerRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SetAnswer applies one answer field and returns the re-evaluated session
func (h *Handler) SetAnswer(c *gin.Context) {
	state, ok := h.lookup(c)
	if !ok {
		return
	}

	var req setAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := state.SetAnswer(session.Field(req.Field), req.Value); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, session.ErrUnknownField) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.sessionView(c.Param("id"), state))
}

type setFileRequest struct {
	Present  bool   `json:"present"`
	Filename string `json:"filename"`
}

// SetFilePresence records an upload (or its removal) for a document slot.
// The declared extension is checked against the slot's accepted set here,
// at the upload boundary; the rule engine only ever sees presence.
func (h *Handler) SetFilePresence(c *gin.Context) {
	state, ok := h.lookup(c)
	if !ok {
		return
	}

	var req setFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := submission.SlotKey(c.Param("slot"))
	if req.Present && req.Filename != "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(req.Filename), "."))
		if !submission.AcceptsExtension(key, ext) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "file type not accepted for this slot",
				"slot":  key,
			})
			return
		}
	}

	if err := state.SetFilePresence(key, req.Present); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.sessionView(c.Param("id"), state))
}

// Submit forwards a ready submission to the reviewer, appends it to the
// submission log and resets the session. A submission that is not ready is
// rejected with the full missing list; nothing is sent or logged in that
// case.
func (h *Handler) Submit(c *gin.Context) {
	state, ok := h.lookup(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	snapshot := state.Snapshot()
	eval := rules.Evaluate(snapshot)
	verdict := rules.Aggregate(snapshot, eval)
	if !verdict.Ready {
		c.JSON(http.StatusConflict, gin.H{"verdict": verdict})
		return
	}

	record := submission.NewRecord(sessionID, snapshot, eval.SortedSlots(), time.Now())

	if err := h.deliverer.Deliver(c.Request.Context(), record); err != nil {
		h.logger.Error("Delivery failed",
			zap.String("session_id", sessionID),
			zap.String("backend", h.deliverer.Name()),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "delivery failed"})
		return
	}

	if _, err := h.log.Append(nil, record, h.deliverer.Name()); err != nil {
		// The reviewer already has the submission; log loss is not fatal
		h.logger.Error("Failed to append submission log",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	state.Reset()

	h.logger.Info("Submission sent",
		zap.String("session_id", sessionID),
		zap.String("applicant", record.Applicant),
		zap.String("category", string(record.Category)),
		zap.String("backend", h.deliverer.Name()))

	c.JSON(http.StatusOK, gin.H{"record": record})
}

// lookup resolves the session ID path parameter
func (h *Handler) lookup(c *gin.Context) (*session.State, bool) {
	state, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return state, true
}

// sessionView renders the full session picture the UI needs after an edit
func (h *Handler) sessionView(id string, state *session.State) gin.H {
	snapshot := state.Snapshot()
	eval := rules.Evaluate(snapshot)
	verdict := rules.Aggregate(snapshot, eval)

	view := gin.H{
		"session_id": id,
		"answers":    snapshot,
		"slots":      eval.SortedSlots(),
		"verdict":    verdict,
	}

	if snapshot.PaymentMethod.IsValid() {
		view["project_catalog"] = submission.ProjectCatalog(snapshot.PaymentMethod)
		view["selectable_categories"] = submission.SelectableCategories(snapshot.PaymentMethod)
	}
	return view
}
