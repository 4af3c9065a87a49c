// Package handler exposes the collection-addressed dashboard API. Handlers
// bind JSON, call the backing store and answer {"error": ...} with a
// non-2xx status on failure.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"team-board/internal/logger"
	"team-board/internal/model"
	"team-board/internal/store"

	"github.com/gin-gonic/gin"
)

// Store interfaces let tests run the API against in-memory fakes.

type MemberStore interface {
	List(ctx context.Context) ([]model.Member, error)
	Insert(ctx context.Context, m model.Member) error
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
}

type WeekStore interface {
	List(ctx context.Context) ([]model.WeekData, error)
	Insert(ctx context.Context, w model.WeekData) error
	InsertBatch(ctx context.Context, ws []model.WeekData) error
	Update(ctx context.Context, id, weekStart string, patch map[string]any) error
}

type ChangeStore interface {
	List(ctx context.Context) ([]model.StructureChange, error)
	Insert(ctx context.Context, c model.StructureChange) error
}

type Wiper interface {
	ClearAll(ctx context.Context) error
}

type MembersHandler struct{ members MemberStore }

func NewMembersHandler(members MemberStore) *MembersHandler {
	return &MembersHandler{members: members}
}

// GET /members
func (h *MembersHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// POST /members
func (h *MembersHandler) Create(c *gin.Context) {
	var m model.Member
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m.Type = model.KindMember
	if err := h.members.Insert(c.Request.Context(), m); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	logger.Info("member.added", "id", m.ID, "name", m.Name, "role", m.Role)
	c.JSON(http.StatusOK, gin.H{"success": true, "member": m})
}

// PUT /members/:id
func (h *MembersHandler) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.members.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /members/:id — cascades to the member's week records.
func (h *MembersHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.members.Delete(c.Request.Context(), id); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	logger.Info("member.removed", "id", id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type WeeksHandler struct{ weeks WeekStore }

func NewWeeksHandler(weeks WeekStore) *WeeksHandler {
	return &WeeksHandler{weeks: weeks}
}

// GET /weeks
func (h *WeeksHandler) List(c *gin.Context) {
	weeks, err := h.weeks.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if weeks == nil {
		weeks = []model.WeekData{}
	}
	c.JSON(http.StatusOK, weeks)
}

// POST /weeks — accepts one record or an array for bulk insert.
func (h *WeeksHandler) Create(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	raw = json.RawMessage(bytes.TrimSpace(raw))
	if len(raw) > 0 && raw[0] == '[' {
		var batch []model.WeekData
		if err := json.Unmarshal(raw, &batch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		for i := range batch {
			batch[i].Type = model.KindWeekData
		}
		if err := h.weeks.InsertBatch(c.Request.Context(), batch); err != nil {
			fail(c, statusFor(err), err)
			return
		}
		logger.Info("weeks.added", "count", len(batch))
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var w model.WeekData
	if err := json.Unmarshal(raw, &w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	w.Type = model.KindWeekData
	if err := h.weeks.Insert(c.Request.Context(), w); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "weekData": w})
}

// PUT /weeks/:id/:week_start — week records are addressed by the compound
// (id, week_start) key.
func (h *WeeksHandler) Update(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	err := h.weeks.Update(c.Request.Context(), c.Param("id"), c.Param("week_start"), patch)
	if err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ChangesHandler struct{ changes ChangeStore }

func NewChangesHandler(changes ChangeStore) *ChangesHandler {
	return &ChangesHandler{changes: changes}
}

// GET /changes — newest first.
func (h *ChangesHandler) List(c *gin.Context) {
	changes, err := h.changes.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if changes == nil {
		changes = []model.StructureChange{}
	}
	c.JSON(http.StatusOK, changes)
}

// POST /changes
func (h *ChangesHandler) Create(c *gin.Context) {
	var entry model.StructureChange
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	entry.Type = model.KindStructureChange
	if err := h.changes.Insert(c.Request.Context(), entry); err != nil {
		fail(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "change": entry})
}

type AdminHandler struct{ wiper Wiper }

func NewAdminHandler(wiper Wiper) *AdminHandler {
	return &AdminHandler{wiper: wiper}
}

// POST /clear-all — wipes all three collections.
func (h *AdminHandler) ClearAll(c *gin.Context) {
	if err := h.wiper.ClearAll(c.Request.Context()); err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	logger.Warn("collections cleared")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register wires the collection routes onto the engine.
func Register(r gin.IRouter, m *MembersHandler, w *WeeksHandler, ch *ChangesHandler, admin *AdminHandler) {
	r.GET("/members", m.List)
	r.POST("/members", m.Create)
	r.PUT("/members/:id", m.Update)
	r.DELETE("/members/:id", m.Delete)

	r.GET("/weeks", w.List)
	r.POST("/weeks", w.Create)
	r.PUT("/weeks/:id/:week_start", w.Update)

	r.GET("/changes", ch.List)
	r.POST("/changes", ch.Create)

	r.POST("/clear-all", admin.ClearAll)
}

func fail(c *gin.Context, status int, err error) {
	logger.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrCycle),
		errors.Is(err, model.ErrMissingField),
		errors.Is(err, model.ErrUnknownRole):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
