package followup

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronic-risk-manager/community-health-frontend/internal/handler"
	"github.com/chronic-risk-manager/community-health-frontend/internal/listing"
	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
	apperrors "github.com/chronic-risk-manager/community-health-frontend/pkg/errors"
)

type Handler struct {
	client *upstream.Client
	store  *session.Store
}

func NewHandler(client *upstream.Client, store *session.Store) *Handler {
	return &Handler{client: client, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/followup", h.List)
	r.POST("/followup/:id/done", h.MarkDone)
}

// List renders the task board. The status filter is forwarded upstream
// where it narrows the fetch, then reapplied locally against the derived
// effective status so Overdue works either way.
func (h *Handler) List(c *gin.Context) {
	status := c.Query("status")
	search := c.Query("q")

	groups, err := h.client.ListFollowUps(c.Request.Context(), upstreamStatus(status))
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		page := handler.NewPage(c, h.store, gin.H{
			"RetryPath": c.Request.URL.String(),
			"Status":    status,
		})
		page.Error = "Failed to load follow-up tasks"
		c.HTML(http.StatusOK, "followups.tmpl", page)
		return
	}

	now := time.Now()
	tasks := model.Flatten(groups)
	tasks = listing.FilterFollowUps(tasks, status, now)
	tasks = listing.SearchFollowUps(tasks, search)
	tasks = listing.SortFollowUps(tasks)

	pageNum, _ := strconv.Atoi(c.Query("page"))
	rows, meta := listing.Slice(tasks, pageNum)

	type row struct {
		model.FollowUp
		Display string
	}
	display := make([]row, len(rows))
	for i, task := range rows {
		display[i] = row{FollowUp: task, Display: task.EffectiveStatus(now)}
	}

	c.HTML(http.StatusOK, "followups.tmpl", handler.NewPage(c, h.store, gin.H{
		"Tasks":  display,
		"Status": status,
		"Search": search,
		"Page":   meta,
	}))
}

// MarkDone PATCHes the task to Completed and answers with the updated row
// as JSON. The page swaps the row in place, so no list refetch happens.
func (h *Handler) MarkDone(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		appErr := apperrors.BadRequest("invalid task ID", err)
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
		return
	}

	completedAt := time.Now().UTC()
	task, err := h.client.UpdateFollowUp(c.Request.Context(), id, &model.UpdateFollowUpRequest{
		Status:      model.FollowUpCompleted,
		CompletedAt: &completedAt,
	})
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		// Upstream errors keep their status; anything else is a gateway
		// failure from the page's point of view.
		status := http.StatusBadGateway
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode()
		}
		c.JSON(status, gin.H{"error": handler.ErrorMessage(err)})
		return
	}

	// Some backends answer PATCH with an empty body.
	if task == nil || task.ID == 0 {
		task = &model.FollowUp{
			ID:          id,
			Status:      model.FollowUpCompleted,
			CompletedAt: &completedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": task})
}

// upstreamStatus maps the display filter to the query the backend knows.
// Overdue is a derived state the backend does not store, so those fetches
// run unfiltered and narrow locally.
func upstreamStatus(status string) string {
	if status == model.FollowUpOverdue {
		return ""
	}
	return status
}
