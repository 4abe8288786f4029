package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chronic-risk-manager/community-health-frontend/internal/chart"
	"github.com/chronic-risk-manager/community-health-frontend/internal/handler"
	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
)

type Handler struct {
	client *upstream.Client
	store  *session.Store
}

func NewHandler(client *upstream.Client, store *session.Store) *Handler {
	return &Handler{client: client, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Show)
}

// Show renders the aggregate dashboard. Failures render the view's own
// error state with a retry control; the rest of the app stays untouched.
func (h *Handler) Show(c *gin.Context) {
	dash, err := h.client.Dashboard(c.Request.Context())
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		page := handler.NewPage(c, h.store, gin.H{"RetryPath": c.Request.URL.Path})
		page.Error = handler.ErrorMessage(err)
		c.HTML(http.StatusOK, "dashboard.tmpl", page)
		return
	}
	if dash == nil {
		dash = &model.Dashboard{}
	}

	ageValues := make([]float64, len(dash.AgeDistribution))
	ageLabels := make([]string, len(dash.AgeDistribution))
	for i, bucket := range dash.AgeDistribution {
		ageValues[i] = float64(bucket.Count)
		ageLabels[i] = bucket.Range
	}

	riskValues := []float64{
		float64(dash.RiskDistribution.Low),
		float64(dash.RiskDistribution.Medium),
		float64(dash.RiskDistribution.High),
	}
	riskLabels := []string{model.RiskLow, model.RiskMedium, model.RiskHigh}

	page := handler.NewPage(c, h.store, gin.H{
		"Counts":           dash.Counts,
		"NewRegistrations": dash.NewRegistrations(),
		"AgeChart":         chart.Bars(ageValues, ageLabels),
		"RiskChart":        chart.Bars(riskValues, riskLabels),
	})
	c.HTML(http.StatusOK, "dashboard.tmpl", page)
}
