package upstream

import (
	"context"
	"net/url"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
)

// ListFollowUps returns tasks grouped by patient. status narrows the result
// upstream; "" or "All" fetches everything.
func (c *Client) ListFollowUps(ctx context.Context, status string) ([]model.PatientFollowUps, error) {
	var params url.Values
	if status != "" && status != "All" {
		params = url.Values{"status": []string{status}}
	}

	var groups []model.PatientFollowUps
	if err := c.do(ctx, "list_followups", "GET", pathFollowUps, params, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateFollowUp PATCHes a task, used to mark it Completed.
func (c *Client) UpdateFollowUp(ctx context.Context, id int64, req *model.UpdateFollowUpRequest) (*model.FollowUp, error) {
	var task model.FollowUp
	if err := c.do(ctx, "update_followup", "PATCH", pathFollowUp(id), nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Dashboard fetches the aggregate snapshot for the landing view.
func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var dash model.Dashboard
	if err := c.do(ctx, "dashboard", "GET", pathDashboard, nil, nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
