package upstream

import (
	"context"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
)

// ListPatients returns the registry in server order.
func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	if err := c.do(ctx, "list_patients", "GET", pathPatients, nil, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient fetches one patient with indicators, assessments and follow-ups.
func (c *Client) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	if err := c.do(ctx, "get_patient", "GET", pathPatient(id), nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	var patient model.Patient
	if err := c.do(ctx, "create_patient", "POST", pathPatients, nil, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (c *Client) UpdatePatient(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	var patient model.Patient
	if err := c.do(ctx, "update_patient", "PUT", pathPatient(id), nil, req, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreateIndicator appends a measurement. Indicators are immutable once
// created; there is no update or delete.
func (c *Client) CreateIndicator(ctx context.Context, req *model.CreateIndicatorRequest) (*model.Indicator, error) {
	var indicator model.Indicator
	if err := c.do(ctx, "create_indicator", "POST", pathIndicators, nil, req, &indicator); err != nil {
		return nil, err
	}
	return &indicator, nil
}
