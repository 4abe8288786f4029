package patient

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chronic-risk-manager/community-health-frontend/internal/chart"
	"github.com/chronic-risk-manager/community-health-frontend/internal/handler"
	"github.com/chronic-risk-manager/community-health-frontend/internal/listing"
	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
	"github.com/chronic-risk-manager/community-health-frontend/internal/view"
)

// Config carries display preferences for the patient list.
type Config struct {
	// ReverseList flips the server order of the registry.
	ReverseList bool
}

type Handler struct {
	client *upstream.Client
	store  *session.Store
	cfg    Config
}

func NewHandler(client *upstream.Client, store *session.Store, cfg Config) *Handler {
	return &Handler{client: client, store: store, cfg: cfg}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.List)
		patients.GET("/new", h.CreateForm)
		patients.POST("/new", h.Create)
		patients.GET("/edit/:id", h.EditForm)
		patients.POST("/edit/:id", h.Update)
		patients.GET("/:id", h.Detail)
		patients.GET("/:id/indicators/new", h.IndicatorForm)
		patients.POST("/:id/indicators/new", h.CreateIndicator)
	}
}

// List renders the registry with the filter pipeline: high-risk filter,
// then search, then the configured ordering, then pagination.
func (h *Handler) List(c *gin.Context) {
	patients, err := h.client.ListPatients(c.Request.Context())
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		page := handler.NewPage(c, h.store, gin.H{"RetryPath": c.Request.URL.String()})
		page.Error = handler.ErrorMessage(err)
		c.HTML(http.StatusOK, "patients.tmpl", page)
		return
	}

	search := c.Query("q")
	risk := c.Query("risk")

	filtered := patients
	if risk == "high" {
		filtered = listing.FilterHighRisk(filtered)
	}
	filtered = listing.SearchPatients(filtered, search)
	filtered = listing.SortPatients(filtered, h.cfg.ReverseList)

	pageNum, _ := strconv.Atoi(c.Query("page"))
	rows, meta := listing.Slice(filtered, pageNum)

	type row struct {
		model.Patient
		Risk string
	}
	display := make([]row, len(rows))
	for i, p := range rows {
		display[i] = row{Patient: p, Risk: p.CurrentRisk()}
	}

	c.HTML(http.StatusOK, "patients.tmpl", handler.NewPage(c, h.store, gin.H{
		"Patients": display,
		"Search":   search,
		"Risk":     risk,
		"Page":     meta,
	}))
}

// Detail renders one patient: measurement trends, assessments, follow-ups.
func (h *Handler) Detail(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	patient, err := h.client.GetPatient(c.Request.Context(), id)
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		page := handler.NewPage(c, h.store, gin.H{"RetryPath": c.Request.URL.Path})
		page.Error = handler.ErrorMessage(err)
		c.HTML(http.StatusOK, "patient_detail.tmpl", page)
		return
	}

	indicators := append([]model.Indicator(nil), patient.Indicators...)
	sort.SliceStable(indicators, func(i, j int) bool {
		return indicators[i].RecordedAt.Before(indicators[j].RecordedAt)
	})

	bp := make([]float64, len(indicators))
	glucose := make([]float64, len(indicators))
	for i, ind := range indicators {
		bp[i] = float64(ind.BloodPressureSys)
		glucose[i] = ind.Glucose
	}

	type assessmentRow struct {
		model.Assessment
		Risk string
	}
	assessments := make([]assessmentRow, len(patient.Assessments))
	for i, a := range patient.Assessments {
		assessments[i] = assessmentRow{Assessment: a, Risk: model.NormalizeRisk(a.RiskLevel)}
	}

	now := time.Now()
	type taskRow struct {
		model.FollowUp
		Display string
	}
	tasks := make([]taskRow, len(patient.FollowUps))
	for i, fu := range patient.FollowUps {
		tasks[i] = taskRow{FollowUp: fu, Display: fu.EffectiveStatus(now)}
	}

	c.HTML(http.StatusOK, "patient_detail.tmpl", handler.NewPage(c, h.store, gin.H{
		"Patient":      patient,
		"Risk":         patient.CurrentRisk(),
		"BPCount":      len(bp),
		"GlucoseCount": len(glucose),
		"BPLine":       chart.Polyline(bp),
		"GlucoseLine":  chart.Polyline(glucose),
		"Assessments":  assessments,
		"FollowUps":    tasks,
	}))
}

func (h *Handler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "patient_form.tmpl", handler.NewPage(c, h.store, gin.H{
		"Form": &model.CreatePatientRequest{Gender: "male"},
	}))
}

// Create validates the form, submits it upstream, and returns to the list.
// Failures re-render inline with the entered values intact.
func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBind(&req); err != nil {
		h.formError(c, &req, 0, handler.BindingMessage(err))
		return
	}

	if _, err := h.client.CreatePatient(c.Request.Context(), &req); err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		h.formError(c, &req, 0, handler.ErrorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, view.Path(view.Patients, 0))
}

func (h *Handler) EditForm(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	patient, err := h.client.GetPatient(c.Request.Context(), id)
	if err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		page := handler.NewPage(c, h.store, gin.H{"PatientID": id})
		page.Error = handler.ErrorMessage(err)
		c.HTML(http.StatusOK, "patient_form.tmpl", page)
		return
	}

	c.HTML(http.StatusOK, "patient_form.tmpl", handler.NewPage(c, h.store, gin.H{
		"PatientID": id,
		"Form": &model.CreatePatientRequest{
			Name:        patient.Name,
			Age:         patient.Age,
			Gender:      patient.Gender,
			ContactInfo: patient.ContactInfo,
		},
	}))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBind(&req); err != nil {
		h.formError(c, &req, id, handler.BindingMessage(err))
		return
	}

	if _, err := h.client.UpdatePatient(c.Request.Context(), id, &req); err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		h.formError(c, &req, id, handler.ErrorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, view.Path(view.Patients, 0))
}

func (h *Handler) IndicatorForm(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "indicator_form.tmpl", handler.NewPage(c, h.store, gin.H{
		"PatientID": id,
		"Form":      &model.CreateIndicatorRequest{},
	}))
}

// CreateIndicator appends a measurement and returns to the patient profile.
func (h *Handler) CreateIndicator(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.CreateIndicatorRequest
	if err := c.ShouldBind(&req); err != nil {
		h.indicatorError(c, &req, id, handler.BindingMessage(err))
		return
	}
	req.PatientID = id

	if _, err := h.client.CreateIndicator(c.Request.Context(), &req); err != nil {
		if handler.HandleUpstreamError(c, h.store, err) {
			return
		}
		h.indicatorError(c, &req, id, handler.ErrorMessage(err))
		return
	}
	c.Redirect(http.StatusFound, view.Path(view.PatientDetail, id))
}

func (h *Handler) patientID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// Unrecognized paths fall back to the dashboard, same as the
		// wildcard route.
		c.Redirect(http.StatusFound, view.Path(view.Dashboard, 0))
		c.Abort()
		return 0, false
	}
	return id, true
}

func (h *Handler) formError(c *gin.Context, req *model.CreatePatientRequest, id int64, msg string) {
	data := gin.H{"Form": req}
	if id != 0 {
		data["PatientID"] = id
	}
	page := handler.NewPage(c, h.store, data)
	page.Error = msg
	c.HTML(http.StatusOK, "patient_form.tmpl", page)
}

func (h *Handler) indicatorError(c *gin.Context, req *model.CreateIndicatorRequest, id int64, msg string) {
	page := handler.NewPage(c, h.store, gin.H{"PatientID": id, "Form": req})
	page.Error = msg
	c.HTML(http.StatusOK, "indicator_form.tmpl", page)
}
