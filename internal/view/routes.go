package view

import (
	"strconv"
	"strings"
)

// Name identifies an abstract view independent of its URL.
type Name string

const (
	Dashboard     Name = "dashboard"
	Patients      Name = "patients"
	CreatePatient Name = "create-patient"
	EditPatient   Name = "edit-patient"
	PatientDetail Name = "patient-detail"
	AddIndicator  Name = "add-indicator"
	FollowUps     Name = "follow-ups"
	Login         Name = "login"
	Register      Name = "register"
)

// Route binds a view to its URL pattern. Pattern uses gin-style :id params.
// Active names the view highlighted in the sidebar when this route matches;
// the indicator form highlights patient-detail, not a state of its own.
type Route struct {
	View    Name
	Pattern string
	Title   string
	Active  Name
	Public  bool
}

// Table is the single declarative routing source. Forward (view to path) and
// reverse (path to view/title) mapping both read from it so they cannot
// drift apart. Order matters for reverse matching: literal segments are
// listed before the parameterized catch-alls they would otherwise shadow.
var Table = []Route{
	{View: Dashboard, Pattern: "/", Title: "Dashboard", Active: Dashboard},
	{View: Patients, Pattern: "/patients", Title: "Patients", Active: Patients},
	{View: CreatePatient, Pattern: "/patients/new", Title: "Patients", Active: Patients},
	{View: EditPatient, Pattern: "/patients/edit/:id", Title: "Patients", Active: Patients},
	{View: AddIndicator, Pattern: "/patients/:id/indicators/new", Title: "Patient Profile", Active: PatientDetail},
	{View: PatientDetail, Pattern: "/patients/:id", Title: "Patient Profile", Active: PatientDetail},
	{View: FollowUps, Pattern: "/followup", Title: "Follow-ups", Active: FollowUps},
	{View: Login, Pattern: "/login", Title: "Sign In", Active: Login, Public: true},
	{View: Register, Pattern: "/register", Title: "Create Account", Active: Register, Public: true},
}

// Path resolves a view name plus optional entity id to a concrete URL.
// Unknown views resolve to the dashboard, mirroring the wildcard route.
func Path(view Name, id int64) string {
	for _, r := range Table {
		if r.View != view {
			continue
		}
		if !strings.Contains(r.Pattern, ":id") {
			return r.Pattern
		}
		return strings.Replace(r.Pattern, ":id", strconv.FormatInt(id, 10), 1)
	}
	return "/"
}

// Resolution describes what the current URL renders.
type Resolution struct {
	View   Name
	Active Name
	Title  string
	ID     int64
}

// Resolve derives the view, sidebar active state, page title and entity id
// from a URL path. Unrecognized paths fall back to the dashboard.
func Resolve(path string) Resolution {
	path = normalize(path)
	for _, r := range Table {
		if id, ok := match(r.Pattern, path); ok {
			return Resolution{View: r.View, Active: r.Active, Title: r.Title, ID: id}
		}
	}
	return Resolution{View: Dashboard, Active: Dashboard, Title: "Dashboard"}
}

// IsPublic reports whether the path is reachable without a session.
func IsPublic(path string) bool {
	res := Resolve(path)
	for _, r := range Table {
		if r.View == res.View {
			return r.Public
		}
	}
	return false
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// match compares a pattern against a concrete path segment by segment,
// extracting the :id parameter. A pattern with :id only matches when the
// segment parses as an integer, so /patients/new never collides with
// /patients/:id regardless of table order.
func match(pattern, path string) (int64, bool) {
	if pattern == path {
		return 0, true
	}
	pSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	uSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(pSegs) != len(uSegs) || pattern == "/" {
		return 0, false
	}
	var id int64
	for i, seg := range pSegs {
		if seg == ":id" {
			parsed, err := strconv.ParseInt(uSegs[i], 10, 64)
			if err != nil {
				return 0, false
			}
			id = parsed
			continue
		}
		if seg != uSegs[i] {
			return 0, false
		}
	}
	return id, true
}

func (n Name) String() string {
	return string(n)
}
