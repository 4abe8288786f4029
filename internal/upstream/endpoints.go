package upstream

import "fmt"

// Remote API paths, kept in one place so handlers never build URLs.
const (
	pathPatients   = "/patients/"
	pathIndicators = "/indicators/"
	pathLogin      = "/token"
	pathRegister   = "/users/"
	pathMe         = "/users/me"
	pathDashboard  = "/dashboard/"
	pathFollowUps  = "/followups"
)

func pathPatient(id int64) string {
	return fmt.Sprintf("/patients/%d/", id)
}

func pathFollowUp(id int64) string {
	return fmt.Sprintf("/followups/%d", id)
}
