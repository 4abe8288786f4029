// Package handler holds what every view handler shares: the template
// payload shape, error rendering and the upstream-401 teardown path.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"

	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/view"
	apperrors "github.com/chronic-risk-manager/community-health-frontend/pkg/errors"
)

// Page is the payload every template receives. View-specific data hangs off
// Data; the rest drives the shared layout (title, sidebar highlight, user).
type Page struct {
	Title    string
	Active   string
	Username string
	// SessionExpiry is the token's exp claim, formatted for the sidebar.
	// Display only; the upstream remains the authority on token validity.
	SessionExpiry string
	Error         string
	Notice        string
	Data          gin.H
}

const sessionExpiryFormat = "Jan 2, 15:04"

// NewPage resolves layout fields from the request path and session.
func NewPage(c *gin.Context, store *session.Store, data gin.H) Page {
	res := view.Resolve(c.Request.URL.Path)
	p := Page{
		Title:  res.Title,
		Active: res.Active.String(),
		Data:   data,
	}
	if user := store.User(); user != nil {
		p.Username = user.Username
	}
	if exp, err := store.TokenExpiry(); err == nil {
		p.SessionExpiry = exp.Format(sessionExpiryFormat)
	}
	return p
}

// HandleUpstreamError deals with a failed upstream call. A session-expired
// error silently clears the session and redirects to login with the expired
// flag; everything else is reported back to the caller for inline display.
// Returns true when the response has been written.
func HandleUpstreamError(c *gin.Context, store *session.Store, err error) bool {
	if err == nil {
		return false
	}
	if apperrors.IsSessionExpired(err) {
		// The upstream client already cleared the store via its hook; Clear
		// here keeps the invariant even if the hook was not wired.
		_ = store.Clear()
		c.Redirect(http.StatusFound, view.Path(view.Login, 0)+"?expired=true")
		c.Abort()
		return true
	}
	return false
}

// ErrorMessage extracts the user-facing message from an error, preferring
// the server-supplied detail.
func ErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// BindingMessage folds form binding failures into one inline message.
// Validation failures name the first offending field; anything else is a
// generic invalid-input message.
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "min", "max", "gte", "lte":
			return fe.Field() + " is out of range"
		case "eqfield":
			return "Passwords don't match"
		case "oneof":
			return fe.Field() + " has an invalid value"
		default:
			return fe.Field() + " is invalid"
		}
	}
	return "Please check your inputs and try again."
}
