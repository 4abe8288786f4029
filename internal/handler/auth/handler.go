package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chronic-risk-manager/community-health-frontend/internal/handler"
	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
	"github.com/chronic-risk-manager/community-health-frontend/internal/session"
	"github.com/chronic-risk-manager/community-health-frontend/internal/upstream"
	"github.com/chronic-risk-manager/community-health-frontend/internal/view"
)

type Handler struct {
	client *upstream.Client
	store  *session.Store
}

func NewHandler(client *upstream.Client, store *session.Store) *Handler {
	return &Handler{client: client, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)
}

func (h *Handler) LoginForm(c *gin.Context) {
	page := handler.NewPage(c, h.store, gin.H{"Username": ""})
	if c.Query("expired") == "true" {
		page.Notice = "Your session has expired. Please sign in again."
	}
	c.HTML(http.StatusOK, "login.tmpl", page)
}

// Login performs the password grant, then the dependent current-user fetch,
// and only then persists the session. Failures re-render the form with the
// entered username intact.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginError(c, req.Username, handler.BindingMessage(err))
		return
	}

	token, err := h.client.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.loginError(c, req.Username, handler.ErrorMessage(err))
		return
	}
	if token.AccessToken == "" {
		h.loginError(c, req.Username, "Token not received from server.")
		return
	}

	// The profile fetch needs the token before the session is final.
	if err := h.store.Set(token.AccessToken, nil); err != nil {
		h.loginError(c, req.Username, "Failed to save session.")
		return
	}
	user, err := h.client.CurrentUser(c.Request.Context())
	if err != nil {
		_ = h.store.Clear()
		h.loginError(c, req.Username, handler.ErrorMessage(err))
		return
	}
	if err := h.store.Set(token.AccessToken, user); err != nil {
		h.loginError(c, req.Username, "Failed to save session.")
		return
	}

	log.Info().Str("username", user.Username).Msg("user logged in")
	c.Redirect(http.StatusFound, view.Path(view.Dashboard, 0))
}

func (h *Handler) loginError(c *gin.Context, username, msg string) {
	page := handler.NewPage(c, h.store, gin.H{"Username": username})
	page.Error = msg
	c.HTML(http.StatusOK, "login.tmpl", page)
}

func (h *Handler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", handler.NewPage(c, h.store, gin.H{
		"Username": "",
		"FullName": "",
	}))
}

// Register creates the account upstream and sends the user to the login
// form. The confirm-password check runs before any network call.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.registerError(c, &req, handler.BindingMessage(err))
		return
	}

	if _, err := h.client.Register(c.Request.Context(), &req); err != nil {
		h.registerError(c, &req, handler.ErrorMessage(err))
		return
	}

	c.Redirect(http.StatusFound, view.Path(view.Login, 0))
}

func (h *Handler) registerError(c *gin.Context, req *model.RegisterRequest, msg string) {
	page := handler.NewPage(c, h.store, gin.H{
		"Username": req.Username,
		"FullName": req.FullName,
	})
	page.Error = msg
	c.HTML(http.StatusOK, "register.tmpl", page)
}

// Logout clears the stored session and returns to login.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session")
	}
	c.Redirect(http.StatusFound, view.Path(view.Login, 0))
}
