package handlers

import (
	"net/http"
	"strings"

	"noticeboard/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	log *zap.Logger
}

func NewAuthHandler(log *zap.Logger) *AuthHandler {
	return &AuthHandler{log: log}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log in", "Email": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if _, err := sessionStore(c).Login(c.Request.Context(), email, password); err != nil {
		Render(c, apperr.StatusCode(err), "auth/login.html", gin.H{
			"Title": "Log in",
			"Email": email,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Sign up", "Name": "", "Email": ""})
}

func (h *AuthHandler) Register(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if c.PostForm("confirm_password") != password {
		h.log.Debug("signup rejected: password mismatch", zap.String("email", email))
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{
			"Title": "Sign up",
			"Error": "Passwords do not match",
			"Name":  name,
			"Email": email,
		})
		return
	}

	if _, err := sessionStore(c).Signup(c.Request.Context(), name, email, password); err != nil {
		Render(c, apperr.StatusCode(err), "auth/register.html", gin.H{
			"Title": "Sign up",
			"Name":  name,
			"Email": email,
		})
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sessionStore(c).Logout(c.Request.Context())
	c.Redirect(http.StatusFound, "/")
}
