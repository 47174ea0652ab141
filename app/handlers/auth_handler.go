package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
}

func NewAuthHandler(render *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{render: render, userRepo: userRepo, sessionStore: sessionStore}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User); ok && user != nil && user.Role == models.RoleAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	datas := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Admin Login",
		"IsAdminPage": true,
	})
	_ = h.render.HTML(w, http.StatusOK, "admin_login", datas)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Failed to read form data."), http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Email and password are required."), http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("AuthHandler.LoginPost: lookup failed for %s: %v", email, err)
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Something went wrong. Try again."), http.StatusSeeOther)
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Invalid email or password."), http.StatusSeeOther)
		return
	}
	if user.Role != models.RoleAdmin {
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("This account has no admin access."), http.StatusSeeOther)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.LoginPost: failed to write session: %v", err)
		http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Failed to start your session."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearUserID(w, r); err != nil {
		log.Printf("AuthHandler.Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/admin/login?status=success&message="+url.QueryEscape("You have been logged out."), http.StatusSeeOther)
}
