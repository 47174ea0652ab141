package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
)

func AdminAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
			if !ok || user == nil {
				http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("You must log in to access the admin panel."), http.StatusFound)
				return
			}

			if user.Role != models.RoleAdmin {
				log.Printf("AdminAuthMiddleware: user %s (%s) attempted to access the admin panel without the admin role.", user.ID, user.Email)
				http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("You do not have permission to access this page."), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
