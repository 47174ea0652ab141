package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-storefront/app/configs"
	"github.com/Rakhulsr/go-storefront/app/handlers"
	adminhandlers "github.com/Rakhulsr/go-storefront/app/handlers/admin"
	"github.com/Rakhulsr/go-storefront/app/middlewares"
	"github.com/Rakhulsr/go-storefront/app/repositories"
	"github.com/Rakhulsr/go-storefront/app/services"
	"github.com/Rakhulsr/go-storefront/app/utils/renderer"
	"github.com/Rakhulsr/go-storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services, and handlers onto a gorilla/mux
// router with the shared middleware chain.
func NewRouter(db *gorm.DB, sessionKeys *configs.SessionKeys) (*mux.Router, error) {
	env := configs.LoadENV

	render := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)

	storage := services.NewFileStorage(env.StorageRoot, env.AppURL+"/storage")
	cartSvc := services.NewCartService(productRepo, env.ShippingCost)
	checkoutSvc := services.NewCheckoutService(db, productRepo, orderRepo, cartSvc, validate, &configs.MidtransSnapClient, env.AppURL)
	paymentSvc := services.NewPaymentService(configs.GetMidtransCoreAPIClient())
	mailer := services.NewMailer(services.MailerConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	homeHandler := handlers.NewHomeHandler(render, categoryRepo, productRepo)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, render)
	cartHandler := handlers.NewCartHandler(render, cartSvc, sessionStore)
	checkoutHandler := handlers.NewCheckoutHandler(render, cartSvc, checkoutSvc, paymentSvc, orderRepo, sessionStore, mailer)
	sitemapHandler := handlers.NewSitemapHandler(productRepo, env.AppURL)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore)
	adminHandler := adminhandlers.NewAdminHandler(render, validate, productRepo, categoryRepo, orderRepo, storage)

	router := mux.NewRouter()
	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.UserContextMiddleware(sessionStore, userRepo))
	router.Use(middlewares.CartCountMiddleware(sessionStore))

	// The gateway webhook carries no CSRF token; everything else is protected.
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/payments/notification" {
				r = csrf.UnsafeSkipCheck(r)
			}
			next.ServeHTTP(w, r)
		})
	})
	router.Use(csrf.Protect(
		sessionKeys.AuthKey,
		csrf.Secure(env.AppEnv == "production"),
		csrf.Path("/"),
	))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/products", productHandler.Products).Methods("GET")
	router.HandleFunc("/products/random", productHandler.RandomProducts).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.ProductDetail).Methods("GET")

	router.HandleFunc("/carts", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/carts/add", cartHandler.AddItemCart).Methods("POST")
	router.HandleFunc("/carts/update", cartHandler.UpdateCartItem).Methods("POST")
	router.HandleFunc("/carts/delete", cartHandler.DeleteCartItem).Methods("POST")
	router.HandleFunc("/carts/count", cartHandler.GetCartCount).Methods("GET")

	router.HandleFunc("/checkout", checkoutHandler.CheckoutPage).Methods("GET")
	router.HandleFunc("/checkout", checkoutHandler.CheckoutPost).Methods("POST")
	router.HandleFunc("/checkout/finish", checkoutHandler.CheckoutFinish).Methods("GET")
	router.HandleFunc("/checkout/success", checkoutHandler.CheckoutSuccess).Methods("GET")
	router.HandleFunc("/checkout/pending", checkoutHandler.CheckoutPending).Methods("GET")
	router.HandleFunc("/payments/notification", checkoutHandler.PaymentNotification).Methods("POST")

	router.HandleFunc("/sitemap.xml", sitemapHandler.Sitemap).Methods("GET")

	router.HandleFunc("/admin/login", authHandler.LoginPage).Methods("GET")
	router.HandleFunc("/admin/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/admin/logout", authHandler.Logout).Methods("POST")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware())
	adminRouter.HandleFunc("", adminHandler.Dashboard).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.Products).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/edit", adminHandler.EditProductPage).Methods("GET")
	// Multipart bodies cannot carry the _method override, so the edit form
	// posts directly.
	adminRouter.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("POST", "PUT")
	adminRouter.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")
	adminRouter.HandleFunc("/products/{id}/images", adminHandler.UploadImages).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/images/{imageID}", adminHandler.DeleteImage).Methods("DELETE")
	adminRouter.HandleFunc("/categories", adminHandler.Categories).Methods("GET")
	adminRouter.HandleFunc("/categories", adminHandler.CreateCategory).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.UpdateCategory).Methods("PUT")
	adminRouter.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods("DELETE")
	adminRouter.HandleFunc("/orders", adminHandler.Orders).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.OrderDetail).Methods("GET")
	adminRouter.HandleFunc("/orders/{id}", adminHandler.DeleteOrder).Methods("DELETE")

	// Uploaded blobs are served straight off disk under the same /o/ URL
	// shape their download URLs use.
	fileServer := http.StripPrefix("/storage/o/", http.FileServer(http.Dir(env.StorageRoot)))
	router.PathPrefix("/storage/o/").Handler(fileServer).Methods("GET")

	staticServer := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	router.PathPrefix("/static/").Handler(staticServer).Methods("GET")

	return router, nil
}
