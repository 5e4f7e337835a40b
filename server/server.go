package server

import (
	"context"
	"net"
	"net/http"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/ray-remotestate/bistro/handlers"
	"github.com/ray-remotestate/bistro/middlewares"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *mux.Router
	handler http.Handler
	server  *http.Server
}

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

func SetupRoutes(h *handlers.Handler, corsOrigins []string) *Server {
	router := mux.NewRouter()
	router.HandleFunc("/health", h.Health).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/jwt", h.IssueToken).Methods("POST")
	api.HandleFunc("/logout", h.Logout).Methods("POST")
	api.HandleFunc("/menus", h.ListMenus).Methods("GET")
	api.HandleFunc("/menusCount", h.CountMenus).Methods("GET")
	api.HandleFunc("/menus/{id}", h.GetMenu).Methods("GET")
	api.HandleFunc("/reviews", h.ListReviews).Methods("GET")
	api.HandleFunc("/reviews/{email}", h.ListReviewsByEmail).Methods("GET")
	api.HandleFunc("/reviews", h.CreateReview).Methods("POST")
	api.HandleFunc("/users", h.Register).Methods("POST")
	api.HandleFunc("/carts", h.CreateCart).Methods("POST")

	authRoutes := api.NewRoute().Subrouter()
	authRoutes.Use(middlewares.AuthMiddleware(h.Tokens))

	// admin only
	admin := authRoutes.NewRoute().Subrouter()
	admin.Use(middlewares.AdminMiddleware(h.Store))

	admin.HandleFunc("/users", h.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", h.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/menus", h.CreateMenu).Methods("POST")
	admin.HandleFunc("/menus/{id}", h.UpdateMenu).Methods("PATCH")
	admin.HandleFunc("/menus/{id}", h.DeleteMenu).Methods("DELETE")
	admin.HandleFunc("/payments/{id}", h.UpdatePayment).Methods("PATCH")
	admin.HandleFunc("/orders/{email}", h.ListOrders).Methods("GET")
	admin.HandleFunc("/category-sales", h.CategorySales).Methods("GET")
	admin.HandleFunc("/admin-stats", h.AdminStats).Methods("GET")

	// any signed in user, ownership checked in the handler
	authRoutes.HandleFunc("/admin/{email}", h.CheckAdmin).Methods("GET")
	authRoutes.HandleFunc("/users/{email}", h.UpdateUser).Methods("PATCH")
	authRoutes.HandleFunc("/carts", h.ListCarts).Methods("GET")
	authRoutes.HandleFunc("/carts/{id}", h.GetCart).Methods("GET")
	authRoutes.HandleFunc("/carts/{id}", h.DeleteCart).Methods("DELETE")
	authRoutes.HandleFunc("/create-payment-intent", h.CreatePaymentIntent).Methods("POST")
	authRoutes.HandleFunc("/payments/{email}", h.ListPaymentsByEmail).Methods("GET")
	authRoutes.HandleFunc("/payments", h.Checkout).Methods("POST")

	var handler http.Handler = middlewares.LoggingMiddleware(router)
	handler = gorillahandlers.RecoveryHandler(
		gorillahandlers.RecoveryLogger(logrus.StandardLogger()),
		gorillahandlers.PrintRecoveryStack(true),
	)(handler)
	handler = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(corsOrigins),
		gorillahandlers.AllowCredentials(),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)

	return &Server{
		Router:  router,
		handler: handler,
		server: &http.Server{
			Handler:           handler,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
	}
}

// Handler returns the router wrapped in logging, panic recovery and CORS.
func (svr *Server) Handler() http.Handler {
	return svr.handler
}

// Run serves until Shutdown is called. A Shutdown that lands before Run
// makes it return http.ErrServerClosed without serving.
func (svr *Server) Run(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return svr.server.Serve(ln)
}

func (svr *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return svr.server.Shutdown(ctx)
}
