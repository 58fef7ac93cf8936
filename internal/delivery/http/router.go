package http

import (
	"net/http"

	"uplift-backend/internal/delivery/http/handler"
	"uplift-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Doctor      *handler.DoctorHandler
	Appointment *handler.AppointmentHandler
	Payment     *handler.PaymentHandler
	Session     *handler.SessionHandler
	Article     *handler.ArticleHandler
	Chatbot     *handler.ChatbotHandler
	AuditLog    *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
	gatherer       prometheus.Gatherer
	log            *logrus.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	gatherer prometheus.Gatherer,
	log *logrus.Logger,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
		gatherer:       gatherer,
		log:            log,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)

	// Directory, sessions, articles and chatbot (public)
	api.HandleFunc("/doctors", h.Doctor.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/sessions", h.Session.ListSessions).Methods(http.MethodGet)
	api.HandleFunc("/articles", h.Article.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/articles/by/{username}", h.Article.ListArticlesByUsername).Methods(http.MethodGet)
	api.HandleFunc("/chatbot", h.Chatbot.Ask).Methods(http.MethodPost)

	// Article writes share paths with the public reads, so they are wrapped per route
	api.Handle("/articles", r.protected(h.Article.CreateArticle)).Methods(http.MethodPost)
	api.Handle("/articles/{id}", r.protected(h.Article.UpdateArticle)).Methods(http.MethodPut)
	api.Handle("/articles/{id}", r.protected(h.Article.DeleteArticle)).Methods(http.MethodDelete)
	api.Handle("/articles/{id}/reviews", r.protected(h.Article.AddReview)).Methods(http.MethodPost)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("/availability", h.Appointment.CheckAvailability).Methods(http.MethodGet)
	appointments.HandleFunc("", h.Appointment.BookAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", h.Appointment.ListMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", h.Appointment.RescheduleAppointment).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", h.Appointment.CancelAppointment).Methods(http.MethodDelete)

	// Payment routes (protected)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.HandleFunc("/orders", h.Payment.CreateOrder).Methods(http.MethodPost)

	// Doctor routes (protected - doctor only)
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/profile", h.Doctor.GetMyProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/profile", h.Doctor.UpdateMyProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/appointments", h.Appointment.ListDoctorAppointments).Methods(http.MethodGet)
	doctor.HandleFunc("/sessions", h.Session.CreateSession).Methods(http.MethodPost)
	doctor.HandleFunc("/sessions/{id}", h.Session.UpdateSession).Methods(http.MethodPut)
	doctor.HandleFunc("/sessions/{id}", h.Session.DeleteSession).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", h.Auth.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/appointments", h.Appointment.ListAllAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Add CORS and request logging middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(middleware.RequestLogger(r.log))

	return r.router
}

func (r *Router) protected(fn http.HandlerFunc) http.Handler {
	return r.authMiddleware.Authenticate(fn)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
