package rest

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ai-interview-coach-backend/internal/service"
	"ai-interview-coach-backend/internal/transport/rest/handler"
	"ai-interview-coach-backend/internal/transport/rest/middleware"
)

// Container holds all dependencies for the router
type Container struct {
	Logger         *zap.Logger
	AuthService    *service.AuthService
	InterviewSvc   *service.InterviewService
	UserSvc        *service.UserService
	AllowedOrigins []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	interviewHandler := handler.NewInterviewHandler(c.InterviewSvc)
	userHandler := handler.NewUserHandler(c.UserSvc)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(c.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	authed := r.NewRoute().Subrouter()
	authed.Use(authMW.RequireUser)

	authed.HandleFunc("/interview/start", interviewHandler.Start).Methods("POST", "OPTIONS")
	authed.HandleFunc("/interview/answer", interviewHandler.Answer).Methods("POST", "OPTIONS")
	authed.HandleFunc("/interview/end", interviewHandler.End).Methods("POST", "OPTIONS")
	authed.HandleFunc("/user/profile", userHandler.Profile).Methods("GET", "OPTIONS")

	return r
}
