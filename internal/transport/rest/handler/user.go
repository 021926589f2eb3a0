package handler

import (
	"net/http"

	"ai-interview-coach-backend/internal/service"
	"ai-interview-coach-backend/internal/transport/rest/middleware"
)

// UserHandler handles user profile endpoints.
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Profile handles GET /user/profile
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.userSvc.Profile(
		ctx,
		middleware.GetUserUID(ctx),
		middleware.GetUserEmail(ctx),
		middleware.GetUserName(ctx),
	)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
