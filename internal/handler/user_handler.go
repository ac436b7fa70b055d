package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"discussum/internal/model"

	"github.com/gin-gonic/gin"
)

type UserStore interface {
	CreateUser(user *model.User) (bool, error)
	GetUserByExternalID(userID string) (*model.User, error)
}

type UserHandler struct {
	repository UserStore
}

func NewUserHandler(repository UserStore) *UserHandler {
	return &UserHandler{repository: repository}
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		UserID:    u.UserID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Name == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and userId are required"})
		return
	}

	user := model.User{Name: req.Name, UserID: req.UserID}
	created, err := h.repository.CreateUser(&user)
	if err != nil {
		slog.Error("error creating user", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, toUserResponse(user))
		return
	}

	existing, err := h.repository.GetUserByExternalID(req.UserID)
	if err != nil {
		slog.Error("error fetching existing user", "error", err, "user_id", req.UserID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		return
	}

	if existing == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*existing))
}
