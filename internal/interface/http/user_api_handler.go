package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-registry/internal/application"
	"github.com/oksasatya/go-user-registry/pkg/response"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

// UserAPIHandler exposes the same user operations as JSON.
type UserAPIHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserAPIHandler(svc *userapp.Service, logger *logrus.Logger) *UserAPIHandler {
	return &UserAPIHandler{Svc: svc, Logger: logger}
}

type userRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Age       int    `json:"age"`
	Bio       string `json:"bio"`
}

func (r userRequest) candidate() userapp.Candidate {
	return userapp.Candidate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Age:       strconv.Itoa(r.Age),
		Bio:       r.Bio,
	}
}

func (h *UserAPIHandler) fail(c *gin.Context, err error) {
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Fail(c, http.StatusBadRequest, "validation failed", verr.Violations)
	case errors.Is(err, userapp.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, "user not found", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("api request failed")
		}
		response.Fail(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *UserAPIHandler) bind(c *gin.Context) (userRequest, bool) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return req, false
	}
	return req, true
}

// List GET /api/users
func (h *UserAPIHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
}

// Search GET /api/users/search?name=&email=
func (h *UserAPIHandler) Search(c *gin.Context) {
	var q userapp.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	users, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, users, "search results", map[string]any{"count": len(users), "query": q})
}

// Get GET /api/users/:id
func (h *UserAPIHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, u, "user", nil)
}

// Create POST /api/users
func (h *UserAPIHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req.candidate())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, u, "user created", nil)
}

// Update PUT /api/users/:id
func (h *UserAPIHandler) Update(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.candidate())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, u, "user updated", nil)
}

// Delete DELETE /api/users/:id
func (h *UserAPIHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// Health GET /healthz
func Health(c *gin.Context) {
	response.OK(c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
}
