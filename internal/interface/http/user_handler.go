package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-registry/internal/application"
	"github.com/oksasatya/go-user-registry/internal/domain/entity"
	"github.com/oksasatya/go-user-registry/internal/interface/web"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

const (
	titleList   = "User list"
	titleCreate = "Create user"
	titleUpdate = "Update user"
	titleSearch = "Search Results"

	msgUserNotFound = "User not found"
)

// UserHandler serves the server-rendered user pages.
type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// userForm is what the create and update views display.
type userForm struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Age       string
	Bio       string
}

func formFromUser(u entity.User) userForm {
	return userForm{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       strconv.Itoa(u.Age),
		Bio:       u.Bio,
	}
}

func formFromCandidate(id string, in userapp.Candidate) userForm {
	return userForm{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Age:       in.Age,
		Bio:       in.Bio,
	}
}

// overlay keeps stored values for fields absent from the submitted form.
func overlay(c *gin.Context, stored userForm, submitted userForm) userForm {
	out := stored
	if _, ok := c.GetPostForm(userapp.FieldFirstName); ok {
		out.FirstName = submitted.FirstName
	}
	if _, ok := c.GetPostForm(userapp.FieldLastName); ok {
		out.LastName = submitted.LastName
	}
	if _, ok := c.GetPostForm(userapp.FieldEmail); ok {
		out.Email = submitted.Email
	}
	if _, ok := c.GetPostForm(userapp.FieldAge); ok {
		out.Age = submitted.Age
	}
	if _, ok := c.GetPostForm(userapp.FieldBio); ok {
		out.Bio = submitted.Bio
	}
	return out
}

var invalidForm = validation.Violations{{Field: "payload", Message: "Invalid form submission."}}

func (h *UserHandler) internalError(c *gin.Context, err error) {
	if h.Logger != nil {
		h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("request failed")
	}
	c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// List GET /
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.ViewIndex, gin.H{
		"title": titleList,
		"users": users,
	})
}

// CreateForm GET /new
func (h *UserHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, web.ViewCreateUser, gin.H{
		"title": titleCreate,
	})
}

// Create POST /new
func (h *UserHandler) Create(c *gin.Context) {
	var in userapp.Candidate
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, web.ViewCreateUser, gin.H{
			"title":  titleCreate,
			"errors": invalidForm,
		})
		return
	}

	_, err := h.Svc.Create(c.Request.Context(), in)
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		c.HTML(http.StatusBadRequest, web.ViewCreateUser, gin.H{
			"title":  titleCreate,
			"errors": verr.Violations,
			"user":   formFromCandidate("", verr.Candidate),
		})
	case err != nil:
		h.internalError(c, err)
	default:
		c.Redirect(http.StatusFound, "/")
	}
}

// UpdateForm GET /:id/update
func (h *UserHandler) UpdateForm(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, userapp.ErrUserNotFound) {
		c.String(http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.ViewUpdateUser, gin.H{
		"title": titleUpdate,
		"user":  formFromUser(*u),
	})
}

// Update POST /:id/update
func (h *UserHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	stored, err := h.Svc.Get(ctx, c.Param("id"))
	if errors.Is(err, userapp.ErrUserNotFound) {
		c.String(http.StatusNotFound, msgUserNotFound)
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	var in userapp.Candidate
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, web.ViewUpdateUser, gin.H{
			"title":  titleUpdate,
			"user":   formFromUser(*stored),
			"errors": invalidForm,
		})
		return
	}

	_, err = h.Svc.Update(ctx, stored.ID, in)
	var verr *userapp.ValidationError
	switch {
	case errors.As(err, &verr):
		c.HTML(http.StatusBadRequest, web.ViewUpdateUser, gin.H{
			"title":  titleUpdate,
			"user":   overlay(c, formFromUser(*stored), formFromCandidate(stored.ID, verr.Candidate)),
			"errors": verr.Violations,
		})
	case errors.Is(err, userapp.ErrUserNotFound):
		c.String(http.StatusNotFound, msgUserNotFound)
	case err != nil:
		h.internalError(c, err)
	default:
		c.Redirect(http.StatusFound, "/")
	}
}

// Delete POST /:id/delete
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.internalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Search GET /search?name=&email=
func (h *UserHandler) Search(c *gin.Context) {
	q := userapp.SearchQuery{Name: c.Query("name"), Email: c.Query("email")}
	users, err := h.Svc.Search(c.Request.Context(), q)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.ViewSearch, gin.H{
		"title": titleSearch,
		"users": users,
		"query": q,
	})
}
