package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/oksasatya/go-user-registry/internal/application"
	"github.com/oksasatya/go-user-registry/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-registry/internal/interface/web"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestService() *userapp.Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return userapp.NewService(memory.NewUserRepository(), validation.New(), logger, nil, false)
}

func newPagesRouter(svc *userapp.Service) *gin.Engine {
	h := NewUserHandler(svc, svc.Logger)
	r := gin.New()
	r.SetHTMLTemplate(web.MustLoad())
	r.GET("/", h.List)
	r.GET("/new", h.CreateForm)
	r.POST("/new", h.Create)
	r.GET("/search", h.Search)
	r.GET("/:id/update", h.UpdateForm)
	r.POST("/:id/update", h.Update)
	r.POST("/:id/delete", h.Delete)
	return r
}

func validForm() url.Values {
	return url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"ada@example.com"},
		"age":       {"36"},
		"bio":       {"Analyst"},
	}
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestListEmpty(t *testing.T) {
	r := newPagesRouter(newTestService())

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>User list</title>")
	assert.Contains(t, w.Body.String(), "No users found.")
}

func TestCreateForm(t *testing.T) {
	w := get(newPagesRouter(newTestService()), "/new")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Create user</title>")
	assert.Contains(t, w.Body.String(), `action="/new"`)
}

func TestCreateRedirectsAndLists(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)

	w := postForm(r, "/new", validForm())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "1", users[0].ID)
	assert.Equal(t, 36, users[0].Age)

	body := get(r, "/").Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, `href="/1/update"`)
}

func TestCreateInvalidReRendersWithAllErrors(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)

	form := url.Values{
		"firstName": {"Ada1"},
		"lastName":  {"ThisNameIsTooLong"},
		"email":     {"not-an-email"},
		"age":       {"17"},
		"bio":       {strings.Repeat("b", 201)},
	}
	w := postForm(r, "/new", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "<title>Create user</title>")
	assert.Contains(t, body, "First name must only contain letters.")
	assert.Contains(t, body, "Last name must be between 1 and 10 characters.")
	assert.Contains(t, body, "Email must be a valid email address.")
	assert.Contains(t, body, "Age must be between 18 and 200.")
	assert.Contains(t, body, "Bio must be less than 200 characters.")
	// submitted values are echoed back
	assert.Contains(t, body, `value="Ada1"`)
	assert.Contains(t, body, `value="not-an-email"`)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)

	form := validForm()
	form.Set("firstName", "Other")
	form.Set("email", "ADA@example.com")
	w := postForm(r, "/new", form)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already in use.")

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateFormNotFound(t *testing.T) {
	w := get(newPagesRouter(newTestService()), "/99/update")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", w.Body.String())
}

func TestUpdateFormPrefilled(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)

	w := get(r, "/1/update")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Update user</title>")
	assert.Contains(t, body, `action="/1/update"`)
	assert.Contains(t, body, `value="Lovelace"`)
	assert.Contains(t, body, `value="36"`)
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)

	form := validForm()
	form.Set("lastName", "Byron")
	form.Set("age", "37")
	w := postForm(r, "/1/update", form)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	u, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Byron", u.LastName)
	assert.Equal(t, 37, u.Age)
}

func TestUpdateNotFound(t *testing.T) {
	w := postForm(newPagesRouter(newTestService()), "/5/update", validForm())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", w.Body.String())
}

func TestUpdateInvalidKeepsStoredValues(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)

	w := postForm(r, "/1/update", url.Values{"age": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Age must be between 18 and 200.")
	assert.Contains(t, body, `value="abc"`)
	assert.Contains(t, body, `value="Lovelace"`)

	u, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 36, u.Age)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)

	w := postForm(r, "/1/delete", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	_, err := svc.Get(context.Background(), "1")
	assert.ErrorIs(t, err, userapp.ErrUserNotFound)

	// unknown IDs still redirect
	w = postForm(r, "/1/delete", nil)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSearch(t *testing.T) {
	svc := newTestService()
	r := newPagesRouter(svc)
	require.Equal(t, http.StatusFound, postForm(r, "/new", validForm()).Code)
	other := validForm()
	other.Set("firstName", "Alan")
	other.Set("lastName", "Turing")
	other.Set("email", "alan@example.org")
	require.Equal(t, http.StatusFound, postForm(r, "/new", other).Code)

	w := get(r, "/search?name=LOVE")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Search Results</title>")
	assert.Contains(t, body, "Ada Lovelace")
	assert.NotContains(t, body, "Alan Turing")
	assert.Contains(t, body, `value="LOVE"`)

	body = get(r, "/search?email=example.org").Body.String()
	assert.Contains(t, body, "Alan Turing")
	assert.NotContains(t, body, "Ada Lovelace")

	body = get(r, "/search?name=ada&email=example.org").Body.String()
	assert.Contains(t, body, "No users found.")

	body = get(r, "/search").Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Alan Turing")
}
