package web

import (
	"bytes"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-registry/internal/domain/entity"
	"github.com/oksasatya/go-user-registry/pkg/validation"
)

func render(t *testing.T, name string, data gin.H) string {
	t.Helper()
	tpl, err := Load()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestIndexListsUsers(t *testing.T) {
	out := render(t, ViewIndex, gin.H{
		"title": "User list",
		"users": []entity.User{{ID: "7", FirstName: "Anna", LastName: "Lee", Email: "anna@x.com", Age: 30}},
	})
	assert.Contains(t, out, "<title>User list</title>")
	assert.Contains(t, out, "Anna Lee")
	assert.Contains(t, out, `href="/7/update"`)
	assert.Contains(t, out, `action="/7/delete"`)
}

func TestIndexWithoutUsers(t *testing.T) {
	out := render(t, ViewIndex, gin.H{"title": "User list", "users": []entity.User{}})
	assert.Contains(t, out, "No users found.")
}

func TestCreateUserShowsErrorsAndEchoesValues(t *testing.T) {
	type form struct{ ID, FirstName, LastName, Email, Age, Bio string }
	out := render(t, ViewCreateUser, gin.H{
		"title":  "Create user",
		"user":   form{FirstName: "Jo<b>", Age: "17"},
		"errors": validation.Violations{{Field: "age", Message: "Age must be between 18 and 200."}},
	})
	assert.Contains(t, out, "Age must be between 18 and 200.")
	assert.Contains(t, out, `value="Jo&lt;b&gt;"`)
	assert.Contains(t, out, `value="17"`)
}

func TestCreateUserEmptyForm(t *testing.T) {
	out := render(t, ViewCreateUser, gin.H{"title": "Create user"})
	assert.Contains(t, out, `action="/new"`)
	assert.NotContains(t, out, `class="errors"`)
}

func TestUpdateUserPostsToUserPath(t *testing.T) {
	out := render(t, ViewUpdateUser, gin.H{
		"title": "Update user",
		"user":  entity.User{ID: "3", FirstName: "Bob", LastName: "Smith", Email: "bob@x.com", Age: 50},
	})
	assert.Contains(t, out, `action="/3/update"`)
	assert.Contains(t, out, `value="Bob"`)
	assert.Contains(t, out, `value="50"`)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "-", defaultFn("-", ""))
	assert.Equal(t, "-", defaultFn("-", "  "))
	assert.Equal(t, "x", defaultFn("-", "x"))
	assert.Equal(t, "-", defaultFn("-", nil))
	assert.Equal(t, "-", defaultFn("-", 0))
	assert.Equal(t, 3, defaultFn("-", 3))
}
