package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	u := &User{Email: "doc@example.com"}
	require.NoError(t, u.SetPassword("correct horse battery staple"))

	assert.NotEqual(t, "correct horse battery staple", u.Password, "password must be stored hashed")
	assert.True(t, u.CheckPassword("correct horse battery staple"))
	assert.False(t, u.CheckPassword("wrong password"))
	assert.False(t, u.CheckPassword(""))
}

func TestUserJSONOmitsPassword(t *testing.T) {
	u := &User{Email: "doc@example.com"}
	require.NoError(t, u.SetPassword("secret-enough"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), u.Password)
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Asha", LastName: "Rao"}
	assert.Equal(t, "Asha Rao", u.FullName())
}
