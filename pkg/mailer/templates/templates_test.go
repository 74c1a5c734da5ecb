package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-accounts/config"
)

func TestRender(t *testing.T) {
	cfg := &config.Config{AppName: "accounts", SupportURL: "https://support.example.com"}
	at := time.Date(2024, 1, 3, 13, 31, 0, 0, time.UTC)

	t.Run("user created", func(t *testing.T) {
		data := NewData(UserCreated, cfg, "User", "user@email.com", WithTime(at))
		subject, text, html, err := Render(UserCreated, data)
		require.NoError(t, err)
		assert.Equal(t, "Welcome to accounts", subject)
		assert.Contains(t, text, "Hi User,")
		assert.Contains(t, text, "user@email.com")
		assert.Contains(t, text, "03 January 2024, 13:31 UTC")
		assert.Contains(t, html, "https://support.example.com")
	})

	t.Run("password changed", func(t *testing.T) {
		data := NewData(PasswordChanged, cfg, "User", "user@email.com")
		subject, text, html, err := Render(PasswordChanged, data)
		require.NoError(t, err)
		assert.Equal(t, "Your password was changed", subject)
		assert.Contains(t, text, "The password for user@email.com was changed.")
		assert.Contains(t, html, "<strong>user@email.com</strong>")
	})

	t.Run("html escapes names", func(t *testing.T) {
		data := NewData(UserCreated, cfg, "<b>x</b>", "user@email.com")
		_, _, html, err := Render(UserCreated, data)
		require.NoError(t, err)
		assert.NotContains(t, html, "<b>x</b>")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := Render("login_otp", map[string]any{})
		assert.Error(t, err)
	})
}

func TestNewData_WithoutConfig(t *testing.T) {
	data := NewData(PasswordChanged, nil, "User", "user@email.com")
	assert.Equal(t, PasswordChanged, data["Type"])
	assert.Equal(t, "user@email.com", data["RecipientEmail"])
}
