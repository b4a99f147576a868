package forms

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChecker is a mock implementation of the UniquenessChecker interface.
type mockChecker struct {
	takenUsernames map[string]bool
	takenEmails    map[string]bool
}

func (m *mockChecker) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return m.takenUsernames[username], nil
}

func (m *mockChecker) EmailTaken(ctx context.Context, email string) (bool, error) {
	return m.takenEmails[email], nil
}

func TestLoginForm_Validate(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		form := LoginForm{Username: "alice", Password: "pw123"}

		assert.True(t, form.Validate().Valid())
	})

	t.Run("missing fields are reported per field", func(t *testing.T) {
		form := LoginForm{}

		errs := form.Validate()

		assert.False(t, errs.Valid())
		assert.Contains(t, errs, "username")
		assert.Contains(t, errs, "password")
	})
}

func TestRegistrationForm_Validate(t *testing.T) {
	checker := &mockChecker{
		takenUsernames: map[string]bool{"taken": true},
		takenEmails:    map[string]bool{"taken@x.com": true},
	}

	t.Run("valid submission", func(t *testing.T) {
		form := RegistrationForm{
			Username: "alice", Email: "a@x.com",
			Password: "pw123", Password2: "pw123",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.True(t, errs.Valid())
	})

	t.Run("invalid email shape", func(t *testing.T) {
		form := RegistrationForm{
			Username: "alice", Email: "not-an-email",
			Password: "pw123", Password2: "pw123",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "email")
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		form := RegistrationForm{
			Username: "alice", Email: "a@x.com",
			Password: "pw123", Password2: "other",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "password2")
	})

	t.Run("existing username rejected", func(t *testing.T) {
		form := RegistrationForm{
			Username: "taken", Email: "a@x.com",
			Password: "pw123", Password2: "pw123",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "username")
	})

	t.Run("existing email rejected", func(t *testing.T) {
		form := RegistrationForm{
			Username: "alice", Email: "taken@x.com",
			Password: "pw123", Password2: "pw123",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "email")
	})

	t.Run("uniqueness is not checked until shapes pass", func(t *testing.T) {
		form := RegistrationForm{Username: "taken"}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "email")
		assert.NotContains(t, errs, "username")
	})
}

func TestEditProfileForm_Validate(t *testing.T) {
	checker := &mockChecker{takenUsernames: map[string]bool{"alice": true, "bob": true}}

	t.Run("keeping own username is not a collision", func(t *testing.T) {
		form := EditProfileForm{Username: "alice", OriginalUsername: "alice"}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.True(t, errs.Valid())
	})

	t.Run("renaming onto another user is rejected", func(t *testing.T) {
		form := EditProfileForm{Username: "bob", OriginalUsername: "alice"}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "username")
	})

	t.Run("about me bounded at 140", func(t *testing.T) {
		form := EditProfileForm{
			Username:         "carol",
			AboutMe:          strings.Repeat("x", 141),
			OriginalUsername: "alice",
		}

		errs, err := form.Validate(context.Background(), checker)

		require.NoError(t, err)
		assert.Contains(t, errs, "about_me")
	})
}

func TestUserPostForm_Validate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		form := UserPostForm{Body: "hello"}

		assert.True(t, form.Validate().Valid())
	})

	t.Run("empty body rejected", func(t *testing.T) {
		form := UserPostForm{}

		assert.Contains(t, form.Validate(), "body")
	})

	t.Run("body over 140 rejected", func(t *testing.T) {
		form := UserPostForm{Body: strings.Repeat("x", 141)}

		assert.Contains(t, form.Validate(), "body")
	})

	t.Run("body at exactly 140 accepted", func(t *testing.T) {
		form := UserPostForm{Body: strings.Repeat("x", 140)}

		assert.True(t, form.Validate().Valid())
	})
}
