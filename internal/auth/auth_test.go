package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = User{ID: "123", Name: "William", Email: "william@gofinances.dev"}

func TestStaticProvider_SignIn(t *testing.T) {
	type testCase struct {
		name       string
		credential string
		input      string
		user       User
		wantErr    bool
	}

	tests := []testCase{
		{name: "OpenAccess", input: "anything", user: testUser},
		{name: "MatchingCredential", credential: "s3cret", input: "s3cret", user: testUser},
		{name: "WrongCredential", credential: "s3cret", input: "nope", user: testUser, wantErr: true},
		{name: "NoConfiguredUser", input: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStaticProvider(tt.user, tt.credential)

			got, err := p.SignIn(context.Background(), tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrSignIn)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.user, *got)
		})
	}
}

func TestStaticProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticProvider(testUser, "").SignIn(ctx, "")
	assert.ErrorIs(t, err, ErrSignIn)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens("secret", "gofinances", time.Hour)

	raw, err := tokens.Issue(testUser)
	require.NoError(t, err)

	got, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, testUser, *got)
}

func TestTokens_Rejects(t *testing.T) {
	issued := NewTokens("secret", "gofinances", time.Hour)

	raw, err := issued.Issue(testUser)
	require.NoError(t, err)

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := NewTokens("other", "gofinances", time.Hour).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		_, err := NewTokens("secret", "someone-else", time.Hour).Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		later := NewTokens("secret", "gofinances", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

		_, err := later.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issued.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUser(context.Background(), &testUser)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "123", got.ID)
}
