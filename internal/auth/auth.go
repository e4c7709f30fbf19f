package auth

import (
	"context"
	"crypto/subtle"
	"errors"
)

var (
	ErrSignIn       = errors.New("sign-in failed")
	ErrInvalidToken = errors.New("invalid token")
)

// User is the authenticated-user record returned by the identity provider.
type User struct {
	ID    string
	Name  string
	Email string
	Photo string
}

// Provider is the external identity collaborator.
type Provider interface {
	SignIn(ctx context.Context, credential string) (*User, error)
}

// StaticProvider signs in a single configured user. An empty credential accepts any input.
type StaticProvider struct {
	user       User
	credential string
}

func NewStaticProvider(user User, credential string) *StaticProvider {
	return &StaticProvider{user: user, credential: credential}
}

func (p *StaticProvider) SignIn(ctx context.Context, credential string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrSignIn, err)
	}

	if p.user.ID == "" {
		return nil, ErrSignIn
	}

	if p.credential != "" && subtle.ConstantTimeCompare([]byte(p.credential), []byte(credential)) != 1 {
		return nil, ErrSignIn
	}

	u := p.user

	return &u, nil
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// FromContext returns the user stored by WithUser.
func FromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*User)
	return u, ok && u != nil
}
