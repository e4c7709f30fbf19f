package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
)

// SignInFailed is shown when the identity provider rejects the sign-in.
const SignInFailed = "Não foi possível conectar a conta"

type Handler struct {
	provider auth.Provider
	tokens   *auth.Tokens
}

func NewHandler(provider auth.Provider, tokens *auth.Tokens) *Handler {
	return &Handler{provider: provider, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/token", h.token)
}

type tokenRequest struct {
	Credential string `json:"credential"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Photo: u.Photo,
	}
}

func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.provider.SignIn(r.Context(), req.Credential)
	if err != nil {
		if !errors.Is(err, auth.ErrSignIn) {
			slog.Error("sign-in failed", "error", err)
		}

		http.Error(w, SignInFailed, http.StatusUnauthorized)

		return
	}

	token, err := h.tokens.Issue(*user)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		http.Error(w, SignInFailed, http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(tokenResponse{Token: token, User: toUserResponse(user)}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Authenticate rejects requests without a valid bearer token and stores the
// token's user in the request context.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		user, err := h.tokens.Parse(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

// Me returns the signed-in user, used for the greeting header.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toUserResponse(user)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
