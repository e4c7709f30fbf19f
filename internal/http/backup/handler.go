package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/backup"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/", h.restore)
}

type conflictDTO struct {
	Incoming transaction.Record `json:"incoming"`
	Existing transaction.Record `json:"existing"`
}

type restoreResponse struct {
	Charset      string               `json:"charset"`
	Imported     int                  `json:"imported"`
	Transactions []transaction.Record `json:"transactions"`
	Conflicts    []conflictDTO        `json:"conflicts"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	records, err := h.svc.Backup(r.Context(), *user)
	if err != nil {
		slog.Error("failed to load backup", "user_id", user.ID, "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, backup.Filename(user.ID, time.Now())))

	if err := backup.Write(w, records); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	replace := false

	if s := r.FormValue("replace"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "replace must be a boolean", http.StatusBadRequest)
			return
		}

		replace = v
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, charset, err := backup.Read(file)
	if err != nil {
		http.Error(w, "invalid backup file: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.Restore(r.Context(), *user, records, replace)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidRecord) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to restore backup", "user_id", user.ID, "error", err)
		http.Error(w, "failed to restore transactions", http.StatusInternalServerError)

		return
	}

	resp := restoreResponse{
		Charset:      charset,
		Imported:     len(result.Imported),
		Transactions: result.Imported,
		Conflicts:    make([]conflictDTO, 0, len(result.Conflicts)),
	}

	if resp.Transactions == nil {
		resp.Transactions = []transaction.Record{}
	}

	for _, c := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictDTO{Incoming: c.Incoming, Existing: c.Existing})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
