package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	Load(ctx context.Context, userID string) ([]Record, error)
	Append(ctx context.Context, userID string, records ...Record) error
	// Replace swaps the user's whole list atomically.
	Replace(ctx context.Context, userID string, records ...Record) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

type RegisterParams struct {
	Name     string `validate:"required"`
	Amount   string `validate:"required,numeric"`
	Type     Type
	Category category.Key
}

// Register validates p and appends a new record to the user's list.
// Nothing is written when validation fails.
func (s *Service) Register(ctx context.Context, user auth.User, p RegisterParams) (*Record, error) {
	if !p.Type.Valid() {
		return nil, ErrMissingType
	}

	if !p.Category.IsKnown() {
		return nil, ErrMissingCategory
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Amount = strings.TrimSpace(p.Amount)

	if err := s.validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	if !money.Parse(p.Amount).IsPositive() {
		return nil, ErrInvalidAmount
	}

	rec := Record{
		ID:       uuid.NewString(),
		Name:     p.Name,
		Amount:   p.Amount,
		Type:     p.Type,
		Category: p.Category,
		Date:     s.now().UTC(),
	}

	if err := s.repo.Append(ctx, user.ID, rec); err != nil {
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	return &rec, nil
}

// Records returns the user's stored records. Read failures degrade to an empty list.
func (s *Service) Records(ctx context.Context, user auth.User) []Record {
	records, err := s.repo.Load(ctx, user.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load transactions, using empty list", "user_id", user.ID, "error", err)
		return []Record{}
	}

	if records == nil {
		return []Record{}
	}

	return records
}

// List returns the user's records formatted for display, newest first.
func (s *Service) List(ctx context.Context, user auth.User, f *format.Formatter) []Entry {
	records := s.Records(ctx, user)

	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Format(r, f)
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Date.Compare(a.Date)
	})

	return entries
}

// Backup returns the user's raw records. Unlike Records it reports read failures.
func (s *Service) Backup(ctx context.Context, user auth.User) ([]Record, error) {
	records, err := s.repo.Load(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	if records == nil {
		records = []Record{}
	}

	return records, nil
}

type RestoreResult struct {
	Imported  []Record
	Conflicts []Conflict
}

// Conflict is an incoming record whose ID already exists for the user.
type Conflict struct {
	Incoming Record
	Existing Record
}

// Restore appends backed-up records. With replace the user's list becomes exactly
// incoming, or stays as it was if the write fails. Otherwise records whose IDs
// already exist are skipped and reported as conflicts.
func (s *Service) Restore(ctx context.Context, user auth.User, incoming []Record, replace bool) (*RestoreResult, error) {
	for i, r := range incoming {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if replace {
		if err := s.repo.Replace(ctx, user.ID, incoming...); err != nil {
			return nil, fmt.Errorf("replacing transactions: %w", err)
		}

		return &RestoreResult{Imported: incoming}, nil
	}

	if len(incoming) == 0 {
		return &RestoreResult{}, nil
	}

	existing, err := s.repo.Load(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	lookup := make(map[string]Record, len(existing))
	for _, r := range existing {
		lookup[r.ID] = r
	}

	var (
		fresh     []Record
		conflicts []Conflict
	)

	for _, r := range incoming {
		if e, found := lookup[r.ID]; found {
			conflicts = append(conflicts, Conflict{Incoming: r, Existing: e})
			continue
		}

		lookup[r.ID] = r
		fresh = append(fresh, r)
	}

	if len(fresh) > 0 {
		if err := s.repo.Append(ctx, user.ID, fresh...); err != nil {
			return nil, fmt.Errorf("restoring transactions: %w", err)
		}
	}

	return &RestoreResult{Imported: fresh, Conflicts: conflicts}, nil
}
