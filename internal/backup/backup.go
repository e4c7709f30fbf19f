package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/encoding"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// Result describes a backup file written by Export.
type Result struct {
	Path    string
	Records []transaction.Record
}

// Service writes a user's records to backup files and restores them.
type Service struct {
	transactions *transaction.Service
	now          func() time.Time
}

// NewService creates a new backup Service.
func NewService(txService *transaction.Service) *Service {
	return &Service{
		transactions: txService,
		now:          time.Now,
	}
}

// Filename is the name a backup of userID taken at t is saved under.
func Filename(userID string, t time.Time) string {
	safeID := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, userID)

	return fmt.Sprintf("transactions_user_%s_%s.json", safeID, t.Format("20060102"))
}

// Export writes the user's records as a JSON array into outputDir.
func (s *Service) Export(ctx context.Context, user auth.User, outputDir string) (*Result, error) {
	records, err := s.transactions.Backup(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, Filename(user.ID, s.now()))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := Write(f, records); err != nil {
		return nil, err
	}

	return &Result{Path: path, Records: records}, nil
}

// Import restores the records of the backup file at path.
func (s *Service) Import(ctx context.Context, user auth.User, path string, replace bool) (*transaction.RestoreResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening backup: %w", err)
	}
	defer f.Close()

	records, _, err := Read(f)
	if err != nil {
		return nil, err
	}

	return s.transactions.Restore(ctx, user, records, replace)
}

// Write encodes records the way they are persisted.
func Write(w io.Writer, records []transaction.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// Read decodes a backup in any supported charset and reports the charset found.
func Read(r io.Reader) ([]transaction.Record, string, error) {
	body, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("detecting encoding: %w", err)
	}

	var records []transaction.Record
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, charset, fmt.Errorf("%w: %w", transaction.ErrInvalidRecord, err)
	}

	return records, charset, nil
}

// Summary renders one line per record, for showing what a backup holds.
func Summary(records []transaction.Record, cats []category.Category, f *format.Formatter) string {
	var sb strings.Builder

	for _, r := range records {
		sign := "-"
		if r.Type == transaction.TypePositive {
			sign = "+"
		}

		name := category.Unknown.Name
		if c, ok := category.Find(cats, r.Category); ok {
			name = c.Name
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			f.ShortDate(r.Date), r.Name, sign, f.Currency(money.Parse(r.Amount)), name)
	}

	return sb.String()
}
