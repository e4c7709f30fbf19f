package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/money"
)

// Type carries the sign of a transaction; amounts themselves are never negative.
type Type string

const (
	TypePositive Type = "positive"
	TypeNegative Type = "negative"
)

func (t Type) Valid() bool {
	return t == TypePositive || t == TypeNegative
}

var (
	ErrCorrupt         = errors.New("stored transactions are corrupt")
	ErrMissingType     = errors.New("transaction type is required")
	ErrMissingCategory = errors.New("transaction category is required")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidParams   = errors.New("invalid transaction")
	ErrInvalidRecord   = errors.New("invalid transaction record")
)

// Record is a transaction as persisted in the per-user JSON array.
type Record struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Amount   string       `json:"amount"`
	Type     Type         `json:"type"`
	Category category.Key `json:"category"`
	Date     time.Time    `json:"date"`
}

// UnmarshalJSON accepts amounts stored as strings or numbers, and dates stored as
// full timestamps or plain YYYY-MM-DD.
func (r *Record) UnmarshalJSON(b []byte) error {
	type alias Record

	var raw struct {
		alias
		Amount json.RawMessage `json:"amount"`
		Date   string          `json:"date"`
	}

	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = Record(raw.alias)

	amount := bytes.TrimSpace(raw.Amount)
	if len(amount) > 0 && amount[0] == '"' {
		if err := json.Unmarshal(amount, &r.Amount); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
	} else if !bytes.Equal(amount, []byte("null")) {
		r.Amount = string(amount)
	}

	date, err := parseDate(raw.Date)
	if err != nil {
		return err
	}

	r.Date = date

	return nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}

	return t, nil
}

// Validate checks the fields a restored record must carry. Negative amounts are
// rejected since the sign lives in Type. Non-numeric amounts pass and read as NaN,
// so a backup of such data can still be restored.
func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}

	if !r.Type.Valid() {
		return fmt.Errorf("%w: type %q", ErrInvalidRecord, r.Type)
	}

	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}

	if a := money.Parse(r.Amount); !a.IsNaN() && !a.IsPositive() && !a.IsZero() {
		return fmt.Errorf("%w: negative amount %q", ErrInvalidRecord, r.Amount)
	}

	return nil
}

// AlertMessage returns the user-facing text for a registration or sign-in failure.
func AlertMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingType):
		return "Selecione o tipo da transação"
	case errors.Is(err, ErrMissingCategory):
		return "Selecione a Categoria"
	case errors.Is(err, ErrInvalidAmount):
		return "Informe um valor númerico positivo"
	case errors.Is(err, ErrInvalidParams):
		return "Nome e valor são obrigatórios"
	}

	return "Não foi possível salvar."
}
