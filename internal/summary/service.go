package summary

import (
	"context"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

// RecordSource is the read side of the record store the summaries depend on.
type RecordSource interface {
	Records(ctx context.Context, user auth.User) []transaction.Record
}

type Service struct {
	records RecordSource
	cats    []category.Category
	f       *format.Formatter
}

func NewService(records RecordSource, cats []category.Category, f *format.Formatter) *Service {
	return &Service{records: records, cats: cats, f: f}
}

func (s *Service) Categories() []category.Category {
	return s.cats
}

func (s *Service) Highlights(ctx context.Context, user auth.User) Highlight {
	return Highlights(s.records.Records(ctx, user), s.f)
}

func (s *Service) ByCategory(ctx context.Context, user auth.User, month Month) CategorySummary {
	return ByCategory(s.records.Records(ctx, user), s.cats, month, s.f)
}
