package backup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
)

var user = auth.User{ID: "123", Name: "William"}

func records() []transaction.Record {
	date := time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC)

	return []transaction.Record{
		{ID: "a", Name: "Salário", Amount: "1000", Type: transaction.TypePositive, Category: category.KeySalary, Date: date},
		{ID: "b", Name: "Hosting", Amount: "12.5", Type: transaction.TypeNegative, Category: category.KeyUnknown, Date: date},
	}
}

func TestFilename(t *testing.T) {
	date := time.Date(2023, 10, 27, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "transactions_user_123_20231027.json", Filename("123", date))
	assert.Equal(t, "transactions_user____etc_20231027.json", Filename("../etc", date))
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any(), "123").Return(records(), nil)

	svc := NewService(transaction.NewService(repo))
	svc.now = func() time.Time { return time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC) }

	dir := filepath.Join(t.TempDir(), "exports")

	res, err := svc.Export(context.Background(), user, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transactions_user_123_20231027.json"), res.Path)
	assert.Len(t, res.Records, 2)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	got, charset, err := Read(f)
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", charset)
	assert.Equal(t, records(), got)
}

func TestService_Import(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records()))

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)

	gomock.InOrder(
		repo.EXPECT().Load(gomock.Any(), "123").Return(records()[:1], nil),
		repo.EXPECT().Append(gomock.Any(), "123", records()[1]).Return(nil),
	)

	res, err := NewService(transaction.NewService(repo)).Import(context.Background(), user, path, false)
	require.NoError(t, err)
	assert.Len(t, res.Imported, 1)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, "a", res.Conflicts[0].Existing.ID)
}

func TestService_Import_MissingFile(t *testing.T) {
	svc := NewService(transaction.NewService(nil))

	_, err := svc.Import(context.Background(), user, filepath.Join(t.TempDir(), "nope.json"), false)
	require.Error(t, err)
}

func TestRead_Invalid(t *testing.T) {
	_, _, err := Read(strings.NewReader(`{"id":"a"}`))
	require.ErrorIs(t, err, transaction.ErrInvalidRecord)
}

func TestSummary(t *testing.T) {
	body := Summary(records(), category.Default(), format.New(time.UTC))

	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "* 27/10/23 | Salário | +"))
	assert.True(t, strings.HasSuffix(lines[0], "| Salário"))
	assert.True(t, strings.HasPrefix(lines[1], "* 27/10/23 | Hosting | -"))
	assert.True(t, strings.HasSuffix(lines[1], "| Outros"))
}
