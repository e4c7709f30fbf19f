package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/auth"
	"github.com/MrJamesThe3rd/gofinances/internal/category"
	"github.com/MrJamesThe3rd/gofinances/internal/database"
	"github.com/MrJamesThe3rd/gofinances/internal/format"
	gofinHttp "github.com/MrJamesThe3rd/gofinances/internal/http"
	authHandler "github.com/MrJamesThe3rd/gofinances/internal/http/auth"
	backupHandler "github.com/MrJamesThe3rd/gofinances/internal/http/backup"
	categoryHandler "github.com/MrJamesThe3rd/gofinances/internal/http/category"
	summaryHandler "github.com/MrJamesThe3rd/gofinances/internal/http/summary"
	txHandler "github.com/MrJamesThe3rd/gofinances/internal/http/transaction"
	"github.com/MrJamesThe3rd/gofinances/internal/summary"
	"github.com/MrJamesThe3rd/gofinances/internal/transaction"
	txStore "github.com/MrJamesThe3rd/gofinances/internal/transaction/store"
)

const credential = "secret-credential"

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var (
		f    = format.New(time.UTC)
		cats = category.Default()

		provider = auth.NewStaticProvider(auth.User{ID: "123", Name: "William", Email: "w@example.com"}, credential)
		tokens   = auth.NewTokens("test-secret", "gofinances", time.Hour)

		txSvc      = transaction.NewService(txStore.New(db, database.DriverSQLite, "@gofinances:"))
		summarySvc = summary.NewService(txSvc, cats, f)
	)

	return gofinHttp.New(
		[]string{"*"},
		authHandler.NewHandler(provider, tokens),
		categoryHandler.NewHandler(cats),
		txHandler.NewHandler(txSvc, cats, f),
		summaryHandler.NewHandler(summarySvc, f),
		backupHandler.NewHandler(txSvc),
	)
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func signIn(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"credential": credential})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "123", resp.User.ID)
	require.NotEmpty(t, resp.Token)

	return resp.Token
}

func TestAuth(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"credential": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), authHandler.SignInFailed)

	rec = do(t, h, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := signIn(t, h)

	rec = do(t, h, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"William"`)
}

func TestCategories(t *testing.T) {
	h := newRouter(t)
	token := signIn(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cats []category.Category
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cats))
	require.Len(t, cats, 6)
	assert.Equal(t, category.KeyPurchases, cats[0].Key)
}

func TestTransactions_Register(t *testing.T) {
	type testCase struct {
		name       string
		body       map[string]string
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:       "valid",
			body:       map[string]string{"name": "Almoço", "amount": "30", "type": "negative", "category": "food"},
			wantStatus: http.StatusCreated,
			wantBody:   `"name":"Alimentação"`,
		},
		{
			name:       "missing type",
			body:       map[string]string{"name": "Almoço", "amount": "30", "category": "food"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Selecione o tipo da transação",
		},
		{
			name:       "missing category",
			body:       map[string]string{"name": "Almoço", "amount": "30", "type": "negative"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Selecione a Categoria",
		},
		{
			name:       "missing name",
			body:       map[string]string{"amount": "30", "type": "negative", "category": "food"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Nome e valor são obrigatórios",
		},
		{
			name:       "negative amount",
			body:       map[string]string{"name": "Almoço", "amount": "-30", "type": "negative", "category": "food"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Informe um valor númerico positivo",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newRouter(t)
			token := signIn(t, h)

			rec := do(t, h, http.MethodPost, "/api/v1/transactions", token, tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantBody)
		})
	}
}

func TestTransactions_ListAndSummaries(t *testing.T) {
	h := newRouter(t)
	token := signIn(t, h)

	for _, body := range []map[string]string{
		{"name": "Salário", "amount": "1000", "type": "positive", "category": "salary"},
		{"name": "Almoço", "amount": "10", "type": "negative", "category": "food"},
		{"name": "Jantar", "amount": "30", "type": "negative", "category": "food"},
	} {
		rec := do(t, h, http.MethodPost, "/api/v1/transactions", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/v1/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.Len(t, list, 3)

	rec = do(t, h, http.MethodGet, "/api/v1/summary/highlights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var hl struct {
		Entries  struct{ Amount string } `json:"entries"`
		Expenses struct{ Amount string } `json:"expenses"`
		Total    struct{ Amount string } `json:"total"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&hl))
	assert.Equal(t, "1000", hl.Entries.Amount)
	assert.Equal(t, "40", hl.Expenses.Amount)
	assert.Equal(t, "960", hl.Total.Amount)

	month := summary.MonthOf(time.Now().UTC())

	rec = do(t, h, http.MethodGet, "/api/v1/summary/categories?month="+month.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var cs struct {
		Month      string `json:"month"`
		Previous   string `json:"previous"`
		Next       string `json:"next"`
		Categories []struct {
			Key     string `json:"key"`
			Total   string `json:"total"`
			Percent string `json:"percent"`
		} `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cs))
	assert.Equal(t, month.String(), cs.Month)
	assert.Equal(t, month.Prev().String(), cs.Previous)
	assert.Equal(t, month.Next().String(), cs.Next)
	require.Len(t, cs.Categories, 1)
	assert.Equal(t, "food", cs.Categories[0].Key)
	assert.Equal(t, "40", cs.Categories[0].Total)
	assert.Equal(t, "100%", cs.Categories[0].Percent)

	rec = do(t, h, http.MethodGet, "/api/v1/summary/categories?month=janeiro", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary_EmptyUser(t *testing.T) {
	h := newRouter(t)
	token := signIn(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/summary/highlights", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), summary.NoTransactions))

	rec = do(t, h, http.MethodGet, "/api/v1/summary/categories?month=2021-01", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"categories":[]`)
}

func upload(t *testing.T, h http.Handler, token, content string, replace bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	if replace {
		require.NoError(t, mw.WriteField("replace", "true"))
	}

	fw, err := mw.CreateFormFile("file", "backup.json")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestBackup_RoundTrip(t *testing.T) {
	h := newRouter(t)
	token := signIn(t, h)

	const backup = `[
		{"id":"a","name":"Salário","amount":"1000","type":"positive","category":"salary","date":"2021-01-01"},
		{"id":"b","name":"Almoço","amount":30,"type":"negative","category":"food","date":"2021-01-02T12:00:00Z"}
	]`

	rec := upload(t, h, token, backup, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"imported":2`)

	rec = upload(t, h, token, backup, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"imported":0`)
	assert.Equal(t, 2, strings.Count(rec.Body.String(), `"incoming"`))

	rec = do(t, h, http.MethodGet, "/api/v1/backup", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "transactions_user_123_")

	var records []transaction.Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "30", records[1].Amount)

	rec = upload(t, h, token, `[{"id":"c","name":"Carro","amount":"5","type":"negative","category":"car","date":"2021-02-01"}]`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/backup", token, nil)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "c", records[0].ID)
}

func TestBackup_RejectsInvalid(t *testing.T) {
	h := newRouter(t)
	token := signIn(t, h)

	rec := upload(t, h, token, `{"not":"an array"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, h, token, `[{"id":"","type":"negative","date":"2021-01-01"}]`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = upload(t, h, token, `[
		{"id":"a","name":"Almoço","amount":"20","type":"negative","category":"food","date":"2021-01-02"},
		{"id":"b","name":"Carro","amount":"-5","type":"negative","category":"car","date":"2021-01-03"}
	]`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/backup", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
