package category_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gofinances/internal/category"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want category.Key
	}{
		{in: "food", want: category.KeyFood},
		{in: " car ", want: category.KeyCar},
		{in: "category", want: category.KeyUnknown},
		{in: "", want: category.KeyUnknown},
		{in: "unknown", want: category.KeyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, category.ParseKey(tt.in))
		})
	}
}

func TestKey_UnmarshalJSON(t *testing.T) {
	var got struct {
		Category category.Key `json:"category"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"category":"gifts"}`), &got))
	assert.Equal(t, category.KeyUnknown, got.Category)
	assert.False(t, got.Category.IsKnown())
}

func TestDefault(t *testing.T) {
	cats := category.Default()
	require.Len(t, cats, 6)

	assert.Equal(t, category.KeyPurchases, cats[0].Key)
	assert.Equal(t, "Alimentação", cats[1].Name)
	assert.Equal(t, "#12A454", cats[2].Color)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":     `[]`,
		"unknown":   `[{"key":"gifts","name":"Presentes","color":"#000"}]`,
		"duplicate": `[{"key":"food","name":"A","color":"#000"},{"key":"food","name":"B","color":"#111"}]`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := category.Load(strings.NewReader(body))
			assert.ErrorIs(t, err, category.ErrInvalid)
		})
	}

	_, err := category.Load(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	cats := category.Default()

	c, ok := category.Find(cats, category.KeyLeisure)
	assert.True(t, ok)
	assert.Equal(t, "Lazer", c.Name)

	c, ok = category.Find(cats, category.KeyUnknown)
	assert.False(t, ok)
	assert.Equal(t, category.Unknown, c)
}

func TestLoadFile_EmptyPathUsesDefault(t *testing.T) {
	cats, err := category.LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, category.Default(), cats)
}
