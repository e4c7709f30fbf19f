package category

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Key identifies a category. The set of keys is closed; anything else parses to KeyUnknown.
type Key string

const (
	KeyPurchases Key = "purchases"
	KeyFood      Key = "food"
	KeySalary    Key = "salary"
	KeyCar       Key = "car"
	KeyLeisure   Key = "leisure"
	KeyStudies   Key = "studies"
	KeyUnknown   Key = "unknown"
)

var known = map[Key]struct{}{
	KeyPurchases: {},
	KeyFood:      {},
	KeySalary:    {},
	KeyCar:       {},
	KeyLeisure:   {},
	KeyStudies:   {},
}

var ErrInvalid = errors.New("invalid category reference data")

// ParseKey maps a stored string to a Key, falling back to KeyUnknown.
func ParseKey(s string) Key {
	k := Key(strings.TrimSpace(s))
	if _, ok := known[k]; ok {
		return k
	}

	return KeyUnknown
}

func (k Key) IsKnown() bool {
	_, ok := known[k]
	return ok
}

func (k *Key) UnmarshalText(b []byte) error {
	*k = ParseKey(string(b))
	return nil
}

// Category is static reference data describing how a Key is displayed.
type Category struct {
	Key   Key    `json:"key"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Unknown is shown for expenses whose stored category key is not recognized.
var Unknown = Category{Key: KeyUnknown, Name: "Outros", Color: "#969CB2"}

//go:embed categories.json
var defaultCategories []byte

// Default returns the built-in ordered category list.
func Default() []Category {
	cats, err := Load(bytes.NewReader(defaultCategories))
	if err != nil {
		panic(fmt.Sprintf("embedded categories: %v", err))
	}

	return cats
}

// LoadFile reads the category list from path, or returns Default when path is empty.
func LoadFile(path string) ([]Category, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes an ordered JSON list of categories. Every key must be known and appear once.
func Load(r io.Reader) ([]Category, error) {
	var cats []Category
	if err := json.NewDecoder(r).Decode(&cats); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalid)
	}

	seen := make(map[Key]struct{}, len(cats))

	for i, c := range cats {
		if !c.Key.IsKnown() {
			return nil, fmt.Errorf("%w: entry %d has unknown key", ErrInvalid, i)
		}

		if _, dup := seen[c.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalid, c.Key)
		}

		seen[c.Key] = struct{}{}
	}

	return cats, nil
}

// Find looks k up in cats. Unknown keys resolve to Unknown.
func Find(cats []Category, k Key) (Category, bool) {
	for _, c := range cats {
		if c.Key == k {
			return c, true
		}
	}

	return Unknown, false
}
