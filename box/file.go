package box

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformed indicates a box collection file that cannot be decoded.
var ErrMalformed = errors.New("box: malformed collection")

var validate = validator.New()

// record is the on-disk shape of one tagged box. The tag must be present
// but may be any string, including "".
type record struct {
	Box []float64 `json:"box" validate:"required,len=4"`
	Tag *string   `json:"tag" validate:"required"`
}

// Decode reads a JSON array of {"box": [...], "tag": "..."} objects.
// Tags are not checked against any vocabulary. A top-level null is malformed.
func Decode(r io.Reader) (Collection, error) {
	var doc *[]record
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: null document", ErrMalformed)
	}
	records := *doc

	c := make(Collection, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrMalformed, i, err)
		}
		c = append(c, Tagged{
			Box: Box{X1: rec.Box[0], Y1: rec.Box[1], X2: rec.Box[2], Y2: rec.Box[3]},
			Tag: *rec.Tag,
		})
	}
	return c, nil
}

// ReadFile loads a collection from path.
func ReadFile(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	defer func() { _ = f.Close() }() // read-only

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as an indented JSON array. A nil collection is written
// as an empty array.
func Encode(w io.Writer, c Collection) error {
	if c == nil {
		c = Collection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// WriteFile stores c at path, replacing any existing file.
func WriteFile(path string, c Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	if err := Encode(f, c); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode collection: %w", err)
	}
	return f.Close()
}
