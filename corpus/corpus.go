// Package corpus loads review datasets from CSV files into an in-memory
// corpus of tokenized records.
//
// Columns are consumed positionally: [0]=item id, [1]=rating, [4]=user id,
// [5]=review text. Rows whose review text is empty are dropped; any other
// malformed row fails the whole load.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// ErrInputFormat reports a malformed dataset row (missing columns or a
// non-integer item id or rating).
var ErrInputFormat = errors.New("malformed input row")

// minColumns is the number of CSV columns a row must have for the
// positional fields above to exist.
const minColumns = 6

// Record is one non-empty review row. Immutable once loaded.
type Record struct {
	ItemID int
	Rating int
	UserID string
	Tokens []string
}

// Corpus is the ordered sequence of records loaded from one file.
// Row order is preserved; item ids are not guaranteed unique.
type Corpus []Record

// Load reads the CSV file at path into a Corpus.
//
// The first row is treated as a header and skipped. Rows with an empty or
// missing review-text field are filtered out. A row that fails integer
// coercion of the item id or rating fails the whole load with an error
// wrapping ErrInputFormat; there is no partial result.
func Load(path string) (Corpus, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // column count is validated per row below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInputFormat, path)
	}

	records := make(Corpus, 0, len(rows)-1)
	for rowIndex, row := range rows[1:] {
		if len(row) < minColumns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want at least %d",
				ErrInputFormat, rowIndex+2, len(row), minColumns)
		}

		// Empty review text is the one condition that silently drops a
		// row rather than failing the load.
		text := row[5]
		if strings.TrimSpace(text) == "" {
			continue
		}

		itemID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d item id %q is not an integer",
				ErrInputFormat, rowIndex+2, row[0])
		}

		rating, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d rating %q is not an integer",
				ErrInputFormat, rowIndex+2, row[1])
		}

		records = append(records, Record{
			ItemID: itemID,
			Rating: rating,
			UserID: row[4],
			Tokens: Tokenize(text),
		})
	}

	return records, nil
}

// Tokenize lower-cases text and splits it into word tokens. A token is a
// maximal run of letters, digits, or in-word apostrophes, so "don't" stays
// one token while punctuation separates everything else.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

// Documents returns the token sequences of all records in corpus order,
// the shape the embedding trainer consumes.
func (c Corpus) Documents() [][]string {
	documents := make([][]string, len(c))
	for i, record := range c {
		documents[i] = record.Tokens
	}
	return documents
}

// Ratings returns the ratings of all records in corpus order as float64,
// the shape the rating predictor consumes.
func (c Corpus) Ratings() []float64 {
	ratings := make([]float64, len(c))
	for i, record := range c {
		ratings[i] = float64(record.Rating)
	}
	return ratings
}

// IndexOfItem returns the position of the first record with the given item
// id, or -1 when the corpus has no such record.
func (c Corpus) IndexOfItem(itemID int) int {
	for i, record := range c {
		if record.ItemID == itemID {
			return i
		}
	}
	return -1
}
