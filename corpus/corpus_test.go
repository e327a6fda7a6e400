package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const header = "itemID,rating,helpful,time,userID,reviewText\n"

func TestLoad(t *testing.T) {
	path := writeCSV(t, header+
		"1,5,0,0,alice,Good product!\n"+
		"2,1,0,0,bob,\"Bad, very bad item\"\n"+
		"3,4,0,0,alice,good item\n")

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	first := records[0]
	if first.ItemID != 1 || first.Rating != 5 || first.UserID != "alice" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if !reflect.DeepEqual(first.Tokens, []string{"good", "product"}) {
		t.Errorf("unexpected tokens: %v", first.Tokens)
	}

	// Quoted comma must stay inside one field.
	if !reflect.DeepEqual(records[1].Tokens, []string{"bad", "very", "bad", "item"}) {
		t.Errorf("unexpected tokens for quoted row: %v", records[1].Tokens)
	}
}

func TestLoadDropsEmptyReviews(t *testing.T) {
	path := writeCSV(t, header+
		"1,5,0,0,alice,fine\n"+
		"2,3,0,0,bob,\n"+
		"3,2,0,0,cara,   \n"+
		"4,4,0,0,dave,also fine\n")

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	// 4 data rows, 2 with empty review text.
	if len(records) != 2 {
		t.Fatalf("expected 2 records after filtering, got %d", len(records))
	}
	if records[0].ItemID != 1 || records[1].ItemID != 4 {
		t.Errorf("wrong rows survived: %+v", records)
	}
}

func TestLoadFailsOnBadInteger(t *testing.T) {
	path := writeCSV(t, header+
		"1,5,0,0,alice,fine\n"+
		"two,3,0,0,bob,broken row\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-integer item id")
	}

	path = writeCSV(t, header+"1,five,0,0,alice,fine\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-integer rating")
	}
}

func TestLoadFailsOnShortRow(t *testing.T) {
	path := writeCSV(t, header+"1,5,0,0,alice\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for row with missing columns")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Good product", []string{"good", "product"}},
		{"Don't buy!!", []string{"don't", "buy"}},
		{"5 stars, really...", []string{"5", "stars", "really"}},
		{"", nil},
		{"?!.", nil},
	}

	for _, c := range cases {
		got := Tokenize(c.text)
		if len(got) == 0 && len(c.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestIndexOfItem(t *testing.T) {
	records := Corpus{
		{ItemID: 10},
		{ItemID: 20},
		{ItemID: 10},
	}
	if got := records.IndexOfItem(10); got != 0 {
		t.Errorf("IndexOfItem(10) = %d, want 0", got)
	}
	if got := records.IndexOfItem(99); got != -1 {
		t.Errorf("IndexOfItem(99) = %d, want -1", got)
	}
}
