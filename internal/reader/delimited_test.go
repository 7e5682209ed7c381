package reader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadDelimited(t *testing.T) {
	path := writeFile(t, "apple.csv",
		"Transaction Date,Merchant,Amount (USD),Purchased By\n"+
			"01/15/2024,WHOLE FOODS,42.50,Hector Hernandez\n"+
			"01/16/2024,\"ACME, INC\",10.00,Hector Hernandez\n")

	records, err := ReadDelimited(path, []string{"Transaction Date", "Merchant", "Amount (USD)"})
	if err != nil {
		t.Fatalf("ReadDelimited: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["Merchant"] != "WHOLE FOODS" {
		t.Errorf("Merchant = %q", records[0]["Merchant"])
	}
	if records[1]["Merchant"] != "ACME, INC" {
		t.Errorf("quoted field not preserved: %q", records[1]["Merchant"])
	}
	if records[0]["Amount (USD)"] != "42.50" {
		t.Errorf("Amount = %q", records[0]["Amount (USD)"])
	}
}

func TestReadDelimitedMissingColumns(t *testing.T) {
	path := writeFile(t, "bad.csv", "Date,Description\n01/15/2024,WHOLE FOODS\n")

	_, err := ReadDelimited(path, []string{"Date", "Description", "Amount"})
	var malformed *MalformedFileError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedFileError", err)
	}
	if len(malformed.Missing) != 1 || malformed.Missing[0] != "Amount" {
		t.Errorf("Missing = %v, want [Amount]", malformed.Missing)
	}
}

func TestReadDelimitedEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", "")
	if _, err := ReadDelimited(path, []string{"Date"}); err == nil {
		t.Fatal("expected an error for an empty file")
	}
}
