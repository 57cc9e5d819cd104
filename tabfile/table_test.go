package tabfile

import (
	"strings"
	"testing"
)

const fixture = "Gene_id\tnsp2-9\tNSP2ox1\n" +
	"Parand_0001.1\t0.5\t-8\n" +
	"Parand_0002.1\t1.5\t3\n"

func TestReadAndFloats(t *testing.T) {
	tab, err := Read(strings.NewReader(fixture), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if err := tab.Require("Gene_id", "nsp2-9", "NSP2ox1"); err != nil {
		t.Error(err)
	}

	vals, err := tab.Floats("NSP2ox1")
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != -8 || vals[1] != 3 {
		t.Errorf("unexpected values %v", vals)
	}
}

func TestMissingColumn(t *testing.T) {
	tab, err := Read(strings.NewReader(fixture), '\t')
	if err != nil {
		t.Fatal(err)
	}

	err = tab.Require("NSP2ox6")
	if _, ok := err.(MissingColumnError); !ok {
		t.Errorf("expected MissingColumnError, got %v", err)
	}
}

func TestNonNumericValue(t *testing.T) {
	in := "Gene_id\tNSP2ox1\ng1\tnot-a-number\n"
	tab, err := Read(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatal(err)
	}

	_, err = tab.Floats("NSP2ox1")
	pe, ok := err.(ParseError)
	if !ok {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Row != 1 || pe.Column != "NSP2ox1" || pe.Value != "not-a-number" {
		t.Errorf("unexpected error context %+v", pe)
	}
}

func TestDuplicateKey(t *testing.T) {
	in := "Gene_id\tNSP2ox1\ng1\t1\ng2\t2\ng1\t3\n"
	tab, err := Read(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatal(err)
	}

	err = tab.CheckUnique("Gene_id")
	de, ok := err.(DuplicateKeyError)
	if !ok {
		t.Fatalf("expected DuplicateKeyError, got %v", err)
	}
	if de.Key != "g1" || de.FirstRow != 1 || de.SecondRow != 3 {
		t.Errorf("unexpected error context %+v", de)
	}
}

func TestCommaDelimited(t *testing.T) {
	in := "a,b\n1,2\n"
	tab, err := Read(strings.NewReader(in), ',')
	if err != nil {
		t.Fatal(err)
	}

	col, err := tab.Strings("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(col) != 1 || col[0] != "2" {
		t.Errorf("unexpected column %v", col)
	}
}

func TestRaggedRowFails(t *testing.T) {
	in := "a\tb\n1\t2\t3\n"
	if _, err := Read(strings.NewReader(in), '\t'); err == nil {
		t.Error("expected an error for a row with extra fields")
	}
}
