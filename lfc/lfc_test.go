package lfc

import (
	"strings"
	"testing"

	"github.com/degmap/degmap/tabfile"
)

func load(t *testing.T, in string, conditions ...string) *Table {
	t.Helper()

	tab, err := tabfile.Read(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatal(err)
	}
	table, err := Load(tab, "Gene_id", conditions)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestLoadRejectsDuplicateIdentifiers(t *testing.T) {
	in := "Gene_id\tNSP2ox1\ng1\t1\ng1\t2\n"
	tab, err := tabfile.Read(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatal(err)
	}

	_, err = Load(tab, "Gene_id", []string{"NSP2ox1"})
	if _, ok := err.(tabfile.DuplicateKeyError); !ok {
		t.Errorf("expected DuplicateKeyError, got %v", err)
	}
}

func TestFilterKeepsAnyLargeEffect(t *testing.T) {
	in := "Gene_id\tNSP2ox1\n" +
		"g1\t-8\n" +
		"g2\t-1\n" +
		"g3\t3\n" +
		"g4\t9\n"
	table := load(t, in, "NSP2ox1")

	filtered, err := table.Filter(-6, 6)
	if err != nil {
		t.Fatal(err)
	}

	if len(filtered.IDs) != 2 || filtered.IDs[0] != "g1" || filtered.IDs[1] != "g4" {
		t.Errorf("expected [g1 g4], got %v", filtered.IDs)
	}
}

func TestFilterIsOrAcrossConditions(t *testing.T) {
	// g1 exceeds the cutoff in only one of its two conditions and must
	// still be kept.
	in := "Gene_id\ta\tb\n" +
		"g1\t0\t7\n" +
		"g2\t0\t0\n"
	table := load(t, in, "a", "b")

	filtered, err := table.Filter(-6, 6)
	if err != nil {
		t.Fatal(err)
	}

	if len(filtered.IDs) != 1 || filtered.IDs[0] != "g1" {
		t.Errorf("expected [g1], got %v", filtered.IDs)
	}
}

func TestFilterEmptyResult(t *testing.T) {
	in := "Gene_id\ta\ng1\t0.5\n"
	table := load(t, in, "a")

	_, err := table.Filter(-6, 6)
	ere, ok := err.(EmptyResultError)
	if !ok {
		t.Fatalf("expected EmptyResultError, got %v", err)
	}
	if ere.Low != -6 || ere.High != 6 {
		t.Errorf("unexpected thresholds %+v", ere)
	}
}

func TestSortIsStable(t *testing.T) {
	in := "Gene_id\ta\tb\n" +
		"g1\t2\t1\n" +
		"g2\t1\t1\n" +
		"g3\t0\t1\n" +
		"g4\t3\t1\n"
	table := load(t, in, "a", "b")

	if err := table.SortBy("b"); err != nil {
		t.Fatal(err)
	}

	// All sort keys tie, so input order must be preserved.
	want := []string{"g1", "g2", "g3", "g4"}
	for i, id := range want {
		if table.IDs[i] != id {
			t.Fatalf("stable sort violated: got %v", table.IDs)
		}
	}

	if err := table.SortBy("a"); err != nil {
		t.Fatal(err)
	}
	want = []string{"g3", "g2", "g1", "g4"}
	for i, id := range want {
		if table.IDs[i] != id {
			t.Fatalf("expected %v, got %v", want, table.IDs)
		}
	}
}

func TestSortByUnknownColumn(t *testing.T) {
	in := "Gene_id\ta\ng1\t1\n"
	table := load(t, in, "a")

	err := table.SortBy("nope")
	if _, ok := err.(tabfile.MissingColumnError); !ok {
		t.Errorf("expected MissingColumnError, got %v", err)
	}
}

func TestCleanIDsRewritesLabels(t *testing.T) {
	in := "Gene_id\ta\nParand_0001234.1\t1\n"
	table := load(t, in, "a")

	err := table.CleanIDs(func(id string) (string, error) {
		return strings.TrimPrefix(strings.TrimSuffix(id, ".1"), "Parand_"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if table.IDs[0] != "0001234" || table.Labels[0] != "0001234" {
		t.Errorf("got id %q label %q", table.IDs[0], table.Labels[0])
	}
}
