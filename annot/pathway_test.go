package annot

import (
	"strings"
	"testing"

	"github.com/degmap/degmap/lfc"
)

const pathwayTSV = "geneid\tannotation\n" +
	"Parand_0001234.1\tCarotenoid biosynthesis\n" +
	"Parand_0005678.1\tCarotenoid biosynthesis\n" +
	"Parand_0404040.1\tNot in the expression table\n"

func expressionTable() *lfc.Table {
	ids := []string{"Parand_0001234.1", "Parand_0005678.1", "Parand_0777777.1"}
	return &lfc.Table{
		Conditions: []string{"NSP2ox1"},
		IDs:        ids,
		Labels:     append([]string{}, ids...),
		Values:     [][]float64{{-7}, {2}, {5}},
	}
}

func TestMergePathwaysInnerJoin(t *testing.T) {
	entries, err := ReadPathways(strings.NewReader(pathwayTSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 pathway entries, got %d", len(entries))
	}

	cleaner, err := NewCleaner("Parand_", `\.\d`, false)
	if err != nil {
		t.Fatal(err)
	}

	table := expressionTable()
	merged, err := MergePathways(table, entries, cleaner, " | ")
	if err != nil {
		t.Fatal(err)
	}

	// Inner join: bounded by the smaller table, and every output id must
	// exist in both inputs.
	if len(merged.IDs) > len(entries) || len(merged.IDs) > len(table.IDs) {
		t.Fatalf("join produced %d rows from %d x %d inputs", len(merged.IDs), len(entries), len(table.IDs))
	}
	if len(merged.IDs) != 2 {
		t.Fatalf("expected 2 rows, got %v", merged.IDs)
	}

	if merged.IDs[0] != "0001234" {
		t.Errorf("expected cleaned id 0001234, got %q", merged.IDs[0])
	}
	if merged.Labels[0] != "Carotenoid biosynthesis | 0001234" {
		t.Errorf("got label %q", merged.Labels[0])
	}
	if merged.Values[0][0] != -7 {
		t.Errorf("values out of alignment: %v", merged.Values)
	}
}

func TestMergePathwaysNoMatchesIsError(t *testing.T) {
	entries := []PathwayEntry{{GeneID: "absent", Annotation: "x"}}
	cleaner, err := NewCleaner("", "", false)
	if err != nil {
		t.Fatal(err)
	}

	_, err = MergePathways(expressionTable(), entries, cleaner, " | ")
	if _, ok := err.(lfc.JoinMismatchError); !ok {
		t.Errorf("expected JoinMismatchError, got %v", err)
	}
}
