package annot

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/degmap/degmap/lfc"
)

// Annotation is one row of an NCBI-style feature table. Only the columns
// needed for labeling are mapped.
type Annotation struct {
	Feature  string `csv:"# feature"`
	LocusTag string `csv:"locus_tag"`
	Name     string `csv:"name"`
	Symbol   string `csv:"symbol"`
}

// ReadAnnotations loads a comma-separated feature table, keeping only the
// rows whose feature type contains the marker (e.g. "mRNA"). The result is
// keyed by locus tag; when a locus tag repeats, the first row wins.
func ReadAnnotations(r io.Reader, featureMarker string) (map[string]Annotation, error) {
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = ','
		cr.LazyQuotes = true
		return cr
	})

	records := []*Annotation{}
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]Annotation, len(records))
	for _, record := range records {
		if !strings.Contains(record.Feature, featureMarker) {
			continue
		}
		if _, exists := out[record.LocusTag]; exists {
			continue
		}
		out[record.LocusTag] = *record
	}

	return out, nil
}

// Label derives a display label from a gene's symbol and name. Empty operands
// collapse so the label never starts or ends with a dangling separator.
func Label(symbol, name, sep string) string {
	symbol, name = strings.TrimSpace(symbol), strings.TrimSpace(name)

	switch {
	case symbol == "" && name == "":
		return ""
	case symbol == "":
		return name
	case name == "":
		return symbol
	}

	return symbol + sep + name
}

// DisplayName combines a gene's annotation label with its cleaned identifier.
// Genes without any annotation are shown by identifier alone.
func DisplayName(label, id string) string {
	if label == "" {
		return id
	}
	return label + " " + id
}

// Annotate left-joins the expression table against the annotation map on the
// (already cleaned) identifier, rewriting each row's label to
// "symbol | name id". Rows with no matching annotation keep their identifier
// as the label; no row is ever dropped.
func Annotate(t *lfc.Table, byID map[string]Annotation, sep string) {
	for i, id := range t.IDs {
		a := byID[id]
		t.Labels[i] = DisplayName(Label(a.Symbol, a.Name, sep), id)
	}
}
