package annot

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/degmap/degmap/lfc"
)

// PathwayEntry is one row of a tab-separated pathway membership list.
type PathwayEntry struct {
	GeneID     string `csv:"geneid"`
	Annotation string `csv:"annotation"`
}

// ReadPathways loads a tab-separated pathway membership table.
func ReadPathways(r io.Reader) ([]PathwayEntry, error) {
	// Tell gocsv to use tab as the delimiter
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		cr := csv.NewReader(in)
		cr.Comma = '\t'
		cr.LazyQuotes = true
		return cr
	})

	records := []*PathwayEntry{}
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, pfx.Err(err)
	}

	out := make([]PathwayEntry, 0, len(records))
	for _, record := range records {
		out = append(out, *record)
	}

	return out, nil
}

// MergePathways inner-joins the expression table against a pathway list on
// the raw identifier: genes without pathway membership are dropped, unlike
// the left join in Annotate. Surviving rows get cleaned identifiers and a
// "pathway-annotation | cleaned-id" label. Matching no identifiers at all is
// a JoinMismatchError.
func MergePathways(t *lfc.Table, entries []PathwayEntry, c *Cleaner, sep string) (*lfc.Table, error) {
	annotation := make(map[string]string, len(entries))
	for _, e := range entries {
		if _, exists := annotation[e.GeneID]; exists {
			continue
		}
		annotation[e.GeneID] = e.Annotation
	}

	out := &lfc.Table{Conditions: t.Conditions}
	matched := make(map[string]bool, len(annotation))
	for i, id := range t.IDs {
		label, ok := annotation[id]
		if !ok {
			continue
		}
		matched[id] = true

		cleaned, err := c.Clean(id)
		if err != nil {
			return nil, pfx.Err(err)
		}

		out.IDs = append(out.IDs, cleaned)
		out.Labels = append(out.Labels, label+sep+cleaned)
		out.Values = append(out.Values, t.Values[i])
	}

	if len(out.IDs) == 0 {
		var missing []string
		for _, e := range entries {
			if !matched[e.GeneID] {
				missing = append(missing, e.GeneID)
			}
		}
		return nil, lfc.JoinMismatchError{Missing: missing}
	}

	return out, nil
}
