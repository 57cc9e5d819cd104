// Package lfc models log2 fold-change matrices: one row per gene, one column
// per experimental condition.
package lfc

import (
	"fmt"
	"sort"

	"github.com/degmap/degmap/tabfile"
)

// EmptyResultError indicates that the fold-change filter removed every row,
// which almost always means the thresholds are misconfigured for the input.
type EmptyResultError struct {
	Low  float64
	High float64
}

func (e EmptyResultError) Error() string {
	return fmt.Sprintf("no rows survive the fold-change filter with cutoffs %g,%g", e.Low, e.High)
}

// JoinMismatchError indicates that an inner join matched no identifiers at
// all between its two inputs.
type JoinMismatchError struct {
	Missing []string
}

func (e JoinMismatchError) Error() string {
	n := len(e.Missing)
	if n > 5 {
		return fmt.Sprintf("inner join matched no identifiers; %d unmatched, first %v", n, e.Missing[:5])
	}
	return fmt.Sprintf("inner join matched no identifiers; unmatched %v", e.Missing)
}

// Table holds one fold-change value per gene and condition. IDs is the join
// key everywhere; Labels is what the renderer shows and defaults to IDs.
type Table struct {
	Conditions []string
	IDs        []string
	Labels     []string
	Values     [][]float64
}

// Load extracts an expression matrix from a delimited table. The identifier
// column must uniquely key the table and every condition column must parse as
// numeric.
func Load(tab *tabfile.Table, idColumn string, conditions []string) (*Table, error) {
	if err := tab.Require(append([]string{idColumn}, conditions...)...); err != nil {
		return nil, err
	}
	if err := tab.CheckUnique(idColumn); err != nil {
		return nil, err
	}

	ids, err := tab.Strings(idColumn)
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, len(conditions))
	for i, cond := range conditions {
		if cols[i], err = tab.Floats(cond); err != nil {
			return nil, err
		}
	}

	t := &Table{
		Conditions: append([]string{}, conditions...),
		IDs:        ids,
		Labels:     append([]string{}, ids...),
		Values:     make([][]float64, len(ids)),
	}
	for r := range ids {
		row := make([]float64, len(conditions))
		for c := range conditions {
			row[c] = cols[c][r]
		}
		t.Values[r] = row
	}

	return t, nil
}

// CleanIDs rewrites every identifier through the given normalization. Labels
// that still mirror the raw identifiers are rewritten along with them.
func (t *Table) CleanIDs(clean func(string) (string, error)) error {
	for i, id := range t.IDs {
		cleaned, err := clean(id)
		if err != nil {
			return err
		}
		if t.Labels[i] == id {
			t.Labels[i] = cleaned
		}
		t.IDs[i] = cleaned
	}
	return nil
}

// Filter retains the rows where at least one condition value falls below low
// or above high. Zero surviving rows is an EmptyResultError.
func (t *Table) Filter(low, high float64) (*Table, error) {
	out := &Table{Conditions: t.Conditions}

	for i, row := range t.Values {
		keep := false
		for _, v := range row {
			if v < low || v > high {
				keep = true
				break
			}
		}
		if keep {
			out.IDs = append(out.IDs, t.IDs[i])
			out.Labels = append(out.Labels, t.Labels[i])
			out.Values = append(out.Values, row)
		}
	}

	if len(out.IDs) == 0 {
		return nil, EmptyResultError{Low: low, High: high}
	}

	return out, nil
}

// SortBy orders the rows ascending by one condition column. The sort is
// stable so that equal values keep their input order across runs.
func (t *Table) SortBy(condition string) error {
	col := -1
	for i, cond := range t.Conditions {
		if cond == condition {
			col = i
			break
		}
	}
	if col < 0 {
		return tabfile.MissingColumnError{Column: condition}
	}

	idx := make([]int, len(t.IDs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.Values[idx[a]][col] < t.Values[idx[b]][col]
	})

	ids := make([]string, len(idx))
	labels := make([]string, len(idx))
	values := make([][]float64, len(idx))
	for i, j := range idx {
		ids[i], labels[i], values[i] = t.IDs[j], t.Labels[j], t.Values[j]
	}
	t.IDs, t.Labels, t.Values = ids, labels, values

	return nil
}

// Rows returns the number of gene rows.
func (t *Table) Rows() int {
	return len(t.IDs)
}
