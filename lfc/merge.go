package lfc

// Merged is the side-by-side comparison of two independently prepared tables.
// GroupBreak is the number of condition columns contributed by the left
// table; the renderer leaves a visual gap after it. No separator column is
// stored in the data itself.
type Merged struct {
	Table
	GroupBreak int
}

// MergeConditions inner-joins two tables on identifier, keeping the left
// table's row order. Condition names appearing in both tables are suffixed
// with the provenance markers so the rendered column labels stay
// distinguishable.
func MergeConditions(left, right *Table, leftSuffix, rightSuffix string) (*Merged, error) {
	rightRow := make(map[string]int, len(right.IDs))
	for i, id := range right.IDs {
		rightRow[id] = i
	}

	overlap := make(map[string]bool)
	for _, lc := range left.Conditions {
		for _, rc := range right.Conditions {
			if lc == rc {
				overlap[lc] = true
			}
		}
	}

	out := &Merged{GroupBreak: len(left.Conditions)}
	for _, cond := range left.Conditions {
		if overlap[cond] {
			cond += leftSuffix
		}
		out.Conditions = append(out.Conditions, cond)
	}
	for _, cond := range right.Conditions {
		if overlap[cond] {
			cond += rightSuffix
		}
		out.Conditions = append(out.Conditions, cond)
	}

	var missing []string
	for i, id := range left.IDs {
		j, ok := rightRow[id]
		if !ok {
			missing = append(missing, id)
			continue
		}

		row := make([]float64, 0, len(out.Conditions))
		row = append(row, left.Values[i]...)
		row = append(row, right.Values[j]...)

		out.IDs = append(out.IDs, id)
		out.Labels = append(out.Labels, left.Labels[i])
		out.Values = append(out.Values, row)
	}

	if len(out.IDs) == 0 {
		return nil, JoinMismatchError{Missing: missing}
	}

	return out, nil
}
