package experiment

// ContingencyTable is the 2x2 counts of {variant} x {outcome 0/1} for a
// discrete metric, row 0 = control, row 1 = treatment, column 0 = failure,
// column 1 = success. Immutable once built.
type ContingencyTable struct {
	Counts       [2][2]int     `json:"counts"`
	RowLabels    [2]string     `json:"row_labels"`
	ColumnLabels [2]string     `json:"column_labels"`
	Expected     [2][2]float64 `json:"expected"`
	MinExpected  float64       `json:"min_expected"`
	GrandTotal   int           `json:"grand_total"`
}

// NewContingencyTable builds the table and its expected-frequency matrix
// under the null of equal proportions:
// expected[i][j] = rowTotal[i] * colTotal[j] / grandTotal.
func NewContingencyTable(pair VariantPair) ContingencyTable {
	t := ContingencyTable{
		RowLabels:    [2]string{pair.Control.Label, pair.Treatment.Label},
		ColumnLabels: [2]string{"failure", "success"},
	}
	for i, s := range []Sample{pair.Control, pair.Treatment} {
		succ := s.Successes()
		t.Counts[i][1] = succ
		t.Counts[i][0] = s.N() - succ
	}

	var rowTotals, colTotals [2]int
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			rowTotals[i] += t.Counts[i][j]
			colTotals[j] += t.Counts[i][j]
			t.GrandTotal += t.Counts[i][j]
		}
	}

	t.MinExpected = float64(t.GrandTotal)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			e := float64(rowTotals[i]) * float64(colTotals[j]) / float64(t.GrandTotal)
			t.Expected[i][j] = e
			if e < t.MinExpected {
				t.MinExpected = e
			}
		}
	}
	return t
}

// RowTotal returns the number of observations for row i.
func (t ContingencyTable) RowTotal(i int) int {
	return t.Counts[i][0] + t.Counts[i][1]
}

// ColumnTotal returns the number of observations for column j.
func (t ContingencyTable) ColumnTotal(j int) int {
	return t.Counts[0][j] + t.Counts[1][j]
}

// Rate returns the success proportion for row i, 0 for an empty row.
func (t ContingencyTable) Rate(i int) float64 {
	n := t.RowTotal(i)
	if n == 0 {
		return 0
	}
	return float64(t.Counts[i][1]) / float64(n)
}
