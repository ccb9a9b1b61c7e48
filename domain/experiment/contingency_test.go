package experiment

import (
	"math"
	"testing"
)

func binarySample(label string, successes, n int) Sample {
	values := make([]float64, n)
	for i := 0; i < successes; i++ {
		values[i] = 1
	}
	return Sample{Label: label, Values: values}
}

func TestNewContingencyTable_CountsAndExpected(t *testing.T) {
	pair := VariantPair{
		Control:   binarySample("A", 2, 10),
		Treatment: binarySample("B", 4, 10),
		Metric:    MetricDiscrete,
	}
	table := NewContingencyTable(pair)

	if table.Counts != [2][2]int{{8, 2}, {6, 4}} {
		t.Fatalf("unexpected counts %v", table.Counts)
	}
	if table.GrandTotal != 20 {
		t.Fatalf("expected grand total 20, got %d", table.GrandTotal)
	}

	want := [2][2]float64{{7, 3}, {7, 3}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(table.Expected[i][j]-want[i][j]) > 1e-12 {
				t.Fatalf("expected[%d][%d] = %v, want %v", i, j, table.Expected[i][j], want[i][j])
			}
		}
	}
	if table.MinExpected != 3 {
		t.Fatalf("expected min expected 3, got %v", table.MinExpected)
	}
}

func TestContingencyTable_RowColumnTotalsAndRates(t *testing.T) {
	pair := VariantPair{
		Control:   binarySample("control", 40, 100),
		Treatment: binarySample("treatment", 60, 100),
	}
	table := NewContingencyTable(pair)

	if table.RowTotal(0) != 100 || table.RowTotal(1) != 100 {
		t.Fatalf("unexpected row totals %d, %d", table.RowTotal(0), table.RowTotal(1))
	}
	if table.ColumnTotal(1) != 100 {
		t.Fatalf("expected 100 total successes, got %d", table.ColumnTotal(1))
	}
	if table.Rate(0) != 0.4 || table.Rate(1) != 0.6 {
		t.Fatalf("unexpected rates %v, %v", table.Rate(0), table.Rate(1))
	}
	if table.RowLabels != [2]string{"control", "treatment"} {
		t.Fatalf("unexpected row labels %v", table.RowLabels)
	}
}

func TestSample_SuccessesAndConstant(t *testing.T) {
	s := Sample{Label: "x", Values: []float64{1, 0, 1, 1, 0}}
	if s.Successes() != 3 {
		t.Fatalf("expected 3 successes, got %d", s.Successes())
	}
	if s.ConstantValue() {
		t.Fatal("mixed sample reported constant")
	}

	c := Sample{Label: "y", Values: []float64{7, 7, 7}}
	if !c.ConstantValue() {
		t.Fatal("constant sample not detected")
	}
	one := Sample{Label: "z", Values: []float64{3.2}}
	if !one.ConstantValue() {
		t.Fatal("single observation should count as constant")
	}
}

func TestVariantPair_ValidateRejectsEmptySamples(t *testing.T) {
	pair := VariantPair{
		Control:   Sample{Label: "A"},
		Treatment: binarySample("B", 1, 5),
	}
	if err := pair.Validate(); err == nil {
		t.Fatal("expected error for empty control sample")
	}
}
