package prepare

import (
	"errors"
	"testing"

	"ablab/domain/core"
	"ablab/domain/dataset"
	"ablab/domain/experiment"
)

func table(columns []string, rows ...[]string) dataset.Table {
	return dataset.Table{Columns: columns, Rows: rows}
}

func TestPrepare_DiscreteBinaryColumn(t *testing.T) {
	tbl := table([]string{"variant", "converted"},
		[]string{"A", "1"},
		[]string{"B", "0"},
		[]string{"A", "0"},
		[]string{"B", "1"},
		[]string{"A", "1"},
	)

	pair, err := Prepare(tbl, "variant", "converted", experiment.MetricDiscrete, Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if pair.Control.Label != "A" || pair.Treatment.Label != "B" {
		t.Fatalf("labels = %s, %s; first-seen should be control", pair.Control.Label, pair.Treatment.Label)
	}
	if pair.Control.Successes() != 2 || pair.Control.N() != 3 {
		t.Fatalf("control = %d/%d, want 2/3", pair.Control.Successes(), pair.Control.N())
	}
	if pair.Treatment.Successes() != 1 || pair.Treatment.N() != 2 {
		t.Fatalf("treatment = %d/%d, want 1/2", pair.Treatment.Successes(), pair.Treatment.N())
	}
}

func TestPrepare_DiscreteTextualValuesMapNaturally(t *testing.T) {
	tbl := table([]string{"variant", "outcome"},
		[]string{"A", "yes"},
		[]string{"A", "no"},
		[]string{"B", "YES"},
		[]string{"B", "Yes"},
	)

	pair, err := Prepare(tbl, "variant", "outcome", experiment.MetricDiscrete, Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	// "no" < "yes" lexicographically, so yes codes 1.
	if pair.Control.Successes() != 1 {
		t.Fatalf("control successes = %d, want 1", pair.Control.Successes())
	}
	if pair.Treatment.Successes() != 2 {
		t.Fatalf("treatment successes = %d, want 2; casing must not split the domain", pair.Treatment.Successes())
	}
}

func TestPrepare_DiscreteNumericDomainOrdersNumerically(t *testing.T) {
	// {2, 10}: numeric order puts 2 at code 0; lexicographic order would
	// wrongly put "10" first.
	tbl := table([]string{"variant", "plan"},
		[]string{"A", "2"},
		[]string{"A", "10"},
		[]string{"B", "10"},
		[]string{"B", "10"},
	)

	pair, err := Prepare(tbl, "variant", "plan", experiment.MetricDiscrete, Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if pair.Control.Successes() != 1 {
		t.Fatalf("control successes = %d, want 1", pair.Control.Successes())
	}
	if pair.Treatment.Successes() != 2 {
		t.Fatalf("treatment successes = %d, want 2", pair.Treatment.Successes())
	}
}

func TestPrepare_DiscreteRejectsWideDomain(t *testing.T) {
	tbl := table([]string{"variant", "outcome"},
		[]string{"A", "yes"},
		[]string{"A", "no"},
		[]string{"B", "maybe"},
		[]string{"B", "yes"},
	)

	_, err := Prepare(tbl, "variant", "outcome", experiment.MetricDiscrete, Options{})
	if !errors.Is(err, core.ErrInvalidMetricDomain) {
		t.Fatalf("expected ErrInvalidMetricDomain, got %v", err)
	}
}

func TestPrepare_ContinuousDropsNonNumericRows(t *testing.T) {
	tbl := table([]string{"variant", "revenue"},
		[]string{"A", "12.5"},
		[]string{"A", "n/a"},
		[]string{"B", "8.1"},
		[]string{"B", ""},
		[]string{"B", "9.9"},
	)

	pair, err := Prepare(tbl, "variant", "revenue", experiment.MetricContinuous, Options{})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if pair.DroppedRows != 2 {
		t.Fatalf("dropped = %d, want 2 (one blank, one non-numeric)", pair.DroppedRows)
	}
	if pair.Control.N() != 1 || pair.Treatment.N() != 2 {
		t.Fatalf("sizes = %d, %d; want 1, 2", pair.Control.N(), pair.Treatment.N())
	}
}

func TestPrepare_ControlLabelOverridesEncounterOrder(t *testing.T) {
	tbl := table([]string{"variant", "m"},
		[]string{"new", "1.0"},
		[]string{"old", "2.0"},
		[]string{"new", "3.0"},
	)

	pair, err := Prepare(tbl, "variant", "m", experiment.MetricContinuous, Options{ControlLabel: "old"})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if pair.Control.Label != "old" || pair.Treatment.Label != "new" {
		t.Fatalf("labels = %s, %s; control pin ignored", pair.Control.Label, pair.Treatment.Label)
	}
}

func TestPrepare_UnknownControlLabelKeepsEncounterOrder(t *testing.T) {
	tbl := table([]string{"variant", "m"},
		[]string{"A", "1.0"},
		[]string{"B", "2.0"},
	)

	pair, err := Prepare(tbl, "variant", "m", experiment.MetricContinuous, Options{ControlLabel: "Z"})
	if err != nil {
		t.Fatalf("prepare: %v", err)
	}
	if pair.Control.Label != "A" {
		t.Fatalf("control = %s, want first-seen A", pair.Control.Label)
	}
}

func TestPrepare_ColumnLookupIsCaseInsensitive(t *testing.T) {
	tbl := table([]string{"Variant", "Revenue"},
		[]string{"A", "1.0"},
		[]string{"B", "2.0"},
	)

	if _, err := Prepare(tbl, "variant", "revenue", experiment.MetricContinuous, Options{}); err != nil {
		t.Fatalf("prepare: %v", err)
	}
}

func TestPrepare_MissingColumn(t *testing.T) {
	tbl := table([]string{"variant", "m"}, []string{"A", "1"})

	_, err := Prepare(tbl, "variant", "absent", experiment.MetricContinuous, Options{})
	if !errors.Is(err, core.ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestPrepare_VariantCountMustBeTwo(t *testing.T) {
	three := table([]string{"variant", "m"},
		[]string{"A", "1"}, []string{"B", "2"}, []string{"C", "3"},
	)
	if _, err := Prepare(three, "variant", "m", experiment.MetricContinuous, Options{}); !errors.Is(err, core.ErrVariantCount) {
		t.Fatalf("expected ErrVariantCount for 3 variants, got %v", err)
	}

	one := table([]string{"variant", "m"},
		[]string{"A", "1"}, []string{"A", "2"},
	)
	if _, err := Prepare(one, "variant", "m", experiment.MetricContinuous, Options{}); !errors.Is(err, core.ErrVariantCount) {
		t.Fatalf("expected ErrVariantCount for 1 variant, got %v", err)
	}
}

func TestPrepare_AllValuesDroppedIsInsufficientData(t *testing.T) {
	tbl := table([]string{"variant", "m"},
		[]string{"A", "oops"},
		[]string{"A", "1.5"},
		[]string{"B", "bad"},
	)

	_, err := Prepare(tbl, "variant", "m", experiment.MetricContinuous, Options{})
	if !errors.Is(err, core.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}
