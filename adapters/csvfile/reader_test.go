package csvfile

import (
	"strings"
	"testing"
)

func TestRead_HeaderAndRows(t *testing.T) {
	src := strings.NewReader("variant,revenue\ncontrol,12.5\ntreatment,14.1\n")

	table, err := NewReader().Read(src)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(table.Columns) != 2 || table.Columns[0] != "variant" || table.Columns[1] != "revenue" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][1] != "14.1" {
		t.Fatalf("unexpected cell: %q", table.Rows[1][1])
	}
}

func TestRead_RaggedRowsTolerated(t *testing.T) {
	src := strings.NewReader("variant,revenue,note\ncontrol,12.5\ntreatment,14.1,ok\n")

	table, err := NewReader().Read(src)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if len(table.Rows[0]) != 2 || len(table.Rows[1]) != 3 {
		t.Fatalf("ragged widths not preserved: %v", table.Rows)
	}
}

func TestRead_LeadingSpaceTrimmed(t *testing.T) {
	src := strings.NewReader("variant, revenue\ncontrol, 12.5\n")

	table, err := NewReader().Read(src)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.Columns[1] != "revenue" {
		t.Fatalf("header not trimmed: %q", table.Columns[1])
	}
	if table.Rows[0][1] != "12.5" {
		t.Fatalf("cell not trimmed: %q", table.Rows[0][1])
	}
}

func TestRead_EmptyFile(t *testing.T) {
	if _, err := NewReader().Read(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	if _, err := NewReader().Read(strings.NewReader("variant,revenue\n")); err == nil {
		t.Fatal("expected error for header-only file")
	}
}
