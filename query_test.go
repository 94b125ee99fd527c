package fiplan

import (
	"testing"
)

func TestQuery(t *testing.T) {
	e := testEngine(t)
	report, err := e.Run(testLedger())
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	got, err := report.Query("$.projection.start")
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	if got != "2025-01" {
		t.Errorf("Query($.projection.start) = %v, want 2025-01", got)
	}

	got, err = report.Query("$.history.rows[0].incomes.bank")
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	if got != 300000.0 {
		t.Errorf("Query($.history.rows[0].incomes.bank) = %v, want 300000", got)
	}

	got, err = report.Query("$.statements.cashflow[*].month")
	if err != nil {
		t.Fatalf("Query() unexpected error: %v", err)
	}
	if months, ok := got.([]any); !ok || len(months) != 24 {
		t.Errorf("Query($.statements.cashflow[*].month) = %v, want 24 months", got)
	}

	if _, err := report.Query("$.["); err == nil {
		t.Errorf("Query() with an invalid path: expected an error")
	}
}
