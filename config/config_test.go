package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/fiplan"
	"github.com/google/go-cmp/cmp"
)

// writeConfig is a helper for test to write a configuration file.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fiplan.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if diff := cmp.Diff(fiplan.DefaultOptions(), c.Plan); diff != "" {
		t.Errorf("Load().Plan mismatch (-want +got):\n%s", diff)
	}
	if c.DataDir != "." || c.Currency != "JPY" {
		t.Errorf("Load() = %q, %q, want \".\", \"JPY\"", c.DataDir, c.Currency)
	}
	if got, want := c.Output(), filepath.Join("data", "calculated"); got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/srv/household"
currency = "EUR"

[plan]
horizon = 120
annual_return = 0.04
bonus_months = [7]

[plan.categories]
salary = ["acme"]

[plan.allocation]
default_risk_account = "rakuten"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := fiplan.DefaultOptions()
	want.Horizon = 120
	want.AnnualReturn = 0.04
	want.BonusMonths = []int{7}
	want.Categories.Salary = []string{"acme"}
	want.Allocation.DefaultRiskAccount = "rakuten"
	if diff := cmp.Diff(want, c.Plan); diff != "" {
		t.Errorf("Load().Plan mismatch (-want +got):\n%s", diff)
	}
	if got, want := c.Output(), filepath.Join("/srv/household", "data", "calculated"); got != want {
		t.Errorf("Output() = %q, want %q", got, want)
	}
	if c.File() != path {
		t.Errorf("File() = %q, want %q", c.File(), path)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FIPLAN_PLAN_HORIZON", "24")
	t.Setenv("FIPLAN_OUTPUT_DIR", "/tmp/out")
	c, err := Load(writeConfig(t, "[plan]\nhorizon = 120\n"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if c.Plan.Horizon != 24 {
		t.Errorf("Plan.Horizon = %d, want 24", c.Plan.Horizon)
	}
	if c.Output() != "/tmp/out" {
		t.Errorf("Output() = %q, want /tmp/out", c.Output())
	}
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name, content, want string
	}{
		{"horizon", "[plan]\nhorizon = 0\n", "Horizon"},
		{"bonus month", "[plan]\nbonus_months = [13]\n", "BonusMonths"},
		{"currency", "currency = \"XXXX\"\n", "Currency"},
		{"target class", "[plan.allocation]\ntarget_risk_class = \"\"\n", "TargetRiskClass"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatalf("Load() expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("Load() on a missing file: expected an error")
	}
}
