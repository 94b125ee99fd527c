// Package config loads the run configuration of fip.
//
// Configuration is read from a TOML file, then overridden by FIPLAN_
// environment variables: the key plan.annual_return is read from
// FIPLAN_PLAN_ANNUAL_RETURN. Every key has a default so that an empty
// configuration runs the reference projection.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/fiplan"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultFile is the configuration file looked up in the current directory when none is given.
const DefaultFile = "fiplan.toml"

// Config is the run configuration.
type Config struct {
	DataDir   string         `mapstructure:"data_dir" validate:"required"`
	OutputDir string         `mapstructure:"output_dir" validate:"required"`
	Currency  string         `mapstructure:"currency" validate:"required,iso4217"`
	Plan      fiplan.Options `mapstructure:"plan"`

	file string // file actually read, empty if none
}

// File returns the path of the configuration file that was read, if any.
func (c *Config) File() string { return c.file }

// setDefaults registers every key with its default value, so that environment overrides apply to them.
func setDefaults(v *viper.Viper) {
	o := fiplan.DefaultOptions()
	v.SetDefault("data_dir", ".")
	v.SetDefault("output_dir", filepath.Join("data", "calculated"))
	v.SetDefault("currency", "JPY")

	v.SetDefault("plan.horizon", o.Horizon)
	v.SetDefault("plan.annual_return", o.AnnualReturn)
	v.SetDefault("plan.alpha_noise_floor", o.AlphaNoiseFloor)
	v.SetDefault("plan.bonus_months", o.BonusMonths)
	v.SetDefault("plan.expense_cv_threshold", o.ExpenseCVThreshold)
	v.SetDefault("plan.adjustment_method", o.AdjustmentMethod)
	v.SetDefault("plan.default_decay", o.DefaultDecay)

	v.SetDefault("plan.categories.salary", o.Categories.Salary)
	v.SetDefault("plan.categories.decaying", o.Categories.Decaying)
	v.SetDefault("plan.categories.fixed", o.Categories.Fixed)

	a := o.Allocation
	v.SetDefault("plan.allocation.risk_classes", a.RiskClasses)
	v.SetDefault("plan.allocation.cash_classes", a.CashClasses)
	v.SetDefault("plan.allocation.pension_classes", a.PensionClasses)
	v.SetDefault("plan.allocation.target_risk_class", a.TargetRiskClass)
	v.SetDefault("plan.allocation.target_cash_class", a.TargetCashClass)
	v.SetDefault("plan.allocation.default_risk_account", a.DefaultRiskAccount)
	v.SetDefault("plan.allocation.default_cash_account", a.DefaultCashAccount)
}

// Load reads the configuration file at path, applies the environment and validates the result.
//
// When path is empty, DefaultFile is looked up in the current directory and
// its absence is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("FIPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFile, filepath.Ext(DefaultFile)))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("could not decode configuration %q: %w", v.ConfigFileUsed(), err)
	}
	c.file = v.ConfigFileUsed()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the values against their constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: invalid value %v (%s)", e.Namespace(), e.Value(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Input returns the directory holding data/input and master.
func (c *Config) Input() string { return c.DataDir }

// Output returns the directory where reports are written, relative to DataDir when not absolute.
func (c *Config) Output() string {
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(c.DataDir, c.OutputDir)
}
