package fiplan

// Options holds the assumptions of a projection run.
type Options struct {
	Horizon            int        `mapstructure:"horizon" validate:"gt=0"`              // number of forecast months
	AnnualReturn       float64    `mapstructure:"annual_return" validate:"gte=0,lt=1"`  // used by fi_ratio_next_12m and as the default return
	AlphaNoiseFloor    float64    `mapstructure:"alpha_noise_floor" validate:"gte=0"`   // |alpha| at or below this is 0
	BonusMonths        []int      `mapstructure:"bonus_months" validate:"dive,min=1,max=12"`
	ExpenseCVThreshold float64    `mapstructure:"expense_cv_threshold" validate:"gt=0"` // CV below is a fixed expense
	AdjustmentMethod   string     `mapstructure:"adjustment_method"`
	DefaultDecay       float64    `mapstructure:"default_decay" validate:"gte=0,lte=1"`
	Categories         Categories `mapstructure:"categories"`
	Allocation         Allocation `mapstructure:"allocation"`
}

// Categories lists the keywords matched against income account ids and names to pick a forecaster.
type Categories struct {
	Salary   []string `mapstructure:"salary"`
	Decaying []string `mapstructure:"decaying"`
	Fixed    []string `mapstructure:"fixed"`
}

// Allocation describes how forecast flows are spread over asset classes and accounts.
type Allocation struct {
	RiskClasses        []string `mapstructure:"risk_classes"`
	CashClasses        []string `mapstructure:"cash_classes"`
	PensionClasses     []string `mapstructure:"pension_classes"`
	TargetRiskClass    string   `mapstructure:"target_risk_class" validate:"required"`
	TargetCashClass    string   `mapstructure:"target_cash_class" validate:"required"`
	DefaultRiskAccount string   `mapstructure:"default_risk_account" validate:"required"`
	DefaultCashAccount string   `mapstructure:"default_cash_account" validate:"required"`
}

// DefaultOptions returns the reference assumptions: 30 years, 5% a year.
func DefaultOptions() Options {
	return Options{
		Horizon:            360,
		AnnualReturn:       0.05,
		AlphaNoiseFloor:    0.0001,
		BonusMonths:        []int{6, 12},
		ExpenseCVThreshold: 0.3,
		AdjustmentMethod:   "adjustment",
		DefaultDecay:       0.5,
		Categories: Categories{
			Salary:   []string{"yucho", "sony", "deutsche"},
			Decaying: []string{"minna"},
			Fixed:    []string{"kosei_nenkin", "dc"},
		},
		Allocation: Allocation{
			RiskClasses:        []string{"fund", "stock_us", "stock_jp", "fx", "crypto", "vc"},
			CashClasses:        []string{"cash"},
			PensionClasses:     []string{"pension"},
			TargetRiskClass:    "fund",
			TargetCashClass:    "cash",
			DefaultRiskAccount: "sbi_sec",
			DefaultCashAccount: "cash",
		},
	}
}

// defaultMonthlyReturn is the monthly return used when history does not provide one.
func (o Options) defaultMonthlyReturn() float64 { return o.AnnualReturn / 12 }
