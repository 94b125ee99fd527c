package fiplan

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrNoHistory is returned when a projection is requested without any history.
	ErrNoHistory = errors.New("no history to project from")
	// ErrUnordered is returned when history months are not strictly increasing.
	ErrUnordered = errors.New("history months are not strictly increasing")
)

// Engine computes statements, metrics and projections.
//
// An Engine holds no state between calls, every method is a pure batch
// computation over its arguments.
type Engine struct {
	master *Master
	opts   Options
	logger *zap.Logger
}

// NewEngine returns an engine classifying accounts with master and projecting with opts.
func NewEngine(master *Master, opts Options, logger *zap.Logger) *Engine {
	if master == nil {
		master = NewMaster(nil, nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{master: master, opts: opts, logger: logger}
}

// Master returns the lookup table used by the engine.
func (e *Engine) Master() *Master { return e.master }

// Options returns the projection assumptions.
func (e *Engine) Options() Options { return e.opts }

// Report is the full output of a run.
type Report struct {
	Statements *Statements `json:"statements"`
	History    *Table      `json:"history"`
	Projection *Projection `json:"projection"`
}

// Run computes the history statements, the normalized table and the projection.
func (e *Engine) Run(l *Ledger) (*Report, error) {
	st := e.Statements(l)
	history := NewTable(l, e.master, st)
	e.logger.Info("history",
		zap.Int("months", len(history.Rows)),
		zap.Int("incomes", len(history.IncomeItems)),
		zap.Int("expenses", len(history.ExpenseItems)),
	)
	p, err := e.Project(history)
	if err != nil {
		return nil, err
	}
	return &Report{Statements: st, History: history, Projection: p}, nil
}
