package fiplan

import (
	"maps"
	"slices"

	"github.com/etnz/fiplan/date"
)

// Flow is the forecast cash flow of a month driving the roll-forward.
type Flow struct {
	Month      date.Month
	NetSavings float64
	Pension    map[string]float64 // contribution by pension account id
}

// PensionContribution is the total contribution to pension accounts.
func (f Flow) PensionContribution() float64 {
	var total float64
	for _, id := range slices.Sorted(maps.Keys(f.Pension)) {
		total += f.Pension[id]
	}
	return total
}

// State is the balance sheet position at the end of a month.
type State struct {
	Month    date.Month
	Liquid   float64
	Risk     float64
	Pension  float64
	Gain     float64
	Classes  map[string]float64 // balance by asset class id
	Accounts map[string]float64 // balance by account id
}

// Total is the sum of the three buckets.
func (s State) Total() float64 { return s.Liquid + s.Risk + s.Pension }

func (s State) clone() State {
	s.Classes = maps.Clone(s.Classes)
	s.Accounts = maps.Clone(s.Accounts)
	if s.Classes == nil {
		s.Classes = make(map[string]float64)
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]float64)
	}
	return s
}

// rollForward is the accumulator threaded from one forecast month to the next.
type rollForward struct {
	State
	geo    float64
	alloc  Allocation
	master *Master
}

// RollForward simulates the balance sheet month after month from start.
//
// Risk assets compound by geo every month. A positive liquid flow (net
// savings minus pension contributions) is invested in risk assets, a
// negative one is drawn from liquid assets. Pension assets only receive
// contributions. Class and account balances follow the same policy, the
// flows landing on the target class and on the largest account of the bucket.
func (e *Engine) RollForward(start State, flows []Flow, geo float64) []State {
	r := &rollForward{State: start.clone(), geo: geo, alloc: e.opts.Allocation, master: e.master}
	states := make([]State, 0, len(flows))
	for _, f := range flows {
		r.step(f)
		states = append(states, r.State.clone())
	}
	return states
}

// step advances the accumulator by one month.
func (r *rollForward) step(f Flow) {
	prevTotal := r.Total()
	contrib := f.PensionContribution()
	flow := f.NetSavings - contrib
	growth := r.Risk * r.geo

	var toRisk, toCash float64
	if flow > 0 {
		toRisk = flow
	} else {
		toCash = flow
	}
	r.Month = f.Month
	r.Pension += contrib
	r.Risk += growth + toRisk
	r.Liquid += toCash
	r.Gain = r.Total() - prevTotal - f.NetSavings

	r.stepClasses(toRisk, toCash, contrib)
	r.stepAccounts(toRisk, toCash, f.Pension)
}

func (r *rollForward) stepClasses(toRisk, toCash, contrib float64) {
	for id, v := range r.Classes {
		if slices.Contains(r.alloc.RiskClasses, id) {
			r.Classes[id] = v * (1 + r.geo)
		}
	}
	if toRisk != 0 {
		r.Classes[r.alloc.TargetRiskClass] += toRisk
	}
	if toCash != 0 {
		r.Classes[r.alloc.TargetCashClass] += toCash
	}
	if contrib != 0 && len(r.alloc.PensionClasses) > 0 {
		r.Classes[r.alloc.PensionClasses[0]] += contrib
	}
}

func (r *rollForward) stepAccounts(toRisk, toCash float64, pension map[string]float64) {
	// targets are picked on the balances before this month's growth.
	riskTarget := r.largest(Risk, r.alloc.DefaultRiskAccount)
	cashTarget := r.largest(Liquid, r.alloc.DefaultCashAccount)

	for id, v := range r.Accounts {
		if acc, ok := r.master.Account(id); ok && acc.Bucket() == Risk {
			r.Accounts[id] = v * (1 + r.geo)
		}
	}
	if toRisk != 0 {
		r.Accounts[riskTarget] += toRisk
	}
	if toCash != 0 {
		r.Accounts[cashTarget] += toCash
	}
	for id, c := range pension {
		r.Accounts[id] += c
	}
}

// largest returns the account of bucket b holding the largest balance, or def if there is none.
// Accounts are visited by id, the first one wins a tie.
func (r *rollForward) largest(b Bucket, def string) string {
	target, found := def, false
	var best float64
	for _, id := range slices.Sorted(maps.Keys(r.Accounts)) {
		acc, ok := r.master.Account(id)
		if !ok || acc.Bucket() != b {
			continue
		}
		if v := r.Accounts[id]; !found || v > best {
			target, best, found = id, v, true
		}
	}
	return target
}
