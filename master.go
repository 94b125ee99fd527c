package fiplan

import (
	"maps"
	"slices"
)

// Master is the immutable lookup table of accounts, asset classes and payment methods.
//
// It is built once at the start of a run and shared by reference with every
// calculator that needs names or classification.
type Master struct {
	accounts map[string]Account
	classes  map[string]AssetClass
	methods  map[string]PaymentMethod
}

// NewMaster indexes the master records by id. Later duplicates win.
func NewMaster(accounts []Account, classes []AssetClass, methods []PaymentMethod) *Master {
	m := &Master{
		accounts: make(map[string]Account, len(accounts)),
		classes:  make(map[string]AssetClass, len(classes)),
		methods:  make(map[string]PaymentMethod, len(methods)),
	}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	for _, c := range classes {
		m.classes[c.ID] = c
	}
	for _, p := range methods {
		m.methods[p.ID] = p
	}
	return m
}

// Account returns the account with that id.
func (m *Master) Account(id string) (Account, bool) {
	a, ok := m.accounts[id]
	return a, ok
}

// Accounts returns all accounts sorted by id.
func (m *Master) Accounts() []Account {
	ids := slices.Sorted(maps.Keys(m.accounts))
	res := make([]Account, 0, len(ids))
	for _, id := range ids {
		res = append(res, m.accounts[id])
	}
	return res
}

// AccountName returns the display name of an account, or the id itself if unknown.
func (m *Master) AccountName(id string) string {
	if a, ok := m.accounts[id]; ok && a.Name != "" {
		return a.Name
	}
	return id
}

// ClassName returns the display name of an asset class, or the id itself if unknown.
func (m *Master) ClassName(id string) string {
	if c, ok := m.classes[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

// MethodName returns the display name of a payment method, or the id itself if unknown.
func (m *Master) MethodName(id string) string {
	if p, ok := m.methods[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}

// Classes returns all asset class ids, sorted.
func (m *Master) Classes() []string { return slices.Sorted(maps.Keys(m.classes)) }

// Methods returns all payment method ids, sorted.
func (m *Master) Methods() []string { return slices.Sorted(maps.Keys(m.methods)) }
