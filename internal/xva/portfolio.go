package xva

import (
	"github.com/aristath/pricer-engine/internal/instruments"
	"github.com/aristath/pricer-engine/internal/perrors"
)

// Trade bundles an instrument with the counterparty/netting-set/currency
// metadata the portfolio invariants are checked against.
type Trade struct {
	ID            TradeId
	Instrument    instruments.Instrument
	CounterpartyID CounterpartyId
	NettingSetID  NettingSetId
	Notional      float64
}

// Counterparty carries the credit parameters used by CVA/DVA.
type Counterparty struct {
	ID     CounterpartyId
	Credit CreditParams
}

// NettingSet groups trades that can be legally offset on default, scoped
// to a single counterparty and (optionally) a collateral agreement.
type NettingSet struct {
	ID             NettingSetId
	CounterpartyID CounterpartyId
	Collateral     *CollateralAgreement
}

// Portfolio provides O(1) lookup by ID and holds the invariants: every
// trade's counterparty and netting-set IDs resolve; every netting set's
// counterparty resolves; a netting set owns trades only of its own
// counterparty.
type Portfolio struct {
	Trades        map[TradeId]Trade
	Counterparties map[CounterpartyId]Counterparty
	NettingSets   map[NettingSetId]NettingSet
}

// NewPortfolio builds an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Trades:         make(map[TradeId]Trade),
		Counterparties: make(map[CounterpartyId]Counterparty),
		NettingSets:    make(map[NettingSetId]NettingSet),
	}
}

// AddCounterparty registers a counterparty.
func (p *Portfolio) AddCounterparty(c Counterparty) { p.Counterparties[c.ID] = c }

// AddNettingSet registers a netting set, validating its counterparty
// resolves.
func (p *Portfolio) AddNettingSet(ns NettingSet) error {
	if _, ok := p.Counterparties[ns.CounterpartyID]; !ok {
		return &perrors.InvalidInput{Msg: "netting set references unknown counterparty"}
	}
	p.NettingSets[ns.ID] = ns
	return nil
}

// AddTrade registers a trade, validating the invariants: its counterparty
// and netting set resolve, and the netting set's counterparty matches the
// trade's counterparty.
func (p *Portfolio) AddTrade(t Trade) error {
	if _, ok := p.Counterparties[t.CounterpartyID]; !ok {
		return &perrors.InvalidInput{Msg: "trade references unknown counterparty"}
	}
	ns, ok := p.NettingSets[t.NettingSetID]
	if !ok {
		return &perrors.InvalidInput{Msg: "trade references unknown netting set"}
	}
	if ns.CounterpartyID != t.CounterpartyID {
		return &perrors.InvalidInput{Msg: "netting set owns trades only of its own counterparty"}
	}
	p.Trades[t.ID] = t
	return nil
}

// TradesInNettingSet returns every trade belonging to the given netting set.
func (p *Portfolio) TradesInNettingSet(id NettingSetId) []Trade {
	var out []Trade
	for _, t := range p.Trades {
		if t.NettingSetID == id {
			out = append(out, t)
		}
	}
	return out
}

// NotionalByCurrency sums notional across all trades by currency, using
// each instrument's own settlement currency where the variant exposes one.
func (p *Portfolio) NotionalByCurrency() map[instruments.Currency]float64 {
	totals := make(map[instruments.Currency]float64)
	for _, t := range p.Trades {
		ccy := currencyOf(t.Instrument)
		totals[ccy] += t.Notional
	}
	return totals
}

func currencyOf(inst instruments.Instrument) instruments.Currency {
	switch inst.Kind {
	case instruments.KindVanilla:
		return inst.Vanilla.Currency
	case instruments.KindBarrier:
		return inst.Barrier.Currency
	case instruments.KindAsian:
		return inst.Asian.Currency
	case instruments.KindIRS:
		return inst.IRS.Currency
	case instruments.KindFxForward:
		return inst.FxForward.Domestic
	case instruments.KindFxOption:
		return inst.FxOption.Domestic
	}
	return ""
}
