package xva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pricer-engine/internal/instruments"
)

func TestPortfolio_AddTrade_RejectsUnknownCounterparty(t *testing.T) {
	p := NewPortfolio()
	trade := Trade{ID: NewTradeId(), CounterpartyID: NewCounterpartyId(), NettingSetID: NewNettingSetId()}
	err := p.AddTrade(trade)
	require.Error(t, err)
}

func TestPortfolio_AddTrade_RejectsNettingSetCounterpartyMismatch(t *testing.T) {
	p := NewPortfolio()
	cpA := Counterparty{ID: NewCounterpartyId()}
	cpB := Counterparty{ID: NewCounterpartyId()}
	p.AddCounterparty(cpA)
	p.AddCounterparty(cpB)

	ns := NettingSet{ID: NewNettingSetId(), CounterpartyID: cpA.ID}
	require.NoError(t, p.AddNettingSet(ns))

	trade := Trade{ID: NewTradeId(), CounterpartyID: cpB.ID, NettingSetID: ns.ID}
	err := p.AddTrade(trade)
	assert.Error(t, err)
}

func TestPortfolio_AddTrade_AcceptsConsistentTrade(t *testing.T) {
	p := NewPortfolio()
	cp := Counterparty{ID: NewCounterpartyId(), Credit: CreditParams{Hazard: 0.01, Recovery: 0.4}}
	p.AddCounterparty(cp)
	ns := NettingSet{ID: NewNettingSetId(), CounterpartyID: cp.ID}
	require.NoError(t, p.AddNettingSet(ns))

	trade := Trade{
		ID:             NewTradeId(),
		CounterpartyID: cp.ID,
		NettingSetID:   ns.ID,
		Notional:       1_000_000,
		Instrument: instruments.Instrument{
			Kind:    instruments.KindVanilla,
			Vanilla: &instruments.VanillaOption{Currency: "USD"},
		},
	}
	require.NoError(t, p.AddTrade(trade))
	assert.Len(t, p.TradesInNettingSet(ns.ID), 1)
	assert.Equal(t, 1_000_000.0, p.NotionalByCurrency()["USD"])
}
