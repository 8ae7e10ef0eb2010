// Package xva implements portfolio aggregation and valuation adjustments:
// netting sets, collateral, counterparty credit parameters, and the
// EE/EPE/PFE/CVA/DVA/FVA formulas layered over simulated netting-set
// exposure paths.
package xva

import "github.com/google/uuid"

// TradeId, CounterpartyId and NettingSetId are opaque newtypes so an ID
// from one family is never interchangeable with another, per spec 9's
// "IDs are the only indirection" design note.
type TradeId uuid.UUID
type CounterpartyId uuid.UUID
type NettingSetId uuid.UUID

// NewTradeId, NewCounterpartyId and NewNettingSetId mint fresh random IDs.
func NewTradeId() TradeId             { return TradeId(uuid.New()) }
func NewCounterpartyId() CounterpartyId { return CounterpartyId(uuid.New()) }
func NewNettingSetId() NettingSetId   { return NettingSetId(uuid.New()) }

func (t TradeId) String() string         { return uuid.UUID(t).String() }
func (c CounterpartyId) String() string  { return uuid.UUID(c).String() }
func (n NettingSetId) String() string    { return uuid.UUID(n).String() }
