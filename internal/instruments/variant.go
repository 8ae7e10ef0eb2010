package instruments

// InstrumentKind tags the closed set of instrument families the engine
// knows how to price, mirroring spec.md 4.D's tagged-variant design: one
// switch dispatch, no indirect calls in the pricing hot path.
type InstrumentKind int

const (
	KindVanilla InstrumentKind = iota
	KindBarrier
	KindAsian
	KindIRS
	KindSwaption
	KindCapFloor
	KindFxForward
	KindFxOption
)

// Instrument is the closed tagged variant over every priceable trade type.
// Exactly one of the typed fields is populated, selected by Kind; this
// mirrors a Rust/C++ enum via a Go struct-of-optionals rather than an
// interface, keeping dispatch a single switch.
type Instrument struct {
	Kind InstrumentKind

	Vanilla    *VanillaOption
	Barrier    *BarrierInstrument
	Asian      *AsianInstrument
	IRS        *IRS
	Swaption   *Swaption
	CapFloor   *CapFloor
	FxForward  *FxForward
	FxOption   *FxOption
}
