package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaganVol_ATMDoesNotPanicOrBlowUp(t *testing.T) {
	v := HaganVol(100, 100, 1, 0.2, 0.5, -0.3, 0.4)
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, 5.0)
}

func TestHaganVol_NearATMContinuous(t *testing.T) {
	vAtm := HaganVol(100, 100, 1, 0.2, 0.5, -0.3, 0.4)
	vNear := HaganVol(100, 100.001, 1, 0.2, 0.5, -0.3, 0.4)
	assert.InDelta(t, vAtm, vNear, 1e-2)
}

func TestSABRModel_ConstraintsProjectIntoBounds(t *testing.T) {
	m := SABRModel{}
	cs := m.Constraints()
	assert.InDelta(t, 0.5, cs[1].Project(0.5), 1e-9)
	assert.Equal(t, 1.0, cs[1].Project(5))
	assert.Equal(t, 0.0, cs[1].Project(-5))
}
