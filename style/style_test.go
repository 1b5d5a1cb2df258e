package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const twoLayerStyle = `
layers:
  m1:
    name: m1
    h_cost: 1
    v_cost: 1
    jog_cost: 2
  m2:
    name: m2
    h_cost: 1
    v_cost: 1
    jog_cost: 2
types:
  m1:
    active: true
    width: 1
  m2:
    active: true
    width: 1
contacts:
  via1:
    layer1: m1
    layer2: m2
    cost: 3
    active: true
w_width: 50
w_rate: 5
`

func TestLoad_Valid(t *testing.T) {
	s, err := Load(strings.NewReader(twoLayerStyle))
	require.NoError(t, err)
	require.Len(t, s.ActiveLayers(), 2)
	require.Contains(t, s.Layers["m1"].Contacts, "via1")

	rc := s.Contacts["via1"]
	other, ok := rc.OtherResidue("m1")
	require.True(t, ok)
	require.Equal(t, "m2", other)
}

func TestLoad_UnknownLayerRejected(t *testing.T) {
	bad := `
layers:
  m1: {name: m1, h_cost: 1, v_cost: 1}
types:
  m1: {active: true, width: 1}
  m2: {active: true, width: 1, layer: m2}
w_width: 10
w_rate: 1
`
	_, err := Load(strings.NewReader(bad))
	require.ErrorIs(t, err, ErrUnknownLayer)
}

func TestLoad_ContactBadResidueRejected(t *testing.T) {
	bad := `
layers:
  m1: {name: m1, h_cost: 1, v_cost: 1}
types:
  m1: {active: true, width: 1}
contacts:
  via1: {layer1: m1, layer2: m3, cost: 1, active: true}
w_width: 10
w_rate: 1
`
	_, err := Load(strings.NewReader(bad))
	require.ErrorIs(t, err, ErrContactBadResidues)
}

func TestLoad_NoActiveLayerRejected(t *testing.T) {
	bad := `
layers:
  m1: {name: m1, h_cost: 1, v_cost: 1}
types:
  m1: {active: false, width: 1}
w_width: 10
w_rate: 1
`
	_, err := Load(strings.NewReader(bad))
	require.ErrorIs(t, err, ErrNoActiveLayer)
}

func TestPenalty_Apply(t *testing.T) {
	p := Penalty{M: 1, E: 1}
	require.Equal(t, int64(5), p.Apply(10))
}
