package cmd

import (
	"testing"

	"github.com/magiconair/properties/assert"

	"github.com/gridtools/cubedsphere/cubesphere"
)

func TestGridDeck(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
GridType: gnomonic_ed
SuperGridSize: 96
StretchMode: schmidt
StretchFactor: 3.
TargetLon: 262.4
TargetLat: 38.5
OutputLengthAngle: true
Nests:
  - ParentTile: 6
    RefineRatio: 3
    IStart: 11
    IEnd: 86
    JStart: 11
    JEnd: 86
`)
	var deck GridDeck
	if err = deck.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, deck.SuperGridSize, 96)
	assert.Equal(t, deck.StretchFactor, 3.)
	assert.Equal(t, deck.Nests[0].ParentTile, 6)
	assert.Equal(t, deck.Nests[0].JEnd, 86)
	deck.Print()

	spec, err := specFromDeck(&deck)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, spec.Projection, cubesphere.Equidistant)
	assert.Equal(t, spec.Stretch.Mode, cubesphere.Schmidt)
	assert.Equal(t, spec.SuperGridSizes[5], 96)
	assert.Equal(t, len(spec.Nests), 1)
}

func TestGridDeckLegacyGlobalRefine(t *testing.T) {
	fileInput := []byte(`
Title: Legacy GR
GridType: gnomonic_ed
SuperGridSize: 96
LegacyGlobalRefine: true
Nests:
  - ParentTile: 0
    RefineRatio: 2
`)
	var deck GridDeck
	if err := deck.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, deck.LegacyGlobalRefine, true)

	spec, err := specFromDeck(&deck)
	if err != nil {
		panic(err)
	}
	assert.Equal(t, spec.LegacyGlobalRefine, true)
	assert.Equal(t, spec.Nests[0].ParentTile, 0)
}

func TestSpecFromDeckBadStretchMode(t *testing.T) {
	deck := &GridDeck{GridType: "gnomonic_ed", SuperGridSize: 48, StretchMode: "conformal"}
	_, err := specFromDeck(deck)
	if err == nil {
		t.Fatal("expected an error for an unknown stretch mode")
	}
}
