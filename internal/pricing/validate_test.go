package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pdlcProduct(stock int64) ProductInfo {
	return ProductInfo{ID: "p1", Name: "PDLC Film", Category: CategoryPDLCFilm, UnitPrice: 1000, Stock: stock}
}

func TestNormalizePDLC(t *testing.T) {
	cfg := PDLCConfig{Dimensions: []DimensionPair{
		{Height: 5.3, Width: 8.1},
		{Height: math.NaN(), Width: -4},
	}}

	norm := Normalize(cfg).(PDLCConfig)

	require.Len(t, norm.Dimensions, 2)
	assert.Equal(t, DimensionPair{Height: 5.5, Width: 8}, norm.Dimensions[0])
	assert.Equal(t, DimensionPair{Height: 0, Width: 0}, norm.Dimensions[1])
	// la configuración original no se toca
	assert.Equal(t, 5.3, cfg.Dimensions[0].Height)
}

func TestNormalizeCurtainSliding(t *testing.T) {
	cfg := CurtainConfig{
		Kind: CategoryCurtainSliding,
		Tracks: []TrackEntry{
			{Length: 30, Quantity: 0},
			{Length: 0.4, Quantity: 2},
			{Length: 0, Quantity: 1},
		},
	}

	norm := Normalize(cfg).(CurtainConfig)

	assert.Equal(t, 27.0, norm.Tracks[0].Length)
	assert.Equal(t, 1, norm.Tracks[0].Quantity)
	assert.Equal(t, 1.0, norm.Tracks[1].Length)
	assert.Equal(t, 0.0, norm.Tracks[2].Length)
	assert.Equal(t, ConnectivityZigbee, norm.Connectivity)
}

func TestNormalizeCurtainRoller(t *testing.T) {
	cfg := CurtainConfig{
		Kind:   CategoryCurtainRoller,
		Tracks: []TrackEntry{{Length: 20, Quantity: 1}},
	}

	norm := Normalize(cfg).(CurtainConfig)

	// roller: riel fijo de 8 pies, el largo editado se descarta
	assert.Equal(t, 8.0, norm.Tracks[0].Length)
	assert.Equal(t, 1, norm.Quantity)
}

func TestNormalizeQuantities(t *testing.T) {
	sw := Normalize(SwitchConfig{Quantity: 0}).(SwitchConfig)
	assert.Equal(t, 1, sw.Quantity)

	li := Normalize(LightingConfig{Quantity: -3}).(LightingConfig)
	assert.Equal(t, 1, li.Quantity)
	assert.Equal(t, ConnectivityZigbee, li.Connectivity)

	bu := Normalize(BundleConfig{Accessories: map[int]int{0: 2, 1: 0, -1: 5}}).(BundleConfig)
	assert.Equal(t, map[int]int{0: 2}, bu.Accessories)
}

func TestValidateOutOfStockOverridesEverything(t *testing.T) {
	cfg := PDLCConfig{Dimensions: []DimensionPair{{Height: 5, Width: 8}}}

	res := Validate(pdlcProduct(0), cfg)

	require.False(t, res.Purchasable)
	assert.Equal(t, []string{ReasonOutOfStock}, res.Reasons)
}

func TestValidateCategoryMismatch(t *testing.T) {
	res := Validate(pdlcProduct(10), SwitchConfig{Quantity: 1})

	require.False(t, res.Purchasable)
	assert.Equal(t, []string{ReasonCategoryMismatch}, res.Reasons)
}

func TestValidatePDLC(t *testing.T) {
	t.Run("needs at least one valid pair", func(t *testing.T) {
		res := Validate(pdlcProduct(5), PDLCConfig{Dimensions: []DimensionPair{{Height: 5, Width: 0}}})
		require.False(t, res.Purchasable)
		assert.Equal(t, []string{ReasonNoDimensions}, res.Reasons)
	})

	t.Run("one valid pair is enough", func(t *testing.T) {
		res := Validate(pdlcProduct(5), PDLCConfig{Dimensions: []DimensionPair{
			{Height: 5, Width: 0},
			{Height: 4, Width: 3},
		}})
		assert.True(t, res.Purchasable)
	})
}

func TestValidateCurtain(t *testing.T) {
	sliding := ProductInfo{ID: "c1", Name: "Sliding Curtain", Category: CategoryCurtainSliding, UnitPrice: 5000, Stock: 3}

	t.Run("sliding needs a track with length", func(t *testing.T) {
		res := Validate(sliding, CurtainConfig{Kind: CategoryCurtainSliding, Tracks: []TrackEntry{{Length: 0, Quantity: 1}}})
		require.False(t, res.Purchasable)
		assert.Equal(t, []string{ReasonNoTracks}, res.Reasons)
	})

	t.Run("roller is purchasable without tracks", func(t *testing.T) {
		roller := ProductInfo{ID: "c2", Name: "Roller Curtain", Category: CategoryCurtainRoller, UnitPrice: 12000, Stock: 3}
		res := Validate(roller, CurtainConfig{Kind: CategoryCurtainRoller, Quantity: 1})
		assert.True(t, res.Purchasable)
	})
}

func TestValidateSwitchAlwaysPurchasable(t *testing.T) {
	sw := ProductInfo{ID: "s1", Name: "Smart Switch", Category: CategorySmartSwitch, UnitPrice: 1500, Stock: 10}

	res := Validate(sw, SwitchConfig{Quantity: 8, Installation: true})

	assert.True(t, res.Purchasable)
}

func TestValidateBundle(t *testing.T) {
	cam := ProductInfo{
		ID: "b1", Name: "Camera Kit", Category: CategorySmartCamera, Stock: 4,
		Accessories: []Accessory{{Name: "Indoor Cam", Price: 3000}},
	}

	t.Run("nothing selected is rejected", func(t *testing.T) {
		res := Validate(cam, BundleConfig{})
		require.False(t, res.Purchasable)
		assert.Equal(t, []string{ReasonNothingSelected}, res.Reasons)
	})

	t.Run("only out of range indices is rejected", func(t *testing.T) {
		res := Validate(cam, BundleConfig{Accessories: map[int]int{5: 2}})
		require.False(t, res.Purchasable)
		assert.Equal(t, []string{ReasonNothingSelected}, res.Reasons)
	})

	t.Run("an accessory quantity is enough", func(t *testing.T) {
		res := Validate(cam, BundleConfig{Accessories: map[int]int{0: 1}})
		assert.True(t, res.Purchasable)
	})

	t.Run("installation alone is enough", func(t *testing.T) {
		res := Validate(cam, BundleConfig{Installation: true})
		assert.True(t, res.Purchasable)
	})
}
