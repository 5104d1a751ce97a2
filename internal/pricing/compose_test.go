package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suma de líneas nombradas == total, para cualquier desglose
func requireLinesSumToTotal(t *testing.T, b Breakdown) {
	t.Helper()
	sum := int64(0)
	for _, line := range b.Lines {
		sum += line.Amount
	}
	require.Equal(t, b.Total, sum)
}

func TestComposePDLCAggregate(t *testing.T) {
	composer := NewComposer()

	tests := []struct {
		name            string
		dims            []DimensionPair
		wantFilm        int64
		wantTransformer int64
		wantInstall     int64
		wantSiteVisit   bool
	}{
		{"area 40", []DimensionPair{{Height: 8, Width: 5}}, 40000, 9500, 5000, false},
		{"area 50 boundary stays 30W", []DimensionPair{{Height: 10, Width: 5}}, 50000, 9500, 8000, false},
		{"area 51 crosses to 50W", []DimensionPair{{Height: 8.5, Width: 6}}, 51000, 12500, 8000, false},
		{"area 700 uses largest", []DimensionPair{{Height: 35, Width: 20}}, 700000, 40000, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := composer.Compose(pdlcProduct(5), PDLCConfig{Dimensions: tt.dims})
			require.NoError(t, err)

			b := quote.Breakdown
			require.GreaterOrEqual(t, len(b.Lines), 2)
			assert.Equal(t, tt.wantFilm, b.Lines[0].Amount)
			assert.Equal(t, tt.wantTransformer, b.Lines[1].Amount)
			assert.Equal(t, tt.wantSiteVisit, b.SiteVisitRequired)

			wantTotal := tt.wantFilm + tt.wantTransformer
			if !tt.wantSiteVisit {
				require.Len(t, b.Lines, 3)
				assert.Equal(t, LineInstallation, b.Lines[2].Kind)
				assert.Equal(t, tt.wantInstall, b.Lines[2].Amount)
				wantTotal += tt.wantInstall
			}
			assert.Equal(t, wantTotal, b.Total)
			requireLinesSumToTotal(t, b)

			// una sola línea de carrito agregada
			require.Len(t, quote.Lines, 1)
			assert.Equal(t, b.Total, quote.Lines[0].TotalPrice)
			assert.Equal(t, tt.wantSiteVisit, quote.Lines[0].Meta.SiteVisitRequired)
		})
	}
}

func TestComposePDLCAggregateSumsAllPairs(t *testing.T) {
	composer := NewComposer()
	cfg := PDLCConfig{Dimensions: []DimensionPair{
		{Height: 5, Width: 4}, // 20
		{Height: 6, Width: 5}, // 30
		{Height: 3, Width: 0}, // inválido, se ignora
	}}

	quote, err := composer.Compose(pdlcProduct(5), cfg)
	require.NoError(t, err)

	// área total 50 → transformador 30W, film 50000 → instalación 8000
	assert.Equal(t, int64(50000+9500+8000), quote.Breakdown.Total)
}

func TestComposePDLCPerItem(t *testing.T) {
	composer := NewComposer()
	cfg := PDLCConfig{Dimensions: []DimensionPair{
		{Height: 8, Width: 5},  // 40 → 40000
		{Height: 10, Width: 5}, // 50 → 50000
		{Height: 0, Width: 5},  // inválido
	}}

	quote, err := composer.ComposePDLCPerItem(pdlcProduct(5), cfg)
	require.NoError(t, err)

	// exactamente una línea por par válido, sin transformador ni instalación
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, int64(40000), quote.Lines[0].TotalPrice)
	assert.Equal(t, int64(50000), quote.Lines[1].TotalPrice)
	for _, line := range quote.Breakdown.Lines {
		assert.Equal(t, LineProduct, line.Kind)
	}
	assert.False(t, quote.Breakdown.SiteVisitRequired)
	assert.Equal(t, int64(90000), quote.Breakdown.Total)
	requireLinesSumToTotal(t, quote.Breakdown)
}

func TestComposePDLCPerItemWrongCategory(t *testing.T) {
	composer := NewComposer()
	sw := ProductInfo{ID: "s1", Name: "Smart Switch", Category: CategorySmartSwitch, UnitPrice: 1500, Stock: 5}

	_, err := composer.ComposePDLCPerItem(sw, PDLCConfig{Dimensions: []DimensionPair{{Height: 2, Width: 2}}})

	require.ErrorIs(t, err, ErrWrongComposePath)
}

func TestComposeSwitch(t *testing.T) {
	composer := NewComposer()
	sw := ProductInfo{
		ID: "s1", Name: "Smart Switch", Category: CategorySmartSwitch,
		UnitPrice: 1500, Stock: 10,
		EngravingAvailable: true, EngravingPrice: 200,
	}

	t.Run("with engraving and installation", func(t *testing.T) {
		quote, err := composer.Compose(sw, SwitchConfig{Quantity: 2, Installation: true, EngravingText: "Living"})
		require.NoError(t, err)

		// 1500×2 + grabado 200×2 + instalación 2000
		assert.Equal(t, int64(3000+400+2000), quote.Breakdown.Total)
		assert.False(t, quote.Breakdown.ManualQuoteRequired)
		requireLinesSumToTotal(t, quote.Breakdown)
		assert.Equal(t, "Living", quote.Lines[0].Meta.Engraving)
	})

	t.Run("quantity four requires manual quote", func(t *testing.T) {
		quote, err := composer.Compose(sw, SwitchConfig{Quantity: 4, Installation: true})
		require.NoError(t, err)

		assert.True(t, quote.Breakdown.ManualQuoteRequired)
		// sin tarifa de instalación en el total
		assert.Equal(t, int64(6000), quote.Breakdown.Total)
		requireLinesSumToTotal(t, quote.Breakdown)
	})

	t.Run("engraving ignored when product does not offer it", func(t *testing.T) {
		plain := sw
		plain.EngravingAvailable = false
		quote, err := composer.Compose(plain, SwitchConfig{Quantity: 1, EngravingText: "X"})
		require.NoError(t, err)

		assert.Equal(t, int64(1500), quote.Breakdown.Total)
	})
}

func TestComposeCurtainSliding(t *testing.T) {
	composer := NewComposer()
	curtain := ProductInfo{ID: "c1", Name: "Sliding Curtain", Category: CategoryCurtainSliding, UnitPrice: 5000, Stock: 5}

	cfg := CurtainConfig{
		Kind: CategoryCurtainSliding,
		Tracks: []TrackEntry{
			{Length: 3, Quantity: 1},
			{Length: 5, Quantity: 2},
			{Length: 8, Quantity: 1},
		},
		Installation: true,
	}

	quote, err := composer.Compose(curtain, cfg)
	require.NoError(t, err)

	// tres líneas de producto más una línea de servicio de instalación
	require.Len(t, quote.Lines, 4)
	assert.Equal(t, int64(5000), quote.Lines[0].TotalPrice)
	assert.Equal(t, int64(10000), quote.Lines[1].TotalPrice)
	assert.Equal(t, int64(5000), quote.Lines[2].TotalPrice)
	assert.Equal(t, int64(10500), quote.Lines[3].TotalPrice) // 3500 × 3 rieles
	assert.Equal(t, int64(10500), quote.Lines[3].Meta.InstallationCharge)

	assert.Equal(t, int64(5000+10000+5000+10500), quote.Breakdown.Total)
	requireLinesSumToTotal(t, quote.Breakdown)
}

// una entrada de riel vacía igual cuenta para el multiplicador de
// instalación: comportamiento heredado del flujo original
func TestComposeCurtainSlidingEmptyTrackCountsForInstallation(t *testing.T) {
	composer := NewComposer()
	curtain := ProductInfo{ID: "c1", Name: "Sliding Curtain", Category: CategoryCurtainSliding, UnitPrice: 5000, Stock: 5}

	cfg := CurtainConfig{
		Kind: CategoryCurtainSliding,
		Tracks: []TrackEntry{
			{Length: 5, Quantity: 1},
			{Length: 0, Quantity: 1},
		},
		Installation: true,
	}

	quote, err := composer.Compose(curtain, cfg)
	require.NoError(t, err)

	// una línea de producto, pero la instalación multiplica por 2
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, int64(7000), quote.Lines[1].TotalPrice)
}

func TestComposeCurtainRoller(t *testing.T) {
	composer := NewComposer()
	roller := ProductInfo{ID: "c2", Name: "Roller Curtain", Category: CategoryCurtainRoller, UnitPrice: 12000, Stock: 5}

	quote, err := composer.Compose(roller, CurtainConfig{
		Kind:         CategoryCurtainRoller,
		Quantity:     2,
		Connectivity: ConnectivityWifi,
	})
	require.NoError(t, err)

	// 12000×2 + recargo wifi 2000, una sola vez
	assert.Equal(t, int64(26000), quote.Breakdown.Total)
	requireLinesSumToTotal(t, quote.Breakdown)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, 8.0, quote.Lines[0].Meta.TrackLength)
}

func TestComposeBundle(t *testing.T) {
	composer := NewComposer()
	kit := ProductInfo{
		ID: "b1", Name: "Security Box", Category: CategorySecurityPanel, Stock: 4,
		Accessories: []Accessory{
			{Name: "Door Sensor", Price: 1200},
			{Name: "Siren", Price: 2500},
			{Name: "Keypad", Price: 1800},
		},
	}

	quote, err := composer.Compose(kit, BundleConfig{
		Accessories:  map[int]int{0: 2, 2: 1},
		Installation: true,
	})
	require.NoError(t, err)

	// 1200×2 + 1800 + línea de instalación en cero
	assert.Equal(t, int64(4200), quote.Breakdown.Total)
	requireLinesSumToTotal(t, quote.Breakdown)

	require.Len(t, quote.Lines, 3)
	last := quote.Lines[2]
	assert.Equal(t, int64(0), last.TotalPrice)
	assert.Contains(t, last.Description, "installation")
}

// una selección que solo referencia accesorios inexistentes no debe
// producir una cotización vacía en cero: se rechaza antes de componer
func TestComposeBundleOutOfRangeIndexRejected(t *testing.T) {
	composer := NewComposer()
	kit := ProductInfo{
		ID: "b1", Name: "Camera Kit", Category: CategorySmartCamera, Stock: 4,
		Accessories: []Accessory{{Name: "Indoor Cam", Price: 3000}},
	}

	_, err := composer.Compose(kit, BundleConfig{Accessories: map[int]int{5: 2}})

	require.ErrorIs(t, err, ErrNotPurchasable)
}

func TestComposeLighting(t *testing.T) {
	composer := NewComposer()
	strip := ProductInfo{
		ID: "l1", Name: "LED Strip", Category: CategoryLightingStrip, Stock: 9,
		Variants: []Variant{
			{Name: "5m", Price: 900, DiscountPrice: 750, WifiUpcharge: 300},
			{Name: "10m", Price: 1600},
		},
	}

	t.Run("discount price wins when lower", func(t *testing.T) {
		quote, err := composer.Compose(strip, LightingConfig{Variant: 0, Quantity: 3, Connectivity: ConnectivityWifi})
		require.NoError(t, err)

		// 750×3 + recargo wifi definido por la variante
		assert.Equal(t, int64(2250+300), quote.Breakdown.Total)
		requireLinesSumToTotal(t, quote.Breakdown)
	})

	t.Run("no wifi upcharge when variant does not define one", func(t *testing.T) {
		quote, err := composer.Compose(strip, LightingConfig{Variant: 1, Quantity: 1, Connectivity: ConnectivityWifi})
		require.NoError(t, err)

		assert.Equal(t, int64(1600), quote.Breakdown.Total)
	})

	t.Run("variant out of range falls back with anomaly", func(t *testing.T) {
		quote, err := composer.Compose(strip, LightingConfig{Variant: 7, Quantity: 1})
		require.NoError(t, err)

		assert.Equal(t, DefaultFallbackUnitPrice, quote.Breakdown.Total)
		assert.NotEmpty(t, quote.Breakdown.Anomalies)
	})
}

func TestComposeFallbackPrice(t *testing.T) {
	composer := &Composer{FallbackUnitPrice: 1000}
	broken := ProductInfo{ID: "x1", Name: "Broken", Category: CategorySmartSwitch, UnitPrice: 0, Stock: 2}

	quote, err := composer.Compose(broken, SwitchConfig{Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(2000), quote.Breakdown.Total)
	require.Len(t, quote.Breakdown.Anomalies, 1)
	assert.Contains(t, quote.Breakdown.Anomalies[0], "fallback 1000")
}

func TestComposeNotPurchasable(t *testing.T) {
	composer := NewComposer()

	_, err := composer.Compose(pdlcProduct(0), PDLCConfig{Dimensions: []DimensionPair{{Height: 5, Width: 8}}})

	require.ErrorIs(t, err, ErrNotPurchasable)
}

func TestComposeIdempotent(t *testing.T) {
	composer := NewComposer()
	cfg := PDLCConfig{Dimensions: []DimensionPair{{Height: 8, Width: 5}}}

	first, err := composer.Compose(pdlcProduct(5), cfg)
	require.NoError(t, err)
	second, err := composer.Compose(pdlcProduct(5), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDecorateIsDisplayOnly(t *testing.T) {
	composer := NewComposer()
	quote, err := composer.Compose(pdlcProduct(5), PDLCConfig{Dimensions: []DimensionPair{{Height: 8, Width: 5}}})
	require.NoError(t, err)

	deco := Decorate(quote.Breakdown.Total)

	assert.Equal(t, int64(70850), deco.OriginalPrice) // round(54500 × 1.3)
	assert.Equal(t, int64(16350), deco.Savings)       // round(54500 × 0.3)
	// la decoración jamás toca el total autoritativo
	assert.Equal(t, int64(54500), quote.Breakdown.Total)
	assert.Equal(t, int64(54500), quote.Lines[0].TotalPrice)
}
