package pricing

import (
	"errors"
	"fmt"
	"log"
	"math"
)

var (
	// ErrNotPurchasable se devuelve cuando la configuración no pasa la
	// validación; el detalle viene en el ValidationResult adjunto.
	ErrNotPurchasable = errors.New("configuration is not purchasable")
	// ErrWrongComposePath se devuelve al usar la vía por ítem con una
	// categoría que no la soporta.
	ErrWrongComposePath = errors.New("per-item pricing only applies to pdlc film")
)

// DefaultFallbackUnitPrice es el precio de reemplazo cuando un precio
// persistido llega ausente o inválido. Configurable por Composer.
const DefaultFallbackUnitPrice int64 = 1000

// LineKind etiqueta cada línea del desglose.
type LineKind string

const (
	LineProduct      LineKind = "product"
	LineTransformer  LineKind = "transformer"
	LineInstallation LineKind = "installation"
	LineConnectivity LineKind = "connectivity"
	LineEngraving    LineKind = "engraving"
	LineAccessory    LineKind = "accessory"
)

// BreakdownLine es una línea nombrada del desglose de precio.
type BreakdownLine struct {
	Kind   LineKind `json:"kind"`
	Label  string   `json:"label"`
	Amount int64    `json:"amount"`
}

// Breakdown es el desglose derivado de una configuración. Nunca se
// persiste; se recalcula en cada cambio. Invariante: Total es la suma
// exacta de Lines.
type Breakdown struct {
	Lines               []BreakdownLine `json:"lines"`
	Total               int64           `json:"total"`
	SiteVisitRequired   bool            `json:"site_visit_required,omitempty"`
	ManualQuoteRequired bool            `json:"manual_quote_required,omitempty"`
	Anomalies           []string        `json:"anomalies,omitempty"`
}

func (b *Breakdown) add(kind LineKind, label string, amount int64) {
	b.Lines = append(b.Lines, BreakdownLine{Kind: kind, Label: label, Amount: amount})
	b.Total += amount
}

// CartMeta son los metadatos por categoría que el lado de fulfillment
// necesita junto con la línea.
type CartMeta struct {
	Dimensions         []DimensionPair `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	TrackLength        float64         `json:"track_length,omitempty" bson:"track_length,omitempty"`
	Connectivity       Connectivity    `json:"connectivity,omitempty" bson:"connectivity,omitempty"`
	InstallationCharge int64           `json:"installation_charge,omitempty" bson:"installation_charge,omitempty"`
	SiteVisitRequired  bool            `json:"site_visit_required,omitempty" bson:"site_visit_required,omitempty"`
	Engraving          string          `json:"engraving,omitempty" bson:"engraving,omitempty"`
}

// CartLine es el contrato de salida hacia el colaborador de carrito:
// una línea comprable ya valorizada. Se construye una vez por acción
// "agregar al carrito" y se entrega tal cual.
type CartLine struct {
	ProductID   string   `json:"product_id" bson:"product_id"`
	Description string   `json:"description" bson:"description"`
	Quantity    int      `json:"quantity" bson:"quantity"`
	UnitPrice   int64    `json:"unit_price" bson:"unit_price"`
	TotalPrice  int64    `json:"total_price" bson:"total_price"`
	Meta        CartMeta `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Quote agrupa el desglose y las líneas de carrito de una misma
// configuración.
type Quote struct {
	Breakdown Breakdown  `json:"breakdown"`
	Lines     []CartLine `json:"lines"`
}

// Decoration son los valores tachados que la UI muestra como "precio
// original" y "ahorro". Decorativos: jamás entran al total cobrado ni
// al carrito.
type Decoration struct {
	OriginalPrice int64 `json:"original_price"`
	Savings       int64 `json:"savings"`
}

// Decorate sintetiza la decoración de ahorro sobre un total.
func Decorate(total int64) Decoration {
	return Decoration{
		OriginalPrice: int64(math.Round(float64(total) * 1.3)),
		Savings:       int64(math.Round(float64(total) * 0.3)),
	}
}

// Composer convierte configuraciones validadas en desgloses y líneas
// de carrito. Determinista y sin efectos: dos llamadas sobre la misma
// entrada producen resultados idénticos.
type Composer struct {
	// FallbackUnitPrice reemplaza precios ausentes o inválidos en vez
	// de abortar la compra; cada uso queda registrado como anomalía.
	FallbackUnitPrice int64
}

// NewComposer crea un Composer con el precio de reemplazo por defecto.
func NewComposer() *Composer {
	return &Composer{FallbackUnitPrice: DefaultFallbackUnitPrice}
}

// resolvePrice devuelve el precio dado o el de reemplazo si es
// inválido, junto con la anomalía registrada.
func (c *Composer) resolvePrice(price int64, field string) (int64, string) {
	if price > 0 {
		return price, ""
	}
	fallback := c.FallbackUnitPrice
	if fallback <= 0 {
		fallback = DefaultFallbackUnitPrice
	}
	anomaly := fmt.Sprintf("%s missing or invalid, using fallback %d", field, fallback)
	log.Printf("⚠️ pricing anomaly: %s", anomaly)
	return fallback, anomaly
}

// Compose produce el desglose agregado y las líneas de carrito de la
// vía "agregar al carrito". Normaliza y valida antes de calcular.
func (c *Composer) Compose(p ProductInfo, cfg Configuration) (Quote, error) {
	norm := Normalize(cfg)
	if res := Validate(p, norm); !res.Purchasable {
		return Quote{}, fmt.Errorf("%w: %v", ErrNotPurchasable, res.Reasons)
	}

	switch cc := norm.(type) {
	case PDLCConfig:
		return c.composePDLCAggregate(p, cc), nil
	case CurtainConfig:
		if cc.Kind == CategoryCurtainRoller {
			return c.composeCurtainRoller(p, cc), nil
		}
		return c.composeCurtainSliding(p, cc), nil
	case SwitchConfig:
		return c.composeSwitch(p, cc), nil
	case BundleConfig:
		return c.composeBundle(p, cc), nil
	case LightingConfig:
		return c.composeLighting(p, cc), nil
	}
	return Quote{}, fmt.Errorf("%w: %v", ErrNotPurchasable, []string{ReasonCategoryMismatch})
}

// ComposePDLCPerItem es la vía "comprar ahora" del film PDLC: una
// línea por cada par de dimensiones válido, sin transformador ni
// instalación. Asimetría deliberadamente preservada frente a la vía
// agregada; ver DESIGN.md.
func (c *Composer) ComposePDLCPerItem(p ProductInfo, cfg PDLCConfig) (Quote, error) {
	if p.Category != CategoryPDLCFilm {
		return Quote{}, ErrWrongComposePath
	}
	norm := Normalize(cfg).(PDLCConfig)
	if res := Validate(p, norm); !res.Purchasable {
		return Quote{}, fmt.Errorf("%w: %v", ErrNotPurchasable, res.Reasons)
	}

	unit, anomaly := c.resolvePrice(p.UnitPrice, "unit price")
	var q Quote
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}
	for _, d := range norm.Dimensions {
		if !d.Valid() {
			continue
		}
		amount := filmAmount(d.Area(), unit)
		label := fmt.Sprintf("%s %.1f×%.1f ft", p.Name, d.Height, d.Width)
		q.Breakdown.add(LineProduct, label, amount)
		q.Lines = append(q.Lines, CartLine{
			ProductID:   p.ID,
			Description: label,
			Quantity:    1,
			UnitPrice:   unit,
			TotalPrice:  amount,
			Meta:        CartMeta{Dimensions: []DimensionPair{d}},
		})
	}
	return q, nil
}

// filmAmount calcula área × precio unitario sin redondeos previos; el
// redondeo a BDT enteros ocurre recién aquí.
func filmAmount(area float64, unitPrice int64) int64 {
	return int64(math.Round(area * float64(unitPrice)))
}

func (c *Composer) composePDLCAggregate(p ProductInfo, cfg PDLCConfig) Quote {
	unit, anomaly := c.resolvePrice(p.UnitPrice, "unit price")

	totalArea := 0.0
	panels := 0
	var dims []DimensionPair
	for _, d := range cfg.Dimensions {
		if !d.Valid() {
			continue
		}
		totalArea += d.Area()
		panels++
		dims = append(dims, d)
	}

	film := filmAmount(totalArea, unit)
	transformer := TransformerFor(totalArea)
	install := InstallationChargeFor(film)

	var q Quote
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}
	q.Breakdown.add(LineProduct, fmt.Sprintf("%s %.1f sq ft (%d panels)", p.Name, totalArea, panels), film)
	q.Breakdown.add(LineTransformer, fmt.Sprintf("Transformer %s", transformer.Name), transformer.Price)

	meta := CartMeta{Dimensions: dims}
	if install.SiteVisit {
		// cargo sin monto: se informa la visita técnica, el total no
		// lo incluye
		q.Breakdown.SiteVisitRequired = true
		meta.SiteVisitRequired = true
	} else {
		q.Breakdown.add(LineInstallation, "Installation", install.Amount)
		meta.InstallationCharge = install.Amount
	}

	q.Lines = []CartLine{{
		ProductID:   p.ID,
		Description: fmt.Sprintf("%s %.1f sq ft with %s transformer", p.Name, totalArea, transformer.Name),
		Quantity:    1,
		UnitPrice:   unit,
		TotalPrice:  q.Breakdown.Total,
		Meta:        meta,
	}}
	return q
}

func (c *Composer) composeCurtainSliding(p ProductInfo, cfg CurtainConfig) Quote {
	unit, anomaly := c.resolvePrice(p.UnitPrice, "unit price")

	var q Quote
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}
	anyTrack := false
	for _, t := range cfg.Tracks {
		if t.Length <= 0 || t.Quantity <= 0 {
			continue
		}
		anyTrack = true
		amount := unit * int64(t.Quantity)
		label := fmt.Sprintf("%s %.0f ft × %d", p.Name, t.Length, t.Quantity)
		q.Breakdown.add(LineProduct, label, amount)
		q.Lines = append(q.Lines, CartLine{
			ProductID:   p.ID,
			Description: label,
			Quantity:    t.Quantity,
			UnitPrice:   unit,
			TotalPrice:  amount,
			Meta:        CartMeta{TrackLength: t.Length, Connectivity: cfg.Connectivity},
		})
	}

	if cfg.Installation && anyTrack {
		// el multiplicador cuenta todas las entradas, vacías incluidas
		fee := SmartCurtainInstallationFee(len(cfg.Tracks))
		label := fmt.Sprintf("Installation (%d tracks)", len(cfg.Tracks))
		q.Breakdown.add(LineInstallation, label, fee)
		// la instalación viaja como línea de servicio propia, no
		// fusionada en las líneas de producto
		q.Lines = append(q.Lines, CartLine{
			ProductID:   p.ID,
			Description: label,
			Quantity:    1,
			UnitPrice:   fee,
			TotalPrice:  fee,
			Meta:        CartMeta{InstallationCharge: fee},
		})
	}
	return q
}

func (c *Composer) composeCurtainRoller(p ProductInfo, cfg CurtainConfig) Quote {
	unit, anomaly := c.resolvePrice(p.UnitPrice, "unit price")

	var q Quote
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}
	amount := unit * int64(cfg.Quantity)
	q.Breakdown.add(LineProduct, fmt.Sprintf("%s × %d", p.Name, cfg.Quantity), amount)

	if up := ConnectivityUpcharge(cfg.Connectivity); up > 0 {
		q.Breakdown.add(LineConnectivity, "WiFi upcharge", up)
	}

	q.Lines = []CartLine{{
		ProductID:   p.ID,
		Description: fmt.Sprintf("%s (%s) × %d", p.Name, cfg.Connectivity, cfg.Quantity),
		Quantity:    cfg.Quantity,
		UnitPrice:   unit,
		TotalPrice:  q.Breakdown.Total,
		Meta:        CartMeta{TrackLength: rollerTrackFeet, Connectivity: cfg.Connectivity},
	}}
	return q
}

func (c *Composer) composeSwitch(p ProductInfo, cfg SwitchConfig) Quote {
	unit, anomaly := c.resolvePrice(p.UnitPrice, "unit price")

	var q Quote
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}
	amount := unit * int64(cfg.Quantity)
	q.Breakdown.add(LineProduct, fmt.Sprintf("%s × %d", p.Name, cfg.Quantity), amount)

	meta := CartMeta{}
	if p.EngravingAvailable && cfg.EngravingText != "" {
		engraving := p.EngravingPrice * int64(cfg.Quantity)
		q.Breakdown.add(LineEngraving, fmt.Sprintf("Engraving %q", cfg.EngravingText), engraving)
		meta.Engraving = cfg.EngravingText
	}

	fee, manual := SmartSwitchInstallationFee(cfg.Quantity, cfg.Installation)
	if manual {
		q.Breakdown.ManualQuoteRequired = true
	} else if fee > 0 {
		q.Breakdown.add(LineInstallation, "Installation", fee)
		meta.InstallationCharge = fee
	}

	q.Lines = []CartLine{{
		ProductID:   p.ID,
		Description: fmt.Sprintf("%s × %d", p.Name, cfg.Quantity),
		Quantity:    cfg.Quantity,
		UnitPrice:   unit,
		TotalPrice:  q.Breakdown.Total,
		Meta:        meta,
	}}
	return q
}

func (c *Composer) composeBundle(p ProductInfo, cfg BundleConfig) Quote {
	var q Quote
	// orden determinista: índices ascendentes
	for idx := 0; idx < len(p.Accessories); idx++ {
		qty := cfg.Accessories[idx]
		if qty <= 0 {
			continue
		}
		acc := p.Accessories[idx]
		price, anomaly := c.resolvePrice(acc.Price, fmt.Sprintf("accessory %q price", acc.Name))
		if anomaly != "" {
			q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
		}
		amount := price * int64(qty)
		label := fmt.Sprintf("%s × %d", acc.Name, qty)
		q.Breakdown.add(LineAccessory, label, amount)
		q.Lines = append(q.Lines, CartLine{
			ProductID:   p.ID,
			Description: fmt.Sprintf("%s — %s", p.Name, label),
			Quantity:    qty,
			UnitPrice:   price,
			TotalPrice:  amount,
		})
	}

	if cfg.Installation {
		// precio de instalación aún sin definir: línea en cero que
		// igual avisa la intención al lado de fulfillment
		q.Breakdown.add(LineInstallation, "Installation (to be quoted)", 0)
		q.Lines = append(q.Lines, CartLine{
			ProductID:   p.ID,
			Description: fmt.Sprintf("%s — installation (to be quoted)", p.Name),
			Quantity:    1,
			UnitPrice:   0,
			TotalPrice:  0,
		})
	}
	return q
}

func (c *Composer) composeLighting(p ProductInfo, cfg LightingConfig) Quote {
	var q Quote

	var variant Variant
	if cfg.Variant >= 0 && cfg.Variant < len(p.Variants) {
		variant = p.Variants[cfg.Variant]
	} else {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies,
			fmt.Sprintf("variant index %d out of range", cfg.Variant))
		log.Printf("⚠️ pricing anomaly: variant index %d out of range for product %s", cfg.Variant, p.ID)
	}

	price, anomaly := c.resolvePrice(variant.EffectivePrice(), "variant price")
	if anomaly != "" {
		q.Breakdown.Anomalies = append(q.Breakdown.Anomalies, anomaly)
	}

	amount := price * int64(cfg.Quantity)
	name := p.Name
	if variant.Name != "" {
		name = fmt.Sprintf("%s %s", p.Name, variant.Name)
	}
	q.Breakdown.add(LineProduct, fmt.Sprintf("%s × %d", name, cfg.Quantity), amount)

	// el recargo wifi solo aplica si la variante lo define
	if cfg.Connectivity == ConnectivityWifi && variant.WifiUpcharge > 0 {
		q.Breakdown.add(LineConnectivity, "WiFi upcharge", variant.WifiUpcharge)
	}

	q.Lines = []CartLine{{
		ProductID:   p.ID,
		Description: fmt.Sprintf("%s (%s) × %d", name, cfg.Connectivity, cfg.Quantity),
		Quantity:    cfg.Quantity,
		UnitPrice:   price,
		TotalPrice:  q.Breakdown.Total,
		Meta:        CartMeta{Connectivity: cfg.Connectivity},
	}}
	return q
}
