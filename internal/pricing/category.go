package pricing

import "math"

// Category identifica la línea de producto y decide qué reglas de
// precio aplican.
type Category string

const (
	CategoryPDLCFilm        Category = "pdlc_film"
	CategorySmartSwitch     Category = "smart_switch"
	CategoryCurtainSliding  Category = "curtain_sliding"
	CategoryCurtainRoller   Category = "curtain_roller"
	CategorySmartCamera     Category = "smart_camera"
	CategorySecurityPanel   Category = "security_panel"
	CategorySensor          Category = "sensor"
	CategoryLightingSpot    Category = "lighting_spot"
	CategoryLightingStrip   Category = "lighting_strip"
	CategoryLightingCeiling Category = "lighting_ceiling"
)

// Connectivity es la variante de radio del producto. Wifi lleva un
// recargo fijo, zigbee no.
type Connectivity string

const (
	ConnectivityZigbee Connectivity = "zigbee"
	ConnectivityWifi   Connectivity = "wifi"
)

// Límites de normalización por categoría.
const (
	dimensionStep       = 0.5  // pies; alto/ancho de film se redondean a este paso
	slidingTrackMaxFeet = 27.0 // largo máximo de riel deslizante
	slidingTrackMinFeet = 1.0  // largo mínimo cuando el riel no está vacío
	rollerTrackFeet     = 8.0  // riel roller: largo fijo implícito
)

// DimensionPair es un par alto×ancho de film PDLC, en pies.
type DimensionPair struct {
	Height float64 `json:"height" bson:"height"`
	Width  float64 `json:"width" bson:"width"`
}

// Area devuelve alto × ancho en pies cuadrados.
func (d DimensionPair) Area() float64 {
	return d.Height * d.Width
}

// Valid indica si el par aporta área comprable (ambos lados > 0).
func (d DimensionPair) Valid() bool {
	return d.Height > 0 && d.Width > 0
}

// TrackEntry es un riel de cortina: largo en pies y cantidad de unidades.
type TrackEntry struct {
	Length   float64 `json:"length" bson:"length"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Configuration es la selección transitoria del comprador dentro de un
// modal. Unión etiquetada: solo los campos de la variante concreta son
// significativos, y Validate/Compose despachan por tipo.
type Configuration interface {
	isConfiguration()
}

// PDLCConfig configura una compra de film PDLC por área. No lleva
// toggle de instalación: la vía agregada siempre resuelve el cargo por
// tramo del monto de film, y la vía por ítem nunca lo cobra.
type PDLCConfig struct {
	Dimensions []DimensionPair
}

// CurtainConfig configura cortinas inteligentes. Kind distingue riel
// deslizante (entradas de riel independientes) de roller (riel único
// implícito de 8 pies).
type CurtainConfig struct {
	Kind         Category
	Tracks       []TrackEntry
	Quantity     int
	Connectivity Connectivity
	Installation bool
}

// SwitchConfig configura interruptores inteligentes.
type SwitchConfig struct {
	Quantity      int
	Installation  bool
	EngravingText string
}

// BundleConfig configura categorías de accesorios (cámaras, sensores,
// paneles de seguridad): índice de accesorio → cantidad.
type BundleConfig struct {
	Accessories  map[int]int
	Installation bool
}

// LightingConfig configura iluminación (spot/strip/ceiling): la
// variante seleccionada resuelve el precio unitario.
type LightingConfig struct {
	Variant      int
	Quantity     int
	Connectivity Connectivity
}

func (PDLCConfig) isConfiguration()     {}
func (CurtainConfig) isConfiguration()  {}
func (SwitchConfig) isConfiguration()   {}
func (BundleConfig) isConfiguration()   {}
func (LightingConfig) isConfiguration() {}

// ProductInfo es la vista de solo lectura del producto que consume el
// motor. La capa de datos la construye desde su modelo persistido.
type ProductInfo struct {
	ID                 string
	Name               string
	Category           Category
	UnitPrice          int64 // BDT; para PDLC es precio por pie cuadrado
	Stock              int64
	EngravingAvailable bool
	EngravingPrice     int64
	Variants           []Variant
	Accessories        []Accessory
}

// Variant es una variante con precio propio (tamaños de iluminación).
type Variant struct {
	Name          string
	Price         int64
	DiscountPrice int64
	Stock         int64
	WifiUpcharge  int64
}

// EffectivePrice devuelve el precio con descuento si existe y es menor
// que el precio de lista.
func (v Variant) EffectivePrice() int64 {
	if v.DiscountPrice > 0 && v.DiscountPrice < v.Price {
		return v.DiscountPrice
	}
	return v.Price
}

// Accessory es un ítem individual de un bundle (cámara extra, sensor
// de puerta, sirena).
type Accessory struct {
	Name  string
	Price int64
}

// sanitize convierte entradas numéricas vacías o corruptas en 0 para
// que los cálculos posteriores sean totales.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// snapToStep redondea al paso de 0.5 pies más cercano.
func snapToStep(v float64) float64 {
	return math.Round(v/dimensionStep) * dimensionStep
}
