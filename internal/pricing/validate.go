package pricing

import "fmt"

// Razones de rechazo que la UI muestra tal cual.
const (
	ReasonOutOfStock       = "OUT_OF_STOCK"
	ReasonNoDimensions     = "NO_DIMENSIONS"
	ReasonNoTracks         = "NO_TRACKS"
	ReasonNothingSelected  = "NOTHING_SELECTED"
	ReasonCategoryMismatch = "CATEGORY_MISMATCH"
)

// ValidationResult indica si la configuración está completa para
// comprar y, si no, por qué.
type ValidationResult struct {
	Purchasable bool     `json:"purchasable"`
	Reasons     []string `json:"reasons,omitempty"`
}

func reject(reasons ...string) ValidationResult {
	return ValidationResult{Purchasable: false, Reasons: reasons}
}

var accepted = ValidationResult{Purchasable: true}

// Normalize aplica los límites documentados por categoría: paso de
// 0.5 pies en dimensiones de film, largo de riel acotado, cantidades
// mínimas, y coerción de entradas vacías/NaN a 0. Devuelve una copia;
// la configuración original no se toca.
func Normalize(cfg Configuration) Configuration {
	switch c := cfg.(type) {
	case PDLCConfig:
		dims := make([]DimensionPair, len(c.Dimensions))
		for i, d := range c.Dimensions {
			dims[i] = DimensionPair{
				Height: snapToStep(sanitize(d.Height)),
				Width:  snapToStep(sanitize(d.Width)),
			}
		}
		c.Dimensions = dims
		return c
	case CurtainConfig:
		tracks := make([]TrackEntry, len(c.Tracks))
		for i, t := range c.Tracks {
			length := sanitize(t.Length)
			if c.Kind == CategoryCurtainRoller {
				// roller: riel único implícito, el largo no se edita
				length = rollerTrackFeet
			} else if length > 0 {
				if length < slidingTrackMinFeet {
					length = slidingTrackMinFeet
				}
				if length > slidingTrackMaxFeet {
					length = slidingTrackMaxFeet
				}
			}
			qty := t.Quantity
			if qty < 1 {
				qty = 1
			}
			tracks[i] = TrackEntry{Length: length, Quantity: qty}
		}
		c.Tracks = tracks
		if c.Quantity < 1 {
			c.Quantity = 1
		}
		if c.Connectivity == "" {
			c.Connectivity = ConnectivityZigbee
		}
		return c
	case SwitchConfig:
		if c.Quantity < 1 {
			c.Quantity = 1
		}
		return c
	case BundleConfig:
		acc := make(map[int]int, len(c.Accessories))
		for i, q := range c.Accessories {
			if i >= 0 && q > 0 {
				acc[i] = q
			}
		}
		c.Accessories = acc
		return c
	case LightingConfig:
		if c.Quantity < 1 {
			c.Quantity = 1
		}
		if c.Connectivity == "" {
			c.Connectivity = ConnectivityZigbee
		}
		return c
	}
	return cfg
}

// Validate decide si la selección es comprable para el producto dado.
// Un producto sin stock nunca es comprable, sin importar el resto.
func Validate(p ProductInfo, cfg Configuration) ValidationResult {
	if p.Stock <= 0 {
		return reject(ReasonOutOfStock)
	}
	if err := checkCategory(p.Category, cfg); err != nil {
		return reject(ReasonCategoryMismatch)
	}

	switch c := cfg.(type) {
	case PDLCConfig:
		for _, d := range c.Dimensions {
			if d.Valid() {
				return accepted
			}
		}
		return reject(ReasonNoDimensions)
	case CurtainConfig:
		if c.Kind == CategoryCurtainRoller {
			return accepted
		}
		for _, t := range c.Tracks {
			if t.Length > 0 {
				return accepted
			}
		}
		return reject(ReasonNoTracks)
	case SwitchConfig:
		// siempre comprable; cantidades altas con instalación pasan a
		// cotización manual en el composer, no bloquean la compra
		return accepted
	case BundleConfig:
		if c.Installation {
			return accepted
		}
		// solo cuentan índices que existen en el producto; una
		// selección únicamente fuera de rango no es comprable
		for i, q := range c.Accessories {
			if i >= 0 && i < len(p.Accessories) && q > 0 {
				return accepted
			}
		}
		return reject(ReasonNothingSelected)
	case LightingConfig:
		return accepted
	}
	return reject(ReasonCategoryMismatch)
}

// checkCategory verifica que el tipo de configuración corresponde a la
// categoría del producto.
func checkCategory(cat Category, cfg Configuration) error {
	match := false
	switch c := cfg.(type) {
	case PDLCConfig:
		match = cat == CategoryPDLCFilm
	case CurtainConfig:
		match = cat == c.Kind && (cat == CategoryCurtainSliding || cat == CategoryCurtainRoller)
	case SwitchConfig:
		match = cat == CategorySmartSwitch
	case BundleConfig:
		match = cat == CategorySmartCamera || cat == CategorySecurityPanel || cat == CategorySensor
	case LightingConfig:
		match = cat == CategoryLightingSpot || cat == CategoryLightingStrip || cat == CategoryLightingCeiling
	}
	if !match {
		return fmt.Errorf("configuration does not match category %q", cat)
	}
	return nil
}
