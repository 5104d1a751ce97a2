package handlers

import (
	"fmt"

	"smarthome-store/internal/pricing"
)

// ConfigurationDTO es el cuerpo JSON de una selección de compra. Solo
// los campos de la categoría indicada son significativos; el resto se
// ignora al construir la unión etiquetada del motor.
type ConfigurationDTO struct {
	Category      pricing.Category        `json:"category" binding:"required"`
	Dimensions    []pricing.DimensionPair `json:"dimensions,omitempty"`
	Tracks        []pricing.TrackEntry    `json:"tracks,omitempty"`
	Quantity      int                     `json:"quantity,omitempty"`
	Variant       int                     `json:"variant,omitempty"`
	Connectivity  pricing.Connectivity    `json:"connectivity,omitempty"`
	Installation  bool                    `json:"installation,omitempty"`
	EngravingText string                  `json:"engraving_text,omitempty"`
	Accessories   map[int]int             `json:"accessories,omitempty"`
}

// ToConfiguration materializa la variante de configuración que
// corresponde a la categoría declarada.
func (d ConfigurationDTO) ToConfiguration() (pricing.Configuration, error) {
	switch d.Category {
	case pricing.CategoryPDLCFilm:
		return pricing.PDLCConfig{
			Dimensions: d.Dimensions,
		}, nil
	case pricing.CategoryCurtainSliding, pricing.CategoryCurtainRoller:
		return pricing.CurtainConfig{
			Kind:         d.Category,
			Tracks:       d.Tracks,
			Quantity:     d.Quantity,
			Connectivity: d.Connectivity,
			Installation: d.Installation,
		}, nil
	case pricing.CategorySmartSwitch:
		return pricing.SwitchConfig{
			Quantity:      d.Quantity,
			Installation:  d.Installation,
			EngravingText: d.EngravingText,
		}, nil
	case pricing.CategorySmartCamera, pricing.CategorySecurityPanel, pricing.CategorySensor:
		return pricing.BundleConfig{
			Accessories:  d.Accessories,
			Installation: d.Installation,
		}, nil
	case pricing.CategoryLightingSpot, pricing.CategoryLightingStrip, pricing.CategoryLightingCeiling:
		return pricing.LightingConfig{
			Variant:      d.Variant,
			Quantity:     d.Quantity,
			Connectivity: d.Connectivity,
		}, nil
	}
	return nil, fmt.Errorf("unknown category %q", d.Category)
}
