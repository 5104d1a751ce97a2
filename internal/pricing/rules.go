package pricing

// Catálogo de reglas: tablas puras de tarifas en BDT. Sin estado
// mutable; toda función de búsqueda es total (cualquier entrada,
// incluso negativa o fuera de rango, resuelve a un tramo).

// Transformer es el transformador requerido por un área de film.
type Transformer struct {
	Name       string `json:"name"`
	WattRating int    `json:"watt_rating"`
	Price      int64  `json:"price"`
}

// Tramos por cota superior de área, ascendentes; gana el primero que
// contiene el área.
var transformerTiers = []struct {
	maxArea float64
	t       Transformer
}{
	{50, Transformer{Name: "30W", WattRating: 30, Price: 9500}},
	{85, Transformer{Name: "50W", WattRating: 50, Price: 12500}},
	{160, Transformer{Name: "100W", WattRating: 100, Price: 23000}},
	{300, Transformer{Name: "200W", WattRating: 200, Price: 30000}},
	{630, Transformer{Name: "500W", WattRating: 500, Price: 40000}},
}

// Por encima del último tramo se instala el mayor disponible.
var transformerAboveMax = Transformer{Name: "500W+", WattRating: 500, Price: 40000}

// TransformerFor resuelve el transformador para un área en pies
// cuadrados. Las áreas negativas se tratan como el tramo más bajo.
func TransformerFor(areaSqFt float64) Transformer {
	area := sanitize(areaSqFt)
	for _, tier := range transformerTiers {
		if area <= tier.maxArea {
			return tier.t
		}
	}
	return transformerAboveMax
}

// InstallationCharge es el cargo de instalación de film PDLC. Si el
// monto de film exige visita técnica no hay cargo numérico.
type InstallationCharge struct {
	Amount    int64 `json:"amount"`
	SiteVisit bool  `json:"site_visit"`
}

// Tramos por cota inferior del monto de film, descendentes; gana el
// primero que el monto alcanza.
var installationTiers = []struct {
	minFilmAmount int64
	charge        InstallationCharge
}{
	{200000, InstallationCharge{SiteVisit: true}},
	{150000, InstallationCharge{Amount: 20000}},
	{100000, InstallationCharge{Amount: 15000}},
	{50000, InstallationCharge{Amount: 8000}},
}

// Piso mínimo del cargo de instalación de film.
var installationFloor = InstallationCharge{Amount: 5000}

// InstallationChargeFor resuelve el cargo de instalación según el
// monto de film en BDT.
func InstallationChargeFor(filmAmountBDT int64) InstallationCharge {
	for _, tier := range installationTiers {
		if filmAmountBDT >= tier.minFilmAmount {
			return tier.charge
		}
	}
	return installationFloor
}

const (
	switchInstallFee    = 2000
	switchInstallMaxQty = 3

	curtainInstallFeePerTrack = 3500

	wifiUpcharge = 2000
)

// SmartSwitchInstallationFee devuelve la tarifa plana de instalación
// de interruptores y si la cantidad exige cotización manual.
// Cantidades ≥ 4 no se cotizan en línea: fee 0 y manualQuote true.
func SmartSwitchInstallationFee(quantity int, requested bool) (fee int64, manualQuote bool) {
	if !requested {
		return 0, false
	}
	if quantity > switchInstallMaxQty {
		return 0, true
	}
	if quantity >= 1 {
		return switchInstallFee, false
	}
	return 0, false
}

// SmartCurtainInstallationFee cobra por riel. El multiplicador cuenta
// todas las entradas de riel, incluidas las vacías: comportamiento
// heredado del flujo original, ver DESIGN.md.
func SmartCurtainInstallationFee(trackCount int) int64 {
	if trackCount < 0 {
		return 0
	}
	return curtainInstallFeePerTrack * int64(trackCount)
}

// ConnectivityUpcharge devuelve el recargo fijo de la variante de
// radio: wifi suma, zigbee no.
func ConnectivityUpcharge(c Connectivity) int64 {
	if c == ConnectivityWifi {
		return wifiUpcharge
	}
	return 0
}
