package weather

// WMO weather interpretation codes as reported by open-meteo.
var descriptions = map[int]string{
	0:  "Cielo despejado",
	1:  "Mayormente despejado",
	2:  "Parcialmente nublado",
	3:  "Nublado",
	45: "Niebla",
	48: "Niebla con escarcha",
	51: "Llovizna ligera",
	53: "Llovizna moderada",
	55: "Llovizna intensa",
	61: "Lluvia ligera",
	63: "Lluvia moderada",
	65: "Lluvia intensa",
	71: "Nieve ligera",
	73: "Nieve moderada",
	75: "Nieve intensa",
	80: "Chubascos ligeros",
	81: "Chubascos moderados",
	82: "Chubascos intensos",
	95: "Tormenta",
	96: "Tormenta con granizo ligero",
	99: "Tormenta con granizo intenso",
}

// Describe maps a weather code to a human-readable description.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "Condiciones variables"
}

// Icon maps a weather code to the dashboard icon name.
func Icon(code int) string {
	switch {
	case code == 0 || code == 1:
		return "sunny"
	case code == 2 || code == 3:
		return "partly-cloudy"
	case code >= 45 && code <= 48:
		return "cloudy"
	case code >= 51 && code <= 65:
		return "rainy"
	case code >= 71 && code <= 75:
		return "snowy"
	case code >= 80 && code <= 82:
		return "rainy"
	case code >= 95 && code <= 99:
		return "rainy"
	default:
		return "partly-cloudy"
	}
}
