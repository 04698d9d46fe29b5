package models

// WeatherReport is the dashboard-facing weather payload.
type WeatherReport struct {
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	City        string `json:"city"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Icon        string `json:"icon"`
}
