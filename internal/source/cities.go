// Package source implements the upstream producer boundary of the pipeline:
// a synthetic generator, a CSV file reader, and a live Open-Meteo fetch with
// fallback. Every source yields the same loosely typed raw table; the
// pipeline never knows which producer it is talking to.
package source

// cityClimate describes one of the cities the producers cover: a plausible
// winter temperature range in degrees Celsius for the synthetic generator
// and WGS-84 coordinates for the live fetch.
type cityClimate struct {
	name     string
	minTemp  int
	maxTemp  int
	lat, lon float64
}

// cities are the ten major Turkish cities the producers report on.
var cities = []cityClimate{
	{name: "İstanbul", minTemp: 3, maxTemp: 12, lat: 41.01, lon: 28.98},
	{name: "Ankara", minTemp: -5, maxTemp: 8, lat: 39.93, lon: 32.86},
	{name: "İzmir", minTemp: 6, maxTemp: 15, lat: 38.42, lon: 27.14},
	{name: "Bursa", minTemp: 2, maxTemp: 10, lat: 40.19, lon: 29.06},
	{name: "Antalya", minTemp: 8, maxTemp: 18, lat: 36.90, lon: 30.70},
	{name: "Adana", minTemp: 5, maxTemp: 16, lat: 37.00, lon: 35.32},
	{name: "Konya", minTemp: -8, maxTemp: 5, lat: 37.87, lon: 32.48},
	{name: "Gaziantep", minTemp: 0, maxTemp: 12, lat: 37.07, lon: 37.38},
	{name: "Mersin", minTemp: 7, maxTemp: 17, lat: 36.81, lon: 34.64},
	{name: "Diyarbakır", minTemp: -3, maxTemp: 8, lat: 37.91, lon: 40.24},
}

// climates returns the first n city climates, capped at the known list.
func climates(n int) []cityClimate {
	if n <= 0 || n > len(cities) {
		n = len(cities)
	}
	return cities[:n]
}
