package weather

import (
	"strings"

	"FarmPulse/internal/domain/models"
)

// supportedCities is the fixed lookup table of farming towns in the
// Anuradhapura district. Weather is only served for these.
var supportedCities = []models.City{
	{Name: "Anuradhapura", Lat: 8.3114, Lon: 80.4037},
	{Name: "Mihintale", Lat: 8.3594, Lon: 80.5006},
	{Name: "Kekirawa", Lat: 8.0333, Lon: 80.5833},
	{Name: "Medawachchiya", Lat: 8.5333, Lon: 80.4667},
	{Name: "Habarana", Lat: 8.0333, Lon: 80.75},
	{Name: "Eppawala", Lat: 8.1333, Lon: 80.5167},
	{Name: "Galenbindunuwewa", Lat: 8.3167, Lon: 80.6333},
	{Name: "Galnewa", Lat: 8.2, Lon: 80.5667},
	{Name: "Horowupotana", Lat: 8.9667, Lon: 80.8167},
	{Name: "Kahatagasdigiliya", Lat: 8.9667, Lon: 80.6667},
	{Name: "Bulnewa", Lat: 8.3167, Lon: 80.3167},
	{Name: "Ganewalpola", Lat: 8.3167, Lon: 80.3167},
}

// findCity resolves a user-supplied name case-insensitively.
func findCity(name string) (models.City, bool) {
	for _, c := range supportedCities {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.City{}, false
}
