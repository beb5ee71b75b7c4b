package weather

// WMO weather interpretation codes as reported by Open-Meteo.
var codeText = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

var codeIcon = map[int]string{
	0:  "clear-sky",
	1:  "mainly-clear",
	2:  "partly-cloudy",
	3:  "overcast",
	45: "fog",
	48: "fog",
	51: "light-rain",
	53: "moderate-rain",
	55: "heavy-rain",
	56: "light-rain",
	57: "heavy-rain",
	61: "light-rain",
	63: "moderate-rain",
	65: "heavy-rain",
	66: "light-rain",
	67: "heavy-rain",
	71: "snow",
	73: "snow",
	75: "snow",
	77: "snow",
	80: "light-rain",
	81: "moderate-rain",
	82: "heavy-rain",
	85: "snow",
	86: "snow",
	95: "thunderstorm",
	96: "thunderstorm",
	99: "thunderstorm",
}

func conditionFor(code int) string {
	if text, ok := codeText[code]; ok {
		return text
	}
	return "Unknown"
}

func iconFor(code int) string {
	if icon, ok := codeIcon[code]; ok {
		return icon
	}
	return "clear-sky"
}
