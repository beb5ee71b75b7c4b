package weather

import "testing"

func TestWeatherCodeMapping(t *testing.T) {
	cases := []struct {
		code int
		text string
		icon string
	}{
		{0, "Clear sky", "clear-sky"},
		{45, "Foggy", "fog"},
		{65, "Heavy rain", "heavy-rain"},
		{95, "Thunderstorm", "thunderstorm"},
	}
	for _, tc := range cases {
		if got := conditionFor(tc.code); got != tc.text {
			t.Errorf("code %d: condition %q, want %q", tc.code, got, tc.text)
		}
		if got := iconFor(tc.code); got != tc.icon {
			t.Errorf("code %d: icon %q, want %q", tc.code, got, tc.icon)
		}
	}
}

func TestWeatherCodeFallback(t *testing.T) {
	if got := conditionFor(999); got != "Unknown" {
		t.Errorf("condition %q, want Unknown", got)
	}
	if got := iconFor(999); got != "clear-sky" {
		t.Errorf("icon %q, want clear-sky", got)
	}
}
