package rates

import "github.com/amirasaad/transfeo/pkg/money"

// Static approximate rates used when the live source is down. Accuracy is
// traded for availability; results carry a fallback flag so callers can warn
// the user.

// fallbackToEUR converts one unit of the key currency into EUR.
var fallbackToEUR = map[string]float64{
	"USD": 0.92,
	"GBP": 1.16,
	"JPY": 0.0062,
	"CHF": 0.98,
	"CAD": 0.68,
	"AUD": 0.61,
}

// fallbackCross covers direct pairs between the major currencies for the
// conversion preview endpoint.
var fallbackCross = map[string]map[string]float64{
	"EUR": {"USD": 1.09, "GBP": 0.86, "JPY": 161.2, "CHF": 1.02, "CAD": 1.47, "AUD": 1.63},
	"USD": {"EUR": 0.92, "GBP": 0.79, "JPY": 148.5, "CHF": 0.94, "CAD": 1.35, "AUD": 1.50},
	"GBP": {"EUR": 1.16, "USD": 1.27, "JPY": 188.3, "CHF": 1.19, "CAD": 1.71, "AUD": 1.90},
	"JPY": {"EUR": 0.0062, "USD": 0.0067, "GBP": 0.0053, "CHF": 0.0058, "CAD": 0.0084, "AUD": 0.0095},
}

// FallbackEURRate returns the static multiplier converting currency into EUR.
// A pair missing from the table degrades to 1.0 with ok=false; the transfer
// still proceeds, flagged as fallback mode.
func FallbackEURRate(currency string) (rate float64, ok bool) {
	if currency == money.EUR {
		return 1.0, true
	}
	rate, ok = fallbackToEUR[currency]
	if !ok {
		return 1.0, false
	}
	return rate, true
}

// FallbackCrossRate returns the static multiplier for an arbitrary pair,
// degrading to 1.0 when the pair is not covered.
func FallbackCrossRate(from, to string) (rate float64, ok bool) {
	if from == to {
		return 1.0, true
	}
	if row, found := fallbackCross[from]; found {
		if rate, found = row[to]; found {
			return rate, true
		}
	}
	return 1.0, false
}
