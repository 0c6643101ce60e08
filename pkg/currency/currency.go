// Package currency holds the static currency reference data served to the
// transfer form. The set is closed and read-only; the transfer path never
// mutates it.
package currency

// Currency describes one supported currency.
type Currency struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}

var currencies = []Currency{
	{Symbol: "USD", Name: "Dollar américain", CountryCode: "US"},
	{Symbol: "EUR", Name: "Euro", CountryCode: "EU"},
	{Symbol: "GBP", Name: "Livre sterling", CountryCode: "GB"},
	{Symbol: "JPY", Name: "Yen japonais", CountryCode: "JP"},
	{Symbol: "CHF", Name: "Franc suisse", CountryCode: "CH"},
	{Symbol: "CAD", Name: "Dollar canadien", CountryCode: "CA"},
	{Symbol: "AUD", Name: "Dollar australien", CountryCode: "AU"},
	{Symbol: "CNY", Name: "Yuan chinois", CountryCode: "CN"},
	{Symbol: "INR", Name: "Roupie indienne", CountryCode: "IN"},
	{Symbol: "BRL", Name: "Real brésilien", CountryCode: "BR"},
	{Symbol: "ZAR", Name: "Rand sud-africain", CountryCode: "ZA"},
	{Symbol: "MXN", Name: "Peso mexicain", CountryCode: "MX"},
	{Symbol: "SGD", Name: "Dollar de Singapour", CountryCode: "SG"},
	{Symbol: "HKD", Name: "Dollar de Hong Kong", CountryCode: "HK"},
	{Symbol: "NOK", Name: "Couronne norvégienne", CountryCode: "NO"},
	{Symbol: "SEK", Name: "Couronne suédoise", CountryCode: "SE"},
	{Symbol: "DKK", Name: "Couronne danoise", CountryCode: "DK"},
	{Symbol: "PLN", Name: "Zloty polonais", CountryCode: "PL"},
	{Symbol: "CZK", Name: "Couronne tchèque", CountryCode: "CZ"},
	{Symbol: "HUF", Name: "Forint hongrois", CountryCode: "HU"},
	{Symbol: "RON", Name: "Leu roumain", CountryCode: "RO"},
	{Symbol: "NZD", Name: "Dollar néo-zélandais", CountryCode: "NZ"},
	{Symbol: "TRY", Name: "Livre turque", CountryCode: "TR"},
	{Symbol: "ILS", Name: "Shekel israélien", CountryCode: "IL"},
	{Symbol: "AED", Name: "Dirham des EAU", CountryCode: "AE"},
	{Symbol: "SAR", Name: "Riyal saoudien", CountryCode: "SA"},
	{Symbol: "KRW", Name: "Won sud-coréen", CountryCode: "KR"},
	{Symbol: "THB", Name: "Baht thaïlandais", CountryCode: "TH"},
	{Symbol: "MAD", Name: "Dirham marocain", CountryCode: "MA"},
	{Symbol: "EGP", Name: "Livre égyptienne", CountryCode: "EG"},
}

var bySymbol = func() map[string]Currency {
	m := make(map[string]Currency, len(currencies))
	for _, c := range currencies {
		m[c.Symbol] = c
	}
	return m
}()

// All returns the supported currencies in a stable order.
func All() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

// Lookup returns the currency for a symbol, if supported.
func Lookup(symbol string) (Currency, bool) {
	c, ok := bySymbol[symbol]
	return c, ok
}

// IsSupported reports whether the symbol is in the reference set.
func IsSupported(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}
