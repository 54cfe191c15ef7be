package domain

// Currency describes a supported billing currency
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// FallbackSymbol is used when a currency code is not in the table
const FallbackSymbol = "$"

// Currencies is the fixed currency table, in display order
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "CAD", Symbol: "CA$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CNY", Symbol: "CN¥", Name: "Chinese Yuan"},
	{Code: "AED", Symbol: "AED", Name: "UAE Dirham"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "SEK", Symbol: "kr", Name: "Swedish Krona"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "MXN", Symbol: "MX$", Name: "Mexican Peso"},
	{Code: "RUB", Symbol: "₽", Name: "Russian Ruble"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
	{Code: "TRY", Symbol: "₺", Name: "Turkish Lira"},
	{Code: "SAR", Symbol: "SR", Name: "Saudi Riyal"},
	{Code: "THB", Symbol: "฿", Name: "Thai Baht"},
	{Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese Dong"},
	{Code: "PHP", Symbol: "₱", Name: "Philippine Peso"},
	{Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit"},
}

// LookupCurrency returns the currency for a code
func LookupCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencySymbol returns the display symbol for a code, or FallbackSymbol if unknown
func CurrencySymbol(code string) string {
	if c, ok := LookupCurrency(code); ok {
		return c.Symbol
	}
	return FallbackSymbol
}
