package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Languages offered by the language switch, in display order.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "ha", Name: "Hausa"},
}

type Language struct {
	Code string
	Name string
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("ha"),
})

// Match resolves user preferences (language codes or Accept-Language
// headers) to a supported language code. English wins when nothing matches.
func Match(prefs ...string) string {
	tag, _ := language.MatchStrings(matcher, prefs...)
	base, _ := tag.Base()

	return base.String()
}

// Next returns the language after code in Languages, wrapping around.
func Next(code string) string {
	for i, l := range Languages {
		if l.Code == code {
			return Languages[(i+1)%len(Languages)].Code
		}
	}

	return Languages[0].Code
}

// FormatAmount renders an amount with two decimals and the grouping rules of lang.
func FormatAmount(lang string, amount float64) string {
	p := message.NewPrinter(language.Make(lang))
	return p.Sprint(number.Decimal(amount, number.Scale(2)))
}
