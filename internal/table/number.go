package table

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders an integer with thousands separators, e.g. 12345 -> "12,345".
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}
