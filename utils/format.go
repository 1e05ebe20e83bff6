package utils

import (
	"time"

	"quotation-backend/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders money with locale digit grouping, e.g. 1,234.50.
func FormatAmount(m models.Money) string {
	return amountPrinter.Sprintf("%.2f", m.InexactFloat64())
}

// FormatTimestamp renders a creation time for humans, or N/A when unset.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
