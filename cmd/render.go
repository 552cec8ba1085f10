package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// fmtNum renders a nullable numeric field with digit grouping. Unavailable
// fields render as "--", matching what the upstream displays.
func fmtNum(v *float64) string {
	if v == nil {
		return "--"
	}
	return printer.Sprintf("%.2f", *v)
}

// fmtWhole renders a nullable numeric field without decimals, for counts and
// dollar aggregates like volume and market cap.
func fmtWhole(v *float64) string {
	if v == nil {
		return "--"
	}
	return printer.Sprintf("%.0f", *v)
}

// fmtPercent renders a nullable percentage field.
func fmtPercent(v *float64) string {
	if v == nil {
		return "--"
	}
	return printer.Sprintf("%.2f%%", *v)
}
