// Package workday answers whether a leave date falls on a working day in
// the configured country.
package workday

import (
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/ch"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/us"
)

// CountryNone treats every Monday to Friday as a working day.
const CountryNone = "NONE"

type Checker interface {
	IsWorkday(date time.Time) bool
}

type calendar struct {
	country string
	cal     *cal.BusinessCalendar
}

// New returns a checker for the ISO country code. Unknown codes and
// CountryNone fall back to weekdays only.
func New(country string) Checker {
	code := strings.ToUpper(strings.TrimSpace(country))
	c := &calendar{country: code}

	switch code {
	case "DE":
		c.cal = createCalendar("Germany", de.Holidays...)
	case "AT":
		c.cal = createCalendar("Austria", at.Holidays...)
	case "CH":
		c.cal = createCalendar("Switzerland", ch.Holidays...)
	case "NL":
		c.cal = createCalendar("Netherlands", nl.Holidays...)
	case "FR":
		c.cal = createCalendar("France", fr.Holidays...)
	case "GB":
		c.cal = createCalendar("United Kingdom", gb.Holidays...)
	case "US":
		c.cal = createCalendar("United States", us.Holidays...)
	}
	return c
}

func createCalendar(name string, holidays ...*cal.Holiday) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.Name = name
	c.AddHoliday(holidays...)
	return c
}

func (c *calendar) IsWorkday(date time.Time) bool {
	if c.cal == nil {
		return !cal.IsWeekend(date)
	}
	return c.cal.IsWorkday(date)
}

// Supported lists the country codes with a holiday calendar.
func Supported() []string {
	return []string{"AT", "CH", "DE", "FR", "GB", "NL", "US", CountryNone}
}
