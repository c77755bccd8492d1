package domain

import (
	"fmt"
	"strings"
)

// RateType is the billing period a price applies to.
type RateType int

const (
	RateFlat RateType = iota
	RateHourly
	RateHalfDay
	RateDaily
	RateWeekly
	RateMonthly
	RateExtended
	RateOneDay
	RateTwoDay
	RateThreeDay
	RateFourDay
	RateFiveDay
	RateAdditionalDay
	RateWeekend
)

var rateTypeNames = [...]string{
	RateFlat:          "Flat",
	RateHourly:        "Hourly",
	RateHalfDay:       "HalfDay",
	RateDaily:         "Daily",
	RateWeekly:        "Weekly",
	RateMonthly:       "Monthly",
	RateExtended:      "Extended",
	RateOneDay:        "OneDay",
	RateTwoDay:        "TwoDay",
	RateThreeDay:      "ThreeDay",
	RateFourDay:       "FourDay",
	RateFiveDay:       "FiveDay",
	RateAdditionalDay: "AdditionalDay",
	RateWeekend:       "Weekend",
}

// RateTypes lists every rate type in declaration order.
func RateTypes() []RateType {
	out := make([]RateType, len(rateTypeNames))
	for i := range rateTypeNames {
		out[i] = RateType(i)
	}
	return out
}

func (r RateType) Valid() bool {
	return r >= RateFlat && r <= RateWeekend
}

func (r RateType) String() string {
	if !r.Valid() {
		return fmt.Sprintf("RateType(%d)", int(r))
	}
	return rateTypeNames[r]
}

// ParseRateType accepts a rate type name, case-insensitively.
func ParseRateType(s string) (RateType, error) {
	for i, name := range rateTypeNames {
		if strings.EqualFold(name, s) {
			return RateType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rate type %q", s)
}
