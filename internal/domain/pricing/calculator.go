package pricing

import (
	"errors"
	"math"
)

// All monetary amounts are integer cents. Fractions only appear transiently
// while rounding a fee or a fractional hour count.

var ErrNegativeRate = errors.New("rate cannot be negative")

// OverstayMultiplier is the punitive factor applied to the normal per-day
// rate when a storage booking stays past its end date.
const OverstayMultiplier = 2

// HourlyPrice charges whole hours; a partial hour is billed as a full one.
func HourlyPrice(rateCents int64, hours float64) int64 {
	if hours <= 0 {
		return 0
	}
	return rateCents * int64(math.Ceil(hours))
}

// DailyPrice bills at least the listing's minimum booking duration.
func DailyPrice(rateCents int64, days, minimumDays int) int64 {
	return rateCents * int64(EffectiveDays(days, minimumDays))
}

// MonthlyFlatPrice is the listing rate untouched, regardless of duration.
func MonthlyFlatPrice(rateCents int64) int64 {
	return rateCents
}

// EffectiveDays clamps a billed day count to the listing minimum. A zero-day
// range still bills one day.
func EffectiveDays(actualDays, minimumDays int) int {
	days := actualDays
	if days < 1 {
		days = 1
	}
	if days < minimumDays {
		days = minimumDays
	}
	return days
}

// BasePrice dispatches on the pricing model. Hourly uses hours, daily uses
// days/minimumDays, monthly flat ignores duration entirely.
func BasePrice(model Model, rateCents int64, hours float64, days, minimumDays int) (int64, error) {
	if rateCents < 0 {
		return 0, ErrNegativeRate
	}
	switch model {
	case ModelHourly:
		return HourlyPrice(rateCents, hours), nil
	case ModelDaily:
		return DailyPrice(rateCents, days, minimumDays), nil
	case ModelMonthlyFlat:
		return MonthlyFlatPrice(rateCents), nil
	default:
		return 0, ErrUnknownModel
	}
}

// ServiceFee derives the platform fee from a subtotal, rounded to the nearest
// cent. Callers must compute it once from the grand total, never by summing
// per-component fees, so repeated extensions cannot accumulate rounding drift.
func ServiceFee(subtotalCents int64, rate float64) int64 {
	if subtotalCents <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Round(float64(subtotalCents) * rate))
}

// PerDayRate normalizes a listing's base price to a single day, used for
// extension and overstay math.
func PerDayRate(model Model, basePriceCents int64) int64 {
	switch model {
	case ModelDaily:
		return basePriceCents
	case ModelHourly:
		return basePriceCents * 24
	case ModelMonthlyFlat:
		return int64(math.Ceil(float64(basePriceCents) / 30.0))
	default:
		return basePriceCents
	}
}

// OverstayPenalty prices daysCharged overdue days at double the normal rate.
func OverstayPenalty(perDayRateCents int64, daysCharged int) int64 {
	if daysCharged <= 0 {
		return 0
	}
	return perDayRateCents * OverstayMultiplier * int64(daysCharged)
}
