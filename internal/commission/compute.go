package commission

import (
	"math"
	"time"
)

// Amount returns planAmount * ratePercent / 100 rounded to cents. The result
// is stored and summed as money, so it is kept at cent precision instead of
// carrying float noise like 41.625 into earnings totals.
func Amount(planAmount, ratePercent float64) float64 {
	return math.Round(planAmount*ratePercent) / 100
}

// MonthToken formats t as YYYY-MM.
func MonthToken(t time.Time) string {
	return t.Format("2006-01")
}

func pageCount(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
