// Package current picks the single best "current" temperature out of a fetched forecast.
package current

import (
	"math"
	"time"

	"github.com/kjstillabower/weather-widget/internal/models"
)

// Source reports which part of the forecast a reading came from.
type Source string

const (
	// SourceHour is the hourly record closest to now.
	SourceHour Source = "hour"
	// SourceLive is the provider's current-conditions block.
	SourceLive Source = "live"
	// SourceDayAverage is the first day's average temperature.
	SourceDayAverage Source = "day_average"
	// SourceNone means no temperature could be resolved.
	SourceNone Source = "none"
)

// Result is the resolved reading. Temperature is invalid only when Source is SourceNone.
type Result struct {
	Temperature models.Number `json:"temperature"`
	Timestamp   models.Number `json:"timestamp"`
	Source      Source        `json:"source"`
}

// Resolve selects the hourly record closest to now, falling back to the live conditions
// temperature and then to the first day's average. It never fails and never mutates payload.
//
// Hours are scanned day by day in payload order; on equal distance the first one seen wins.
func Resolve(payload *models.Forecast, now time.Time) Result {
	if payload == nil {
		return Result{Source: SourceNone}
	}
	nowSec := float64(now.UnixNano()) / float64(time.Second)

	var (
		found    bool
		bestDist float64
		best     Result
	)
	for _, day := range payload.Days {
		for _, hour := range day.Hours {
			ts, ok := hour.DatetimeEpoch.Float()
			if !ok {
				continue
			}
			temp, ok := hour.Temp.Float()
			if !ok {
				continue
			}
			dist := math.Abs(ts - nowSec)
			if !found || dist < bestDist {
				found = true
				bestDist = dist
				best = Result{
					Temperature: models.NewNumber(temp),
					Timestamp:   models.NewNumber(ts),
					Source:      SourceHour,
				}
			}
		}
	}
	if found {
		return best
	}

	if live := payload.CurrentConditions; live != nil {
		if temp, ok := live.Temp.Float(); ok {
			res := Result{Temperature: models.NewNumber(temp), Source: SourceLive}
			if ts, ok := live.DatetimeEpoch.Float(); ok {
				res.Timestamp = models.NewNumber(ts)
			}
			return res
		}
	}

	if len(payload.Days) > 0 {
		if avg, ok := payload.Days[0].Temp.Float(); ok {
			return Result{Temperature: models.NewNumber(avg), Source: SourceDayAverage}
		}
	}

	return Result{Source: SourceNone}
}
