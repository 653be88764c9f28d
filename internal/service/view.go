package service

import (
	"time"

	"github.com/kjstillabower/weather-widget/internal/current"
	"github.com/kjstillabower/weather-widget/internal/models"
)

// WidgetView is what the widget displays for one search.
type WidgetView struct {
	Query           string            `json:"query"`
	ResolvedAddress string            `json:"resolvedAddress"`
	Timezone        string            `json:"timezone"`
	Description     string            `json:"description,omitempty"`
	Units           models.UnitSystem `json:"units"`
	TemperatureUnit string            `json:"temperatureUnit"`
	Current         current.Result    `json:"current"`
	Conditions      string            `json:"conditions,omitempty"`
	Icon            string            `json:"icon,omitempty"`
	Today           *DaySummary       `json:"today,omitempty"`
	AlertCount      int               `json:"alertCount"`
	ResolvedAt      time.Time         `json:"resolvedAt"`
}

// DaySummary is the first day of the forecast.
type DaySummary struct {
	Date       string        `json:"date"`
	TempMin    models.Number `json:"tempMin"`
	TempMax    models.Number `json:"tempMax"`
	TempAvg    models.Number `json:"tempAvg"`
	Conditions string        `json:"conditions,omitempty"`
	Icon       string        `json:"icon,omitempty"`
}

func buildView(query string, units models.UnitSystem, f *models.Forecast, res current.Result, now time.Time) WidgetView {
	v := WidgetView{
		Query:           query,
		ResolvedAddress: f.ResolvedAddress,
		Timezone:        f.Timezone,
		Description:     f.Description,
		Units:           units,
		TemperatureUnit: units.TemperatureUnit(),
		Current:         res,
		AlertCount:      len(f.Alerts),
		ResolvedAt:      now.UTC(),
	}
	if len(f.Days) > 0 {
		d := f.Days[0]
		v.Today = &DaySummary{
			Date:       d.Datetime,
			TempMin:    d.TempMin,
			TempMax:    d.TempMax,
			TempAvg:    d.Temp,
			Conditions: d.Conditions,
			Icon:       d.Icon,
		}
		v.Conditions, v.Icon = d.Conditions, d.Icon
	}
	if cc := f.CurrentConditions; cc != nil && cc.Conditions != "" {
		v.Conditions, v.Icon = cc.Conditions, cc.Icon
	}
	return v
}
