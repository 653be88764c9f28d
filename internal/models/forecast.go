package models

// Forecast is the Visual Crossing timeline response for one location.
type Forecast struct {
	QueryCost         float64            `json:"queryCost"`
	Latitude          float64            `json:"latitude"`
	Longitude         float64            `json:"longitude"`
	ResolvedAddress   string             `json:"resolvedAddress"`
	Address           string             `json:"address"`
	Timezone          string             `json:"timezone"`
	TZOffset          float64            `json:"tzoffset"`
	Description       string             `json:"description,omitempty"`
	Days              []Day              `json:"days,omitempty"`
	Alerts            []Alert            `json:"alerts,omitempty"`
	Stations          map[string]Station `json:"stations,omitempty"`
	CurrentConditions *CurrentConditions `json:"currentConditions,omitempty"`
}

// Day is one daily record. Temp is the representative (average) temperature of the day.
type Day struct {
	Datetime       string   `json:"datetime"`
	DatetimeEpoch  Number   `json:"datetimeEpoch"`
	TempMax        Number   `json:"tempmax"`
	TempMin        Number   `json:"tempmin"`
	Temp           Number   `json:"temp"`
	FeelsLikeMax   Number   `json:"feelslikemax"`
	FeelsLikeMin   Number   `json:"feelslikemin"`
	FeelsLike      Number   `json:"feelslike"`
	Dew            Number   `json:"dew"`
	Humidity       float64  `json:"humidity"`
	Precip         float64  `json:"precip"`
	PrecipProb     float64  `json:"precipprob"`
	PrecipCover    float64  `json:"precipcover"`
	PrecipType     []string `json:"preciptype,omitempty"`
	Snow           float64  `json:"snow"`
	SnowDepth      float64  `json:"snowdepth"`
	WindGust       Number   `json:"windgust"`
	WindSpeed      float64  `json:"windspeed"`
	WindDir        float64  `json:"winddir"`
	Pressure       float64  `json:"pressure"`
	CloudCover     float64  `json:"cloudcover"`
	Visibility     float64  `json:"visibility"`
	SolarRadiation float64  `json:"solarradiation"`
	SolarEnergy    float64  `json:"solarenergy"`
	UVIndex        float64  `json:"uvindex"`
	SevereRisk     float64  `json:"severerisk"`
	Sunrise        string   `json:"sunrise,omitempty"`
	SunriseEpoch   Number   `json:"sunriseEpoch"`
	Sunset         string   `json:"sunset,omitempty"`
	SunsetEpoch    Number   `json:"sunsetEpoch"`
	MoonPhase      float64  `json:"moonphase"`
	Conditions     string   `json:"conditions"`
	Description    string   `json:"description,omitempty"`
	Icon           string   `json:"icon"`
	Stations       []string `json:"stations,omitempty"`
	Source         string   `json:"source"`
	Hours          []Hour   `json:"hours,omitempty"`
}

// Hour is one hourly record inside a Day.
type Hour struct {
	Datetime       string   `json:"datetime"`
	DatetimeEpoch  Number   `json:"datetimeEpoch"`
	Temp           Number   `json:"temp"`
	FeelsLike      Number   `json:"feelslike"`
	Dew            Number   `json:"dew"`
	Humidity       float64  `json:"humidity"`
	Precip         float64  `json:"precip"`
	PrecipProb     float64  `json:"precipprob"`
	PrecipType     []string `json:"preciptype,omitempty"`
	Snow           float64  `json:"snow"`
	SnowDepth      float64  `json:"snowdepth"`
	WindGust       Number   `json:"windgust"`
	WindSpeed      float64  `json:"windspeed"`
	WindDir        float64  `json:"winddir"`
	Pressure       float64  `json:"pressure"`
	Visibility     float64  `json:"visibility"`
	CloudCover     float64  `json:"cloudcover"`
	SolarRadiation float64  `json:"solarradiation"`
	SolarEnergy    float64  `json:"solarenergy"`
	UVIndex        float64  `json:"uvindex"`
	SevereRisk     float64  `json:"severerisk"`
	Conditions     string   `json:"conditions"`
	Icon           string   `json:"icon"`
	Stations       []string `json:"stations,omitempty"`
	Source         string   `json:"source"`
}

// CurrentConditions is the live "right now" snapshot, independent of the hourly records.
type CurrentConditions struct {
	Datetime       string   `json:"datetime"`
	DatetimeEpoch  Number   `json:"datetimeEpoch"`
	Temp           Number   `json:"temp"`
	FeelsLike      Number   `json:"feelslike"`
	Humidity       float64  `json:"humidity"`
	Dew            Number   `json:"dew"`
	Precip         float64  `json:"precip"`
	PrecipProb     float64  `json:"precipprob"`
	Snow           float64  `json:"snow"`
	SnowDepth      float64  `json:"snowdepth"`
	PrecipType     []string `json:"preciptype,omitempty"`
	WindGust       Number   `json:"windgust"`
	WindSpeed      float64  `json:"windspeed"`
	WindDir        float64  `json:"winddir"`
	Pressure       float64  `json:"pressure"`
	Visibility     float64  `json:"visibility"`
	CloudCover     float64  `json:"cloudcover"`
	SolarRadiation float64  `json:"solarradiation"`
	UVIndex        float64  `json:"uvindex"`
	Conditions     string   `json:"conditions"`
	Icon           string   `json:"icon"`
	Stations       []string `json:"stations,omitempty"`
	Source         string   `json:"source"`
	Sunrise        string   `json:"sunrise,omitempty"`
	SunriseEpoch   Number   `json:"sunriseEpoch"`
	Sunset         string   `json:"sunset,omitempty"`
	SunsetEpoch    Number   `json:"sunsetEpoch"`
	MoonPhase      float64  `json:"moonphase"`
}

// Alert is a severe weather alert. The upstream shape is loosely defined.
type Alert struct {
	Event       string `json:"event"`
	Headline    string `json:"headline"`
	Description string `json:"description,omitempty"`
	Ends        string `json:"ends,omitempty"`
	Onset       string `json:"onset,omitempty"`
}

// Station describes a weather station that contributed to the forecast.
type Station struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Distance     float64 `json:"distance"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	UseCount     int     `json:"useCount"`
	Quality      float64 `json:"quality"`
	Contribution float64 `json:"contribution"`
}
