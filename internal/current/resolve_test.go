package current

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/models"
)

func num(v float64) models.Number { return models.NewNumber(v) }

func hour(ts, temp float64) models.Hour {
	return models.Hour{DatetimeEpoch: num(ts), Temp: num(temp)}
}

func assertResult(t *testing.T, got Result, wantTemp, wantTS float64, wantTSValid bool, wantSource Source) {
	t.Helper()
	if got.Source != wantSource {
		t.Fatalf("Source = %q, want %q", got.Source, wantSource)
	}
	temp, ok := got.Temperature.Float()
	if !ok {
		t.Fatalf("Temperature absent, want %v", wantTemp)
	}
	if temp != wantTemp {
		t.Errorf("Temperature = %v, want %v", temp, wantTemp)
	}
	ts, ok := got.Timestamp.Float()
	if ok != wantTSValid {
		t.Fatalf("Timestamp valid = %v, want %v", ok, wantTSValid)
	}
	if ok && ts != wantTS {
		t.Errorf("Timestamp = %v, want %v", ts, wantTS)
	}
}

func assertNone(t *testing.T, got Result) {
	t.Helper()
	if got.Source != SourceNone {
		t.Fatalf("Source = %q, want %q", got.Source, SourceNone)
	}
	if got.Temperature.Valid {
		t.Errorf("Temperature = %+v, want absent", got.Temperature)
	}
	if got.Timestamp.Valid {
		t.Errorf("Timestamp = %+v, want absent", got.Timestamp)
	}
}

// TestResolve_NilPayload verifies that an absent payload resolves to source none without panicking.
func TestResolve_NilPayload(t *testing.T) {
	assertNone(t, Resolve(nil, time.Unix(1000, 0)))
}

// TestResolve_TieKeepsFirstHour verifies that two equidistant hours resolve to the first one seen.
func TestResolve_TieKeepsFirstHour(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{{Hours: []models.Hour{hour(900, 10), hour(1100, 20)}}},
	}
	assertResult(t, Resolve(payload, time.Unix(1000, 0)), 10, 900, true, SourceHour)
}

// TestResolve_ClosestHour verifies that the hour with minimum distance to now wins.
func TestResolve_ClosestHour(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{{Hours: []models.Hour{hour(800, 5), hour(950, 15)}}},
	}
	assertResult(t, Resolve(payload, time.Unix(1000, 0)), 15, 950, true, SourceHour)
}

// TestResolve_ScanFollowsPayloadOrder verifies that ties across days are broken by payload order,
// not by chronological order.
func TestResolve_ScanFollowsPayloadOrder(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{
			{Hours: []models.Hour{hour(1300, 30)}},
			{Hours: []models.Hour{hour(700, 7)}},
		},
	}
	assertResult(t, Resolve(payload, time.Unix(1000, 0)), 30, 1300, true, SourceHour)
}

// TestResolve_HourBeatsLiveAndAverage verifies the hour tier wins even when the other tiers are present.
func TestResolve_HourBeatsLiveAndAverage(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{{Temp: num(99), Hours: []models.Hour{hour(5000, 12)}}},
		CurrentConditions: &models.CurrentConditions{
			Temp:          num(50),
			DatetimeEpoch: num(1000),
		},
	}
	assertResult(t, Resolve(payload, time.Unix(1000, 0)), 12, 5000, true, SourceHour)
}

// TestResolve_SkipsInvalidHours verifies that hours with absent timestamps or temperatures are skipped.
func TestResolve_SkipsInvalidHours(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{{Hours: []models.Hour{
			{Temp: num(1)},
			{DatetimeEpoch: num(1000)},
			hour(2000, 22),
		}}},
	}
	assertResult(t, Resolve(payload, time.Unix(1000, 0)), 22, 2000, true, SourceHour)
}

// TestResolve_FallbackTiers verifies the live-conditions and day-average fallbacks.
func TestResolve_FallbackTiers(t *testing.T) {
	tests := []struct {
		name        string
		payload     *models.Forecast
		wantTemp    float64
		wantTS      float64
		wantTSValid bool
		wantSource  Source
	}{
		{
			name: "live conditions with timestamp",
			payload: &models.Forecast{
				CurrentConditions: &models.CurrentConditions{Temp: num(18.5), DatetimeEpoch: num(990)},
			},
			wantTemp: 18.5, wantTS: 990, wantTSValid: true, wantSource: SourceLive,
		},
		{
			name: "live conditions without timestamp",
			payload: &models.Forecast{
				Days:              []models.Day{{Hours: []models.Hour{{Temp: num(3)}}}},
				CurrentConditions: &models.CurrentConditions{Temp: num(-4)},
			},
			wantTemp: -4, wantSource: SourceLive,
		},
		{
			name: "first day average",
			payload: &models.Forecast{
				Days: []models.Day{{Temp: num(21)}, {Temp: num(25)}},
				CurrentConditions: &models.CurrentConditions{DatetimeEpoch: num(990)},
			},
			wantTemp: 21, wantSource: SourceDayAverage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.payload, time.Unix(1000, 0))
			assertResult(t, got, tt.wantTemp, tt.wantTS, tt.wantTSValid, tt.wantSource)
		})
	}
}

// TestResolve_NoUsableData verifies that present but empty structures resolve to none.
func TestResolve_NoUsableData(t *testing.T) {
	tests := []struct {
		name    string
		payload *models.Forecast
	}{
		{"empty payload", &models.Forecast{}},
		{"empty days", &models.Forecast{Days: []models.Day{}}},
		{"day without hours or average", &models.Forecast{Days: []models.Day{{}}}},
		{"only second day has average", &models.Forecast{Days: []models.Day{{}, {Temp: num(9)}}}},
		{"empty live conditions", &models.Forecast{CurrentConditions: &models.CurrentConditions{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNone(t, Resolve(tt.payload, time.Unix(1000, 0)))
		})
	}
}

// TestResolve_DecodedPayload verifies the permissive decoding path end to end: malformed nested
// fields are treated as absent and the remaining data still resolves.
func TestResolve_DecodedPayload(t *testing.T) {
	raw := `{
		"days": [
			{"temp": "n/a", "hours": [
				{"datetimeEpoch": null, "temp": 1},
				{"datetimeEpoch": "soon", "temp": 2},
				{"temp": 3}
			]},
			{"temp": 11}
		],
		"currentConditions": {"temp": {"value": 4}, "datetimeEpoch": 999}
	}`
	var payload models.Forecast
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	assertNone(t, Resolve(&payload, time.Unix(1000, 0)))

	payload.Days[0].Hours[1].DatetimeEpoch = num(1010)
	assertResult(t, Resolve(&payload, time.Unix(1000, 0)), 2, 1010, true, SourceHour)
}

// TestResolve_DoesNotMutatePayload verifies that repeated resolution over the same payload is stable.
func TestResolve_DoesNotMutatePayload(t *testing.T) {
	payload := &models.Forecast{
		Days: []models.Day{{Hours: []models.Hour{hour(0, 1), hour(3600, 2), hour(7200, 3)}}},
	}
	first := Resolve(payload, time.Unix(3500, 0))
	second := Resolve(payload, time.Unix(3500, 0))
	if first != second {
		t.Errorf("Resolve() not deterministic: %+v vs %+v", first, second)
	}
	later := Resolve(payload, time.Unix(7000, 0))
	assertResult(t, later, 3, 7200, true, SourceHour)
	if len(payload.Days[0].Hours) != 3 {
		t.Errorf("payload hours = %d, want 3", len(payload.Days[0].Hours))
	}
}
