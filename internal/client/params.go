package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kjstillabower/weather-widget/internal/models"
)

// TimelineParams describes one timeline request. Location and Units are required; the rest
// narrow the upstream response and are sent only when set.
type TimelineParams struct {
	Location  string            `validate:"required,max=200"`
	Units     models.UnitSystem `validate:"required,oneof=metric imperial scientific"`
	Include   string            `validate:"omitempty,oneof=current events fcst obs hours days alerts remote"`
	StartDate string            `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string            `validate:"omitempty,datetime=2006-01-02"`
	Elements  []string          `validate:"omitempty,dive,required,alphanum"`
}

var paramValidator = validator.New()

// Validate checks the params before any request is made.
func (p TimelineParams) Validate() error {
	if err := paramValidator.Struct(p); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidParams, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.EndDate != "" && p.StartDate == "" {
		return fmt.Errorf("%w: EndDate requires StartDate", ErrInvalidParams)
	}
	return nil
}

// query encodes the params plus the API key. contentType is always json since only JSON is parsed.
func (p TimelineParams) query(apiKey string) url.Values {
	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("unitGroup", p.Units.UnitGroup())
	if p.Include != "" {
		q.Set("include", p.Include)
	}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	if len(p.Elements) > 0 {
		q.Set("elements", strings.Join(p.Elements, ","))
	}
	q.Set("contentType", "json")
	return q
}
