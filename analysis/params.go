package analysis

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/caawww/data-vis/labels"
	"github.com/caawww/data-vis/models"
)

// Package-level validator instance; safe for concurrent use.
var validate = validator.New()

// Method is a per-group reduction.
type Method string

const (
	MethodSum    Method = "sum"
	MethodMean   Method = "mean"
	MethodMedian Method = "median"
	MethodCount  Method = "count"
)

// DemandMetric is the user-attention signal compared against supply.
type DemandMetric string

const (
	DemandOwners       DemandMetric = "owners"
	DemandPositive     DemandMetric = "positive"
	DemandPeakCCU      DemandMetric = "peak_ccu"
	DemandTotalReviews DemandMetric = "total_reviews"
)

// Source returns the game metric behind d.
func (d DemandMetric) Source() models.Metric {
	switch d {
	case DemandOwners:
		return models.MetricOwnerTier
	case DemandPositive:
		return models.MetricPositive
	case DemandPeakCCU:
		return models.MetricPeakCCU
	case DemandTotalReviews:
		return models.MetricTotalReviews
	default:
		return ""
	}
}

// Title is the display name used in report headers.
func (d DemandMetric) Title() string {
	switch d {
	case DemandOwners:
		return "Estimated owners (tier)"
	case DemandPositive:
		return "Positive reviews"
	case DemandPeakCCU:
		return "Peak CCU"
	case DemandTotalReviews:
		return "Total reviews"
	default:
		return string(d)
	}
}

// SelectionMode controls how Params.Selected restricts labels.
type SelectionMode string

const (
	SelectInclude SelectionMode = "include"
	SelectExclude SelectionMode = "exclude"
)

// Params are the per-call knobs of an overview analysis.
type Params struct {
	Dimension models.Dimension `yaml:"dimension" validate:"required,oneof=Tags Genres Categories"`
	YearFrom  int              `yaml:"year_from" validate:"min=0"`
	YearTo    int              `yaml:"year_to" validate:"gtefield=YearFrom"`

	MinGamesPerLabel int          `yaml:"min_games_per_label" validate:"min=1"`
	Method           Method       `yaml:"method" validate:"required,oneof=mean median"`
	Demand           DemandMetric `yaml:"demand" validate:"required,oneof=owners positive peak_ccu total_reviews"`

	Selected []string      `yaml:"selected" validate:"dive,required"`
	Mode     SelectionMode `yaml:"mode" validate:"omitempty,oneof=include exclude"`

	MinReviews float64 `yaml:"min_reviews" validate:"gte=0"`
	MinPeakCCU float64 `yaml:"min_peak_ccu" validate:"gte=0"`

	TopK int `yaml:"top_k" validate:"min=1"`
}

// DefaultParams returns the dashboard defaults: tags, 2015-2025, median owners.
func DefaultParams() Params {
	return Params{
		Dimension:        models.DimensionTags,
		YearFrom:         2015,
		YearTo:           2025,
		MinGamesPerLabel: 10,
		Method:           MethodMedian,
		Demand:           DemandOwners,
		Mode:             SelectInclude,
		TopK:             10,
	}
}

// Validate checks p and reports the first violation as a *ParamError.
func (p Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fmt.Sprintf("failed %q", fe.Tag())
		if fe.Param() != "" {
			reason = fmt.Sprintf("failed %q (%s)", fe.Tag(), fe.Param())
		}
		return &ParamError{Field: fe.Field(), Reason: fmt.Sprintf("value %v %s", fe.Value(), reason)}
	}
	return fmt.Errorf("%w: %v", ErrInvalidParams, err)
}

// selection returns the normalized Selected set, or nil when empty.
func (p Params) selection() map[string]struct{} {
	if len(p.Selected) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(p.Selected))
	for _, s := range p.Selected {
		if tok := labels.Token(s); tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}
