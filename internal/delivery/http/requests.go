package http

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var handleRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_%.\-]*$`)

// VisualSlugRequest is the body of POST /api/v1/slugs/visual
type VisualSlugRequest struct {
	Handle     string `json:"handle"`
	Value      string `json:"value"`
	OptionName string `json:"optionName"`
}

// Validate checks the request fields
func (r VisualSlugRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Handle,
			validation.Required.Error("handle is required"),
			validation.Length(1, 255),
			validation.Match(handleRegex).Error("handle must be URL safe"),
		),
		validation.Field(&r.Value, validation.Length(0, 255)),
		validation.Field(&r.OptionName, validation.Length(0, 64)),
	)
}

// MultiSlugRequest is the body of POST /api/v1/slugs/multi
type MultiSlugRequest struct {
	Handle  string            `json:"handle"`
	Options map[string]string `json:"options"`
}

// Validate checks the request fields
func (r MultiSlugRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Handle,
			validation.Required.Error("handle is required"),
			validation.Length(1, 255),
			validation.Match(handleRegex).Error("handle must be URL safe"),
		),
		validation.Field(&r.Options, validation.Length(0, 20).Error("at most 20 options")),
	)
}

// FavoritesRequest is the body of POST /api/v1/favorites/resolve
type FavoritesRequest struct {
	Slugs []string `json:"slugs"`
}

// Validate checks the request fields
func (r FavoritesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slugs,
			validation.Required.Error("slugs are required"),
			validation.Each(validation.Required, validation.Length(1, 512)),
		),
	)
}
