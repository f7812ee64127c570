package usecase

import (
	"strings"

	"github.com/efe-storefront/backend/internal/domain"
)

// ImageSelector picks the images shown for a selected option value
type ImageSelector interface {
	// SelectCarouselImages keeps the full list and picks the starting index
	SelectCarouselImages(images []domain.Image, value, optionName string) domain.CarouselState
	// FilterImagesByVisualOption narrows the list to the images of the value
	FilterImagesByVisualOption(images []domain.Image, value, optionName string) []domain.Image
}

// URLConventionSelector matches images by file naming: an image belongs to
// an option value when its URL contains "-<OptionName>-<Value>",
// case-insensitively (e.g. ".../tee-Color-Red-1.jpg").
type URLConventionSelector struct{}

// NewURLConventionSelector creates the file-name based image selector
func NewURLConventionSelector() *URLConventionSelector {
	return &URLConventionSelector{}
}

// SelectCarouselImages returns all images with ActiveIndex on the first
// image of the value, or 0 when there is no value or no matching image.
func (URLConventionSelector) SelectCarouselImages(images []domain.Image, value, optionName string) domain.CarouselState {
	if len(images) == 0 {
		return domain.CarouselState{Images: []domain.Image{}, ActiveIndex: 0}
	}
	if value == "" || len(images) == 1 {
		return domain.CarouselState{Images: images, ActiveIndex: 0}
	}

	needle := imageNeedle(value, optionName)
	for i, image := range images {
		if strings.Contains(strings.ToLower(image.URL), needle) {
			return domain.CarouselState{Images: images, ActiveIndex: i}
		}
	}
	return domain.CarouselState{Images: images, ActiveIndex: 0}
}

// FilterImagesByVisualOption returns only the images of the value. The
// original list is returned when nothing matches.
func (URLConventionSelector) FilterImagesByVisualOption(images []domain.Image, value, optionName string) []domain.Image {
	if len(images) == 0 || value == "" {
		return images
	}

	needle := imageNeedle(value, optionName)
	var filtered []domain.Image
	for _, image := range images {
		if strings.Contains(strings.ToLower(image.URL), needle) {
			filtered = append(filtered, image)
		}
	}
	if len(filtered) == 0 {
		return images
	}
	return filtered
}

func imageNeedle(value, optionName string) string {
	return strings.ToLower("-" + visualOptionOrDefault(optionName) + "-" + value)
}
