package usecase

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/efe-storefront/backend/internal/domain"
)

// DefaultVisualOption is the option encoded by visual slugs when no other
// option name is configured
const DefaultVisualOption = "Color"

// Slug grammar separators
const (
	multiSeparator   = "--"
	multiTokenJoiner = "-"
	nameValueJoiner  = "_"
)

var (
	// multiTokenRegex matches one name_value token of a multi-option suffix
	multiTokenRegex = regexp.MustCompile(`([a-z0-9]+)_([a-z0-9]+)`)

	defaultVisualSuffixRegex = compileVisualSuffix(DefaultVisualOption)
)

// compileVisualSuffix builds the pattern for "-<option>_<value>", the value
// running until the next underscore or end of string.
func compileVisualSuffix(optionName string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)-` + regexp.QuoteMeta(optionName) + `_([^_]+)`)
}

func visualSuffixRegex(optionName string) *regexp.Regexp {
	if strings.EqualFold(optionName, DefaultVisualOption) {
		return defaultVisualSuffixRegex
	}
	return compileVisualSuffix(optionName)
}

func visualOptionOrDefault(optionName string) string {
	if strings.TrimSpace(optionName) == "" {
		return DefaultVisualOption
	}
	return optionName
}

// ExtractVisualValue returns the decoded, lowercased value of the visual
// option suffix, e.g. "tee-color_red" -> "red". The bool is false when the
// slug has no such suffix.
func ExtractVisualValue(slug, optionName string) (string, bool) {
	optionName = visualOptionOrDefault(optionName)

	match := visualSuffixRegex(optionName).FindStringSubmatch(slug)
	if match == nil {
		return "", false
	}

	raw := match[1]
	value, err := url.PathUnescape(raw)
	if err != nil {
		// Malformed escapes are kept literally
		value = raw
	}
	value = strings.ToLower(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// StripVisualSuffix removes the visual option suffix from a slug. Slugs
// without the suffix are returned unchanged.
func StripVisualSuffix(slug, optionName string) string {
	re := visualSuffixRegex(visualOptionOrDefault(optionName))

	// Removing one suffix can splice a new one together ("-co" + "lor_x"),
	// so strip until nothing matches.
	for {
		loc := re.FindStringIndex(slug)
		if loc == nil {
			return slug
		}
		slug = slug[:loc[0]] + slug[loc[1]:]
	}
}

// BuildVisualSlug replaces any visual suffix on baseSlug with one for value.
// An empty value yields the stripped base slug.
func BuildVisualSlug(baseSlug, value, optionName string) string {
	optionName = visualOptionOrDefault(optionName)
	base := StripVisualSuffix(baseSlug, optionName)
	if value == "" {
		return base
	}
	return base + "-" + strings.ToLower(optionName) + nameValueJoiner + encodeVisualValue(value)
}

// encodeVisualValue percent-encodes a value for a path segment. Underscore
// terminates the value on read so it is encoded as well.
func encodeVisualValue(value string) string {
	return strings.ReplaceAll(url.PathEscape(value), "_", "%5F")
}

// ExtractMultiOptions decodes the "--name_value-name_value" suffix into a
// map of normalized option name to normalized value. Later tokens overwrite
// earlier ones with the same name. The result is never nil.
func ExtractMultiOptions(slug string) map[string]string {
	options := make(map[string]string)

	idx := strings.Index(slug, multiSeparator)
	if idx < 0 {
		return options
	}
	segment := strings.ToLower(slug[idx+len(multiSeparator):])
	if segment == "" {
		return options
	}

	for _, match := range multiTokenRegex.FindAllStringSubmatch(segment, -1) {
		options[match[1]] = match[2]
	}
	return options
}

// StripMultiSuffix returns the part of the slug before the first "--"
func StripMultiSuffix(slug string) string {
	if idx := strings.Index(slug, multiSeparator); idx >= 0 {
		return slug[:idx]
	}
	return slug
}

// BuildMultiSlug encodes options onto baseSlug. Names and values are
// normalized and tokens are sorted as full "name_value" strings, so the same
// selection always yields the same slug regardless of map order.
func BuildMultiSlug(baseSlug string, options map[string]string) string {
	base := StripMultiSuffix(baseSlug)

	tokens := make([]string, 0, len(options))
	for name, value := range options {
		normalizedName := NormalizeToken(name)
		normalizedValue := NormalizeToken(value)
		if normalizedName == "" || normalizedValue == "" {
			continue
		}
		tokens = append(tokens, normalizedName+nameValueJoiner+normalizedValue)
	}
	if len(tokens) == 0 {
		return base
	}

	sort.Strings(tokens)
	return base + multiSeparator + strings.Join(tokens, multiTokenJoiner)
}

// BuildMultiSlugFromOptions encodes a variant's ordered option pairs
func BuildMultiSlugFromOptions(baseSlug string, options []domain.OptionValue) string {
	selection := make(map[string]string, len(options))
	for _, opt := range options {
		selection[opt.Name] = opt.Value
	}
	return BuildMultiSlug(baseSlug, selection)
}

// ParseSlug decodes a product page slug. The multi-option grammar wins
// whenever "--" is present. A suffix that carries no usable selection
// decodes to SelectionNone with the suffix stripped from the handle.
func ParseSlug(slug, optionName string) domain.SlugSelection {
	optionName = visualOptionOrDefault(optionName)
	selection := domain.SlugSelection{
		Slug: slug,
		Mode: domain.SelectionNone,
	}

	if strings.Contains(slug, multiSeparator) {
		selection.Handle = StripMultiSuffix(slug)
		if options := ExtractMultiOptions(slug); len(options) > 0 {
			selection.Mode = domain.SelectionMulti
			selection.Options = options
		}
		return selection
	}

	selection.Handle = StripVisualSuffix(slug, optionName)
	if value, ok := ExtractVisualValue(slug, optionName); ok {
		selection.Mode = domain.SelectionVisual
		selection.VisualOption = optionName
		selection.VisualValue = value
	}
	return selection
}
