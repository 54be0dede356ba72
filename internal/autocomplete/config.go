package autocomplete

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	appErrors "autolight/internal/errors"
)

// Defaults applied before attribute and programmatic overrides.
const (
	DefaultMinimumCharacters = 2
	DefaultXHRWait           = 200 * time.Millisecond
	DefaultHideAfter         = 200 * time.Millisecond
	DefaultChoiceSelector    = ".choice"
	DefaultHighlightClass    = "hilight"
	DefaultQueryVariable     = "q"
	DefaultMaxVisible        = 8
)

// AttributePrefix marks element attributes that configure the widget,
// e.g. "autocomplete-url" or "autocomplete-minimum-characters".
const AttributePrefix = "autocomplete-"

// paramAttributePrefix marks attributes that seed extra GET parameters,
// e.g. "autocomplete-param-country".
const paramAttributePrefix = "param-"

// Config holds every recognised widget option.
type Config struct {
	// URL of the endpoint returning choice HTML. Required.
	URL string
	// MinimumCharacters typed before the server is queried. 0 makes the
	// widget behave like a select: focusing shows choices.
	MinimumCharacters int
	// XHRWait is the debounce delay before a request is issued.
	XHRWait time.Duration
	// HideAfter delays hiding on blur so a click on a choice still lands.
	HideAfter time.Duration
	// ChoiceSelector is the CSS selector locating choices in the response.
	ChoiceSelector string
	// HighlightClass is added to the highlighted choice element.
	HighlightClass string
	// QueryVariable is the GET parameter carrying the input value.
	QueryVariable string
	// MaxVisible caps how many choice rows the box draws at once.
	MaxVisible int
	// Params are extra GET parameters, sent in insertion order.
	Params *Params
	// Fetcher performs the GET. Defaults to an HTTPFetcher.
	Fetcher Fetcher
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		MinimumCharacters: DefaultMinimumCharacters,
		XHRWait:           DefaultXHRWait,
		HideAfter:         DefaultHideAfter,
		ChoiceSelector:    DefaultChoiceSelector,
		HighlightClass:    DefaultHighlightClass,
		QueryVariable:     DefaultQueryVariable,
		MaxVisible:        DefaultMaxVisible,
		Params:            NewParams(),
	}
}

// Option configures a controller at acquisition time.
type Option func(*Config)

// WithURL sets the choice endpoint.
func WithURL(url string) Option {
	return func(c *Config) { c.URL = url }
}

// WithMinimumCharacters sets the query length gate.
func WithMinimumCharacters(n int) Option {
	return func(c *Config) { c.MinimumCharacters = n }
}

// WithXHRWait sets the debounce delay.
func WithXHRWait(d time.Duration) Option {
	return func(c *Config) { c.XHRWait = d }
}

// WithHideAfter sets the blur-hide delay.
func WithHideAfter(d time.Duration) Option {
	return func(c *Config) { c.HideAfter = d }
}

// WithChoiceSelector sets the selector locating choices.
func WithChoiceSelector(sel string) Option {
	return func(c *Config) { c.ChoiceSelector = sel }
}

// WithHighlightClass sets the class marking the highlighted choice.
func WithHighlightClass(class string) Option {
	return func(c *Config) { c.HighlightClass = class }
}

// WithQueryVariable sets the GET parameter carrying the input value.
func WithQueryVariable(name string) Option {
	return func(c *Config) { c.QueryVariable = name }
}

// WithMaxVisible caps the number of rows drawn.
func WithMaxVisible(n int) Option {
	return func(c *Config) { c.MaxVisible = n }
}

// WithParam adds an extra GET parameter.
func WithParam(key, value string) Option {
	return func(c *Config) {
		if c.Params == nil {
			c.Params = NewParams()
		}
		c.Params.Set(key, value)
	}
}

// WithFetcher replaces the transport.
func WithFetcher(f Fetcher) Option {
	return func(c *Config) { c.Fetcher = f }
}

// Validate rejects configurations the widget cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return appErrors.New(appErrors.CodeConfigurationError, "autocomplete needs a url", nil)
	}
	if c.MinimumCharacters < 0 {
		return configErrorf("minimum characters must be >= 0, got %d", c.MinimumCharacters)
	}
	if c.XHRWait < 0 || c.HideAfter < 0 {
		return configErrorf("delays must not be negative")
	}
	if strings.TrimSpace(c.ChoiceSelector) == "" {
		return configErrorf("choice selector must not be empty")
	}
	if strings.TrimSpace(c.QueryVariable) == "" {
		return configErrorf("query variable must not be empty")
	}
	if c.MaxVisible <= 0 {
		return configErrorf("max visible must be > 0, got %d", c.MaxVisible)
	}
	return nil
}

// AttributeOptions converts autocomplete-* element attributes into options.
// Keys may be kebab-case ("minimum-characters") or camelCase
// ("minimumCharacters"). Unrecognised keys are rejected.
func AttributeOptions(attrs map[string]string) ([]Option, error) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if strings.HasPrefix(k, AttributePrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	opts := make([]Option, 0, len(keys))
	for _, key := range keys {
		raw := strings.TrimPrefix(key, AttributePrefix)
		value := attrs[key]
		if strings.HasPrefix(raw, paramAttributePrefix) {
			name := strings.TrimPrefix(raw, paramAttributePrefix)
			if name == "" {
				return nil, configErrorf("attribute %s: missing parameter name", key)
			}
			opts = append(opts, WithParam(name, value))
			continue
		}
		opt, err := attributeOption(kebab(raw), value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		opts = append(opts, opt)
	}
	return opts, nil
}

func attributeOption(name, value string) (Option, error) {
	switch name {
	case "url":
		return WithURL(value), nil
	case "minimum-characters":
		n, err := parseInt(value)
		if err != nil {
			return nil, err
		}
		return WithMinimumCharacters(n), nil
	case "xhr-wait":
		d, err := parseMillis(value)
		if err != nil {
			return nil, err
		}
		return WithXHRWait(d), nil
	case "hide-after":
		d, err := parseMillis(value)
		if err != nil {
			return nil, err
		}
		return WithHideAfter(d), nil
	case "choice-selector":
		return WithChoiceSelector(value), nil
	case "highlight-class", "hilight-class":
		return WithHighlightClass(value), nil
	case "query-variable":
		return WithQueryVariable(value), nil
	case "max-visible":
		n, err := parseInt(value)
		if err != nil {
			return nil, err
		}
		return WithMaxVisible(n), nil
	}
	return nil, configErrorf("unknown option %q", name)
}

// parseMillis accepts a bare integer (milliseconds) or a Go duration.
func parseMillis(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, configErrorf("invalid duration %q", value)
	}
	return d, nil
}

func parseInt(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, configErrorf("invalid integer %q", value)
	}
	return n, nil
}

// kebab lowercases camelCase names: "minimumCharacters" -> "minimum-characters".
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func configErrorf(format string, args ...any) error {
	return appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf(format, args...), nil)
}
