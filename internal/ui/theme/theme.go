// Package theme provides the semantic colors used by the form and the
// autocomplete box.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors of the UI. All methods return
// AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // focused field borders, title
	Secondary() lipgloss.AdaptiveColor // highlighted choice
	Accent() lipgloss.AdaptiveColor    // spinner, key hints

	Error() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // box surface

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
}

// Palette is a Theme backed by plain values.
type Palette struct {
	PrimaryColor             lipgloss.AdaptiveColor
	SecondaryColor           lipgloss.AdaptiveColor
	AccentColor              lipgloss.AdaptiveColor
	ErrorColor               lipgloss.AdaptiveColor
	SuccessColor             lipgloss.AdaptiveColor
	TextColor                lipgloss.AdaptiveColor
	TextMutedColor           lipgloss.AdaptiveColor
	BackgroundColor          lipgloss.AdaptiveColor
	BackgroundSecondaryColor lipgloss.AdaptiveColor
	BorderNormalColor        lipgloss.AdaptiveColor
	BorderFocusedColor       lipgloss.AdaptiveColor
}

func (p Palette) Primary() lipgloss.AdaptiveColor      { return p.PrimaryColor }
func (p Palette) Secondary() lipgloss.AdaptiveColor    { return p.SecondaryColor }
func (p Palette) Accent() lipgloss.AdaptiveColor       { return p.AccentColor }
func (p Palette) Error() lipgloss.AdaptiveColor        { return p.ErrorColor }
func (p Palette) Success() lipgloss.AdaptiveColor      { return p.SuccessColor }
func (p Palette) Text() lipgloss.AdaptiveColor         { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor    { return p.TextMutedColor }
func (p Palette) Background() lipgloss.AdaptiveColor   { return p.BackgroundColor }
func (p Palette) BorderNormal() lipgloss.AdaptiveColor { return p.BorderNormalColor }

func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor {
	return p.BackgroundSecondaryColor
}

func (p Palette) BorderFocused() lipgloss.AdaptiveColor {
	return p.BorderFocusedColor
}
