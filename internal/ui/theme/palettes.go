package theme

import "github.com/charmbracelet/lipgloss"

func c(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Dracula, https://draculatheme.com/contribute
var Dracula = Palette{
	PrimaryColor:             c("#7e57c2", "#bd93f9"),
	SecondaryColor:           c("#0097a7", "#8be9fd"),
	AccentColor:              c("#f9a825", "#f1fa8c"),
	ErrorColor:               c("#d32f2f", "#ff5555"),
	SuccessColor:             c("#388e3c", "#50fa7b"),
	TextColor:                c("#212121", "#f8f8f2"),
	TextMutedColor:           c("#757575", "#6272a4"),
	BackgroundColor:          c("#ffffff", "#282a36"),
	BackgroundSecondaryColor: c("#e0e0e0", "#44475a"),
	BorderNormalColor:        c("#bdbdbd", "#6272a4"),
	BorderFocusedColor:       c("#7e57c2", "#bd93f9"),
}

// Nord, https://www.nordtheme.com/docs/colors-and-palettes
var Nord = Palette{
	PrimaryColor:             c("#5E81AC", "#88C0D0"),
	SecondaryColor:           c("#81A1C1", "#81A1C1"),
	AccentColor:              c("#8FBCBB", "#8FBCBB"),
	ErrorColor:               c("#BF616A", "#BF616A"),
	SuccessColor:             c("#A3BE8C", "#A3BE8C"),
	TextColor:                c("#2E3440", "#ECEFF4"),
	TextMutedColor:           c("#3B4252", "#8B95A7"),
	BackgroundColor:          c("#ECEFF4", "#2E3440"),
	BackgroundSecondaryColor: c("#E5E9F0", "#3B4252"),
	BorderNormalColor:        c("#4C566A", "#434C5E"),
	BorderFocusedColor:       c("#434C5E", "#4C566A"),
}

var Gruvbox = Palette{
	PrimaryColor:             c("#076678", "#83a598"),
	SecondaryColor:           c("#8f3f71", "#d3869b"),
	AccentColor:              c("#b57614", "#fabd2f"),
	ErrorColor:               c("#9d0006", "#fb4934"),
	SuccessColor:             c("#79740e", "#b8bb26"),
	TextColor:                c("#3c3836", "#ebdbb2"),
	TextMutedColor:           c("#7c6f64", "#a89984"),
	BackgroundColor:          c("#fbf1c7", "#282828"),
	BackgroundSecondaryColor: c("#ebdbb2", "#504945"),
	BorderNormalColor:        c("#bdae93", "#504945"),
	BorderFocusedColor:       c("#076678", "#83a598"),
}

var TokyoNight = Palette{
	PrimaryColor:             c("#2e7de9", "#82aaff"),
	SecondaryColor:           c("#9854f1", "#c099ff"),
	AccentColor:              c("#b15c00", "#ff966c"),
	ErrorColor:               c("#f52a65", "#ff757f"),
	SuccessColor:             c("#587539", "#c3e88d"),
	TextColor:                c("#3760bf", "#c8d3f5"),
	TextMutedColor:           c("#848cb5", "#636da6"),
	BackgroundColor:          c("#e1e2e7", "#222436"),
	BackgroundSecondaryColor: c("#c8c9ce", "#2f334d"),
	BorderNormalColor:        c("#a8aecb", "#3b4261"),
	BorderFocusedColor:       c("#2e7de9", "#82aaff"),
}

func init() {
	// Dracula first so it is the default.
	RegisterTheme("dracula", Dracula)
	RegisterTheme("gruvbox", Gruvbox)
	RegisterTheme("nord", Nord)
	RegisterTheme("tokyonight", TokyoNight)
}
