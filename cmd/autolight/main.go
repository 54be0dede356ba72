package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"autolight/internal/autocomplete"
	"autolight/internal/choiceserver"
	"autolight/internal/config"
	"autolight/internal/debug"
	"autolight/internal/ui"
	"autolight/internal/ui/theme"
)

const helpMarkdown = `# autolight

Type at least a couple of letters to ask the server for choices.

- **↑/↓** move the highlight, **enter** or **tab** select it
- **esc** closes the choices, a second **esc** quits
- the **City** field only offers cities of the selected country
- click a choice to select it, **ctrl+t** cycles the theme
`

func main() {
	if err := config.Initialize(config.InitOptions(os.Args[1:])...); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	versionFlag := flag.Bool("version", false, "Print version information and exit")
	serverURLFlag := flag.String("server-url", config.GetString(config.KeyServerURL), "Base URL of the choice server")
	serveFlag := flag.Bool("serve", false, "Run the reference choice server in-process on server.addr")
	themeFlag := flag.String("theme", config.GetString(config.KeyTheme), "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	copyFlag := flag.Bool("copy-on-select", config.GetBool(config.KeyCopyOnSelect), "Copy selected choice values to the clipboard")
	minCharsFlag := flag.Int("min-chars", config.GetInt(config.KeyMinimumCharacters), "Characters required before fetching choices")
	outputFormatFlag := flag.String("output-format", config.GetString(config.KeyOutputFormat), "Help panel markdown style (rich, light, plain)")
	debugFlag := flag.Bool("debug", false, "Write a debug log")
	flag.String(config.ConfigFlag, "", "Config file used instead of the nearest .autolight/config.yaml")
	flag.Parse()

	if *versionFlag {
		printVersion()
		os.Exit(0)
	}

	visited := map[string]struct{}{}
	flag.CommandLine.Visit(func(f *flag.Flag) {
		visited[f.Name] = struct{}{}
	})
	if err := config.ApplyOverrides(collectOverrides(runtimeFlags{
		serverURL:    serverURLFlag,
		theme:        themeFlag,
		copyOnSelect: copyFlag,
		minChars:     minCharsFlag,
		outputFormat: outputFormatFlag,
	}, visited)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := debug.Init(*debugFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error enabling debug log: %v\n", err)
	}
	defer debug.Close()

	if *serveFlag {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go serveChoices(ctx)
	}

	startTheme := config.GetString(config.KeyTheme)
	if !theme.SetTheme(startTheme) {
		debug.Logf("unknown theme %q, using %s", startTheme, theme.CurrentName())
	}

	form, err := buildForm(autocomplete.NewRegistry(config.WidgetOptions()...), config.GetBool(config.KeyCopyOnSelect))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := runProgram(form, func(m tea.Model) programRunner {
		return tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if theme.CurrentName() != startTheme {
		if err := config.SaveTheme(theme.CurrentName()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save theme: %v\n", err)
		}
	}
	if form.Submitted() {
		for _, f := range form.Fields() {
			fmt.Printf("%s: %s\n", f.Label, f.Value())
		}
	}
}

// buildForm wires the country and city fields. Selecting a country narrows
// the city choices through the country parameter.
func buildForm(registry *autocomplete.Registry, copyOnSelect bool) (*ui.Form, error) {
	form := ui.NewForm(registry, ui.FormConfig{
		Title:      "autolight",
		Help:       helpMarkdown,
		HelpFormat: config.GetString(config.KeyOutputFormat),
		OnSubmit: func(map[string]string) tea.Cmd {
			return tea.Quit
		},
	})

	countryField := ui.NewField("country", "Country")
	countryField.SetPlaceholder("start typing a country")
	countryField.Element().SetAttr("autocomplete-url", config.Endpoint("/countries/"))

	cityField := ui.NewField("city", "City")
	cityField.SetPlaceholder("start typing a city")
	cityField.Element().SetAttr("autocomplete-url", config.Endpoint("/cities/"))

	country, err := form.Bind(countryField)
	if err != nil {
		return nil, err
	}
	city, err := form.Bind(cityField)
	if err != nil {
		return nil, err
	}

	country.Subscribe(ui.FillOnSelect(countryField))
	country.Subscribe(ui.ParamFromSelect(city, "country"))
	city.Subscribe(ui.FillOnSelect(cityField))
	if copyOnSelect {
		country.Subscribe(ui.CopyOnSelect())
		city.Subscribe(ui.CopyOnSelect())
	}
	return form, nil
}

func serveChoices(ctx context.Context) {
	logger := slog.New(slog.NewTextHandler(debugWriter{}, nil))
	err := choiceserver.Run(ctx, choiceserver.Options{
		Addr:     config.GetString(config.KeyServerAddr),
		Database: config.GetString(config.KeyServerDatabase),
		Logger:   logger,
	})
	if err != nil {
		debug.Logf("choice server: %v", err)
	}
}

// debugWriter keeps server logs off the terminal the form draws on.
type debugWriter struct{}

func (debugWriter) Write(p []byte) (int, error) {
	if debug.Enabled() {
		debug.Log(strings.TrimRight(string(p), "\n"))
	}
	return len(p), nil
}

var _ io.Writer = debugWriter{}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(tea.Model) programRunner

func runProgram(m tea.Model, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	prog := factory(m)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

type runtimeFlags struct {
	serverURL    *string
	theme        *string
	copyOnSelect *bool
	minChars     *int
	outputFormat *string
}

// collectOverrides returns config overrides for the flags given on the
// command line, so unset flags do not mask env or file values.
func collectOverrides(flags runtimeFlags, visited map[string]struct{}) map[string]any {
	overrides := map[string]any{}
	if _, ok := visited["server-url"]; ok {
		overrides[config.KeyServerURL] = strings.TrimSpace(*flags.serverURL)
	}
	if _, ok := visited["theme"]; ok {
		overrides[config.KeyTheme] = strings.TrimSpace(*flags.theme)
	}
	if _, ok := visited["copy-on-select"]; ok {
		overrides[config.KeyCopyOnSelect] = *flags.copyOnSelect
	}
	if _, ok := visited["min-chars"]; ok {
		overrides[config.KeyMinimumCharacters] = max(*flags.minChars, 0)
	}
	if _, ok := visited["output-format"]; ok {
		overrides[config.KeyOutputFormat] = strings.TrimSpace(*flags.outputFormat)
	}
	return overrides
}
