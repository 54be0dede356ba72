package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"autolight/internal/autocomplete"
)

const (
	KeyServerURL      = "server.url"
	KeyServerAddr     = "server.addr"
	KeyServerDatabase = "server.database"

	KeyMinimumCharacters = "autocomplete.minimum-characters"
	KeyXHRWait           = "autocomplete.xhr-wait"
	KeyHideAfter         = "autocomplete.hide-after"
	KeyQueryVariable     = "autocomplete.query-variable"
	KeyChoiceSelector    = "autocomplete.choice-selector"
	KeyHighlightClass    = "autocomplete.highlight-class"
	KeyMaxVisible        = "autocomplete.max-visible"

	KeyOutputFormat = "output.format"
	KeyTheme        = "theme"
	KeyCopyOnSelect = "copy-on-select"
)

const (
	// DefaultServerAddr is where the reference choice server listens.
	DefaultServerAddr = "127.0.0.1:8089"
	envPrefix         = "AL"
	dirName           = ".autolight"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

// ConfigFlag names the command-line flag that replaces project config
// discovery with an explicit file.
const ConfigFlag = "config"

// PathFromArgs returns the value of -config/--config in args, or "". It lets
// a binary initialize configuration before flag.Parse, so flag defaults can
// come from the loaded file.
func PathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return ""
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg || len(arg)-len(name) > 2 {
			continue
		}
		if value, ok := strings.CutPrefix(name, ConfigFlag+"="); ok {
			return value
		}
		if name == ConfigFlag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// InitOptions returns the Initialize options implied by args.
func InitOptions(args []string) []Option {
	if path := strings.TrimSpace(PathFromArgs(args)); path != "" {
		return []Option{WithProjectConfig(path)}
	}
	return nil
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride is set by tests.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool fetches a bool configuration value, initializing on demand.
func GetBool(key string) bool {
	v, err := getViper()
	if err != nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt fetches an integer configuration value, initializing on demand.
func GetInt(key string) int {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetInt(key)
}

// GetDuration fetches a duration configuration value, initializing on demand.
// Bare integers are read as milliseconds, matching element attributes.
func GetDuration(key string) time.Duration {
	v, err := getViper()
	if err != nil {
		return 0
	}
	switch raw := v.Get(key).(type) {
	case int:
		return time.Duration(raw) * time.Millisecond
	case int64:
		return time.Duration(raw) * time.Millisecond
	case float64:
		return time.Duration(raw * float64(time.Millisecond))
	case string:
		if ms, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return v.GetDuration(key)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	configInst.Set(key, value)
	return nil
}

// WidgetOptions converts the autocomplete.* keys into controller options.
// Element attributes and per-field options still override them.
func WidgetOptions() []autocomplete.Option {
	return []autocomplete.Option{
		autocomplete.WithMinimumCharacters(GetInt(KeyMinimumCharacters)),
		autocomplete.WithXHRWait(GetDuration(KeyXHRWait)),
		autocomplete.WithHideAfter(GetDuration(KeyHideAfter)),
		autocomplete.WithQueryVariable(GetString(KeyQueryVariable)),
		autocomplete.WithChoiceSelector(GetString(KeyChoiceSelector)),
		autocomplete.WithHighlightClass(GetString(KeyHighlightClass)),
		autocomplete.WithMaxVisible(GetInt(KeyMaxVisible)),
	}
}

// Endpoint joins the configured server URL with path.
func Endpoint(path string) string {
	base := strings.TrimRight(GetString(KeyServerURL), "/")
	return base + "/" + strings.TrimLeft(path, "/")
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath != "" {
		if _, err := os.Stat(projectConfigPath); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	} else {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return fmt.Errorf("load user config: %w", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, dirName, "config.yaml"), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, dirName, "config.yaml")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerURL, "http://"+DefaultServerAddr)
	v.SetDefault(KeyServerAddr, DefaultServerAddr)
	v.SetDefault(KeyServerDatabase, "")

	v.SetDefault(KeyMinimumCharacters, autocomplete.DefaultMinimumCharacters)
	v.SetDefault(KeyXHRWait, autocomplete.DefaultXHRWait)
	v.SetDefault(KeyHideAfter, autocomplete.DefaultHideAfter)
	v.SetDefault(KeyQueryVariable, autocomplete.DefaultQueryVariable)
	v.SetDefault(KeyChoiceSelector, autocomplete.DefaultChoiceSelector)
	v.SetDefault(KeyHighlightClass, autocomplete.DefaultHighlightClass)
	v.SetDefault(KeyMaxVisible, autocomplete.DefaultMaxVisible)

	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyTheme, "dracula")
	v.SetDefault(KeyCopyOnSelect, false)
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	return reset
}

// SaveTheme persists the theme name to the appropriate config file.
// If a project config (.autolight/config.yaml) exists, it updates that file.
// Otherwise, it updates the user config (~/.autolight/config.yaml).
// The user config directory is auto-created if needed, but project config
// directories are never auto-created.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)
	_ = v.ReadInConfig() // missing file is fine

	v.Set(KeyTheme, themeName)

	dir := filepath.Dir(targetPath)
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return Set(KeyTheme, themeName)
}

// findWritableConfigPath returns the project config path if one exists,
// otherwise the user config path.
func findWritableConfigPath() (string, error) {
	wd, err := os.Getwd()
	if err == nil {
		projectPath, err := findProjectConfig(wd)
		if err == nil && projectPath != "" {
			return projectPath, nil
		}
	}
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	return defaultUserConfigPath()
}
