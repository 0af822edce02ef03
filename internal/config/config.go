// Package config loads the monitor configuration document.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lkarlslund/screenwatch/internal/common"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Recognized keys.
const (
	KeyImageName         = "image_name"
	KeySoundName         = "mp3_name"
	KeyAcquireButtonName = "acquire_button_image_name"
	KeyButtonName        = "button_image_name"
	KeyMatchThreshold    = "match_threshold"
	KeyCheckInterval     = "check_interval"
	KeyNotifyOnRefresh   = "notify_on_refresh"
	KeyMode              = "mode"
	KeyRefreshKey        = "refresh_key"
	KeyStartupDelay      = "startup_delay"
	KeyResumeDelay       = "resume_delay"
	KeyErrorCooldown     = "error_cooldown"
	KeyOnError           = "on_error"
	KeySuppressRepeats   = "suppress_repeat_alerts"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
)

// EnvPrefix prefixes environment overrides, e.g. SCREENWATCH_MATCH_THRESHOLD.
const EnvPrefix = "SCREENWATCH"

var requiredKeys = []string{
	KeyImageName,
	KeySoundName,
	KeyMatchThreshold,
	KeyCheckInterval,
	KeyNotifyOnRefresh,
}

// Config is read once at startup and never changes afterwards.
type Config struct {
	// File is the configuration document that was read.
	File string

	ImagePath string
	SoundPath string
	// ControlImagePaths lists control templates in the order they are tried.
	ControlImagePaths []string

	MatchThreshold  float64
	CheckInterval   time.Duration
	NotifyOnRefresh bool

	Mode                 Mode
	RefreshKey           string
	StartupDelay         time.Duration
	ResumeDelay          time.Duration
	ErrorCooldown        time.Duration
	OnError              ErrorPolicy
	SuppressRepeatAlerts bool

	LogLevel  string
	LogFormat string
}

// New returns a viper instance with defaults and environment overrides set.
// Callers bind their command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyMode, "standard")
	v.SetDefault(KeyRefreshKey, "f5")
	v.SetDefault(KeyStartupDelay, 30)
	v.SetDefault(KeyResumeDelay, 30)
	v.SetDefault(KeyErrorCooldown, 30)
	v.SetDefault(KeyOnError, "continue")
	v.SetDefault(KeySuppressRepeats, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration document and validates it. When file is
// empty the document is searched for as config.yaml next to the executable
// and in the working directory. A missing document is an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if exe, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(exe))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, common.NewUserError("configuration file not found", err)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return nil, common.MissingKey(key)
		}
	}

	cfg := &Config{
		File:       v.ConfigFileUsed(),
		RefreshKey: strings.ToLower(strings.TrimSpace(v.GetString(KeyRefreshKey))),
		LogLevel:   v.GetString(KeyLogLevel),
		LogFormat:  v.GetString(KeyLogFormat),
	}
	baseDir := ""
	if cfg.File != "" {
		baseDir = filepath.Dir(cfg.File)
	}

	var err error
	if cfg.MatchThreshold, err = cast.ToFloat64E(v.Get(KeyMatchThreshold)); err != nil {
		return nil, common.InvalidKey(KeyMatchThreshold, "not a number: %v", v.Get(KeyMatchThreshold))
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 1 {
		return nil, common.InvalidKey(KeyMatchThreshold, "must be in (0,1], got %v", cfg.MatchThreshold)
	}

	interval, err := cast.ToIntE(v.Get(KeyCheckInterval))
	if err != nil {
		return nil, common.InvalidKey(KeyCheckInterval, "not an integer: %v", v.Get(KeyCheckInterval))
	}
	if interval <= 0 {
		return nil, common.InvalidKey(KeyCheckInterval, "must be positive, got %d", interval)
	}
	cfg.CheckInterval = time.Duration(interval) * time.Second

	if cfg.NotifyOnRefresh, err = cast.ToBoolE(v.Get(KeyNotifyOnRefresh)); err != nil {
		return nil, common.InvalidKey(KeyNotifyOnRefresh, "not a boolean: %v", v.Get(KeyNotifyOnRefresh))
	}
	if cfg.SuppressRepeatAlerts, err = cast.ToBoolE(v.Get(KeySuppressRepeats)); err != nil {
		return nil, common.InvalidKey(KeySuppressRepeats, "not a boolean: %v", v.Get(KeySuppressRepeats))
	}

	for key, dst := range map[string]*time.Duration{
		KeyStartupDelay:  &cfg.StartupDelay,
		KeyResumeDelay:   &cfg.ResumeDelay,
		KeyErrorCooldown: &cfg.ErrorCooldown,
	} {
		secs, err := cast.ToIntE(v.Get(key))
		if err != nil || secs < 0 {
			return nil, common.InvalidKey(key, "must be a non-negative number of seconds, got %v", v.Get(key))
		}
		*dst = time.Duration(secs) * time.Second
	}

	if cfg.Mode, err = ParseMode(v.GetString(KeyMode)); err != nil {
		return nil, common.InvalidKey(KeyMode, "%v", err)
	}
	if cfg.OnError, err = ParseErrorPolicy(v.GetString(KeyOnError)); err != nil {
		return nil, common.InvalidKey(KeyOnError, "%v", err)
	}
	if _, ok := FunctionKey(cfg.RefreshKey); !ok {
		return nil, common.InvalidKey(KeyRefreshKey, "unsupported key %q", cfg.RefreshKey)
	}

	if cfg.ImagePath, err = assetPath(v, KeyImageName, baseDir); err != nil {
		return nil, err
	}
	if cfg.SoundPath, err = assetPath(v, KeySoundName, baseDir); err != nil {
		return nil, err
	}
	for _, key := range []string{KeyAcquireButtonName, KeyButtonName} {
		if v.GetString(key) == "" {
			continue
		}
		path, err := assetPath(v, key, baseDir)
		if err != nil {
			return nil, err
		}
		cfg.ControlImagePaths = append(cfg.ControlImagePaths, path)
	}

	switch {
	case cfg.Mode == ModeAggressive && len(cfg.ControlImagePaths) == 0:
		return nil, common.InvalidKey(KeyMode, "aggressive mode requires %s or %s", KeyAcquireButtonName, KeyButtonName)
	case cfg.Mode == ModeAsk && len(cfg.ControlImagePaths) == 0:
		common.LogInfo("No control image configured, aggressive mode unavailable", nil)
		cfg.Mode = ModeStandard
	}

	return cfg, nil
}

// AggressiveAvailable reports whether a control template is configured.
func (c *Config) AggressiveAvailable() bool {
	return len(c.ControlImagePaths) > 0
}

// assetPath resolves the path stored under key against baseDir and checks
// that the file can be opened.
func assetPath(v *viper.Viper, key, baseDir string) (string, error) {
	name := strings.TrimSpace(v.GetString(key))
	if name == "" {
		return "", common.MissingKey(key)
	}
	path := ExpandPath(name)
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", common.InvalidKey(key, "cannot read %s: %v", path, err)
	}
	_ = f.Close()

	return path, nil
}

// ExpandPath expands a leading ~ and environment variables in a path.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// FunctionKey maps "f1".."f12" to its index 1..12.
func FunctionKey(name string) (int, bool) {
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err != nil || fmt.Sprintf("f%d", n) != name {
		return 0, false
	}
	return n, n >= 1 && n <= 12
}
