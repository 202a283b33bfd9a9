package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "TERMGRID_"

// ApplyEnv overrides settings from environment variables of the form
// TERMGRID_<SECTION>_<KEY>, e.g. TERMGRID_RENDER_FPS=60 or
// TERMGRID_LOG_LEVEL=debug. Variables naming no setting are ignored.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.Environ())
}

func (c *Config) applyEnv(environ []string) error {
	known, err := settingKinds()
	if err != nil {
		return err
	}

	overrides := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		section, key, ok := envToPath(name, known)
		if !ok {
			continue
		}
		v, err := parseValue(value, known[section][key])
		if err != nil {
			return &ValidationError{Path: section + "." + key, Message: err.Error(), Value: value}
		}
		setByPath(overrides, section, key, v)
	}
	if len(overrides) == 0 {
		return nil
	}

	data, err := toml.Marshal(overrides)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return &ParseError{Path: "<environment>", Message: err.Error(), Err: err}
	}
	return nil
}

// settingKinds maps section -> key -> zero value of every setting, read
// back from the encoded defaults.
func settingKinds() (map[string]map[string]any, error) {
	data, err := Default().Encode()
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// envToPath converts TERMGRID_RENDER_COLOR_MODE to ("render", "color_mode").
func envToPath(env string, known map[string]map[string]any) (section, key string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	for s, keys := range known {
		rest, found := strings.CutPrefix(name, s+"_")
		if !found {
			continue
		}
		if _, exists := keys[rest]; exists {
			return s, rest, true
		}
	}
	return "", "", false
}

// parseValue converts s to the type of like.
func parseValue(s string, like any) (any, error) {
	switch like.(type) {
	case int64:
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	case bool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0", "":
			return false, nil
		}
		return nil, fmt.Errorf("not a boolean")
	default:
		return s, nil
	}
}

func setByPath(data map[string]any, section, key string, value any) {
	sec, ok := data[section].(map[string]any)
	if !ok {
		sec = make(map[string]any)
		data[section] = sec
	}
	sec[key] = value
}
