package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/caarlos0/env/v11"
)

var ErrNotLoggedIn = errors.New("not logged in")

// ConfigDir is where config, session, history and logs live.
// CHATCLI_CONFIG_DIR overrides the platform default.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATCLI_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	baseDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, "ChatCLI"), nil
}

func getConfigPath() (string, error) {
	if p := os.Getenv("CHATCLI_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func getSessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func DefaultConfig() core.Config {
	return core.Config{
		Server: "http://localhost:5001",
		Theme:  "Rose Pine",
		Log: core.LogConfig{
			Level: "info",
		},
		Profanity: core.ProfanityConfig{
			Languages: []string{"en", "ru"},
		},
		History: core.HistoryConfig{
			Enabled: true,
		},
		Send: core.SendConfig{
			Rate:  5,
			Burst: 10,
		},
		Reconnect: core.ReconnectConfig{
			Attempts: 5,
			Delay:    2 * time.Second,
		},
	}
}

// LoadConfig reads the config file if there is one, then applies
// CHATCLI_* environment variables on top of it.
func LoadConfig() (core.Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return core.Config{}, err
	}
	return LoadConfigFrom(configPath)
}

func LoadConfigFrom(configPath string) (core.Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
			return core.Config{}, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return core.Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return core.Config{}, fmt.Errorf("config from environment: %w", err)
	}

	if err := expandPaths(&cfg); err != nil {
		return core.Config{}, err
	}
	cfg.Server = strings.TrimRight(cfg.Server, "/")

	return cfg, nil
}

func expandPaths(cfg *core.Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(dir, "debug.log")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(dir, "history.db")
	}
	home, _ := os.UserHomeDir()
	for _, p := range []*string{&cfg.Log.File, &cfg.History.Path} {
		if home != "" && strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
	return nil
}

func SaveConfig(cfg core.Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func LoadSession() (core.Session, error) {
	sessionPath, err := getSessionPath()
	if err != nil {
		return core.Session{}, err
	}

	data, err := os.ReadFile(sessionPath)
	if errors.Is(err, os.ErrNotExist) {
		return core.Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return core.Session{}, err
	}

	var session core.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return core.Session{}, fmt.Errorf("read session: %w", err)
	}
	if session.Token == "" {
		return core.Session{}, ErrNotLoggedIn
	}

	return session, nil
}

func SaveSession(session core.Session) error {
	path, err := getSessionPath()
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func ClearSession() error {
	path, err := getSessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func IsLoggedIn() bool {
	_, err := LoadSession()
	return err == nil
}
