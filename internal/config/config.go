package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mailsnap/mailsnap/internal/core"
	"github.com/mailsnap/mailsnap/internal/crypto"
)

// Defaults match the behavior of the tool when no site config exists.
const (
	DefaultService      = "cyrus-imapd.service"
	DefaultSnapshotSize = "100M"
	DefaultMountBase    = "/mnt"
	DefaultSettleDelay  = 5 * time.Second
)

// Config is the root structure of mailsnap.yaml. Every field is optional;
// zero values fall back to the defaults above.
type Config struct {
	Service      string      `yaml:"service"`       // mail service unit name
	SnapshotSize string      `yaml:"snapshot_size"` // capacity of the COW snapshot
	MountBase    string      `yaml:"mount_base"`    // parent dir of the mount point
	SettleDelay  string      `yaml:"settle_delay"`  // wait after stopping the service
	Remote       *RemoteHost `yaml:"remote"`        // optional ssh preflight target
	Hooks        Hooks       `yaml:"hooks"`
}

// Hooks defines lifecycle commands around a run.
type Hooks struct {
	Pre  []Hook `yaml:"pre"`  // run before validation
	Post []Hook `yaml:"post"` // run after a successful backup
}

// Hook is one shell command, optionally gated by a `when:` condition
// evaluated against the detected system context.
type Hook struct {
	Name    string `yaml:"name"`
	Command string `yaml:"command"`
	When    string `yaml:"when"`
	OnFail  string `yaml:"on_fail"` // "abort" (default) or "continue"
}

// RemoteHost holds connection information for the rsync target, used only
// for the optional reachability preflight.
type RemoteHost struct {
	Address    string `yaml:"address"`
	User       string `yaml:"user"`
	Port       int    `yaml:"port"`
	SSHKeyPath string `yaml:"ssh_key_path"`
	Password   string `yaml:"password"` // optional, may be ENC[...]
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Service:      DefaultService,
		SnapshotSize: DefaultSnapshotSize,
		MountBase:    DefaultMountBase,
	}
}

// Load reads the YAML file at path. An empty path, or the default path when
// the file is absent, yields the built-in defaults. Values pass through env
// var expansion and ENC[...] decryption.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(absPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("file read error (%s): %w", absPath, err)
	}

	// If a .env sits next to the config, load it first so expansion sees it.
	envPath := filepath.Join(filepath.Dir(absPath), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if loadErr := godotenv.Load(envPath); loadErr != nil {
			fmt.Printf("Warning: Failed to load .env file: %v\n", loadErr)
		}
	} else {
		_ = godotenv.Load() // ignore error (no file found)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, core.ConfigurationErr("yaml parse error (%s): %v", absPath, err)
	}

	expandConfig(cfg)
	if err := decryptConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	if cfg.SnapshotSize == "" {
		cfg.SnapshotSize = DefaultSnapshotSize
	}
	if cfg.MountBase == "" {
		cfg.MountBase = DefaultMountBase
	}
	return cfg, nil
}

// SettleDuration parses the settle delay, falling back to the default on an
// empty or malformed value.
func (c *Config) SettleDuration() time.Duration {
	if c.SettleDelay == "" {
		return DefaultSettleDelay
	}
	d, err := time.ParseDuration(c.SettleDelay)
	if err != nil || d < 0 {
		return DefaultSettleDelay
	}
	return d
}

// expandConfig performs env var substitution on all string values.
func expandConfig(cfg *Config) {
	cfg.Service = os.ExpandEnv(cfg.Service)
	cfg.SnapshotSize = os.ExpandEnv(cfg.SnapshotSize)
	cfg.MountBase = os.ExpandEnv(cfg.MountBase)

	if cfg.Remote != nil {
		cfg.Remote.Address = os.ExpandEnv(cfg.Remote.Address)
		cfg.Remote.User = os.ExpandEnv(cfg.Remote.User)
		cfg.Remote.SSHKeyPath = os.ExpandEnv(cfg.Remote.SSHKeyPath)
		cfg.Remote.Password = os.ExpandEnv(cfg.Remote.Password)
	}

	for i := range cfg.Hooks.Pre {
		cfg.Hooks.Pre[i].Command = os.ExpandEnv(cfg.Hooks.Pre[i].Command)
	}
	for i := range cfg.Hooks.Post {
		cfg.Hooks.Post[i].Command = os.ExpandEnv(cfg.Hooks.Post[i].Command)
	}
}

func decryptConfig(cfg *Config) error {
	if cfg.Remote == nil || !crypto.IsEncrypted(cfg.Remote.Password) {
		return nil
	}

	key := MasterKey()
	if key == "" {
		return core.ConfigurationErr("encrypted config value found but no master key available")
	}

	plain, err := crypto.Decrypt(cfg.Remote.Password, key)
	if err != nil {
		return core.ConfigurationErr("cannot decrypt remote password: %v", err)
	}
	cfg.Remote.Password = plain
	return nil
}
