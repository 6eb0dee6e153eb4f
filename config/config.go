package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-pattern/arp"
	"go-pattern/debug"
)

// ArpSettings is the saved arpeggiator setup. Enums are stored by name.
type ArpSettings struct {
	Mode        string  `json:"mode"`
	Pattern     string  `json:"pattern"`
	OctaveRange int     `json:"octaveRange"`
	Speed       string  `json:"speed"`
	Gate        float64 `json:"gate"`
	Swing       float64 `json:"swing,omitempty"`
	Humanize    float64 `json:"humanize,omitempty"`
	Retrigger   bool    `json:"retrigger"`
	Hold        bool    `json:"hold,omitempty"`
	Channel     uint8   `json:"channel"`
}

// MIDIConfig defines the MIDI ports
type MIDIConfig struct {
	OutPort     string `json:"outPort,omitempty"`
	InputFilter string `json:"inputFilter,omitempty"` // substring of keyboard port names
	DrumChannel uint8  `json:"drumChannel,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette       string `json:"palette,omitempty"` // path to a GIMP .gpl palette
	PatternLength int    `json:"patternLength,omitempty"`
	LastTrack     int    `json:"lastTrack,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Tempo int         `json:"tempo"`
	Seed  uint32      `json:"seed,omitempty"` // 0 = reseed from the clock
	Scale string      `json:"scale,omitempty"`
	Root  int         `json:"root,omitempty"`
	Debug bool        `json:"debug,omitempty"`
	Arp   ArpSettings `json:"arp"`
	MIDI  MIDIConfig  `json:"midi,omitempty"`
	UI    UIConfig    `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	def := arp.DefaultConfig()
	return &Config{
		Tempo: arp.DefaultBPM,
		Scale: "minor",
		Root:  48,
		Arp: ArpSettings{
			Mode:        string(def.Mode),
			Pattern:     string(def.Pattern),
			OctaveRange: def.OctaveRange,
			Speed:       string(def.Speed),
			Gate:        def.Gate,
			Retrigger:   def.Retrigger,
			Channel:     1,
		},
		MIDI: MIDIConfig{
			DrumChannel: 10,
		},
		UI: UIConfig{
			PatternLength: 16,
		},
	}
}

// ArpConfig converts the saved settings, replacing unknown names with
// defaults and clamping numbers
func (s ArpSettings) ArpConfig() arp.Config {
	mode, ok := arp.ParseMode(s.Mode)
	if !ok {
		debug.Warn("config", "unknown arp mode %q, using %s", s.Mode, mode)
	}
	pat, ok := arp.ParsePattern(s.Pattern)
	if !ok {
		debug.Warn("config", "unknown arp pattern %q, using %s", s.Pattern, pat)
	}
	speed, ok := arp.ParseSpeed(s.Speed)
	if !ok {
		debug.Warn("config", "unknown arp speed %q, using %s", s.Speed, speed)
	}
	return arp.Config{
		Mode:        mode,
		Pattern:     pat,
		OctaveRange: s.OctaveRange,
		Speed:       speed,
		Gate:        s.Gate,
		Swing:       s.Swing,
		Humanize:    s.Humanize,
		Retrigger:   s.Retrigger,
		Hold:        s.Hold,
	}.Normalize()
}

// SetArpConfig stores cfg, keeping the channel
func (s *ArpSettings) SetArpConfig(cfg arp.Config) {
	s.Mode = string(cfg.Mode)
	s.Pattern = string(cfg.Pattern)
	s.OctaveRange = cfg.OctaveRange
	s.Speed = string(cfg.Speed)
	s.Gate = cfg.Gate
	s.Swing = cfg.Swing
	s.Humanize = cfg.Humanize
	s.Retrigger = cfg.Retrigger
	s.Hold = cfg.Hold
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pattern"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Fields missing from the file keep
// their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	debug.Log("config", "loaded %s", path)
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating the directory
func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
