package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoProfile = errors.New("no config selected")

const DefaultLabel = "Default"

// Store keeps labeled profiles as <Root>/configs/<label>.yaml and the active
// label in <Root>/current_config.
type Store struct {
	Root string
}

// DefaultStore is rooted in the user's config directory.
func DefaultStore() Store {
	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return Store{Root: filepath.Join(appdata, "komikcast")}
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return Store{Root: filepath.Join(xdg, "komikcast")}
	}

	home, _ := os.UserHomeDir()
	return Store{Root: filepath.Join(home, ".config", "komikcast")}
}

func (s Store) Dir() string {
	return filepath.Join(s.Root, "configs")
}

func (s Store) currentFile() string {
	return filepath.Join(s.Root, "current_config")
}

func (s Store) PathOf(label string) string {
	return filepath.Join(s.Dir(), label+".yaml")
}

func (s Store) ensureDirs() error {
	return os.MkdirAll(s.Dir(), 0755)
}

func checkLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return errors.New("label cannot be empty")
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("label %q must not contain path separators", label)
	}

	return nil
}

func (s Store) exists(label string) bool {
	_, err := os.Stat(s.PathOf(label))
	return err == nil
}

func (s Store) CurrentLabel() (string, error) {
	b, err := os.ReadFile(s.currentFile())
	if os.IsNotExist(err) {
		return "", ErrNoProfile
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoProfile
	}

	return label, nil
}

func (s Store) ActivePath() (string, error) {
	label, err := s.CurrentLabel()
	if err != nil {
		return "", err
	}

	return s.PathOf(label), nil
}

type Profile struct {
	Label  string
	Path   string
	Active bool
}

func (s Store) List() ([]Profile, error) {
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		return nil, err
	}

	active, _ := s.CurrentLabel()
	var out []Profile

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		label := strings.TrimSuffix(name, ".yaml")
		out = append(out, Profile{
			Label:  label,
			Path:   filepath.Join(s.Dir(), name),
			Active: label == active,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (s Store) Switch(label string) error {
	if err := checkLabel(label); err != nil {
		return err
	}
	if err := s.ensureDirs(); err != nil {
		return err
	}
	if !s.exists(label) {
		return fmt.Errorf("config %q does not exist", label)
	}

	return os.WriteFile(s.currentFile(), []byte(label), 0644)
}

// Create writes cfg as a new profile and returns its path.
func (s Store) Create(label string, cfg *Config) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}
	if err := s.ensureDirs(); err != nil {
		return "", err
	}
	if s.exists(label) {
		return "", fmt.Errorf("config %q already exists", label)
	}

	path := s.PathOf(label)
	if err := SaveYAML(cfg, path); err != nil {
		return "", err
	}

	return path, nil
}

// Import copies an existing YAML file in as a new profile.
func (s Store) Import(label, srcPath string) (string, error) {
	if err := checkLabel(label); err != nil {
		return "", err
	}

	cfg, err := LoadYAML(srcPath)
	if err != nil {
		return "", err
	}

	return s.Create(label, cfg)
}

func (s Store) Rename(oldLabel, newLabel string) error {
	if err := checkLabel(newLabel); err != nil {
		return err
	}
	if !s.exists(oldLabel) {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if s.exists(newLabel) {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(s.PathOf(oldLabel), s.PathOf(newLabel)); err != nil {
		return err
	}

	if active, _ := s.CurrentLabel(); active == oldLabel {
		return os.WriteFile(s.currentFile(), []byte(newLabel), 0644)
	}

	return nil
}

// Remove deletes a profile. Removing the active one switches to Default.
// It reports whether that switch happened.
func (s Store) Remove(label string) (bool, error) {
	if err := checkLabel(label); err != nil {
		return false, err
	}
	if label == DefaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if !s.exists(label) {
		return false, fmt.Errorf("config %q does not exist", label)
	}

	switched := false
	if active, _ := s.CurrentLabel(); active == label {
		if err := s.Switch(DefaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		switched = true
	}

	return switched, os.Remove(s.PathOf(label))
}

// InitDefault creates the Default profile when missing and makes it active.
// The error is os.ErrExist when the profile was already there.
func (s Store) InitDefault() (string, error) {
	path := s.PathOf(DefaultLabel)

	if !s.exists(DefaultLabel) {
		if _, err := s.Create(DefaultLabel, DefaultConfig()); err != nil {
			return "", err
		}
		return path, s.Switch(DefaultLabel)
	}

	if err := s.Switch(DefaultLabel); err != nil {
		return "", err
	}

	return path, os.ErrExist
}

// Reset overwrites the active profile with defaults.
func (s Store) Reset() (string, error) {
	path, err := s.ActivePath()
	if err != nil {
		return "", err
	}

	return path, SaveYAML(DefaultConfig(), path)
}
