// Package save persists checkpoint progress and player settings through
// gdata. When no storage is available the store keeps everything in memory.
package save

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const AppName = "crash_test_escape"

const (
	progressObject = "progress"
	settingsObject = "settings"
	slotProp       = "main"
)

type Progress struct {
	Level        string `yaml:"level"`
	CheckpointID string `yaml:"checkpoint_id"`
	Deaths       int    `yaml:"deaths"`
}

type Settings struct {
	SFXVolume  float64 `yaml:"sfx_volume"`
	Fullscreen bool    `yaml:"fullscreen"`
}

func DefaultSettings() Settings {
	return Settings{SFXVolume: 0.8}
}

// backend is the part of *gdata.Manager the store needs.
type backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

type Store struct {
	backend  backend
	progress Progress
	settings Settings
}

// Open connects to the gdata storage for appName and loads whatever was
// saved. Failures fall back to an in-memory store.
func Open(appName string) *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil || m == nil {
		log.Printf("save: storage unavailable, progress will not persist: %v", err)
		return NewStore(nil)
	}
	return NewStore(m)
}

func NewStore(b backend) *Store {
	s := &Store{backend: b, settings: DefaultSettings()}
	if err := s.Load(); err != nil {
		log.Printf("save: %v (using defaults)", err)
	}
	return s
}

// Persistent reports whether writes reach disk.
func (s *Store) Persistent() bool {
	return s != nil && s.backend != nil
}

func (s *Store) Load() error {
	if !s.Persistent() {
		return nil
	}
	var progress Progress
	if err := s.load(progressObject, &progress); err != nil {
		return err
	}
	settings := DefaultSettings()
	if err := s.load(settingsObject, &settings); err != nil {
		return err
	}
	settings.SFXVolume = clamp01(settings.SFXVolume)
	s.progress = progress
	s.settings = settings
	return nil
}

func (s *Store) load(object string, out any) error {
	if !s.backend.ObjectPropExists(object, slotProp) {
		return nil
	}
	data, err := s.backend.LoadObjectProp(object, slotProp)
	if err != nil {
		return fmt.Errorf("load %s: %w", object, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", object, err)
	}
	return nil
}

func (s *Store) Save() error {
	if !s.Persistent() {
		return nil
	}
	if err := s.save(progressObject, s.progress); err != nil {
		return err
	}
	return s.save(settingsObject, s.settings)
}

func (s *Store) save(object string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", object, err)
	}
	if err := s.backend.SaveObjectProp(object, slotProp, data); err != nil {
		return fmt.Errorf("save %s: %w", object, err)
	}
	return nil
}

func (s *Store) Progress() Progress { return s.progress }

func (s *Store) Settings() Settings { return s.settings }

// EnterLevel records the level being played. Entering a different level
// forgets the checkpoint of the previous one.
func (s *Store) EnterLevel(level string) {
	if s.progress.Level != level {
		s.progress.CheckpointID = ""
	}
	s.progress.Level = level
}

func (s *Store) SetCheckpoint(level, id string) {
	s.progress.Level = level
	s.progress.CheckpointID = id
}

// CheckpointFor returns the saved checkpoint id when it belongs to level.
func (s *Store) CheckpointFor(level string) (string, bool) {
	if s.progress.Level != level || s.progress.CheckpointID == "" {
		return "", false
	}
	return s.progress.CheckpointID, true
}

func (s *Store) AddDeath() { s.progress.Deaths++ }

func (s *Store) ResetProgress() { s.progress = Progress{} }

func (s *Store) SetSFXVolume(v float64) { s.settings.SFXVolume = clamp01(v) }

func (s *Store) SetFullscreen(on bool) { s.settings.Fullscreen = on }

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
