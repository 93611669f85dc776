package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

type memBackend struct {
	props   map[string][]byte
	failOn  string
	written int
}

func newMemBackend() *memBackend {
	return &memBackend{props: map[string][]byte{}}
}

func (m *memBackend) key(o, p string) string { return o + "/" + p }

func (m *memBackend) ObjectPropExists(o, p string) bool {
	_, ok := m.props[m.key(o, p)]
	return ok
}

func (m *memBackend) LoadObjectProp(o, p string) ([]byte, error) {
	if o == m.failOn {
		return nil, errors.New("disk error")
	}
	return m.props[m.key(o, p)], nil
}

func (m *memBackend) SaveObjectProp(o, p string, data []byte) error {
	if o == m.failOn {
		return errors.New("disk full")
	}
	m.written++
	m.props[m.key(o, p)] = append([]byte(nil), data...)
	return nil
}

func TestMemoryStoreDefaults(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Fatalf("nil backend must not be persistent")
	}
	if got := s.Settings(); got != DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", got)
	}
	s.SetCheckpoint("level_01", "cp_a")
	if err := s.Save(); err != nil {
		t.Fatalf("in-memory save must not fail: %v", err)
	}
	if id, ok := s.CheckpointFor("level_01"); !ok || id != "cp_a" {
		t.Fatalf("in-memory progress lost: %q %v", id, ok)
	}
}

func TestRoundTripThroughBackend(t *testing.T) {
	b := newMemBackend()
	s := NewStore(b)
	s.SetCheckpoint("level_02", "cp_mid")
	s.AddDeath()
	s.AddDeath()
	s.SetSFXVolume(0.3)
	s.SetFullscreen(true)
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if b.written != 2 {
		t.Fatalf("expected progress and settings writes, got %d", b.written)
	}

	again := NewStore(b)
	want := Progress{Level: "level_02", CheckpointID: "cp_mid", Deaths: 2}
	if got := again.Progress(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got := again.Settings(); got.SFXVolume != 0.3 || !got.Fullscreen {
		t.Fatalf("settings not restored: %+v", got)
	}
}

func TestEnterLevel(t *testing.T) {
	cases := []struct {
		name     string
		enter    string
		wantCP   string
		wantSame bool
	}{
		{"same level keeps checkpoint", "level_01", "cp_a", true},
		{"new level forgets checkpoint", "level_02", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore(nil)
			s.SetCheckpoint("level_01", "cp_a")
			s.EnterLevel(c.enter)
			if got := s.Progress().CheckpointID; got != c.wantCP {
				t.Fatalf("expected checkpoint %q, got %q", c.wantCP, got)
			}
			if _, ok := s.CheckpointFor("level_01"); ok != c.wantSame {
				t.Fatalf("CheckpointFor(level_01) ok=%v, want %v", ok, c.wantSame)
			}
		})
	}
}

func TestResetProgressKeepsSettings(t *testing.T) {
	s := NewStore(nil)
	s.SetCheckpoint("level_01", "cp_a")
	s.AddDeath()
	s.SetSFXVolume(0.1)
	s.ResetProgress()
	if s.Progress() != (Progress{}) {
		t.Fatalf("expected empty progress, got %+v", s.Progress())
	}
	if s.Settings().SFXVolume != 0.1 {
		t.Fatalf("reset must not touch settings")
	}
}

func TestVolumeClamped(t *testing.T) {
	s := NewStore(nil)
	s.SetSFXVolume(3)
	if s.Settings().SFXVolume != 1 {
		t.Fatalf("expected 1, got %v", s.Settings().SFXVolume)
	}
	s.SetSFXVolume(-2)
	if s.Settings().SFXVolume != 0 {
		t.Fatalf("expected 0, got %v", s.Settings().SFXVolume)
	}
}

func TestBackendErrors(t *testing.T) {
	b := newMemBackend()
	b.props[b.key(progressObject, slotProp)] = []byte("level: [broken")
	s := NewStore(b)
	if s.Progress() != (Progress{}) {
		t.Fatalf("corrupt progress must fall back to empty, got %+v", s.Progress())
	}

	b.failOn = settingsObject
	if err := s.Save(); err == nil {
		t.Fatalf("expected save error to surface")
	}
}

func TestGdataStore(t *testing.T) {
	appName := fmt.Sprintf("crash_test_escape_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil || m == nil {
		t.Skip("gdata storage unavailable")
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	s := NewStore(m)
	s.SetCheckpoint("level_01", "cp_b")
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if id, ok := NewStore(m).CheckpointFor("level_01"); !ok || id != "cp_b" {
		t.Fatalf("expected cp_b from disk, got %q %v", id, ok)
	}
}
