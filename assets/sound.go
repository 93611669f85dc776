package assets

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is shared by the synthesizer and the Ebitengine audio context.
const SampleRate = 44100

var sampleRate = beep.SampleRate(SampleRate)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
	waveNoise
)

// sweep is an oscillator whose pitch slides linearly from `from` to `to`
// over its length.
type sweep struct {
	from, to float64
	wave     wave
	length   int
	pos      int
	phase    float64
	rng      *rand.Rand
}

func newSweep(from, to float64, d time.Duration, w wave) *sweep {
	return &sweep{
		from:   from,
		to:     to,
		wave:   w,
		length: sampleRate.N(d),
		rng:    rand.New(rand.NewPCG(uint64(from), uint64(to)+1)),
	}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.length {
			return i, i > 0
		}
		var v float64
		switch s.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * s.phase)
		case waveSquare:
			v = 1
			if s.phase >= 0.5 {
				v = -1
			}
		case waveSaw:
			v = 2 * (s.phase - 0.5)
		case waveNoise:
			v = s.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(s.pos) / float64(s.length)
		freq := s.from + (s.to-s.from)*t
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope fades a streamer in over attack samples and out over release
// samples before its end.
type envelope struct {
	src             beep.Streamer
	total, pos      int
	attack, release int
}

func shape(src beep.Streamer, d, attack, release time.Duration) beep.Streamer {
	return &envelope{
		src:     src,
		total:   sampleRate.N(d),
		attack:  sampleRate.N(attack),
		release: sampleRate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1.0
		if e.attack > 0 && e.pos < e.attack {
			g = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			g = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

func gain(s beep.Streamer, g float64) beep.Streamer {
	return &effects.Gain{Streamer: s, Gain: g - 1}
}

func tone(from, to float64, d time.Duration, w wave) beep.Streamer {
	return shape(newSweep(from, to, d, w), d, 4*time.Millisecond, d/2)
}

var clipBuilders = map[string]func() beep.Streamer{
	"jump": func() beep.Streamer {
		return gain(tone(320, 640, 120*time.Millisecond, waveSquare), 0.25)
	},
	"land": func() beep.Streamer {
		return gain(tone(0, 0, 60*time.Millisecond, waveNoise), 0.2)
	},
	"shove": func() beep.Streamer {
		return beep.Mix(
			gain(tone(150, 110, 100*time.Millisecond, waveSaw), 0.3),
			gain(tone(0, 0, 80*time.Millisecond, waveNoise), 0.15),
		)
	},
	"hit": func() beep.Streamer {
		return gain(tone(240, 110, 180*time.Millisecond, waveSquare), 0.3)
	},
	"crush": func() beep.Streamer {
		return beep.Mix(
			gain(tone(0, 0, 250*time.Millisecond, waveNoise), 0.35),
			gain(tone(90, 50, 250*time.Millisecond, waveSaw), 0.35),
		)
	},
	"checkpoint": func() beep.Streamer {
		return beep.Seq(
			gain(tone(660, 660, 90*time.Millisecond, waveSine), 0.4),
			gain(tone(990, 990, 160*time.Millisecond, waveSine), 0.4),
		)
	},
	"toggle": func() beep.Streamer {
		return gain(tone(1200, 900, 25*time.Millisecond, waveSquare), 0.12)
	},
	"piston": func() beep.Streamer {
		return gain(tone(200, 80, 150*time.Millisecond, waveSaw), 0.3)
	},
}

// ClipNames lists every sound RenderClip can produce.
func ClipNames() []string {
	names := make([]string, 0, len(clipBuilders))
	for name := range clipBuilders {
		names = append(names, name)
	}
	return names
}

// RenderClip synthesizes a named clip into 16-bit little endian stereo PCM,
// the format Ebitengine players read.
func RenderClip(name string) ([]byte, error) {
	build, ok := clipBuilders[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown sound %q", name)
	}
	return encodePCM(build()), nil
}

func encodePCM(s beep.Streamer) []byte {
	buf := make([][2]float64, 512)
	var out []byte
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(math.Round(clampUnit(v)*math.MaxInt16))))
			}
		}
		if !ok || n == 0 {
			return out
		}
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// SFXPlayer plays pre-rendered clips through the Ebitengine audio context.
type SFXPlayer struct {
	ctx    *audio.Context
	clips  map[string][]byte
	mu     sync.Mutex
	volume float64
}

// NewSFXPlayer renders every clip once. Clips that fail to render are logged
// and skipped.
func NewSFXPlayer(volume float64) *SFXPlayer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	p := &SFXPlayer{ctx: ctx, clips: make(map[string][]byte, len(clipBuilders)), volume: clampVolume(volume)}
	for name := range clipBuilders {
		pcm, err := RenderClip(name)
		if err != nil {
			log.Printf("audio: %v", err)
			continue
		}
		p.clips[name] = pcm
	}
	return p
}

func (p *SFXPlayer) Play(name string) {
	if p == nil {
		return
	}
	pcm, ok := p.clips[name]
	if !ok {
		return
	}
	p.mu.Lock()
	vol := p.volume
	p.mu.Unlock()
	if vol <= 0 {
		return
	}
	player := p.ctx.NewPlayerFromBytes(pcm)
	player.SetVolume(vol)
	player.Play()
}

func (p *SFXPlayer) SetVolume(v float64) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.volume = clampVolume(v)
	p.mu.Unlock()
}

func (p *SFXPlayer) Volume() float64 {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
