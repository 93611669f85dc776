package assets

import (
	"image"
	"testing"
)

func opaquePixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestSheetSizes(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"player", 4 * FigureW, 9 * FigureH},
		{"dummy", FigureW, FigureH},
		{"crate", 24, 24},
		{"spike", 32, 16},
		{"checkpoint", 32, 128},
		{"conveyor", 4 * BeltW, 2 * BeltH},
		{"detector", 32, 48},
		{"piston", PistonW, 2 * PistonH},
		{"exit", 40, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img, err := Sheet(c.name)
			if err != nil {
				t.Fatalf("Sheet(%q): %v", c.name, err)
			}
			if got := img.Bounds().Size(); got.X != c.w || got.Y != c.h {
				t.Fatalf("expected %dx%d, got %dx%d", c.w, c.h, got.X, got.Y)
			}
			if opaquePixels(img, img.Bounds()) == 0 {
				t.Fatalf("sheet %q is blank", c.name)
			}
		})
	}
	if len(SheetNames()) != len(cases) {
		t.Fatalf("expected %d sheets, got %d", len(cases), len(SheetNames()))
	}
}

func TestPlayerFramesArePainted(t *testing.T) {
	img, err := Sheet("player")
	if err != nil {
		t.Fatal(err)
	}
	frames := []int{2, 4, 1, 1, 1, 2, 2, 1, 1}
	for row, count := range frames {
		for f := 0; f < count; f++ {
			cell := image.Rect(f*FigureW, row*FigureH, (f+1)*FigureW, (row+1)*FigureH)
			if opaquePixels(img, cell) == 0 {
				t.Fatalf("row %d frame %d is empty", row, f)
			}
		}
	}
	// The floor row of a standing figure is its feet.
	if opaquePixels(img, image.Rect(0, FigureH-1, FigureW, FigureH)) == 0 {
		t.Fatalf("idle figure does not reach the bottom of its cell")
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"player":                   "player",
		"player.png":               "player",
		"assets/crate.png":         "crate",
		"/home/x/game/assets/exit": "exit",
		"":                         "",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnknownSheet(t *testing.T) {
	if _, err := Sheet("boss"); err == nil {
		t.Fatalf("expected error for unknown sheet")
	}
}

func TestRenderClip(t *testing.T) {
	for _, name := range ClipNames() {
		t.Run(name, func(t *testing.T) {
			pcm, err := RenderClip(name)
			if err != nil {
				t.Fatalf("RenderClip(%q): %v", name, err)
			}
			if len(pcm) == 0 || len(pcm)%4 != 0 {
				t.Fatalf("expected whole stereo 16-bit frames, got %d bytes", len(pcm))
			}
			// Shortest clip is 25ms.
			if frames := len(pcm) / 4; frames < SampleRate/50 {
				t.Fatalf("clip too short: %d frames", frames)
			}
		})
	}
	if _, err := RenderClip("fanfare"); err == nil {
		t.Fatalf("expected error for unknown clip")
	}
}

func TestClipLengthMatchesDuration(t *testing.T) {
	pcm, err := RenderClip("checkpoint")
	if err != nil {
		t.Fatal(err)
	}
	want := sampleRate.N(90e6) + sampleRate.N(160e6)
	if got := len(pcm) / 4; got != want {
		t.Fatalf("expected %d frames for the two-note chime, got %d", want, got)
	}
}

func TestEncodePCMClamps(t *testing.T) {
	s := &sweep{wave: waveSquare, length: 4}
	pcm := encodePCM(gain(s, 3))
	if len(pcm) != 16 {
		t.Fatalf("expected 4 frames, got %d bytes", len(pcm))
	}
	if v := int16(uint16(pcm[0]) | uint16(pcm[1])<<8); v != 32767 {
		t.Fatalf("expected clamped peak 32767, got %d", v)
	}
}

func TestClampVolume(t *testing.T) {
	cases := []struct{ in, want float64 }{{-1, 0}, {0.5, 0.5}, {2, 1}}
	for _, c := range cases {
		if got := clampVolume(c.in); got != c.want {
			t.Errorf("clampVolume(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	var p *SFXPlayer
	p.Play("jump")
	p.SetVolume(1)
	if p.Volume() != 0 {
		t.Fatalf("nil player must report zero volume")
	}
}
