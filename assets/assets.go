package assets

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	imageMu    sync.Mutex
	imageCache = map[string]*ebiten.Image{}
)

// LoadImage returns the named sprite sheet as a GPU image, generating it on
// first use. Names may carry an "assets/" prefix or a ".png" suffix.
func LoadImage(path string) (*ebiten.Image, error) {
	name := cleanAssetPath(path)

	imageMu.Lock()
	defer imageMu.Unlock()
	if img, ok := imageCache[name]; ok {
		return img, nil
	}
	rgba, err := Sheet(name)
	if err != nil {
		return nil, err
	}
	img := ebiten.NewImageFromImage(rgba)
	imageCache[name] = img
	return img, nil
}

// Sheet draws the named sheet on the CPU.
func Sheet(path string) (*image.RGBA, error) {
	name := cleanAssetPath(path)
	build, ok := sheetBuilders[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown sheet %q", path)
	}
	return build(), nil
}

// SheetNames lists every sheet LoadImage can produce.
func SheetNames() []string {
	names := make([]string, 0, len(sheetBuilders))
	for name := range sheetBuilders {
		names = append(names, name)
	}
	return names
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
		s = s[idx+len("/assets/"):]
	}
	s = strings.TrimPrefix(s, "assets/")
	return strings.TrimSuffix(s, filepath.Ext(s))
}
