package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/image/font"

	"github.com/vis-iks/libled"
)

// DefaultFontSize is the pixel size of TrueType faces loaded by Resources.
const DefaultFontSize = 16

// Resources is a set of named assets read lazily from a file system and
// cached. Names are slash-separated paths within it. Resources is safe
// for concurrent use; the faces and images it returns are shared.
type Resources struct {
	// FontSize is the size of TrueType and OpenType faces.
	FontSize float64

	fsys fs.FS

	mu     sync.Mutex
	images map[string]*libled.ColorImage
	monos  map[string]*libled.MonoImage
	fonts  map[string]font.Face
	anims  map[string]*libled.Animation
}

// NewResources returns an asset set over fsys, typically os.DirFS of the
// configured data path.
func NewResources(fsys fs.FS) *Resources {
	return &Resources{
		FontSize: DefaultFontSize,
		fsys:     fsys,
		images:   make(map[string]*libled.ColorImage),
		monos:    make(map[string]*libled.MonoImage),
		fonts:    make(map[string]font.Face),
		anims:    make(map[string]*libled.Animation),
	}
}

// Has reports whether name exists.
func (r *Resources) Has(name string) bool {
	_, err := fs.Stat(r.fsys, name)
	return err == nil
}

func (r *Resources) read(name string) ([]byte, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	return data, nil
}

func ext(name string) string { return strings.ToLower(path.Ext(name)) }

// Text returns a file as a string, uncached. Scripts and shaders are
// read this way.
func (r *Resources) Text(name string) (string, error) {
	data, err := r.read(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Image returns a PNG, GIF, JPEG or SVG file as a color image. SVG icons
// are rasterized at their view box size.
func (r *Resources) Image(name string) (*libled.ColorImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[name]; ok {
		return img, nil
	}
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	var img *libled.ColorImage
	if ext(name) == ".svg" {
		img, err = LoadSVG(bytes.NewReader(data), 0, 0)
	} else {
		img, err = LoadImage(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, name)
	}
	r.images[name] = img
	return img, nil
}

// Mono returns an image file as a mono mask.
func (r *Resources) Mono(name string) (*libled.MonoImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.monos[name]; ok {
		return m, nil
	}
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	m, err := LoadMono(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, name)
	}
	r.monos[name] = m
	return m, nil
}

// Animation returns a GIF file as an animation.
func (r *Resources) Animation(name string) (*libled.Animation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.anims[name]; ok {
		return a, nil
	}
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}
	a, err := LoadGIF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, name)
	}
	r.anims[name] = a
	return a, nil
}

// Font returns a face. BMFont .fnt files load their atlas from the page
// file next to them; .ttf and .otf files are sized by FontSize.
func (r *Resources) Font(name string) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}
	data, err := r.read(name)
	if err != nil {
		return nil, err
	}

	var face font.Face
	switch ext(name) {
	case ".fnt":
		face, err = r.bitmapFont(name, data)
	case ".ttf", ".otf":
		face, err = LoadFont(data, r.FontSize)
	default:
		err = errors.New("assets: unknown font format")
	}
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, name)
	}
	r.fonts[name] = face
	return face, nil
}

func (r *Resources) bitmapFont(name string, data []byte) (*BitmapFont, error) {
	f, err := parseBitmapFont(data)
	if err != nil {
		return nil, err
	}
	if f.Page() == "" {
		return nil, errors.New("assets: .fnt data names no page file")
	}
	atlasData, err := r.read(path.Join(path.Dir(name), f.Page()))
	if err != nil {
		return nil, err
	}
	atlas, err := LoadMono(bytes.NewReader(atlasData))
	if err != nil {
		return nil, err
	}
	f.atlas = monoAlpha(atlas)
	return f, nil
}

// Preload walks the file system and loads every asset it recognizes, so
// later lookups cannot fail. It returns the first error.
func (r *Resources) Preload() error {
	n := 0
	err := fs.WalkDir(r.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch ext(name) {
		case ".png", ".jpg", ".jpeg", ".svg":
			_, err = r.Image(name)
		case ".gif":
			_, err = r.Animation(name)
		case ".fnt", ".ttf", ".otf":
			_, err = r.Font(name)
		default:
			return nil
		}
		n++
		return err
	})
	libled.Debugf("assets: preloaded %d files", n)
	return err
}
