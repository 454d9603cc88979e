package view

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Draw. The PNG is written to Config.ScreenshotDir with a timestamped
// filename.
func (v *Viewer) Screenshot(label string) {
	v.screenshots = append(v.screenshots, label)
}

// flushScreenshots captures the rendered frame for every queued label.
func (v *Viewer) flushScreenshots(screen *ebiten.Image) {
	if len(v.screenshots) == 0 {
		return
	}
	defer func() { v.screenshots = v.screenshots[:0] }()

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	stamp := time.Now().Format("20060102_150405")
	for _, path := range screenshotPaths(v.conf.ScreenshotDir, stamp, v.screenshots) {
		if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
			logs.Warn(errors.New("screenshot failed").
				WithTag("path", path).
				Wrap(err))
			continue
		}
		logs.WithTag("path", path).Info("screenshot saved")
	}
}

// unpremultiply converts premultiplied RGBA pixels to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func screenshotPaths(dir, stamp string, labels []string) []string {
	paths := make([]string, len(labels))
	for i, label := range labels {
		paths[i] = filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
	}
	return paths
}

// writePNG encodes img to a PNG file at path, creating its directory.
func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.New("creating screenshot directory failed").Wrap(err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating screenshot file failed").Wrap(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.New("encoding screenshot failed").Wrap(err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
