package icon

import (
	"fmt"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

// materializedSize is the edge length decoded frames are normalized to when
// written to disk. It matches the quality floor applied during frame
// selection.
const materializedSize = 128

// Materialize returns a filesystem path for h so platform delivery can
// reference the icon by path. File-backed handles return their path
// unchanged. Decoded in-memory frames are scaled to materializedSize and
// written as a uniquely named PNG under dir. Sentinel handles (none,
// default, tray) return an empty path; the caller maps those to bundled
// assets.
func Materialize(h Handle, dir string) (string, error) {
	switch h.Kind {
	case KindFile:
		return h.Path, nil
	case KindImage:
		if h.Img == nil {
			return "", fmt.Errorf("image handle holds no image")
		}
		img := resize.Thumbnail(materializedSize, materializedSize, h.Img, resize.Lanczos3)

		f, err := os.CreateTemp(dir, "icon-*.png")
		if err != nil {
			return "", fmt.Errorf("failed to create icon file: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("failed to encode icon: %w", err)
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("failed to close icon file: %w", err)
		}
		return f.Name(), nil
	default:
		return "", nil
	}
}
