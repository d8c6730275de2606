// Package service provides image loading, pair discovery and file watching
// for the viewer.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// ImageInfo describes an image file without its pixels.
type ImageInfo struct {
	Width  int // Upright width, after EXIF orientation
	Height int
	Size   int64
	Camera string
	Taken  time.Time
}

// Summary is a short description for the status line, for example
// "4032x3024 Pixel 7 2023-06-01".
func (i ImageInfo) Summary() string {
	parts := []string{fmt.Sprintf("%dx%d", i.Width, i.Height)}
	if i.Camera != "" {
		parts = append(parts, i.Camera)
	}
	if !i.Taken.IsZero() {
		parts = append(parts, i.Taken.Format(time.DateOnly))
	}
	return strings.Join(parts, " ")
}

// ImageService provides methods for loading and decoding images.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Info reads the dimensions and EXIF details of path without decoding the
// pixels. Width and height are swapped for orientations that rotate the
// image by 90 degrees, so they match what Load returns.
func (is *ImageService) Info(path string) (ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decoding image config: %w", err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return ImageInfo{}, fmt.Errorf("getting file stats: %w", err)
	}
	info := ImageInfo{Width: config.Width, Height: config.Height, Size: fileInfo.Size()}

	// Reset file pointer to read EXIF data
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return ImageInfo{}, fmt.Errorf("seeking file for exif: %w", err)
	}
	x, err := exif.Decode(file)
	if err != nil {
		// No EXIF is normal for PNG and GIF.
		return info, nil
	}

	if orientation(x) >= 5 {
		info.Width, info.Height = info.Height, info.Width
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if model, err := tag.StringVal(); err == nil {
			info.Camera = strings.TrimSpace(model)
		}
	}
	if dt, err := x.DateTime(); err == nil {
		info.Taken = dt
	}
	return info, nil
}

// Load decodes the image at path and rotates or flips it upright according
// to its EXIF orientation, so that both halves of a comparison line up.
func (is *ImageService) Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyImage)
	}

	o := 1
	if x, err := exif.Decode(bytes.NewReader(data)); err == nil {
		o = orientation(x)
	}
	return Orient(img, o), nil
}

// GetEmbeddedThumbnail attempts to read an embedded EXIF thumbnail from an image file.
// It returns the decoded thumbnail image or an error if one is not found or cannot be decoded.
func (is *ImageService) GetEmbeddedThumbnail(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file for thumbnail: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return nil, errors.New("no EXIF data found")
	}

	thumbBytes, err := x.JpegThumbnail()
	if err != nil {
		return nil, fmt.Errorf("no JPEG thumbnail in EXIF: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(thumbBytes))
	if err != nil {
		return nil, err
	}
	return Orient(img, orientation(x)), nil
}

// Thumbnail returns an upright image of path that fits in size x size,
// preferring the embedded EXIF thumbnail over decoding the full image.
func (is *ImageService) Thumbnail(path string, size int) (image.Image, error) {
	img, err := is.GetEmbeddedThumbnail(path)
	if err != nil {
		// Fallback: load the full image file and decode it.
		img, err = is.Load(path)
		if err != nil {
			return nil, err
		}
	}
	return imaging.Fit(img, size, size, imaging.Box), nil
}

// ErrEmptyImage is returned for images without pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// orientation returns the EXIF orientation tag, defaulting to 1 (upright).
func orientation(x *exif.Exif) int {
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// Orient applies an EXIF orientation (1-8) to img. Unknown values leave the
// image untouched.
func Orient(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
