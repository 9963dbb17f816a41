package upload

import (
	"bytes"
	"fmt"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

const thumbnailSize = 320

// Metadata - данные EXIF фотографии, если они есть
type Metadata struct {
	TakenAt   *time.Time
	Latitude  *float64
	Longitude *float64
}

// ReadMetadata извлекает время съемки и GPS-координаты из EXIF.
// Отсутствие EXIF не является ошибкой.
func ReadMetadata(data []byte) Metadata {
	var meta Metadata
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return meta
	}
	if t, err := x.DateTime(); err == nil {
		meta.TakenAt = &t
	}
	if lat, lng, err := x.LatLong(); err == nil {
		meta.Latitude = &lat
		meta.Longitude = &lng
	}
	return meta
}

// Thumbnail строит JPEG-миниатюру, вписанную в квадрат thumbnailSize
func Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
