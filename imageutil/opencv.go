//go:build opencv

package imageutil

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

func init() {
	decodeHook = decodeOpenCV
}

// decodeOpenCV decodes through OpenCV, which understands a few container
// formats (e.g. JPEG 2000, PPM) the Go decoders do not.
func decodeOpenCV(data []byte) (image.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer mat.Close()
	if mat.Empty() {
		return nil, errors.New("opencv could not decode image")
	}
	return mat.ToImage()
}
