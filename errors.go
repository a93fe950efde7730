package hcscrgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCharsetDecode is wrapped by every error caused by an unreadable or
// malformed charset resource.
var ErrCharsetDecode = errors.New("charset decode failed")

// UnknownProfileError is returned when a profile identifier is not
// registered.
type UnknownProfileError struct {
	Identifier string
	Known      []string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile identifier %q, available profiles: %s",
		e.Identifier, strings.Join(e.Known, ", "))
}

// ImageSizeError is returned when an input image is smaller than the
// screen of the selected profile.
type ImageSizeError struct {
	Width, Height       int
	MinWidth, MinHeight int
}

func (e *ImageSizeError) Error() string {
	return fmt.Sprintf("input image is %dx%d pixels, must be at least %dx%d",
		e.Width, e.Height, e.MinWidth, e.MinHeight)
}

// SheetSizeError is returned when a glyph sheet does not cover all 256
// glyph positions of its layout.
type SheetSizeError struct {
	Width, Height       int
	MinWidth, MinHeight int
}

func (e *SheetSizeError) Error() string {
	return fmt.Sprintf("glyph sheet is %dx%d pixels, layout needs %dx%d",
		e.Width, e.Height, e.MinWidth, e.MinHeight)
}

func (e *SheetSizeError) Unwrap() error { return ErrCharsetDecode }
