// Package hcscrgen converts images into the text screens of 8-bit home
// computers. Every character cell of the input is matched against the
// glyphs of the machine's character generator, or against a charset
// generated from the image itself, and the result is returned as the
// character and color RAM contents the machine would hold plus a preview
// of how the screen looks.
//
//	result, err := hcscrgen.Convert(img, "c64",
//		hcscrgen.WithCharsetFS(os.DirFS("charsets")))
package hcscrgen

// Profiles returns the identifiers of the built-in machine profiles.
func Profiles() []string {
	return DefaultRegistry().Identifiers()
}
