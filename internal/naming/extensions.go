package naming

import "strings"

// imageExtensions is the allow-list of image extensions (lowercase, no dot).
// It covers common raster formats plus Houdini, RenderMan, Arnold and
// game-engine native texture formats.
var imageExtensions = map[string]bool{
	"pic": true, "picz": true, "picgz": true, "picnc": true, "piclc": true,
	"rat": true, "tbf": true, "dsm": true,
	"rgb": true, "rgba": true, "sgi": true, "bw": true,
	"tif": true, "tif3": true, "tif16": true, "tif32": true, "tiff": true,
	"yuv": true, "pix": true, "als": true, "cin": true, "kdk": true, "dpx": true,
	"jpg": true, "jpeg": true, "jpe": true, "jp2": true, "j2k": true,
	"exr": true, "sxr": true, "png": true, "gif": true, "webp": true, "avif": true, "heic": true,
	"psd": true, "psb": true, "si": true, "tga": true, "vst": true, "vtg": true,
	"rla": true, "rla16": true, "rlb": true, "rlb16": true,
	"bmp": true, "hdr": true, "pfm": true, "ppm": true, "pgm": true, "pnm": true,
	"ptx": true, "ptex": true, "ies": true, "dds": true, "ktx": true, "ktx2": true,
	"r16": true, "r32": true, "qtl": true,
	"tx": true, "tex": true, "tdl": true, "b3d": true, "iff": true,
}

// compoundExtensions are multi-dot extensions checked before the final-dot
// split, longest first.
var compoundExtensions = []string{".pic.gz", ".pic.z"}

// IsImageExtension reports whether ext (with or without a leading dot) is on
// the allow-list. The check is case-insensitive.
func IsImageExtension(ext string) bool {
	e := strings.ToLower(strings.TrimPrefix(ext, "."))
	if imageExtensions[e] {
		return true
	}
	for _, c := range compoundExtensions {
		if e == c[1:] {
			return true
		}
	}
	return false
}

// ImageExtensions returns the allow-list size; used by diagnostics.
func ImageExtensions() int {
	return len(imageExtensions) + len(compoundExtensions)
}
