package softdraw

// PixelFormat describes how one pixel is laid out in a surface buffer.
type PixelFormat uint8

const (
	// FormatBGRA8 stores 4 bytes per pixel in the order blue, green, red,
	// alpha. This matches ARGB8888 shared-memory buffers on little-endian
	// hosts and X11 ZPixmap images at depth 24/32.
	FormatBGRA8 PixelFormat = iota
)

// Format is the layout of every Surface buffer. It never changes for the
// lifetime of a surface.
const Format = FormatBGRA8

// BytesPerPixel is the size of one pixel in a surface buffer.
const BytesPerPixel = 4

// Byte offsets of each channel within a pixel for FormatBGRA8.
const (
	offB = 0
	offG = 1
	offR = 2
	offA = 3
)

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

// Offsets returns the byte offset of the red, green, blue and alpha channels
// within a pixel.
func (f PixelFormat) Offsets() (r, g, b, a int) {
	return offR, offG, offB, offA
}

// PixOffset returns the byte offset of pixel (x, y) in a buffer of the given
// width: x*4 + y*width*4.
func PixOffset(x, y, width int) int {
	return x*BytesPerPixel + y*width*BytesPerPixel
}

// Pack writes c into p (at least 4 bytes) using Format.
func Pack(p []byte, c RGBA8) {
	p = p[:BytesPerPixel:BytesPerPixel]
	p[offB] = c.B
	p[offG] = c.G
	p[offR] = c.R
	p[offA] = c.A
}

// Unpack reads a pixel stored with Format.
func Unpack(p []byte) RGBA8 {
	p = p[:BytesPerPixel:BytesPerPixel]
	return RGBA8{R: p[offR], G: p[offG], B: p[offB], A: p[offA]}
}

// ToRGBA converts a Format buffer into straight RGBA byte order, the layout
// expected by image.NRGBA and most GPU upload paths. dst must be at least
// len(src) bytes.
func ToRGBA(dst, src []byte) {
	for i := 0; i+BytesPerPixel <= len(src); i += BytesPerPixel {
		dst[i+0] = src[i+offR]
		dst[i+1] = src[i+offG]
		dst[i+2] = src[i+offB]
		dst[i+3] = src[i+offA]
	}
}
