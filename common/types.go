// package common contains plain helpers and data types shared across the engine. They are not
// interface-wrapped structs, just plain structs and functions.
package common

import (
	"fmt"
	"image"
	stddraw "image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxTextureDimension is the largest texture edge uploaded to the GPU. WebGPU guarantees
// maxTextureDimension2D of at least 8192; larger source images are downscaled.
const MaxTextureDimension = 8192

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// DecodeTexture decodes a PNG, JPEG or WebP image into RGBA staging data, downscaling it with
// bilinear filtering when either edge exceeds maxDim.
// Reference: https://pkg.go.dev/golang.org/x/image/draw
//
// Parameters:
//   - r: the encoded image stream
//   - maxDim: the largest allowed edge in pixels (<= 0 means MaxTextureDimension)
//
// Returns:
//   - TextureStagingData: the decoded pixels
//   - error: error if decoding fails or the image is empty
func DecodeTexture(r io.Reader, maxDim int) (TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return TextureStagingData{}, fmt.Errorf("failed to decode texture: %w", err)
	}
	if maxDim <= 0 {
		maxDim = MaxTextureDimension
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return TextureStagingData{}, fmt.Errorf("texture has zero size (%dx%d)", width, height)
	}

	dstW, dstH := ScaledSize(width, height, maxDim)
	rgba := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	if dstW == width && dstH == height {
		stddraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, stddraw.Src)
	} else {
		draw.BiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	}

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(dstW),
		Height: uint32(dstH),
	}, nil
}

// ScaledSize returns width and height scaled down uniformly so neither exceeds maxDim.
// Sizes already within bounds are returned unchanged. Neither result drops below 1.
//
// Parameters:
//   - width, height: the source size in pixels
//   - maxDim: the largest allowed edge
//
// Returns:
//   - int, int: the scaled width and height
func ScaledSize(width, height, maxDim int) (int, int) {
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		return maxDim, max(height*maxDim/width, 1)
	}
	return max(width*maxDim/height, 1), maxDim
}
