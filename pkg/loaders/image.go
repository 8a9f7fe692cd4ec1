package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ImageData holds a decoded image as linear-range colors
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first, channels in [0,1]
}

// LoadImage decodes a PNG or JPEG file into ImageData
func LoadImage(filename string) (*ImageData, error) {
	img, err := decodeImageFile(filename)
	if err != nil {
		return nil, err
	}
	width, height, pixels := texels(img)
	return &ImageData{Width: width, Height: height, Pixels: pixels}, nil
}

// LoadImageTexture decodes a PNG or JPEG file straight into a nearest-neighbour texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	img, err := decodeImageFile(filename)
	if err != nil {
		return nil, err
	}
	return material.NewImageTexture(texels(img)), nil
}

func decodeImageFile(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is sniffed from the header by the registered decoders
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// texels flattens img into row-major colors, normalising 16-bit channels to [0,1]
func texels(img image.Image) (int, int, []core.Vec3) {
	const scale = 1.0 / 0xffff

	b := img.Bounds()
	pixels := make([]core.Vec3, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pixels = append(pixels, core.NewVec3(float64(r)*scale, float64(g)*scale, float64(bl)*scale))
		}
	}
	return b.Dx(), b.Dy(), pixels
}
