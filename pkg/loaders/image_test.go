package loaders

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	testFile := filepath.Join(t.TempDir(), "test.png")

	// 2x2: white, red / green, blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	return testFile
}

func checkColor(t *testing.T, name string, got, expected core.Vec3) {
	t.Helper()
	const tolerance = 0.01
	if math.Abs(got.X-expected.X) > tolerance ||
		math.Abs(got.Y-expected.Y) > tolerance ||
		math.Abs(got.Z-expected.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, expected, got)
	}
}

func TestLoadImage(t *testing.T) {
	imageData, err := LoadImage(writeTestPNG(t))
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if imageData.Width != 2 || imageData.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
	}
	if len(imageData.Pixels) != 4 {
		t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
	}

	checkColor(t, "Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1))
	checkColor(t, "Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0))
	checkColor(t, "Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0))
	checkColor(t, "Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1))
}

func TestLoadImageTexture(t *testing.T) {
	texture, err := LoadImageTexture(writeTestPNG(t))
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	// v=1 is the top row of the image
	checkColor(t, "u=0 v=1", texture.Evaluate(core.NewVec2(0, 1), core.Vec3{}), core.NewVec3(1, 1, 1))
	checkColor(t, "u=1 v=0", texture.Evaluate(core.NewVec2(1, 0), core.Vec3{}), core.NewVec3(0, 0, 1))
}

func TestLoadImageErrors(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadImageTexture(corrupt); err == nil {
		t.Error("Expected error for corrupt file, got nil")
	}
}

func TestTexels_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	img.Set(2, 1, color.RGBA{G: 255, A: 255})

	// Sub-images keep the parent's coordinates, so bounds start at (1,1)
	width, height, pixels := texels(img.SubImage(image.Rect(1, 1, 3, 2)))
	if width != 2 || height != 1 || len(pixels) != 2 {
		t.Fatalf("Expected 2x1 texels, got %dx%d with %d pixels", width, height, len(pixels))
	}
	checkColor(t, "first texel", pixels[0], core.NewVec3(1, 0, 0))
	checkColor(t, "second texel", pixels[1], core.NewVec3(0, 1, 0))
}
