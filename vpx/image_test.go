package vpx

import "testing"

func TestImageRawPixelsRoundTrip(t *testing.T) {
	img := &ImageData{
		Name: "bg", Path: "bg.bmp", InternalName: "img_bg",
		Width: 4, Height: 2, AlphaTestValue: 0.5,
		RawPixels:    make([]byte, 4*2*4),
		HasRawPixels: true,
	}
	for i := range img.RawPixels {
		img.RawPixels[i] = byte(i)
	}

	data, err := WriteImage(img)
	if err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage(data, nil)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.Name != img.Name || got.Width != img.Width || got.Height != img.Height {
		t.Fatalf("got = %+v", got)
	}
	if !got.HasRawPixels {
		t.Fatal("expected HasRawPixels")
	}
	if string(got.RawPixels) != string(img.RawPixels) {
		t.Fatalf("pixels mismatch: got %v want %v", got.RawPixels, img.RawPixels)
	}
	if got.HasCompressedImage {
		t.Fatal("unexpected compressed payload")
	}
}

func TestImageCompressedRoundTrip(t *testing.T) {
	img := &ImageData{
		Name: "logo", Path: "logo.jpg",
		Width: 64, Height: 64,
		CompressedImage:    []byte{0xFF, 0xD8, 0xFF, 0xD9},
		HasCompressedImage: true,
	}
	data, err := WriteImage(img)
	if err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage(data, nil)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if !got.HasCompressedImage {
		t.Fatal("expected HasCompressedImage")
	}
	if string(got.CompressedImage) != string(img.CompressedImage) {
		t.Fatalf("compressed = %v, want %v", got.CompressedImage, img.CompressedImage)
	}
	if got.HasRawPixels {
		t.Fatal("unexpected raw pixels")
	}
}

func TestImageBothShapesEmittedAndReadBack(t *testing.T) {
	img := &ImageData{
		Name: "both", Width: 2, Height: 2,
		RawPixels: make([]byte, 2*2*4), HasRawPixels: true,
		CompressedImage: []byte{1, 2, 3}, HasCompressedImage: true,
	}
	data, err := WriteImage(img)
	if err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage(data, nil)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if !got.HasRawPixels || !got.HasCompressedImage {
		t.Fatalf("expected both payloads present: %+v", got)
	}
}
