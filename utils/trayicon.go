package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"

	xdraw "golang.org/x/image/draw"
)

const (
	trayIconSize = 64
	// The disc is rendered at 4x and downscaled for smooth edges.
	trayIconOversample = 4
)

// TrayIconPNG synthesizes the tray icon: a white disc on a transparent
// background, PNG-encoded.
func TrayIconPNG() []byte {
	big := trayIconSize * trayIconOversample
	src := image.NewRGBA(image.Rect(0, 0, big, big))

	// Disc inset by 8px at final size, matching the window icon.
	center := float64(big) / 2
	radius := float64(big)/2 - 8*trayIconOversample
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < big; y++ {
		for x := 0; x < big; x++ {
			dx := float64(x) - center + 0.5
			dy := float64(y) - center + 0.5
			if dx*dx+dy*dy <= radius*radius {
				src.SetRGBA(x, y, white)
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, trayIconSize, trayIconSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		// Encoding an in-memory RGBA cannot realistically fail; log and
		// let the tray fall back to the default icon.
		log.Printf("Warning: failed to encode tray icon: %v", err)
		return nil
	}
	return buf.Bytes()
}
