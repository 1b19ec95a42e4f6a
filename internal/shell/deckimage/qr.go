// Package deckimage renders deck share artifacts: a QR code for a deck's
// share URL and a composed deck-sheet PNG.
package deckimage

import (
	"bytes"
	"image"
	"image/png"

	qrcode "github.com/skip2/go-qrcode"
)

// =============================================================================
// Share QR
// =============================================================================

// ShareQRPNG returns PNG bytes of a QR code for the given share URL.
func ShareQRPNG(url string, size int) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, size)
}

// ShareQRImage returns the QR as an image for composition into a deck sheet.
func ShareQRImage(url string, size int) (image.Image, error) {
	b, err := ShareQRPNG(url, size)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}
