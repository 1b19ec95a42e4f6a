package deckimage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidCard(c color.NRGBA) image.Image {
	return imaging.New(100, 140, c)
}

func TestShareQRPNG(t *testing.T) {
	b, err := ShareQRPNG("https://deckbase.example/decks/deck_ab12cd34", 400)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestComposeSheet_Dimensions(t *testing.T) {
	qr, err := ShareQRImage("https://deckbase.example/decks/deck_ab12cd34", 200)
	require.NoError(t, err)

	cards := []image.Image{
		solidCard(color.NRGBA{R: 0xff, A: 0xff}),
		nil, // broken fetch, skipped
		solidCard(color.NRGBA{G: 0xff, A: 0xff}),
	}

	sheet := ComposeSheet(cards, qr)

	assert.Equal(t, sheetWidth, sheet.Bounds().Dx())
	assert.Equal(t, sheetHeight, sheet.Bounds().Dy())
}

func TestComposeSheet_EmptyDeck(t *testing.T) {
	sheet := ComposeSheet(nil, nil)

	assert.Equal(t, sheetWidth, sheet.Bounds().Dx())
}

func TestEncodePNG(t *testing.T) {
	b, err := EncodePNG(solidCard(color.NRGBA{B: 0xff, A: 0xff}))
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(b))
	assert.NoError(t, err)
}
