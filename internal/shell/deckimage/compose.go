package deckimage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

// =============================================================================
// Image Source
// =============================================================================

// ImageSource fetches a card image by URL. Injected so composition is
// testable without a network.
type ImageSource interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// HTTPImageSource fetches card images over HTTP.
type HTTPImageSource struct {
	Client *http.Client
}

// NewHTTPImageSource creates an image source with a 10 second timeout.
func NewHTTPImageSource() *HTTPImageSource {
	return &HTTPImageSource{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Fetch downloads and decodes one image.
func (s *HTTPImageSource) Fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return imaging.Decode(bytes.NewReader(body))
}

// FetchError reports a non-200 image fetch.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return "fetching " + e.URL + ": unexpected status"
}

// =============================================================================
// Deck Sheet Composition
// =============================================================================

const (
	sheetWidth  = 2150
	sheetHeight = 2048

	cardWidth  = 215
	cardHeight = 300
	cardGap    = 8
	margin     = 48

	qrSize = 400
)

// ComposeSheet lays out card images on a fixed canvas, up to ten cards per
// row below the QR band, with the share QR pinned top-right. Nil images are
// skipped.
func ComposeSheet(cards []image.Image, qr image.Image) image.Image {
	canvas := imaging.New(sheetWidth, sheetHeight, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})

	if qr != nil {
		q := imaging.Resize(qr, qrSize, qrSize, imaging.Lanczos)
		canvas = imaging.Paste(canvas, q, image.Pt(sheetWidth-margin-qrSize, margin))
	}

	x, y := margin, margin+qrSize+cardGap
	perRow := 0
	for _, c := range cards {
		if c == nil {
			continue
		}
		resized := imaging.Resize(c, cardWidth, cardHeight, imaging.Lanczos)
		canvas = imaging.Paste(canvas, resized, image.Pt(x, y))

		perRow++
		if perRow == 10 {
			perRow = 0
			x = margin
			y += cardHeight + cardGap
		} else {
			x += cardWidth + cardGap
		}
	}

	return canvas
}

// EncodePNG renders an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
