// internal/photo/orient.go
//
// Photo orientation drives layout selection in the fragment view. AI photos
// usually carry orientation metadata and resolve synchronously; traveler
// photos are probed by decoding the actual pixels, off the update loop.

package photo

import (
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"waypoint/internal/diary"
)

// Orientation is the tri-state layout input. Unknown routes to the magazine
// layout alongside portrait.
type Orientation int

const (
	Unknown Orientation = iota
	Landscape
	Portrait
)

func (o Orientation) String() string {
	switch o {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	}
	return "unknown"
}

var (
	landscapeMarkers = []string{"landscape", "横图", "横向", "横幅"}
	portraitMarkers  = []string{"portrait", "竖图", "竖向", "纵向"}
)

// ClassifySync resolves orientation from AI metadata without touching pixels,
// which avoids a visible layout flash for generated photos. Returns false
// when the photo needs a pixel probe.
func ClassifySync(p diary.Photo) (Orientation, bool) {
	if !p.IsAIGenerated {
		return Unknown, false
	}
	if o, ok := parseMarker(p.AIOrientation); ok {
		return o, true
	}
	if o, ok := parseMarker(p.VisionAnalysis); ok {
		return o, true
	}
	return Unknown, false
}

func parseMarker(text string) (Orientation, bool) {
	lowered := strings.ToLower(text)
	for _, marker := range landscapeMarkers {
		if strings.Contains(lowered, marker) {
			return Landscape, true
		}
	}
	for _, marker := range portraitMarkers {
		if strings.Contains(lowered, marker) {
			return Portrait, true
		}
	}
	return Unknown, false
}

var probeClient = &http.Client{Timeout: 10 * time.Second}

// Probe decodes the image behind a local path or http(s) URL and compares its
// natural dimensions: wider than tall is landscape, everything else portrait.
// Any fetch or decode failure degrades to Unknown, never an error.
func Probe(source string) Orientation {
	img, err := decodeSource(source)
	if err != nil {
		return Unknown
	}
	bounds := img.Bounds()
	if bounds.Dx() > bounds.Dy() {
		return Landscape
	}
	return Portrait
}

func decodeSource(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := probeClient.Get(cacheBust(source))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("photo: probe %s: status %d", source, resp.StatusCode)
		}
		return imaging.Decode(resp.Body)
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return imaging.Decode(file)
}

// cacheBust appends a throwaway query parameter so an intermediary cache
// cannot serve stale dimensions for a re-uploaded photo.
func cacheBust(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	query.Set("wpprobe", fmt.Sprintf("%d", time.Now().UnixNano()))
	parsed.RawQuery = query.Encode()
	return parsed.String()
}
