// internal/search/links.go
//
// Outbound link builders. Nothing here performs a request; the composed URL
// is handed to the platform opener and forgotten.

package search

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

const (
	mapSearchBase = "https://ditu.amap.com/search"
	webSearchBase = "https://www.bing.com/search"

	// GuideSuffix turns a plain lookup into a travel-guide query.
	GuideSuffix = "攻略"
)

// Keyword composes the search keyword from destination and node name, with
// the optional guide suffix.
func Keyword(destination, nodeName string, guide bool) string {
	parts := []string{}
	for _, p := range []string{destination, nodeName} {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if guide {
		parts = append(parts, GuideSuffix)
	}
	return strings.Join(parts, " ")
}

// MapURL builds a map-search link for a node, scoped to a city when one is
// known.
func MapURL(city, destination, nodeName string) string {
	query := url.Values{}
	query.Set("query", Keyword(destination, nodeName, false))
	if city = strings.TrimSpace(city); city != "" {
		query.Set("city", city)
	}
	return fmt.Sprintf("%s?%s", mapSearchBase, query.Encode())
}

// WebURL builds a web-search link, optionally as a guide lookup.
func WebURL(destination, nodeName string, guide bool) string {
	query := url.Values{}
	query.Set("q", Keyword(destination, nodeName, guide))
	return fmt.Sprintf("%s?%s", webSearchBase, query.Encode())
}

// Open launches the URL in the system browser, fire and forget. The spawned
// process is not waited on.
func Open(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("search: open %s: %w", rawURL, err)
	}
	return nil
}
