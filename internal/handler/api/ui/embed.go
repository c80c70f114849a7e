package ui

import "embed"

//go:embed static/index.html
var assets embed.FS

// Index returns the embedded chart page.
func Index() ([]byte, error) {
	return assets.ReadFile("static/index.html")
}
