// Package ui renders the few server-side pages of the console: the sign-in
// pages and the signup form.
package ui

import (
	"net/http"

	"maragu.dev/gomponents"
)

// Render writes node as an HTML document.
func Render(w http.ResponseWriter, status int, node gomponents.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return node.Render(w)
}
