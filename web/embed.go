// Package web provides the embedded controller and viewer assets for
// cueboard.
//
// This package uses Go's embed directive to include the page templates and
// stylesheet at compile time, enabling single-binary deployment without
// external asset files. The assets are rendered and served by the server
// package; users of the cueboard library should not need to interact with
// this package directly.
package web

import "embed"

// Assets is an embedded filesystem containing the web UI.
//
// The filesystem structure is:
//
//	assets/
//	  controller.html - director page with cue keypad
//	  viewer.html     - passive full-screen cue display
//	  fragment.html   - the current-state fragment both pages swap in
//	  cue.css         - shared stylesheet
//
//go:embed assets/*
var Assets embed.FS
