package app

import (
	"runtime"

	"golang.design/x/clipboard"
)

var clipboardReady bool

// InitClipboard initializes the system clipboard. Call once from main;
// unsupported platforms simply disable the copy shortcut.
func InitClipboard() error {
	if runtime.GOOS == "js" && runtime.GOARCH == "wasm" {
		return nil
	}
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboardReady = true
	return nil
}

// copyToClipboard writes s to the clipboard and reports whether it could.
func copyToClipboard(s string) bool {
	if !clipboardReady {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}
