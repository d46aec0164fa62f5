//go:build !windows

package display

// fyne has no portable always-on-top switch; only Windows is pinned.
func (display *Window) applyTopmost() {}
