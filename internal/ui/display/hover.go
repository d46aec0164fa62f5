package display

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hoverArea wraps the clock face so pointer entry and taps reveal the panel.
type hoverArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onEnter func()
	onTap   func()
}

var (
	_ desktop.Hoverable = (*hoverArea)(nil)
	_ fyne.Tappable     = (*hoverArea)(nil)
)

func newHoverArea(content fyne.CanvasObject, onEnter, onTap func()) *hoverArea {
	area := &hoverArea{content: content, onEnter: onEnter, onTap: onTap}
	area.ExtendBaseWidget(area)
	return area
}

func (area *hoverArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(area.content)
}

func (area *hoverArea) MouseIn(*desktop.MouseEvent) {
	if area.onEnter != nil {
		area.onEnter()
	}
}

func (area *hoverArea) MouseMoved(*desktop.MouseEvent) {}

func (area *hoverArea) MouseOut() {}

func (area *hoverArea) Tapped(*fyne.PointEvent) {
	if area.onTap != nil {
		area.onTap()
	}
}
