package main

import (
	"image/color"

	"github.com/dummyworks/crashtestescape/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	panelColor  = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
	buttonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	hoverColor  = color.NRGBA{R: 0x5a, G: 0x4a, B: 0x12, A: 255}
	labelColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	accentColor = color.NRGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(buttonColor)
	hover := imageui.NewNineSliceColor(hoverColor)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: hover}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: labelColor}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func menuLabel(s string, face *ebtext.Face, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// centeredPanel wraps children in a dark vertical panel centred on screen.
func centeredPanel(children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI builds the Esc menu: resume, restart from the last checkpoint,
// or leave for the main menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	return centeredPanel(
		menuLabel("Paused", face, labelColor),
		menuButton("Resume", face, func() { g.paused = false }),
		menuButton("Restart from checkpoint", face, g.restartFromCheckpoint),
		menuButton("Quit to menu", face, func() { g.openMenu(false) }),
	)
}
