// Package watch renders the timer face in a small fyne window.
package watch

import (
	"image/color"

	"pomodoro/internal/ui/presenter"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	faceWidth  = float32(220)
	faceHeight = float32(250)
	ringStroke = float32(15)

	// ringCutout leaves a band roughly ringStroke wide at the default size.
	ringCutout = float32(0.86)
)

var (
	faceColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	digitColor = color.NRGBA{R: 121, G: 85, B: 61, A: 255}
	badgeText  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window manages the watch face UI.
type Window struct {
	window       fyne.Window
	track        *canvas.Arc
	sweep        *canvas.Arc
	badge        *canvas.Circle
	cycleLabel   *canvas.Text
	timerLabel   *canvas.Text
	phaseLabel   *canvas.Text
	toggleButton *widget.Button
	resetButton  *widget.Button
	onToggle     func()
	onReset      func()
	view         presenter.View
}

// New creates the watch face window.
func New(app fyne.App) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	face := canvas.NewRectangle(faceColor)
	face.CornerRadius = 32

	// The sweep starts at twelve o'clock and grows clockwise over the track.
	track := canvas.NewArc(0, 360, ringCutout, color.Transparent)
	sweep := canvas.NewArc(0, 0, ringCutout, color.Transparent)

	badge := canvas.NewCircle(color.Transparent)
	cycleLabel := canvas.NewText("0", badgeText)
	cycleLabel.Alignment = fyne.TextAlignCenter
	cycleLabel.TextSize = 20

	timerLabel := canvas.NewText("--:--", digitColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 40

	phaseLabel := canvas.NewText("", digitColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextSize = 12

	watch := &Window{
		window:     window,
		track:      track,
		sweep:      sweep,
		badge:      badge,
		cycleLabel: cycleLabel,
		timerLabel: timerLabel,
		phaseLabel: phaseLabel,
	}
	watch.toggleButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if watch.onToggle != nil {
			watch.onToggle()
		}
	})
	watch.resetButton = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		if watch.onReset != nil {
			watch.onReset()
		}
	})

	badgeBox := container.New(&badgeLayout{}, badge, cycleLabel)
	controls := container.NewHBox(watch.toggleButton, watch.resetButton)
	content := container.NewVBox(
		container.NewCenter(badgeBox),
		timerLabel,
		phaseLabel,
		container.NewCenter(controls),
	)
	root := container.New(&faceLayout{}, face, track, sweep, content)

	window.SetContent(root)
	window.Resize(fyne.NewSize(faceWidth+2*ringStroke, faceHeight+2*ringStroke))
	window.SetFixedSize(true)
	return watch
}

// Show displays the window.
func (watch *Window) Show() {
	watch.window.Show()
	watch.window.RequestFocus()
}

// Hide hides the window without stopping the timer.
func (watch *Window) Hide() {
	watch.window.Hide()
}

// SetOnToggle sets the play/pause handler.
func (watch *Window) SetOnToggle(handler func()) {
	watch.onToggle = handler
}

// SetOnReset sets the reset handler.
func (watch *Window) SetOnReset(handler func()) {
	watch.onReset = handler
}

// SetCloseIntercept replaces the default close behaviour.
func (watch *Window) SetCloseIntercept(handler func()) {
	watch.window.SetCloseIntercept(handler)
}

// View returns the last rendered view.
func (watch *Window) View() presenter.View {
	return watch.view
}

// Render updates every widget from view. Call it on the fyne thread.
func (watch *Window) Render(view presenter.View) {
	watch.view = view

	watch.timerLabel.Text = view.Time
	watch.timerLabel.Refresh()
	watch.phaseLabel.Text = view.Label
	watch.phaseLabel.Refresh()

	watch.cycleLabel.Text = view.Cycle
	watch.cycleLabel.Refresh()
	watch.badge.FillColor = view.Accent
	watch.badge.Refresh()

	watch.track.FillColor = view.Track
	watch.track.Refresh()
	watch.sweep.FillColor = view.Accent
	watch.sweep.EndAngle = float32(view.Sweep)
	watch.sweep.Refresh()

	if view.Running {
		watch.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		watch.toggleButton.SetIcon(theme.MediaPlayIcon())
	}
	if view.Terminal {
		watch.toggleButton.Disable()
	} else {
		watch.toggleButton.Enable()
	}
}

// faceLayout stacks the face, the ring track and sweep in a centred
// square, and the centred content.
type faceLayout struct{}

func (layout *faceLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	face, track, sweep, content := objects[0], objects[1], objects[2], objects[3]

	face.Move(fyne.NewPos(0, 0))
	face.Resize(size)

	side := fyne.Min(size.Width, size.Height) - ringStroke
	if side < 0 {
		side = 0
	}
	ringPos := fyne.NewPos((size.Width-side)/2, (size.Height-side)/2)
	for _, arc := range []fyne.CanvasObject{track, sweep} {
		arc.Move(ringPos)
		arc.Resize(fyne.NewSquareSize(side))
	}

	contentSize := content.MinSize()
	content.Move(fyne.NewPos((size.Width-contentSize.Width)/2, (size.Height-contentSize.Height)/2))
	content.Resize(contentSize)
}

func (layout *faceLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	contentSize := objects[3].MinSize()
	side := fyne.Max(contentSize.Width, contentSize.Height) + 4*ringStroke
	return fyne.NewSquareSize(side)
}

// badgeLayout centres the cycle number inside a circle sized to fit it.
type badgeLayout struct{}

func (layout *badgeLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	circle, label := objects[0], objects[1]
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	circle.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))
	circle.Resize(fyne.NewSize(side, side))

	labelSize := label.MinSize()
	label.Move(fyne.NewPos((size.Width-labelSize.Width)/2, (size.Height-labelSize.Height)/2))
	label.Resize(labelSize)
}

func (layout *badgeLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	labelSize := objects[1].MinSize()
	side := labelSize.Width
	if labelSize.Height > side {
		side = labelSize.Height
	}
	side += 20
	return fyne.NewSize(side, side)
}
