package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	work          *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	notifications *widget.Check
	bell          *widget.Check
	saveButton    *widget.Button
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		work:          widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		notifications: widget.NewCheck("Desktop notifications", nil),
		bell:          widget.NewCheck("Terminal bell", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.bell,
		widget.NewLabel("Saving restarts the current cycle."),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 320))
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(formatMinutes(settings.Work))
	prefs.shortBreak.SetText(formatMinutes(settings.ShortBreak))
	prefs.longBreak.SetText(formatMinutes(settings.LongBreak))
	prefs.notifications.SetChecked(settings.Notifications)
	prefs.bell.SetChecked(settings.Bell)
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveMinutes(prefs.work.Text); ok {
		settings.Work = minutes
	}
	if minutes, ok := parsePositiveMinutes(prefs.shortBreak.Text); ok {
		settings.ShortBreak = minutes
	}
	if minutes, ok := parsePositiveMinutes(prefs.longBreak.Text); ok {
		settings.LongBreak = minutes
	}
	settings.Notifications = prefs.notifications.Checked
	settings.Bell = prefs.bell.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatMinutes(value time.Duration) string {
	minutes := value.Minutes()
	if minutes == float64(int(minutes)) {
		return fmt.Sprintf("%d", int(minutes))
	}
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}

// parsePositiveMinutes accepts whole or fractional minutes of at least one second.
func parsePositiveMinutes(value string) (time.Duration, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	duration := time.Duration(parsed * float64(time.Minute)).Truncate(time.Second)
	if duration < time.Second {
		return 0, false
	}
	return duration, true
}
