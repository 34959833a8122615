// Package presenter maps cycle engine state to display values shared by the
// desktop and terminal front ends.
package presenter

import (
	"fmt"
	"image/color"

	"pomodoro/internal/core/cycle"
)

var (
	workColor  = color.NRGBA{R: 230, G: 57, B: 70, A: 255}
	breakColor = color.NRGBA{R: 69, G: 123, B: 230, A: 255}
)

// trackAlpha is the opacity of the unfilled progress ring.
const trackAlpha = 51

// View is everything a front end needs to draw one frame.
type View struct {
	Time     string
	Cycle    string
	Label    string
	Accent   color.NRGBA
	Track    color.NRGBA
	Progress float64
	Sweep    float64
	Running  bool
	Terminal bool
}

// Render builds the view for state.
func Render(state cycle.State) View {
	return View{
		Time:     FormatRemaining(state.Remaining),
		Cycle:    fmt.Sprintf("%d", state.Cycles),
		Label:    PhaseLabel(state.Phase),
		Accent:   Accent(state.Phase),
		Track:    Track(state.Phase),
		Progress: clamp(state.Progress),
		Sweep:    Sweep(state.Progress),
		Running:  state.Running,
		Terminal: state.Terminal,
	}
}

// FormatRemaining renders seconds as MM:SS.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Accent is red during work and blue during breaks.
func Accent(phase cycle.Phase) color.NRGBA {
	if phase.IsBreak() {
		return breakColor
	}
	return workColor
}

// Track is the accent at ring-track opacity.
func Track(phase cycle.Phase) color.NRGBA {
	track := Accent(phase)
	track.A = trackAlpha
	return track
}

// Hex formats c as #rrggbb, ignoring alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Sweep converts a progress fraction to ring degrees.
func Sweep(progress float64) float64 {
	return clamp(progress) * 360
}

// PhaseLabel is the human-readable phase name.
func PhaseLabel(phase cycle.Phase) string {
	switch phase {
	case cycle.PhaseShortBreak:
		return "Short break"
	case cycle.PhaseLongBreak:
		return "Long break"
	default:
		return "Work"
	}
}

// StatusLine summarizes state in one line for logs.
func StatusLine(state cycle.State) string {
	line := fmt.Sprintf("%s %s, cycle %d/%d", PhaseLabel(state.Phase), FormatRemaining(state.Remaining), state.Cycles, cycle.MaxCycles)
	return line + runSuffix(state)
}

// Summary is StatusLine without the countdown. It only changes on
// commands and transitions, which suits the tray menu.
func Summary(state cycle.State) string {
	return fmt.Sprintf("%s, cycle %d/%d", PhaseLabel(state.Phase), state.Cycles, cycle.MaxCycles) + runSuffix(state)
}

func runSuffix(state cycle.State) string {
	switch state.RunState() {
	case cycle.RunPaused:
		return " (paused)"
	case cycle.RunTerminal:
		return " (done)"
	case cycle.RunIdle:
		return " (ready)"
	}
	return ""
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
