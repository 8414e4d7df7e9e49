// Package host implements the platform side of the simulation without a
// display: a queue for static screens and status messages, and a driver
// that steps a world at a fixed rate.
package host

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-escape/internal/sim"
)

const (
	historySize = 64
	sfxSize     = 16
)

// Runner receives the callbacks of completed static screens.
type Runner interface {
	RunCallback(cb sim.Callback, param uint32)
}

// Screen is a static picture being displayed or waiting its turn.
type Screen struct {
	Picture   sim.Picture
	Callback  sim.Callback
	Param     uint32
	Remaining time.Duration
}

// Message is one status line message.
type Message struct {
	Text     string
	Priority int
}

// Queue is a sim.Host. Static screens are shown one at a time for a fixed
// hold time, then their callback goes back to the world. The world is
// expected to stay paused while a screen is showing.
type Queue struct {
	log  *log.Logger
	hold time.Duration

	screens    []Screen
	status     Message
	statusLeft time.Duration
	history    []Message
	sfx        []sim.SFX
	pictures   []sim.Picture
}

// NewQueue returns a queue that holds each static screen for hold.
func NewQueue(logger *log.Logger, hold time.Duration) *Queue {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Queue{log: logger, hold: hold}
}

// StaticScreen queues a picture.
func (q *Queue) StaticScreen(pic sim.Picture, cb sim.Callback, param uint32) {
	q.log.Debug("static screen", "picture", pic, "callback", cb, "param", param)
	q.screens = append(q.screens, Screen{Picture: pic, Callback: cb, Param: param, Remaining: q.hold})
	q.pictures = append(q.pictures, pic)
}

// PlaySFX records a sound cue.
func (q *Queue) PlaySFX(id sim.SFX) {
	q.sfx = append(q.sfx, id)
	if len(q.sfx) > sfxSize {
		q.sfx = q.sfx[len(q.sfx)-sfxSize:]
	}
}

// SetStatusMessage replaces the status line unless a message of higher
// priority is still on display.
func (q *Queue) SetStatusMessage(text string, priority int, timeoutMs int) {
	if q.statusLeft > 0 && priority < q.status.Priority {
		return
	}
	q.status = Message{Text: text, Priority: priority}
	q.statusLeft = time.Duration(timeoutMs) * time.Millisecond
	q.history = append(q.history, q.status)
	if len(q.history) > historySize {
		q.history = q.history[len(q.history)-historySize:]
	}
}

// Showing returns the screen on display, if any.
func (q *Queue) Showing() (Screen, bool) {
	if len(q.screens) == 0 {
		return Screen{}, false
	}
	return q.screens[0], true
}

// Advance moves the queue d forward. A screen whose hold time is over is
// dismissed.
func (q *Queue) Advance(d time.Duration, r Runner) {
	if q.statusLeft > 0 {
		q.statusLeft -= d
	}
	if len(q.screens) == 0 {
		return
	}
	q.screens[0].Remaining -= d
	if q.screens[0].Remaining <= 0 {
		q.Dismiss(r)
	}
}

// Dismiss completes the screen on display and hands its callback to r.
func (q *Queue) Dismiss(r Runner) bool {
	if len(q.screens) == 0 {
		return false
	}
	s := q.screens[0]
	q.screens = q.screens[1:]
	if s.Callback != sim.CbNone {
		r.RunCallback(s.Callback, s.Param)
	}
	return true
}

// Status returns the status line, empty once it timed out.
func (q *Queue) Status() string {
	if q.statusLeft <= 0 {
		return ""
	}
	return q.status.Text
}

// History returns the most recent status messages, oldest first.
func (q *Queue) History() []Message {
	return append([]Message(nil), q.history...)
}

// SFX returns the most recent sound cues, oldest first.
func (q *Queue) SFX() []sim.SFX {
	return append([]sim.SFX(nil), q.sfx...)
}

// Pictures returns every picture queued so far.
func (q *Queue) Pictures() []sim.Picture {
	return append([]sim.Picture(nil), q.pictures...)
}

// Reset drops every pending screen and message.
func (q *Queue) Reset() {
	q.screens = nil
	q.status = Message{}
	q.statusLeft = 0
	q.history = nil
	q.sfx = nil
	q.pictures = nil
}

var _ sim.Host = (*Queue)(nil)
