package utils

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []rune(`⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏`)

// Spinner animates a status line while icons are being rendered.
type Spinner struct {
	// StopMsg is printed in place of the status line by Stop.
	StopMsg string

	mu         sync.Mutex
	w          io.Writer
	delay      time.Duration
	message    string
	hideCursor bool
	width      int
	stop       chan struct{}
	done       chan struct{}
}

// NewSpinner returns a stopped spinner writing to w, showing msg in front
// of the animation.
func NewSpinner(w io.Writer, msg string, d time.Duration, hideCursor bool) *Spinner {
	return &Spinner{
		w:          w,
		delay:      d,
		message:    msg,
		hideCursor: hideCursor,
	}
}

// SetMessage replaces the text shown in front of the animation.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = msg
}

// Start runs the animation until Stop. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	if s.hideCursor && runtime.GOOS != "windows" {
		fmt.Fprint(s.w, "\033[?25l")
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.mu.Lock()
		line := fmt.Sprintf("%s%s %c%s", s.message, SuccessColor, spinnerFrames[i%len(spinnerFrames)], DefaultColor)
		s.clear()
		fmt.Fprint(s.w, line)
		s.width = utf8.RuneCountInString(line)
		s.mu.Unlock()

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation, erases the status line and prints StopMsg.
func (s *Spinner) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.RestoreCursor()
	if s.StopMsg != "" {
		fmt.Fprint(s.w, s.StopMsg)
	}
}

// RestoreCursor makes the cursor visible again.
func (s *Spinner) RestoreCursor() {
	if s.hideCursor && runtime.GOOS != "windows" {
		fmt.Fprint(s.w, "\033[?25h")
	}
}

// clear blanks the last status line. The caller holds mu.
func (s *Spinner) clear() {
	if s.width == 0 {
		return
	}
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
	s.width = 0
}
