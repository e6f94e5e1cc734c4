package clock

import "sync"

// Pausable wraps a source clock and freezes game time while paused. Time
// after a resume continues from where it stopped.
type Pausable struct {
	mu sync.RWMutex

	src         Clock
	paused      bool
	pauseStart  float64 // source time when the current pause began
	totalPaused float64
}

func NewPausable(src Clock) *Pausable {
	return &Pausable{src: src}
}

// Time returns current game time (affected by pause).
func (p *Pausable) Time() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.paused {
		return p.pauseStart - p.totalPaused
	}
	return p.src.Time() - p.totalPaused
}

// RealTime returns the source time, unaffected by pause.
func (p *Pausable) RealTime() float64 {
	return p.src.Time()
}

func (p *Pausable) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return
	}
	p.paused = true
	p.pauseStart = p.src.Time()
}

func (p *Pausable) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		return
	}
	p.totalPaused += p.src.Time() - p.pauseStart
	p.paused = false
}

// Toggle flips the pause state and returns the new one.
func (p *Pausable) Toggle() bool {
	if p.Paused() {
		p.Resume()
		return false
	}
	p.Pause()
	return true
}

func (p *Pausable) Paused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// TotalPaused is the cumulative paused duration, including a pause in progress.
func (p *Pausable) TotalPaused() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := p.totalPaused
	if p.paused {
		total += p.src.Time() - p.pauseStart
	}
	return total
}
