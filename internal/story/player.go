// Package story drives story playback: each story is shown for a fixed
// number of timer steps, then playback moves to the next one and ends
// after the last.
package story

import (
	"context"
	"sync"
	"time"

	"photogram/internal/models"
)

// State is the playback state of a Player.
type State int

const (
	Playing State = iota
	Paused
	Ended
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Defaults give each story 3 seconds on screen.
const (
	DefaultSteps    = 30
	DefaultInterval = 100 * time.Millisecond
)

// Options configures a Player. Hooks run on the goroutine that caused the
// transition, after the player's lock is released.
type Options struct {
	Steps    int
	Interval time.Duration

	// AutoMarkViewed calls OnViewed for each story playback moves past,
	// including the last one when playback ends on its own.
	AutoMarkViewed bool

	OnAdvance func(models.Story)
	OnViewed  func(models.Story)
	OnClose   func()
}

// Player is a timer-driven state machine over an ordered list of stories.
type Player struct {
	mu      sync.Mutex
	stories []models.Story
	index   int
	step    int
	state   State
	opts    Options
}

// NewPlayer starts playing stories from the first one. With no stories
// the player is already ended.
func NewPlayer(stories []models.Story, opts Options) *Player {
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	p := &Player{
		stories: append([]models.Story(nil), stories...),
		opts:    opts,
	}
	if len(p.stories) == 0 {
		p.state = Ended
	}
	return p
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Index returns the position of the current story.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Current returns the story on screen.
func (p *Player) Current() (models.Story, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.index >= len(p.stories) {
		return models.Story{}, false
	}
	return p.stories[p.index], true
}

// Progress returns how far through the current story playback is, in [0, 1].
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return float64(p.step) / float64(p.opts.Steps)
}

// Tick advances one step while playing. The final step of a story moves
// to the next one.
func (p *Player) Tick() {
	p.mu.Lock()
	if p.state != Playing {
		p.mu.Unlock()
		return
	}
	p.step++
	if p.step < p.opts.Steps {
		p.mu.Unlock()
		return
	}
	hooks := p.next()
	p.mu.Unlock()
	hooks()
}

// Next moves to the next story, or ends playback on the last one.
func (p *Player) Next() {
	p.mu.Lock()
	if p.state == Ended {
		p.mu.Unlock()
		return
	}
	hooks := p.next()
	p.mu.Unlock()
	hooks()
}

// next must be called with mu held. The returned func runs the hooks.
func (p *Player) next() func() {
	left := p.stories[p.index]
	markViewed := p.opts.AutoMarkViewed && p.opts.OnViewed != nil

	if p.index == len(p.stories)-1 {
		p.state = Ended
		p.step = p.opts.Steps
		return func() {
			if markViewed {
				p.opts.OnViewed(left)
			}
			if p.opts.OnClose != nil {
				p.opts.OnClose()
			}
		}
	}

	p.index++
	p.step = 0
	current := p.stories[p.index]
	return func() {
		if markViewed {
			p.opts.OnViewed(left)
		}
		if p.opts.OnAdvance != nil {
			p.opts.OnAdvance(current)
		}
	}
}

// Previous moves back one story and restarts its progress. On the first
// story it only restarts progress.
func (p *Player) Previous() {
	p.mu.Lock()
	if p.state == Ended {
		p.mu.Unlock()
		return
	}
	moved := p.index > 0
	if moved {
		p.index--
	}
	p.step = 0
	current := p.stories[p.index]
	p.mu.Unlock()

	if moved && p.opts.OnAdvance != nil {
		p.opts.OnAdvance(current)
	}
}

// Pause holds playback on the current step.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.state = Paused
	}
}

// Resume continues playback after Pause.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Paused {
		p.state = Playing
	}
}

// Close ends playback without marking anything viewed.
func (p *Player) Close() {
	p.mu.Lock()
	if p.state == Ended {
		p.mu.Unlock()
		return
	}
	p.state = Ended
	p.mu.Unlock()
	if p.opts.OnClose != nil {
		p.opts.OnClose()
	}
}

// Run ticks the player every Interval until playback ends or ctx is done.
func (p *Player) Run(ctx context.Context) error {
	if p.State() == Ended {
		return nil
	}
	if p.opts.OnAdvance != nil {
		if s, ok := p.Current(); ok {
			p.opts.OnAdvance(s)
		}
	}

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Tick()
			if p.State() == Ended {
				return nil
			}
		}
	}
}
