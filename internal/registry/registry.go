// Package registry keeps the factories of playable games. Games register
// themselves from init(), and the platform looks them up by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/balloonpop/internal/core"
)

// Game is implemented by every playable game.
// Games hold pure logic; the platform handles input mapping, timing and
// terminal output.
type Game interface {
	// ID is the unique identifier used by the CLI and the score table.
	ID() string

	// Title is the human-readable name.
	Title() string

	// Reset starts a new round. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst, which is cleared first.
	Render(dst *core.Screen)

	// State returns score, game over and pause flags.
	State() core.GameState
}

// Summarizer is implemented by games that report round details for the
// score table.
type Summarizer interface {
	Summary() core.RunSummary
}

// Resizer is implemented by games that adapt to a new terminal size
// without restarting the round.
type Resizer interface {
	Resize(width, height int)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory. It panics if id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a registered game.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the title of a registered game, or id itself if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
