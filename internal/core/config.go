package core

// RuntimeConfig is passed to games on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}

// RunSummary carries per-round details a game can report alongside its
// score. The platform stores them with the score entry.
type RunSummary struct {
	Layout  string
	Pops    int
	Undos   int
	Rows    int
	Cols    int
	Cleared bool
}
