package core

// RuntimeConfig contains the parameters a board is created with.
type RuntimeConfig struct {
	ScreenW int   // Board width in characters
	ScreenH int   // Board height in characters
	Seed    int64 // RNG seed for reproducible serves (0 = time based)
}

// DefaultConfig returns a RuntimeConfig sized for a standard 80x24 terminal
// minus the header and footer lines the platform draws around the board.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 20,
		Seed:    0,
	}
}
