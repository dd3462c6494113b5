package core

// SoundType represents sound events raised by the simulation for the audio front end
type SoundType int

const (
	SoundPathReady SoundType = iota // Route computed and accepted
	SoundNoRoute                    // Search finished without a route
	SoundSpawn                      // Unit placed into the world
	SoundArrive                     // Character reached its target cell
	SoundTypeCount
)

// String returns the sound name used in config and logs
func (s SoundType) String() string {
	switch s {
	case SoundPathReady:
		return "path_ready"
	case SoundNoRoute:
		return "no_route"
	case SoundSpawn:
		return "spawn"
	case SoundArrive:
		return "arrive"
	default:
		return "unknown"
	}
}
