package service

// Service defines the lifecycle interface for long-lived subsystems
// Services own background resources: the pathfinding worker, the audio backend, the metrics registry
//
// Lifecycle:
//  1. Construction (via New* constructor)
//  2. Init(args...) - configuration handed down by the hub
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start before this one
	Dependencies() []string

	// Init configures the service from optional args
	// Unknown args are ignored
	Init(args ...any) error

	// Start begins service operation
	// Called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}
