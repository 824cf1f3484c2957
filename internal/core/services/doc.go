// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Besides the ports they only use
// small libraries: uuid for record ids, errgroup for the photo
// pipeline, and validator for settings.
package services
