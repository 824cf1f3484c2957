// Package connectors provides sources that feed files into the photo
// pipeline. Each connector turns files it finds into photo candidates
// for driving.PhotoService.
package connectors
