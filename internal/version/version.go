// Package version holds the build version of the vacuum binary.
package version

// Version can be overridden at build time using:
//
//	go build -ldflags "-X github.com/AaronLay10/vacuumworld/internal/version.Version=x.y.z"
var Version = "0.1.0"
