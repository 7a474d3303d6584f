// Package services wires sources, loaders and a destination store into a
// complete load run.
package services
