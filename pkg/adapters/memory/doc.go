// Package memory provides a process-local ports.Locker.
// It serializes artifact sweeps when no Redis server is configured.
package memory
