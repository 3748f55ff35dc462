// Package redis provides the Redis-backed ports.Locker used to serialize artifact
// sweeps across replicas sharing one output directory.
package redis
