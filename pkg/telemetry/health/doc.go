// Package health provides liveness and readiness probes for the watch
// command's HTTP endpoint. Components register CheckFuncs (workspace
// access, cache backend) and the readiness handler aggregates them,
// returning 503 while any component is degraded.
package health
