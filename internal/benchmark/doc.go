// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of a query:
//   - line classification
//   - strict value lookup and keypath listing over a large input
//   - the in-memory Data rescan
//   - config loading and the full CLI pipeline
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
