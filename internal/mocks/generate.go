// Package mocks provides generated mock implementations of the core ports
// for testing.
//
// The mocks are generated with go.uber.org/mock (gomock). To regenerate
// after interface changes, run:
//
//	go generate ./internal/mocks
package mocks

// Generate mock for the JobStore interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_store_mock.go github.com/layerpeek/layerpeek/internal/core JobStore

// Generate mock for the ResultCache interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=result_cache_mock.go github.com/layerpeek/layerpeek/internal/core ResultCache

// Generate mock for the ImageEngine interface from internal/core.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=image_engine_mock.go github.com/layerpeek/layerpeek/internal/core ImageEngine
