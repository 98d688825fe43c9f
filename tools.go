//go:build tools

// Package tools tracks tool dependencies that are required by the project
// but not imported by its source code. This ensures go mod tidy retains them.
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)
