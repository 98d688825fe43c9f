package conformance_test

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"os/exec"
	"testing"

	_ "modernc.org/sqlite"
)

type result struct {
	exitCode int
	stderr   string
}

// runSeed runs the seed binary in an empty working directory with the given
// database path, so no stray .env is picked up.
func runSeed(t *testing.T, dbPath string) result {
	t.Helper()

	cmd := exec.Command(binPath)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(),
		"TASKBOARD_DB="+dbPath,
		"TASKBOARD_KAFKA_BROKERS=",
		"TASKBOARD_LOG_LEVEL=info",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result{exitCode: 0, stderr: stderr.String()}
	case errors.As(err, &exitErr):
		return result{exitCode: exitErr.ExitCode(), stderr: stderr.String()}
	default:
		t.Fatalf("run seed binary: %v", err)
		return result{}
	}
}

func countRows(t *testing.T, dbPath, table string) int {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open %s: %v", dbPath, err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil { //nolint:gosec // table names are test constants
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
