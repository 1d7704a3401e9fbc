package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteArtifact persists a session as JSON under
// <resultsDir>/<deck>/<session-id>.json using an atomic rename.
func WriteArtifact(resultsDir string, session Session) (string, error) {
	if session.ID == "" {
		return "", fmt.Errorf("results: session id is required")
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	dir := filepath.Join(resultsDir, session.Deck)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session directory: %w", err)
	}
	path := filepath.Join(dir, session.ID+".json")
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create session artifact: %w", err)
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return "", fmt.Errorf("write session artifact: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write session artifact: %w", err)
	}
	return path, nil
}
