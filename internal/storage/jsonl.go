package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"growthpulse/internal/model"
)

// JSONLStore is a file-backed SeriesStore for runs without Postgres. Rows
// are appended as JSON lines; GetLatest scans the file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
	seq  int64
}

func NewJSONLStore(path string) *JSONLStore {
	return &JSONLStore{path: path}
}

// Append writes one row as a JSON line and returns its sequence number.
func (s *JSONLStore) Append(_ context.Context, row model.PersistedRow) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, Transient("append", fmt.Errorf("create output dir: %w", err))
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return 0, Transient("append", fmt.Errorf("open output file: %w", err))
	}
	defer file.Close()

	line, err := json.Marshal(row)
	if err != nil {
		return 0, fmt.Errorf("marshal row: %w", err)
	}

	writer := bufio.NewWriter(file)
	if _, err := writer.Write(line); err != nil {
		return 0, Transient("append", fmt.Errorf("write row: %w", err))
	}
	if err := writer.WriteByte('\n'); err != nil {
		return 0, Transient("append", fmt.Errorf("write newline: %w", err))
	}
	if err := writer.Flush(); err != nil {
		return 0, Transient("append", fmt.Errorf("flush output: %w", err))
	}

	s.seq++
	return s.seq, nil
}

// GetLatest scans the file for the series' newest row and first timestamp.
func (s *JSONLStore) GetLatest(_ context.Context, ownerID string, platform model.Platform) (*SeriesHead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, Transient("get_latest", fmt.Errorf("open input file: %w", err))
	}
	defer file.Close()

	var head *SeriesHead
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var row model.PersistedRow
		if err := json.Unmarshal(scanner.Bytes(), &row); err != nil {
			return nil, fmt.Errorf("parse row: %w", err)
		}
		if row.OwnerID != ownerID || row.Platform != platform {
			continue
		}
		if head == nil {
			head = &SeriesHead{Row: row, FirstSeenAt: row.CreatedAt}
			continue
		}
		head.Row = row
	}
	if err := scanner.Err(); err != nil {
		return nil, Transient("get_latest", fmt.Errorf("scan rows: %w", err))
	}
	return head, nil
}
