package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunRecord captures the outcome of one backup run.
type RunRecord struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"` // success, failed
	Volume    string `json:"volume"` // vg/lv that was backed up
	Host      string `json:"host"`   // rsync target
	Message   string `json:"message"`
}

// HistoryManager manages the persistent history of backup runs.
type HistoryManager struct {
	HistoryFile string
}

func NewHistoryManager(baseDir string) *HistoryManager {
	if baseDir == "" {
		home, _ := os.UserHomeDir()
		baseDir = filepath.Join(home, ".mailsnap")
	}
	return &HistoryManager{
		HistoryFile: filepath.Join(baseDir, "history.json"),
	}
}

// AddRecord appends a new run to the history.
func (hm *HistoryManager) AddRecord(rec RunRecord) error {
	history, err := hm.LoadHistory()
	if err != nil {
		history = []RunRecord{}
	}
	history = append(history, rec)
	return hm.saveHistory(history)
}

// LoadHistory reads the history file. A missing file is an empty history.
func (hm *HistoryManager) LoadHistory() ([]RunRecord, error) {
	if _, err := os.Stat(hm.HistoryFile); os.IsNotExist(err) {
		return []RunRecord{}, nil
	}

	data, err := os.ReadFile(hm.HistoryFile)
	if err != nil {
		return nil, err
	}

	var history []RunRecord
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (hm *HistoryManager) saveHistory(history []RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(hm.HistoryFile), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(hm.HistoryFile, data, 0644)
}

// GenerateID creates a simple unique run ID.
func GenerateID() string {
	return fmt.Sprintf("run-%s", time.Now().Format("20060102-150405"))
}
