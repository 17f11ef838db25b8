package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/boosterenv/internal/rollout"
)

// Store persists rollout results under a data directory, one subdirectory
// per run with JSON metadata and a CSV trajectory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          uint64             `json:"seed"`
	Policy        string             `json:"policy"`
	RewardVersion string             `json:"reward_version"`
	Steps         int                `json:"steps"`
	TotalReward   float64            `json:"total_reward"`
	Outcome       string             `json:"outcome"`
	Reason        string             `json:"reason"`
	Truncated     bool               `json:"truncated"`
	Metrics       map[string]float64 `json:"metrics"`
}

var csvHeader = []string{"step", "x", "y", "vx", "vy", "alpha", "w", "fuel_ratio", "main_power", "gimbal", "reward"}

func (s *Store) Save(policyName, rewardVersion string, seed uint64, result *rollout.Result) (string, error) {
	runID := fmt.Sprintf("booster_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Seed:          seed,
		Policy:        policyName,
		RewardVersion: rewardVersion,
		Steps:         result.Steps,
		TotalReward:   result.TotalReward,
		Outcome:       result.Outcome.String(),
		Reason:        result.Reason,
		Truncated:     result.Truncated,
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i, obs := range result.Observations {
		row := make([]string, 0, len(csvHeader))
		row = append(row, strconv.Itoa(i))
		for _, v := range obs {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if i > 0 && i-1 < len(result.Rewards) {
			row = append(row, strconv.FormatFloat(result.Rewards[i-1], 'g', -1, 64))
		} else {
			row = append(row, "0")
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) List() ([]*RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]*RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadTrajectory returns the stored observation rows and per-step rewards.
func (s *Store) LoadTrajectory(runID string) ([][]float64, []float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("empty trajectory for run %s", runID)
	}

	rows := make([][]float64, 0, len(records)-1)
	rewards := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(csvHeader) {
			return nil, nil, fmt.Errorf("malformed trajectory row in run %s", runID)
		}
		row := make([]float64, 0, len(rec)-2)
		for _, field := range rec[1 : len(rec)-1] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, err
			}
			row = append(row, v)
		}
		reward, err := strconv.ParseFloat(rec[len(rec)-1], 64)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
		rewards = append(rewards, reward)
	}
	return rows, rewards, nil
}
