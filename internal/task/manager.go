// internal/task/manager.go
package task

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Manager loads and parses Task definitions.
type Manager struct {
	logger *zap.Logger
}

// taskFile is the on-disk structure of the tasks YAML file.
type taskFile struct {
	Tasks []struct {
		TaskName    string `yaml:"task_name"`
		Wallet      string `yaml:"wallet"`
		Mode        string `yaml:"mode"`
		AmmPool     string `yaml:"amm_pool"`
		InputMint   string `yaml:"input_mint"`
		OutputMint  string `yaml:"output_mint"`
		Amount      uint64 `yaml:"amount"`
		SlippageBps uint64 `yaml:"slippage_bps"`

		PriorityFeeMicroLamports uint64 `yaml:"priority_fee_micro_lamports"`
		ComputeUnits             uint32 `yaml:"compute_units"`
	} `yaml:"tasks"`
}

// NewManager constructs a Manager with the given logger.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger.Named("task")}
}

// LoadTasks reads tasks from a YAML file, skipping entries that fail
// validation.
func (m *Manager) LoadTasks(path string) ([]*Task, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var file taskFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Tasks) == 0 {
		return nil, fmt.Errorf("no tasks found in configuration")
	}

	tasks := make([]*Task, 0, len(file.Tasks))
	for i, entry := range file.Tasks {
		mode := Mode(entry.Mode)
		if entry.Mode == "" {
			mode = ModeExactIn
		}

		t := &Task{
			ID:          i,
			TaskName:    entry.TaskName,
			WalletName:  entry.Wallet,
			Mode:        mode,
			AmmPool:     entry.AmmPool,
			InputMint:   entry.InputMint,
			OutputMint:  entry.OutputMint,
			Amount:      entry.Amount,
			SlippageBps: entry.SlippageBps,

			PriorityFeeMicroLamports: entry.PriorityFeeMicroLamports,
			ComputeUnits:             entry.ComputeUnits,
			CreatedAt:                time.Now(),
		}

		if err := t.Validate(); err != nil {
			m.logger.Warn("Skipping invalid task",
				zap.String("task_name", entry.TaskName),
				zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}

	if len(tasks) == 0 {
		return nil, fmt.Errorf("all tasks failed validation")
	}

	m.logger.Info("Tasks loaded", zap.Int("count", len(tasks)))
	return tasks, nil
}
