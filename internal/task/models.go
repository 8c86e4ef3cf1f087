// internal/task/models.go
// Package task loads swap task definitions from YAML.
package task

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/soltrade/rayswap/internal/raydium"
)

// Mode selects which side of the trade is exact.
type Mode string

const (
	// ModeExactIn spends an exact input amount for at least a minimum output.
	ModeExactIn Mode = "exact_in"
	// ModeExactOut buys an exact output amount for at most a maximum input.
	ModeExactOut Mode = "exact_out"
)

// Task is one swap job from the tasks file. Amounts are in the mint's
// smallest indivisible unit.
type Task struct {
	ID          int
	TaskName    string
	WalletName  string
	Mode        Mode
	AmmPool     string
	InputMint   string
	OutputMint  string
	Amount      uint64
	SlippageBps uint64

	// Compute budget tuning; zero means the executor default.
	PriorityFeeMicroLamports uint64
	ComputeUnits             uint32

	CreatedAt time.Time
}

// Validate checks the task for the fields no swap can run without.
func (t *Task) Validate() error {
	if t.TaskName == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.WalletName == "" {
		return fmt.Errorf("task %q: wallet name cannot be empty", t.TaskName)
	}
	if t.Mode != ModeExactIn && t.Mode != ModeExactOut {
		return fmt.Errorf("task %q: unsupported mode %q", t.TaskName, t.Mode)
	}
	if t.Amount == 0 {
		return fmt.Errorf("task %q: amount cannot be zero", t.TaskName)
	}
	if t.SlippageBps > 10000 {
		return fmt.Errorf("task %q: slippage %d bps out of range", t.TaskName, t.SlippageBps)
	}
	for name, addr := range map[string]string{
		"amm_pool":    t.AmmPool,
		"input_mint":  t.InputMint,
		"output_mint": t.OutputMint,
	} {
		if _, err := solana.PublicKeyFromBase58(addr); err != nil {
			return fmt.Errorf("task %q: invalid %s %q: %w", t.TaskName, name, addr, err)
		}
	}
	return nil
}

// ToSwapParams converts the task into executor parameters. Call Validate
// first; malformed addresses fail here too.
func (t *Task) ToSwapParams() (raydium.SwapParams, error) {
	pool, err := solana.PublicKeyFromBase58(t.AmmPool)
	if err != nil {
		return raydium.SwapParams{}, fmt.Errorf("invalid amm_pool: %w", err)
	}
	inputMint, err := solana.PublicKeyFromBase58(t.InputMint)
	if err != nil {
		return raydium.SwapParams{}, fmt.Errorf("invalid input_mint: %w", err)
	}
	outputMint, err := solana.PublicKeyFromBase58(t.OutputMint)
	if err != nil {
		return raydium.SwapParams{}, fmt.Errorf("invalid output_mint: %w", err)
	}

	return raydium.SwapParams{
		AmmPool:                  pool,
		InputMint:                inputMint,
		OutputMint:               outputMint,
		Amount:                   t.Amount,
		SlippageBps:              t.SlippageBps,
		SwapBaseIn:               t.Mode == ModeExactIn,
		PriorityFeeMicroLamports: t.PriorityFeeMicroLamports,
		ComputeUnits:             t.ComputeUnits,
	}, nil
}
