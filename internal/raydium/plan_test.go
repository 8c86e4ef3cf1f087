// internal/raydium/plan_test.go
package raydium

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopInstruction(tag byte) solana.Instruction {
	return solana.NewInstruction(solana.SystemProgramID, nil, []byte{tag})
}

func TestSwapPlanOrdering(t *testing.T) {
	plan := &SwapPlan{}
	plan.SetComputeBudget([]solana.Instruction{noopInstruction(1), noopInstruction(2)})
	plan.SetPreSource([]solana.Instruction{noopInstruction(3)})
	plan.SetPreDestination([]solana.Instruction{noopInstruction(4)})
	plan.SetSwap(noopInstruction(5))
	plan.SetPostSource([]solana.Instruction{noopInstruction(6)})
	plan.SetPostDestination([]solana.Instruction{noopInstruction(7)})

	ixs, err := plan.Instructions()
	require.NoError(t, err)
	require.Len(t, ixs, 7)

	for i, ix := range ixs {
		data, err := ix.Data()
		require.NoError(t, err)
		assert.Equal(t, byte(i+1), data[0], "instruction %d out of order", i)
	}
}

func TestSwapPlanEmptySlots(t *testing.T) {
	plan := &SwapPlan{}
	plan.SetSwap(noopInstruction(1))

	ixs, err := plan.Instructions()
	require.NoError(t, err)
	require.Len(t, ixs, 1)
}

func TestSwapPlanMissingSwap(t *testing.T) {
	plan := &SwapPlan{}
	plan.SetComputeBudget(buildComputeBudgetInstructions(600_000, 25_000))

	_, err := plan.Instructions()
	require.Error(t, err)
}

func TestComputeBudgetLeadsPlan(t *testing.T) {
	plan := &SwapPlan{}
	plan.SetComputeBudget(buildComputeBudgetInstructions(600_000, 25_000))
	plan.SetPreSource([]solana.Instruction{noopInstruction(1)})
	plan.SetSwap(noopInstruction(2))

	ixs, err := plan.Instructions()
	require.NoError(t, err)
	require.Len(t, ixs, 4)

	assert.Equal(t, computebudget.ProgramID, ixs[0].ProgramID())
	assert.Equal(t, computebudget.ProgramID, ixs[1].ProgramID())
}
