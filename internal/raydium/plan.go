// internal/raydium/plan.go
package raydium

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// SwapPlan holds the instructions of one atomic swap transaction in named
// slots. The slot order is a correctness requirement: the compute budget
// applies only if it comes first, the swap must not run before both token
// accounts exist, and a closed account must never be referenced again.
type SwapPlan struct {
	computeBudget   []solana.Instruction
	preSource       []solana.Instruction
	preDestination  []solana.Instruction
	swap            solana.Instruction
	postSource      []solana.Instruction
	postDestination []solana.Instruction
}

func (p *SwapPlan) SetComputeBudget(ixs []solana.Instruction) { p.computeBudget = ixs }

func (p *SwapPlan) SetPreSource(ixs []solana.Instruction) { p.preSource = ixs }

func (p *SwapPlan) SetPreDestination(ixs []solana.Instruction) { p.preDestination = ixs }

func (p *SwapPlan) SetSwap(ix solana.Instruction) { p.swap = ix }

func (p *SwapPlan) SetPostSource(ixs []solana.Instruction) { p.postSource = ixs }

func (p *SwapPlan) SetPostDestination(ixs []solana.Instruction) { p.postDestination = ixs }

// Instructions flattens the slots in their fixed execution order.
func (p *SwapPlan) Instructions() ([]solana.Instruction, error) {
	if p.swap == nil {
		return nil, fmt.Errorf("swap plan has no swap instruction")
	}

	total := len(p.computeBudget) + len(p.preSource) + len(p.preDestination) +
		1 + len(p.postSource) + len(p.postDestination)
	ixs := make([]solana.Instruction, 0, total)

	ixs = append(ixs, p.computeBudget...)
	ixs = append(ixs, p.preSource...)
	ixs = append(ixs, p.preDestination...)
	ixs = append(ixs, p.swap)
	ixs = append(ixs, p.postSource...)
	ixs = append(ixs, p.postDestination...)
	return ixs, nil
}
