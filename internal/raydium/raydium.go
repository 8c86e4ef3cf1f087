// internal/raydium/raydium.go
package raydium

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

// Defaults applied when SwapParams leaves the compute budget unset. The
// unit limit leaves headroom for the account setup instructions around the
// swap itself.
const (
	DefaultComputeUnits             uint32 = 600_000
	DefaultPriorityFeeMicroLamports uint64 = 25_000
)

// ConfirmFunc is the yes/no gate shown before signing. Returning false
// cancels the swap without error.
type ConfirmFunc func(ctx context.Context, summary string) (bool, error)

// Executor runs the full swap pipeline: resolve, quote, prepare accounts,
// assemble, confirm, submit.
type Executor struct {
	owner     solana.PublicKey
	sign      SignFunc
	resolver  *Resolver
	quotes    *QuoteCalculator
	accounts  *TokenAccountPreparer
	submitter *TransactionSubmitter
	confirm   ConfirmFunc
	logger    *zap.Logger
}

// NewExecutor wires the pipeline components over one blockchain client.
// sign must produce the owner's signature; confirm may be nil, in which
// case swaps proceed unattended.
func NewExecutor(client blockchain.Client, owner solana.PublicKey, sign SignFunc, confirm ConfirmFunc, logger *zap.Logger) *Executor {
	l := logger.Named("raydium")
	return &Executor{
		owner:     owner,
		sign:      sign,
		resolver:  NewResolver(client, l),
		quotes:    NewQuoteCalculator(client, l),
		accounts:  NewTokenAccountPreparer(client, l),
		submitter: NewTransactionSubmitter(client, l),
		confirm:   confirm,
		logger:    l,
	}
}

// Swap executes one slippage-protected swap against a V4 pool. The
// returned error is one of the pipeline error types; a declined
// confirmation is not an error and comes back as a cancelled result.
func (e *Executor) Swap(ctx context.Context, params SwapParams) (*SwapResult, error) {
	owner := e.owner

	pool, err := e.resolver.ResolvePool(ctx, RaydiumV4ProgramID, params.AmmPool)
	if err != nil {
		return nil, err
	}
	market, err := e.resolver.ResolveMarket(ctx, pool.MarketProgram, pool.Market)
	if err != nil {
		return nil, err
	}

	threshold, direction, err := e.quotes.Quote(
		ctx, pool, market, owner,
		params.InputMint, params.OutputMint,
		params.Amount, params.SlippageBps, params.SwapBaseIn,
	)
	if err != nil {
		return nil, err
	}

	// The wrapped lamports must cover the worst-case input: the exact
	// amount when selling, the slippage-capped maximum when buying.
	wrapAmount := params.Amount
	if !params.SwapBaseIn {
		wrapAmount = threshold
	}

	source, err := e.accounts.Prepare(ctx, owner, params.InputMint, wrapAmount)
	if err != nil {
		return nil, err
	}
	destination, err := e.accounts.Prepare(ctx, owner, params.OutputMint, 0)
	if err != nil {
		return nil, err
	}

	units := params.ComputeUnits
	if units == 0 {
		units = DefaultComputeUnits
	}
	priorityFee := params.PriorityFeeMicroLamports
	if priorityFee == 0 {
		priorityFee = DefaultPriorityFeeMicroLamports
	}

	plan := &SwapPlan{}
	plan.SetComputeBudget(buildComputeBudgetInstructions(units, priorityFee))
	plan.SetPreSource(source.Pre)
	plan.SetPreDestination(destination.Pre)
	plan.SetSwap(buildSwapInstruction(
		pool, market,
		source.Address, destination.Address, owner,
		params.Amount, threshold, params.SwapBaseIn,
	))
	plan.SetPostSource(source.Post)
	plan.SetPostDestination(destination.Post)

	ixs, err := plan.Instructions()
	if err != nil {
		return nil, err
	}

	summary := swapSummary(params, direction, threshold)
	e.logger.Info("swap ready",
		zap.String("pool", params.AmmPool.String()),
		zap.String("direction", direction.String()),
		zap.Uint64("amount", params.Amount),
		zap.Uint64("threshold", threshold),
		zap.Int("instructions", len(ixs)))

	if e.confirm != nil {
		ok, err := e.confirm(ctx, summary)
		if err != nil {
			return nil, fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			e.logger.Info("swap cancelled by user", zap.String("pool", params.AmmPool.String()))
			return &SwapResult{Threshold: threshold, Direction: direction, Cancelled: true}, nil
		}
	}

	sig, err := e.submitter.Submit(ctx, ixs, e.owner, e.sign)
	if err != nil {
		return nil, err
	}

	return &SwapResult{
		Signature: sig,
		Threshold: threshold,
		Direction: direction,
	}, nil
}

// WaitForConfirmation blocks until the submitted swap is at least
// confirmed.
func (e *Executor) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	return e.submitter.WaitForConfirmation(ctx, sig)
}

func swapSummary(params SwapParams, direction SwapDirection, threshold uint64) string {
	if params.SwapBaseIn {
		return fmt.Sprintf("swap %d of %s for at least %d of %s (%s, slippage %d bps)",
			params.Amount, params.InputMint, threshold, params.OutputMint,
			direction, params.SlippageBps)
	}
	return fmt.Sprintf("swap at most %d of %s for exactly %d of %s (%s, slippage %d bps)",
		threshold, params.InputMint, params.Amount, params.OutputMint,
		direction, params.SlippageBps)
}
