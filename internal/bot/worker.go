// internal/bot/worker.go
package bot

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soltrade/rayswap/internal/blockchain"
	"github.com/soltrade/rayswap/internal/config"
	"github.com/soltrade/rayswap/internal/logger"
	"github.com/soltrade/rayswap/internal/raydium"
	"github.com/soltrade/rayswap/internal/task"
	"github.com/soltrade/rayswap/internal/wallet"
)

// workerPool runs swap tasks with bounded concurrency. When the
// interactive confirmation gate is active the limit drops to one so
// prompts never interleave.
type workerPool struct {
	config    *config.Config
	logger    *logger.Logger
	solClient blockchain.Client
	wallets   map[string]*wallet.Wallet
	confirmFn raydium.ConfirmFunc
}

func newWorkerPool(
	cfg *config.Config,
	log *logger.Logger,
	solClient blockchain.Client,
	wallets map[string]*wallet.Wallet,
	confirmFn raydium.ConfirmFunc,
) *workerPool {
	return &workerPool{
		config:    cfg,
		logger:    log,
		solClient: solClient,
		wallets:   wallets,
		confirmFn: confirmFn,
	}
}

func (wp *workerPool) run(ctx context.Context, tasks []*task.Task) error {
	limit := wp.config.Workers
	if limit <= 0 || wp.confirmFn != nil {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			wp.handleTask(gctx, t)
			return nil
		})
	}
	return g.Wait()
}

// handleTask runs one swap end to end. Task failures are logged, not
// propagated: one bad task must not stop the rest. Every log line of one
// task shares a correlation id.
func (wp *workerPool) handleTask(ctx context.Context, t *task.Task) {
	end := wp.logger.TrackPerformance("swap_task")
	defer end()

	log := wp.logger.WithOperation("swap").WithTask(t.TaskName, t.WalletName)

	w := wp.wallets[t.WalletName]
	if w == nil {
		log.Warn("Skipping task - no wallet found")
		return
	}
	log = log.WithWallet(w.String())

	params, err := t.ToSwapParams()
	if err != nil {
		log.LogError("Invalid task parameters", err)
		return
	}

	log.Info("Starting swap", zap.String("state", logger.SwapPending))

	executor := raydium.NewExecutor(wp.solClient, w.PublicKey, w.SignTransaction, wp.confirmFn, log.Logger)

	result, err := executor.Swap(ctx, params)
	if err != nil {
		var subErr *raydium.SubmissionError
		if errors.As(err, &subErr) && subErr.Trace != nil {
			log.Error("Swap submission failed",
				zap.String("state", logger.SwapFailed),
				zap.Error(err),
				zap.Int("failed_instruction", subErr.Trace.FailedInstruction),
				zap.Uint64("units_consumed", subErr.Trace.UnitsConsumed),
				zap.Strings("program_logs", subErr.Trace.Logs))
			return
		}
		log.LogError("Swap failed", err, zap.String("state", logger.SwapFailed))
		return
	}

	if result.Cancelled {
		log.Info("Swap cancelled before submission",
			zap.String("state", logger.SwapCancelled))
		return
	}

	txLog := log.WithTransaction(result.Signature.String())
	txLog.Info("Swap submitted",
		zap.String("state", logger.SwapSubmitted),
		zap.String("direction", result.Direction.String()),
		zap.Uint64("threshold", result.Threshold))

	if wp.config.WaitConfirmation {
		if err := executor.WaitForConfirmation(ctx, result.Signature); err != nil {
			txLog.LogError("Swap confirmation failed", err,
				zap.String("state", logger.SwapFailed))
		}
	}
}
