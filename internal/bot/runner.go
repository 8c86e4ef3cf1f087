// internal/bot/runner.go
package bot

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
	"github.com/soltrade/rayswap/internal/blockchain/solbc"
	"github.com/soltrade/rayswap/internal/config"
	"github.com/soltrade/rayswap/internal/confirm"
	"github.com/soltrade/rayswap/internal/logger"
	"github.com/soltrade/rayswap/internal/raydium"
	"github.com/soltrade/rayswap/internal/task"
	"github.com/soltrade/rayswap/internal/wallet"
)

// Runner loads wallets and tasks and drives swap execution until all
// tasks finish or a shutdown signal arrives.
type Runner struct {
	logger      *logger.Logger
	config      *config.Config
	solClient   blockchain.Client
	taskManager *task.Manager
	wallets     map[string]*wallet.Wallet
	shutdownCh  chan os.Signal
}

func NewRunner(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	wallets, err := wallet.LoadWallets(cfg.WalletsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallets: %w", err)
	}

	return &Runner{
		logger:      log,
		config:      cfg,
		solClient:   solbc.NewClient(cfg.RPCList[0], log.Logger),
		taskManager: task.NewManager(log.Logger),
		wallets:     wallets,
		shutdownCh:  make(chan os.Signal, 1),
	}, nil
}

// Run executes all tasks from the tasks file and returns when they are
// done or the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	signal.Notify(r.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case sig := <-r.shutdownCh:
			r.logger.Info("Signal received: " + sig.String())
			cancel()
		case <-runCtx.Done():
		}
	}()

	tasks, err := r.taskManager.LoadTasks(r.config.TasksFile)
	if err != nil {
		r.logger.LogError("Failed to load swap tasks", err)
		return err
	}
	r.logger.Info("Loaded swap tasks", zap.Int("count", len(tasks)))

	var confirmFn raydium.ConfirmFunc
	if !r.config.SkipConfirmation {
		confirmFn = confirm.Ask
	}

	pool := newWorkerPool(r.config, r.logger, r.solClient, r.wallets, confirmFn)
	return pool.run(runCtx, tasks)
}

// Shutdown flushes the logger.
func (r *Runner) Shutdown() {
	r.logger.Info("Shutting down")
	if err := r.logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to sync logger during shutdown: %v\n", err)
	}
}
