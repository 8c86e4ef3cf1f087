// internal/raydium/submit.go
package raydium

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

// SignFunc signs a built transaction with the payer's key. The key itself
// stays with the wallet that provides the func.
type SignFunc func(tx *solana.Transaction) error

// TransactionSubmitter signs and broadcasts a swap transaction. A rejected
// send is re-run as a read-only simulation so the caller gets the program
// logs of the failure instead of a bare RPC error.
type TransactionSubmitter struct {
	client blockchain.Client
	logger *zap.Logger
}

func NewTransactionSubmitter(client blockchain.Client, logger *zap.Logger) *TransactionSubmitter {
	return &TransactionSubmitter{
		client: client,
		logger: logger.Named("submitter"),
	}
}

// Submit anchors the instructions to a fresh blockhash, signs with the
// payer's wallet and sends once. There is no retry: a second attempt would
// be a second trade.
func (s *TransactionSubmitter) Submit(ctx context.Context, ixs []solana.Instruction, payer solana.PublicKey, sign SignFunc) (solana.Signature, error) {
	blockhash, err := s.client.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: fmt.Errorf("failed to fetch blockhash: %w", err)}
	}

	tx, err := solana.NewTransaction(
		ixs,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, &SubmissionError{Err: fmt.Errorf("failed to build transaction: %w", err)}
	}

	if err := sign(tx); err != nil {
		return solana.Signature{}, &SubmissionError{Err: fmt.Errorf("failed to sign transaction: %w", err)}
	}

	sig, err := s.client.SendTransactionWithOpts(ctx, tx, blockchain.TransactionOptions{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		trace := s.diagnose(ctx, tx)
		return solana.Signature{}, &SubmissionError{Err: err, Trace: trace}
	}

	s.logger.Info("transaction submitted", zap.String("signature", sig.String()))
	return sig, nil
}

// diagnose simulates the already-signed transaction that the cluster
// rejected. The trace is best effort: when even the simulation fails the
// submitter returns what it has.
func (s *TransactionSubmitter) diagnose(ctx context.Context, tx *solana.Transaction) *DiagnosticTrace {
	sim, err := s.client.SimulateTransaction(ctx, tx, blockchain.SimulationOptions{
		SigVerify:  true,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		s.logger.Warn("diagnostic simulation failed", zap.Error(err))
		return &DiagnosticTrace{FailedInstruction: -1}
	}

	trace := &DiagnosticTrace{
		Logs:              sim.Logs,
		UnitsConsumed:     sim.UnitsConsumed,
		FailedInstruction: failedInstructionIndex(sim.Err),
		SimulationErr:     sim.Err,
	}

	s.logger.Warn("transaction failed",
		zap.Any("simulation_err", sim.Err),
		zap.Int("failed_instruction", trace.FailedInstruction),
		zap.Uint64("units_consumed", trace.UnitsConsumed),
		zap.Strings("logs", trace.Logs))

	return trace
}

// failedInstructionIndex extracts the instruction index from an RPC
// InstructionError value, -1 when the error has another shape.
func failedInstructionIndex(simErr interface{}) int {
	m, ok := simErr.(map[string]interface{})
	if !ok {
		return -1
	}
	detail, ok := m["InstructionError"].([]interface{})
	if !ok || len(detail) == 0 {
		return -1
	}
	switch idx := detail[0].(type) {
	case float64:
		return int(idx)
	case int:
		return idx
	default:
		return -1
	}
}

// WaitForConfirmation polls signature statuses until the transaction
// reaches at least confirmed commitment or ctx expires.
func (s *TransactionSubmitter) WaitForConfirmation(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirmation wait aborted: %w", ctx.Err())
		case <-ticker.C:
		}

		statuses, err := s.client.GetSignatureStatuses(ctx, sig)
		if err != nil {
			s.logger.Debug("signature status poll failed", zap.Error(err))
			continue
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			continue
		}

		status := statuses.Value[0]
		if status.Err != nil {
			return fmt.Errorf("transaction %s failed on chain: %v", sig, status.Err)
		}
		switch status.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			s.logger.Info("transaction confirmed",
				zap.String("signature", sig.String()),
				zap.String("status", string(status.ConfirmationStatus)))
			return nil
		}
	}
}
