// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

// Client is a thin adapter over solana-go RPC implementing blockchain.Client.
// Read-only calls are retried with bounded exponential backoff; submission is
// attempted exactly once, retry policy for sends belongs to the caller.
type Client struct {
	rpc        *rpc.Client
	logger     *zap.Logger
	commitment rpc.CommitmentType
	maxTries   uint
}

var ErrAccountNotFound = errors.New("account not found")

// IsAccountNotFoundError reports whether err is an RPC "not found" response.
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:        rpc.New(rpcURL),
		logger:     logger.Named("solbc-client"),
		commitment: rpc.CommitmentConfirmed,
		maxTries:   4,
	}
}

// retryRead wraps a read-only RPC call with exponential backoff. "not found"
// is returned immediately: an absent account is an answer, not a transport
// failure.
func retryRead[T any](ctx context.Context, c *Client, op func() (T, error)) (T, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 2 * time.Second

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && IsAccountNotFoundError(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(c.maxTries))
}

// GetLatestBlockhash fetches the most recent blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := retryRead(ctx, c, func() (*rpc.GetLatestBlockhashResult, error) {
		return c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	})
	if err != nil {
		c.logger.Error("GetLatestBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetAccountInfo fetches raw account info.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := retryRead(ctx, c, func() (*rpc.GetAccountInfoResult, error) {
		return c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingBase64,
		})
	})
	if err != nil {
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}

// GetMinimumBalanceForRentExemption returns the rent-exempt minimum for an
// account of the given size.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	lamports, err := retryRead(ctx, c, func() (uint64, error) {
		return c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, c.commitment)
	})
	if err != nil {
		c.logger.Error("GetMinimumBalanceForRentExemption error", zap.Error(err))
		return 0, err
	}
	return lamports, nil
}

// SendTransactionWithOpts submits a signed transaction. No retries: a send
// that may have reached the cluster must not be repeated blindly.
func (c *Client) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: opts.PreflightCommitment,
	})
	if err != nil {
		c.logger.Error("SendTransactionWithOpts error", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// SimulateTransaction simulates a transaction and returns its trace.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts blockchain.SimulationOptions) (*blockchain.SimulationResult, error) {
	commitment := opts.Commitment
	if commitment == "" {
		commitment = c.commitment
	}

	result, err := retryRead(ctx, c, func() (*rpc.SimulateTransactionResponse, error) {
		return c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
			SigVerify:              opts.SigVerify,
			ReplaceRecentBlockhash: opts.ReplaceRecentBlockhash,
			Commitment:             commitment,
		})
	})
	if err != nil {
		c.logger.Error("SimulateTransaction error", zap.Error(err))
		return nil, err
	}

	units := uint64(0)
	if result.Value.UnitsConsumed != nil {
		units = *result.Value.UnitsConsumed
	}
	return &blockchain.SimulationResult{
		Err:           result.Value.Err,
		Logs:          result.Value.Logs,
		UnitsConsumed: units,
	}, nil
}

// GetSignatureStatuses fetches transaction signature statuses.
func (c *Client) GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	result, err := retryRead(ctx, c, func() (*rpc.GetSignatureStatusesResult, error) {
		return c.rpc.GetSignatureStatuses(ctx, false, signatures...)
	})
	if err != nil {
		c.logger.Error("GetSignatureStatuses error", zap.Error(err))
		return nil, err
	}
	return result, nil
}
