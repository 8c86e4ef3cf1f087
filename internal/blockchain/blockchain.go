// internal/blockchain/blockchain.go
package blockchain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// TransactionOptions defines options for sending transactions.
type TransactionOptions struct {
	SkipPreflight       bool
	PreflightCommitment rpc.CommitmentType
}

// SimulationOptions defines options for simulating transactions.
// SigVerify and ReplaceRecentBlockhash are mutually exclusive on the RPC
// side; read-only sampling sets ReplaceRecentBlockhash, diagnostics set
// SigVerify.
type SimulationOptions struct {
	SigVerify              bool
	ReplaceRecentBlockhash bool
	Commitment             rpc.CommitmentType
}

// SimulationResult holds the outcome of a simulated transaction.
type SimulationResult struct {
	Err           interface{}
	Logs          []string
	UnitsConsumed uint64
}

// Client is the narrow transport interface the swap pipeline depends on.
// Implementations must be safe for concurrent use.
type Client interface {
	// Fetch the latest blockhash to anchor a transaction.
	GetLatestBlockhash(ctx context.Context) (solana.Hash, error)
	// Fetch raw account info.
	GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error)
	// Minimum lamport balance for rent exemption of an account of the given size.
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error)
	// Submit a signed transaction.
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts TransactionOptions) (solana.Signature, error)
	// Simulate a transaction without mutating chain state.
	SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts SimulationOptions) (*SimulationResult, error)
	// Fetch signature statuses for submitted transactions.
	GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
}
