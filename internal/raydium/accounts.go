// internal/raydium/accounts.go
package raydium

import (
	"context"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
	"github.com/soltrade/rayswap/internal/blockchain/solbc"
)

// PreparedAccount is one side of the swap: the token account address plus
// the instructions that must run before and after the swap instruction.
type PreparedAccount struct {
	Address solana.PublicKey
	Pre     []solana.Instruction
	Post    []solana.Instruction
}

// TokenAccountPreparer builds the token-account setup and teardown for each
// side of a swap. Native SOL trades through an ephemeral wrapped-SOL account
// created and closed inside the same transaction; every other mint uses the
// owner's associated token account.
type TokenAccountPreparer struct {
	client blockchain.Client
	logger *zap.Logger
}

func NewTokenAccountPreparer(client blockchain.Client, logger *zap.Logger) *TokenAccountPreparer {
	return &TokenAccountPreparer{
		client: client,
		logger: logger.Named("accounts"),
	}
}

// Prepare returns the account to use for the given mint. amount is the
// lamports to wrap when the mint is native SOL on the source side; pass 0
// for the destination side.
func (p *TokenAccountPreparer) Prepare(ctx context.Context, owner, mint solana.PublicKey, amount uint64) (*PreparedAccount, error) {
	if mint.Equals(solana.WrappedSol) {
		return p.prepareNative(ctx, owner, amount)
	}
	return p.prepareStandard(ctx, owner, mint)
}

// prepareNative creates an ephemeral wrapped-SOL account at a seed-derived
// address, funded with rent plus the wrapped amount, and schedules its
// closure so the remaining lamports return to the owner.
func (p *TokenAccountPreparer) prepareNative(ctx context.Context, owner solana.PublicKey, amount uint64) (*PreparedAccount, error) {
	// A throwaway keypair gives 32 characters of base58 entropy; the keypair
	// itself is discarded, only the seed string matters.
	seed := solana.NewWallet().PublicKey().String()[:32]

	address, err := solana.CreateWithSeed(owner, seed, solana.TokenProgramID)
	if err != nil {
		return nil, &AccountPreparationError{
			Mint:    solana.WrappedSol.String(),
			Message: "failed to derive seed account address",
			Err:     err,
		}
	}

	exists, err := p.accountExists(ctx, address)
	if err != nil {
		return nil, &AccountPreparationError{
			Mint:    solana.WrappedSol.String(),
			Message: "failed to check seed account",
			Err:     err,
		}
	}
	if exists {
		return nil, &AccountPreparationError{
			Mint:    solana.WrappedSol.String(),
			Message: "seed account address already in use: " + address.String(),
		}
	}

	rent, err := p.client.GetMinimumBalanceForRentExemption(ctx, TokenAccountSize)
	if err != nil {
		return nil, &AccountPreparationError{
			Mint:    solana.WrappedSol.String(),
			Message: "failed to fetch rent-exempt minimum",
			Err:     err,
		}
	}

	createIx := system.NewCreateAccountWithSeedInstruction(
		owner,
		seed,
		rent+amount,
		TokenAccountSize,
		solana.TokenProgramID,
		owner,
		address,
		owner,
	).Build()

	initIx := token.NewInitializeAccountInstruction(
		address,
		solana.WrappedSol,
		owner,
		solana.SysVarRentPubkey,
	).Build()

	closeIx := token.NewCloseAccountInstruction(
		address,
		owner,
		owner,
		[]solana.PublicKey{},
	).Build()

	p.logger.Debug("prepared wrapped SOL account",
		zap.String("address", address.String()),
		zap.Uint64("wrapped_amount", amount),
		zap.Uint64("rent", rent))

	return &PreparedAccount{
		Address: address,
		Pre:     []solana.Instruction{createIx, initIx},
		Post:    []solana.Instruction{closeIx},
	}, nil
}

// prepareStandard resolves the owner's associated token account for the
// mint and creates it when absent. Existing accounts are left untouched and
// never closed.
func (p *TokenAccountPreparer) prepareStandard(ctx context.Context, owner, mint solana.PublicKey) (*PreparedAccount, error) {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, &AccountPreparationError{
			Mint:    mint.String(),
			Message: "failed to derive associated token address",
			Err:     err,
		}
	}

	exists, err := p.accountExists(ctx, address)
	if err != nil {
		return nil, &AccountPreparationError{
			Mint:    mint.String(),
			Message: "failed to check associated token account",
			Err:     err,
		}
	}

	prepared := &PreparedAccount{Address: address}
	if !exists {
		createIx := associatedtokenaccount.NewCreateInstruction(owner, owner, mint).Build()
		prepared.Pre = []solana.Instruction{createIx}
	}

	p.logger.Debug("prepared token account",
		zap.String("mint", mint.String()),
		zap.String("address", address.String()),
		zap.Bool("exists", exists))

	return prepared, nil
}

func (p *TokenAccountPreparer) accountExists(ctx context.Context, address solana.PublicKey) (bool, error) {
	info, err := p.client.GetAccountInfo(ctx, address)
	if err != nil {
		if solbc.IsAccountNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return info != nil && info.Value != nil, nil
}
