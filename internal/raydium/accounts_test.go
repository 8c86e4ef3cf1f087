// internal/raydium/accounts_test.go
package raydium

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("rpc: account not found")

func TestPrepareStandard_ExistingAccount(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, ata).Return(
		accountResult(solana.TokenProgramID, make([]byte, TokenAccountSize)), nil)

	preparer := NewTokenAccountPreparer(client, zapNop())
	prepared, err := preparer.Prepare(ctx, owner, mint, 0)
	require.NoError(t, err)

	assert.Equal(t, ata, prepared.Address)
	assert.Empty(t, prepared.Pre, "existing account needs no setup")
	assert.Empty(t, prepared.Post, "standard accounts are never closed")
	client.AssertExpectations(t)
}

func TestPrepareStandard_MissingAccount(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, mock.Anything).Return(nil, errNotFound)

	preparer := NewTokenAccountPreparer(client, zapNop())
	prepared, err := preparer.Prepare(ctx, owner, mint, 0)
	require.NoError(t, err)

	require.Len(t, prepared.Pre, 1, "missing account needs a create instruction")
	assert.Empty(t, prepared.Post)
}

func TestPrepareNative(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()
	const rent = uint64(2_039_280)
	const amount = uint64(1_000_000_000)

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, mock.Anything).Return(nil, errNotFound)
	client.On("GetMinimumBalanceForRentExemption", mock.Anything, uint64(TokenAccountSize)).
		Return(rent, nil)

	preparer := NewTokenAccountPreparer(client, zapNop())
	prepared, err := preparer.Prepare(ctx, owner, solana.WrappedSol, amount)
	require.NoError(t, err)

	require.Len(t, prepared.Pre, 2, "native side needs create + initialize")
	require.Len(t, prepared.Post, 1, "native side must close the wrapper")

	// Legacy InitializeAccount reads rent from the sysvar account, so it must
	// be in the instruction's account list.
	initMetas := prepared.Pre[1].Accounts()
	require.Len(t, initMetas, 4)
	assert.Equal(t, prepared.Address, initMetas[0].PublicKey)
	assert.Equal(t, solana.WrappedSol, initMetas[1].PublicKey)
	assert.Equal(t, owner, initMetas[2].PublicKey)
	assert.Equal(t, solana.SysVarRentPubkey, initMetas[3].PublicKey)

	// The ephemeral account is not the owner's ATA.
	ata, _, err := solana.FindAssociatedTokenAddress(owner, solana.WrappedSol)
	require.NoError(t, err)
	assert.NotEqual(t, ata, prepared.Address)

	client.AssertExpectations(t)
}

func TestPrepareNative_DistinctAddresses(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, mock.Anything).Return(nil, errNotFound)
	client.On("GetMinimumBalanceForRentExemption", mock.Anything, mock.Anything).
		Return(uint64(2_039_280), nil)

	preparer := NewTokenAccountPreparer(client, zapNop())

	first, err := preparer.Prepare(ctx, owner, solana.WrappedSol, 1)
	require.NoError(t, err)
	second, err := preparer.Prepare(ctx, owner, solana.WrappedSol, 1)
	require.NoError(t, err)

	// Each wrap uses a fresh seed so both sides of a SOL/WSOL edge case, or
	// two consecutive swaps, never collide.
	assert.NotEqual(t, first.Address, second.Address)
}

func TestPrepareNative_SeedCollision(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, mock.Anything).Return(
		accountResult(solana.TokenProgramID, make([]byte, TokenAccountSize)), nil)

	preparer := NewTokenAccountPreparer(client, zapNop())
	_, err := preparer.Prepare(ctx, owner, solana.WrappedSol, 1)

	var prepErr *AccountPreparationError
	require.ErrorAs(t, err, &prepErr)
	assert.Equal(t, solana.WrappedSol.String(), prepErr.Mint)
}

func TestPrepareNative_RentLookupFails(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	owner := solana.NewWallet().PublicKey()

	client := new(MockClient)
	client.On("GetAccountInfo", mock.Anything, mock.Anything).Return(nil, errNotFound)
	client.On("GetMinimumBalanceForRentExemption", mock.Anything, mock.Anything).
		Return(uint64(0), errors.New("rpc unavailable"))

	preparer := NewTokenAccountPreparer(client, zapNop())
	_, err := preparer.Prepare(ctx, owner, solana.WrappedSol, 1)

	var prepErr *AccountPreparationError
	require.ErrorAs(t, err, &prepErr)
}
