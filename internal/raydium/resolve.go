// internal/raydium/resolve.go
package raydium

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

// Resolver loads pool and market metadata from chain accounts.
type Resolver struct {
	client blockchain.Client
	logger *zap.Logger
}

func NewResolver(client blockchain.Client, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: client,
		logger: logger.Named("resolver"),
	}
}

// ResolvePool loads the V4 AMM account and extracts the keys the swap
// references, plus the fee parameters in effect.
func (r *Resolver) ResolvePool(ctx context.Context, ammProgram, ammPool solana.PublicKey) (*PoolKeys, error) {
	account, err := r.client.GetAccountInfo(ctx, ammPool)
	if err != nil {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "failed to fetch pool account", Err: err}
	}
	if account == nil || account.Value == nil {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "pool account not found"}
	}
	if !account.Value.Owner.Equals(ammProgram) {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "pool account not owned by AMM program"}
	}

	var state ammStateLayout
	if err := state.unpack(account.Value.Data.GetBinary()); err != nil {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "malformed pool account", Err: err}
	}
	if state.Status == poolStatusUninitialized || state.Status == poolStatusDisabled {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "pool is not tradable"}
	}

	authority, err := ammAuthorityAddress(ammProgram, state.Nonce)
	if err != nil {
		return nil, &ResolutionError{Account: ammPool.String(), Message: "failed to derive pool authority", Err: err}
	}

	keys := &PoolKeys{
		AmmProgram:         ammProgram,
		AmmPool:            ammPool,
		AmmAuthority:       authority,
		AmmOpenOrders:      state.OpenOrders,
		AmmTarget:          state.TargetOrders,
		AmmCoinVault:       state.CoinVault,
		AmmPcVault:         state.PcVault,
		AmmLpMint:          state.LpMint,
		AmmCoinMint:        state.CoinMint,
		AmmPcMint:          state.PcMint,
		MarketProgram:      state.MarketProgram,
		Market:             state.Market,
		SwapFeeNumerator:   state.Fees.SwapFeeNumerator,
		SwapFeeDenominator: state.Fees.SwapFeeDenominator,
	}

	r.logger.Debug("resolved pool keys",
		zap.String("pool", ammPool.String()),
		zap.String("coin_mint", keys.AmmCoinMint.String()),
		zap.String("pc_mint", keys.AmmPcMint.String()),
		zap.String("market", keys.Market.String()))

	return keys, nil
}

// ResolveMarket loads the OpenBook market backing the pool and derives the
// vault-signer PDA from the stored nonce.
func (r *Resolver) ResolveMarket(ctx context.Context, marketProgram, market solana.PublicKey) (*MarketKeys, error) {
	account, err := r.client.GetAccountInfo(ctx, market)
	if err != nil {
		return nil, &ResolutionError{Account: market.String(), Message: "failed to fetch market account", Err: err}
	}
	if account == nil || account.Value == nil {
		return nil, &ResolutionError{Account: market.String(), Message: "market account not found"}
	}

	var state marketStateLayout
	if err := state.unpack(account.Value.Data.GetBinary()); err != nil {
		return nil, &ResolutionError{Account: market.String(), Message: "malformed market account", Err: err}
	}

	signer, err := vaultSignerAddress(market, state.VaultSignerNonce, marketProgram)
	if err != nil {
		return nil, &ResolutionError{Account: market.String(), Message: "failed to derive vault signer", Err: err}
	}

	keys := &MarketKeys{
		Market:      market,
		EventQueue:  state.EventQueue,
		Bids:        state.Bids,
		Asks:        state.Asks,
		CoinVault:   state.CoinVault,
		PcVault:     state.PcVault,
		VaultSigner: signer,
		CoinMint:    state.CoinMint,
		PcMint:      state.PcMint,
	}

	r.logger.Debug("resolved market keys",
		zap.String("market", market.String()),
		zap.String("event_queue", keys.EventQueue.String()))

	return keys, nil
}
