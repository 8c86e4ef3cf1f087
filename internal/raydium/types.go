// internal/raydium/types.go
// Package raydium implements single swaps against Raydium V4 AMM pools.
package raydium

import (
	"github.com/gagliardetto/solana-go"
)

// Program IDs and well-known accounts.
var (
	RaydiumV4ProgramID = solana.MPK("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	OpenBookProgramID  = solana.MPK("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
)

// Account sizes and layout constants.
const (
	AmmAccountSize    = 752
	MarketAccountSize = 388
	TokenAccountSize  = 165
)

// AMM authority PDA seed.
var ammAuthoritySeed = []byte("amm authority")

// Instruction codes of the Raydium V4 AMM program.
const (
	instructionSwapBaseIn   uint8 = 9
	instructionSwapBaseOut  uint8 = 11
	instructionSimulateInfo uint8 = 12
)

// PoolKeys identifies an AMM pool and everything the swap instruction
// references on the pool side. Resolved once per swap, immutable after.
type PoolKeys struct {
	AmmProgram    solana.PublicKey
	AmmPool       solana.PublicKey
	AmmAuthority  solana.PublicKey
	AmmOpenOrders solana.PublicKey
	AmmTarget     solana.PublicKey
	AmmCoinVault  solana.PublicKey
	AmmPcVault    solana.PublicKey
	AmmLpMint     solana.PublicKey
	AmmCoinMint   solana.PublicKey
	AmmPcMint     solana.PublicKey
	MarketProgram solana.PublicKey
	Market        solana.PublicKey

	// Fee parameters captured from the pool state at resolution time.
	SwapFeeNumerator   uint64
	SwapFeeDenominator uint64
}

// MarketKeys identifies the OpenBook market accounts backing a pool.
type MarketKeys struct {
	Market           solana.PublicKey
	EventQueue       solana.PublicKey
	Bids             solana.PublicKey
	Asks             solana.PublicKey
	CoinVault        solana.PublicKey
	PcVault          solana.PublicKey
	VaultSigner      solana.PublicKey
	CoinMint         solana.PublicKey
	PcMint           solana.PublicKey
}

// VaultAmounts is a point-in-time snapshot of both pool reserves plus the
// fee parameters in effect. Never cache it across calls.
type VaultAmounts struct {
	PoolCoinAmount     uint64
	PoolPcAmount       uint64
	SwapFeeNumerator   uint64
	SwapFeeDenominator uint64
}

// SwapDirection is derived by comparing the input mint with the pool's
// coin mint.
type SwapDirection uint8

const (
	// CoinToPc sells the pool's coin side for its pc side.
	CoinToPc SwapDirection = iota
	// PcToCoin sells the pool's pc side for its coin side.
	PcToCoin
)

func (d SwapDirection) String() string {
	if d == CoinToPc {
		return "coin2pc"
	}
	return "pc2coin"
}

// SwapParams are the caller-supplied inputs for one swap.
type SwapParams struct {
	AmmPool    solana.PublicKey
	InputMint  solana.PublicKey
	OutputMint solana.PublicKey
	// Amount in the smallest indivisible unit. With SwapBaseIn it is the
	// exact input; otherwise the exact desired output.
	Amount      uint64
	SlippageBps uint64
	SwapBaseIn  bool

	// Compute budget tuning.
	PriorityFeeMicroLamports uint64
	ComputeUnits             uint32
}

// SwapResult reports the submitted transaction.
type SwapResult struct {
	Signature solana.Signature
	Threshold uint64
	Direction SwapDirection
	Cancelled bool
}
