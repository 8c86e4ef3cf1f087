// internal/raydium/instruction.go
package raydium

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
)

// buildComputeBudgetInstructions returns the unit-limit and unit-price pair
// that must lead every swap transaction.
func buildComputeBudgetInstructions(units uint32, microLamports uint64) []solana.Instruction {
	return []solana.Instruction{
		computebudget.NewSetComputeUnitLimitInstruction(units).Build(),
		computebudget.NewSetComputeUnitPriceInstruction(microLamports).Build(),
	}
}

// buildSimulateInfoInstruction builds the AMM simulate-info instruction.
// It is never submitted, only simulated; the program answers by logging the
// pool state as JSON.
func buildSimulateInfoInstruction(pool *PoolKeys, market *MarketKeys) solana.Instruction {
	metas := []*solana.AccountMeta{
		solana.Meta(pool.AmmPool),
		solana.Meta(pool.AmmAuthority),
		solana.Meta(pool.AmmOpenOrders),
		solana.Meta(pool.AmmCoinVault),
		solana.Meta(pool.AmmPcVault),
		solana.Meta(pool.AmmLpMint),
		solana.Meta(pool.Market),
		solana.Meta(market.EventQueue),
	}

	// [instruction code, simulate-info param]
	data := []byte{instructionSimulateInfo, 0}

	return solana.NewInstruction(pool.AmmProgram, metas, data)
}

// buildSwapInstruction builds the V4 swap instruction. With baseIn the
// amounts are (exact input, minimum output); otherwise (maximum input,
// exact output). The account order is fixed by the program.
func buildSwapInstruction(
	pool *PoolKeys,
	market *MarketKeys,
	userSource solana.PublicKey,
	userDestination solana.PublicKey,
	owner solana.PublicKey,
	amount uint64,
	threshold uint64,
	baseIn bool,
) solana.Instruction {
	metas := []*solana.AccountMeta{
		solana.Meta(solana.TokenProgramID),
		solana.Meta(pool.AmmPool).WRITE(),
		solana.Meta(pool.AmmAuthority),
		solana.Meta(pool.AmmOpenOrders).WRITE(),
		solana.Meta(pool.AmmTarget).WRITE(),
		solana.Meta(pool.AmmCoinVault).WRITE(),
		solana.Meta(pool.AmmPcVault).WRITE(),
		solana.Meta(pool.MarketProgram),
		solana.Meta(market.Market).WRITE(),
		solana.Meta(market.Bids).WRITE(),
		solana.Meta(market.Asks).WRITE(),
		solana.Meta(market.EventQueue).WRITE(),
		solana.Meta(market.CoinVault).WRITE(),
		solana.Meta(market.PcVault).WRITE(),
		solana.Meta(market.VaultSigner),
		solana.Meta(userSource).WRITE(),
		solana.Meta(userDestination).WRITE(),
		solana.Meta(owner).SIGNER().WRITE(),
	}

	data := make([]byte, 17)
	if baseIn {
		// [code, amount_in, minimum_amount_out]
		data[0] = instructionSwapBaseIn
		binary.LittleEndian.PutUint64(data[1:9], amount)
		binary.LittleEndian.PutUint64(data[9:17], threshold)
	} else {
		// [code, max_amount_in, amount_out]
		data[0] = instructionSwapBaseOut
		binary.LittleEndian.PutUint64(data[1:9], threshold)
		binary.LittleEndian.PutUint64(data[9:17], amount)
	}

	return solana.NewInstruction(pool.AmmProgram, metas, data)
}
