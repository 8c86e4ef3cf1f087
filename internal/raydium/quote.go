// internal/raydium/quote.go
package raydium

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

// QuoteCalculator samples pool reserves and computes the worst acceptable
// counter-amount for a trade under a slippage bound.
type QuoteCalculator struct {
	client blockchain.Client
	logger *zap.Logger
}

func NewQuoteCalculator(client blockchain.Client, logger *zap.Logger) *QuoteCalculator {
	return &QuoteCalculator{
		client: client,
		logger: logger.Named("quote"),
	}
}

const poolDataLogPrefix = "GetPoolData: "

// simulatedPoolData is the JSON payload the AMM program logs for its
// simulate-info instruction.
type simulatedPoolData struct {
	Status         uint64 `json:"status"`
	CoinDecimals   uint64 `json:"coin_decimals"`
	PcDecimals     uint64 `json:"pc_decimals"`
	LpDecimals     uint64 `json:"lp_decimals"`
	PoolPcAmount   uint64 `json:"pool_pc_amount"`
	PoolCoinAmount uint64 `json:"pool_coin_amount"`
	PnlPcAmount    uint64 `json:"pnl_pc_amount"`
	PnlCoinAmount  uint64 `json:"pnl_coin_amount"`
	PoolLpSupply   uint64 `json:"pool_lp_supply"`
	PoolOpenTime   uint64 `json:"pool_open_time"`
	AmmID          string `json:"amm_id"`
}

// SampleVaults reads the current vault reserves by running the AMM
// simulate-info instruction as the owner in a read-only simulation, then
// pairs the reported reserves with the fee parameters captured at
// resolution time. The result is a snapshot: it is stale the moment it
// returns.
func (q *QuoteCalculator) SampleVaults(ctx context.Context, pool *PoolKeys, market *MarketKeys, owner solana.PublicKey) (*VaultAmounts, error) {
	ix := buildSimulateInfoInstruction(pool, market)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		solana.Hash{},
		solana.TransactionPayer(owner),
	)
	if err != nil {
		return nil, &QuoteError{Message: "failed to build sampling transaction", Err: err}
	}

	sim, err := q.client.SimulateTransaction(ctx, tx, blockchain.SimulationOptions{
		ReplaceRecentBlockhash: true,
		Commitment:             rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, &QuoteError{Message: "vault sampling simulation failed", Err: err}
	}

	data, err := parsePoolDataLogs(sim.Logs)
	if err != nil {
		return nil, &QuoteError{Message: "vault sampling produced no pool data", Err: err}
	}

	amounts := &VaultAmounts{
		PoolCoinAmount:     data.PoolCoinAmount,
		PoolPcAmount:       data.PoolPcAmount,
		SwapFeeNumerator:   pool.SwapFeeNumerator,
		SwapFeeDenominator: pool.SwapFeeDenominator,
	}

	q.logger.Debug("sampled vault amounts",
		zap.Uint64("pool_coin_amount", amounts.PoolCoinAmount),
		zap.Uint64("pool_pc_amount", amounts.PoolPcAmount),
		zap.Uint64("fee_numerator", amounts.SwapFeeNumerator),
		zap.Uint64("fee_denominator", amounts.SwapFeeDenominator),
		zap.String("raw_price", rawPoolPrice(amounts).String()))

	return amounts, nil
}

// rawPoolPrice is the pc-per-coin spot price in raw units, for logging
// only. Decimal places of the mints are not applied.
func rawPoolPrice(vaults *VaultAmounts) decimal.Decimal {
	if vaults.PoolCoinAmount == 0 {
		return decimal.Zero
	}
	pc := decimal.NewFromUint64(vaults.PoolPcAmount)
	coin := decimal.NewFromUint64(vaults.PoolCoinAmount)
	return pc.DivRound(coin, 12)
}

func parsePoolDataLogs(logs []string) (*simulatedPoolData, error) {
	for _, line := range logs {
		idx := strings.Index(line, poolDataLogPrefix)
		if idx < 0 {
			continue
		}
		var data simulatedPoolData
		if err := json.Unmarshal([]byte(line[idx+len(poolDataLogPrefix):]), &data); err != nil {
			return nil, fmt.Errorf("malformed pool data log: %w", err)
		}
		return &data, nil
	}
	return nil, fmt.Errorf("no pool data log in %d simulation log lines", len(logs))
}

// DeriveDirection compares the requested mints against the pool's. Both
// mints must belong to the pool, on opposite sides.
func DeriveDirection(pool *PoolKeys, inputMint, outputMint solana.PublicKey) (SwapDirection, error) {
	switch {
	case inputMint.Equals(pool.AmmCoinMint) && outputMint.Equals(pool.AmmPcMint):
		return CoinToPc, nil
	case inputMint.Equals(pool.AmmPcMint) && outputMint.Equals(pool.AmmCoinMint):
		return PcToCoin, nil
	default:
		return CoinToPc, &QuoteError{Message: fmt.Sprintf(
			"mints %s -> %s do not match pool pair %s / %s",
			inputMint, outputMint, pool.AmmCoinMint, pool.AmmPcMint)}
	}
}

// SwapExactAmount applies the constant-product-with-fee formula. With
// baseIn it returns the output produced by an exact input; otherwise the
// input required for an exact output (fee charged on the input side,
// rounded against the trader).
func SwapExactAmount(vaults *VaultAmounts, direction SwapDirection, amount uint64, baseIn bool) (uint64, error) {
	if vaults.PoolCoinAmount == 0 || vaults.PoolPcAmount == 0 {
		return 0, &QuoteError{Message: "pool has no liquidity on at least one side"}
	}
	if vaults.SwapFeeDenominator == 0 {
		return 0, &QuoteError{Message: "missing fee parameters"}
	}
	if vaults.SwapFeeNumerator >= vaults.SwapFeeDenominator {
		return 0, &QuoteError{Message: "fee consumes the entire input"}
	}

	var inputReserve, outputReserve uint64
	if direction == CoinToPc {
		inputReserve, outputReserve = vaults.PoolCoinAmount, vaults.PoolPcAmount
	} else {
		inputReserve, outputReserve = vaults.PoolPcAmount, vaults.PoolCoinAmount
	}

	in := new(big.Int).SetUint64(inputReserve)
	out := new(big.Int).SetUint64(outputReserve)
	amt := new(big.Int).SetUint64(amount)
	feeNum := new(big.Int).SetUint64(vaults.SwapFeeNumerator)
	feeDen := new(big.Int).SetUint64(vaults.SwapFeeDenominator)
	keepNum := new(big.Int).Sub(feeDen, feeNum)

	if baseIn {
		// amount is the exact input; fee is deducted from it first.
		inWithFee := new(big.Int).Mul(amt, keepNum)
		inWithFee.Div(inWithFee, feeDen)

		numerator := new(big.Int).Mul(out, inWithFee)
		denominator := new(big.Int).Add(in, inWithFee)
		result := numerator.Div(numerator, denominator)
		return result.Uint64(), nil
	}

	// amount is the exact output; it must leave the vault non-empty.
	if amount >= outputReserve {
		return 0, &QuoteError{Message: fmt.Sprintf(
			"requested output %d exceeds vault reserve %d", amount, outputReserve)}
	}

	// in_pre_fee = ceil(inputReserve * amount / (outputReserve - amount))
	numerator := new(big.Int).Mul(in, amt)
	denominator := new(big.Int).Sub(out, amt)
	preFee := ceilDiv(numerator, denominator)

	// gross it up so the post-fee input still covers preFee
	grossNum := new(big.Int).Mul(preFee, feeDen)
	required := ceilDiv(grossNum, keepNum)
	return required.Uint64(), nil
}

func ceilDiv(num, den *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// WithSlippage widens the counter-amount bound in the direction
// unfavorable to the trader: a floor on the output when selling an exact
// input, a cap on the input when buying an exact output.
func WithSlippage(counterAmount, slippageBps uint64, baseIn bool) uint64 {
	amt := new(big.Int).SetUint64(counterAmount)
	if baseIn {
		factor := new(big.Int).SetUint64(10000 - slippageBps)
		amt.Mul(amt, factor)
		amt.Div(amt, big.NewInt(10000))
		return amt.Uint64()
	}
	factor := new(big.Int).SetUint64(10000 + slippageBps)
	amt.Mul(amt, factor)
	amt.Div(amt, big.NewInt(10000))
	return amt.Uint64()
}

// Quote computes the slippage-protected counter-amount threshold for the
// requested trade.
func (q *QuoteCalculator) Quote(
	ctx context.Context,
	pool *PoolKeys,
	market *MarketKeys,
	owner solana.PublicKey,
	inputMint, outputMint solana.PublicKey,
	amount uint64,
	slippageBps uint64,
	baseIn bool,
) (uint64, SwapDirection, error) {
	if slippageBps > 10000 {
		return 0, CoinToPc, &QuoteError{Message: fmt.Sprintf("slippage %d bps out of range [0, 10000]", slippageBps)}
	}

	direction, err := DeriveDirection(pool, inputMint, outputMint)
	if err != nil {
		return 0, direction, err
	}

	vaults, err := q.SampleVaults(ctx, pool, market, owner)
	if err != nil {
		return 0, direction, err
	}

	counter, err := SwapExactAmount(vaults, direction, amount, baseIn)
	if err != nil {
		return 0, direction, err
	}
	threshold := WithSlippage(counter, slippageBps, baseIn)

	q.logger.Debug("computed quote",
		zap.String("direction", direction.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("counter_amount", counter),
		zap.Uint64("threshold", threshold),
		zap.Uint64("slippage_bps", slippageBps))

	return threshold, direction, nil
}
