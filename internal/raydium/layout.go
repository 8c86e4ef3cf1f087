// internal/raydium/layout.go
package raydium

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ammFees mirrors the fee block of the V4 AMM state.
type ammFees struct {
	MinSeparateNumerator   uint64
	MinSeparateDenominator uint64
	TradeFeeNumerator      uint64
	TradeFeeDenominator    uint64
	PnlNumerator           uint64
	PnlDenominator         uint64
	SwapFeeNumerator       uint64
	SwapFeeDenominator     uint64
}

// ammStateLayout is the 752-byte Raydium V4 pool account, little-endian.
type ammStateLayout struct {
	Status             uint64
	Nonce              uint64
	MaxOrder           uint64
	Depth              uint64
	CoinDecimals       uint64
	PcDecimals         uint64
	State              uint64
	ResetFlag          uint64
	MinSize            uint64
	VolMaxCutRatio     uint64
	AmountWaveRatio    uint64
	CoinLotSize        uint64
	PcLotSize          uint64
	MinPriceMultiplier uint64
	MaxPriceMultiplier uint64
	SystemDecimalValue uint64

	Fees ammFees

	NeedTakePnlCoin     uint64
	NeedTakePnlPc       uint64
	TotalPnlPc          uint64
	TotalPnlCoin        uint64
	PoolOpenTime        uint64
	PunishPcAmount      uint64
	PunishCoinAmount    uint64
	OrderbookToInitTime uint64

	SwapCoinInAmount  [2]uint64 // u128
	SwapPcOutAmount   [2]uint64 // u128
	SwapCoin2PcFee    uint64
	SwapPcInAmount    [2]uint64 // u128
	SwapCoinOutAmount [2]uint64 // u128
	SwapPc2CoinFee    uint64

	CoinVault     solana.PublicKey
	PcVault       solana.PublicKey
	CoinMint      solana.PublicKey
	PcMint        solana.PublicKey
	LpMint        solana.PublicKey
	OpenOrders    solana.PublicKey
	Market        solana.PublicKey
	MarketProgram solana.PublicKey
	TargetOrders  solana.PublicKey
	WithdrawQueue solana.PublicKey
	TempLpVault   solana.PublicKey
	AmmOwner      solana.PublicKey
	LpReserve     uint64
	Padding       [3]uint64
}

func (s *ammStateLayout) unpack(data []byte) error {
	if len(data) < AmmAccountSize {
		return fmt.Errorf("amm account too short: %d bytes, want %d", len(data), AmmAccountSize)
	}
	return binary.Read(bytes.NewReader(data), binary.LittleEndian, s)
}

// Pool status values of the V4 AMM program.
const (
	poolStatusUninitialized uint64 = 0
	poolStatusDisabled      uint64 = 4
)

// marketStateLayout is the 388-byte OpenBook (Serum V3) market account.
// The account is framed by a 5-byte "serum" prefix and 7 trailing padding
// bytes which unpack strips before decoding.
type marketStateLayout struct {
	AccountFlags     uint64
	OwnAddress       solana.PublicKey
	VaultSignerNonce uint64
	CoinMint         solana.PublicKey
	PcMint           solana.PublicKey

	CoinVault         solana.PublicKey
	CoinDepositsTotal uint64
	CoinFeesAccrued   uint64

	PcVault          solana.PublicKey
	PcDepositsTotal  uint64
	PcFeesAccrued    uint64
	PcDustThreshold  uint64

	RequestQueue solana.PublicKey
	EventQueue   solana.PublicKey
	Bids         solana.PublicKey
	Asks         solana.PublicKey

	CoinLotSize            uint64
	PcLotSize              uint64
	FeeRateBps             uint64
	ReferrerRebatesAccrued uint64
}

var serumPrefix = []byte("serum")

func (m *marketStateLayout) unpack(data []byte) error {
	if len(data) < MarketAccountSize {
		return fmt.Errorf("market account too short: %d bytes, want %d", len(data), MarketAccountSize)
	}
	if !bytes.HasPrefix(data, serumPrefix) {
		return fmt.Errorf("market account missing serum prefix")
	}
	body := data[len(serumPrefix) : MarketAccountSize-7]
	return binary.Read(bytes.NewReader(body), binary.LittleEndian, m)
}

// vaultSignerAddress derives the market's vault-owner PDA from the nonce
// stored in the market state.
func vaultSignerAddress(market solana.PublicKey, nonce uint64, marketProgram solana.PublicKey) (solana.PublicKey, error) {
	nonceBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonceBytes, nonce)
	return solana.CreateProgramAddress([][]byte{market[:], nonceBytes}, marketProgram)
}

// ammAuthorityAddress derives the pool authority PDA from the nonce stored
// in the pool state.
func ammAuthorityAddress(ammProgram solana.PublicKey, nonce uint64) (solana.PublicKey, error) {
	return solana.CreateProgramAddress([][]byte{ammAuthoritySeed, {byte(nonce)}}, ammProgram)
}
