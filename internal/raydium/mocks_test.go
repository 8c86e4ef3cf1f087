// internal/raydium/mocks_test.go
package raydium

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/soltrade/rayswap/internal/blockchain"
)

func zapNop() *zap.Logger { return zap.NewNop() }

// signWith returns a SignFunc backed by the given key.
func signWith(key solana.PrivateKey) SignFunc {
	return func(tx *solana.Transaction) error {
		_, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
			if pub.Equals(key.PublicKey()) {
				return &key
			}
			return nil
		})
		return err
	}
}

const defaultTestTimeout = 5 * time.Second

// MockClient implements blockchain.Client for tests.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockClient) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	args := m.Called(ctx, pubkey)
	if res := args.Get(0); res != nil {
		return res.(*rpc.GetAccountInfoResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	args := m.Called(ctx, dataSize)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	args := m.Called(ctx, tx, opts)
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockClient) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts blockchain.SimulationOptions) (*blockchain.SimulationResult, error) {
	args := m.Called(ctx, tx, opts)
	if res := args.Get(0); res != nil {
		return res.(*blockchain.SimulationResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClient) GetSignatureStatuses(ctx context.Context, signatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	args := m.Called(ctx, signatures)
	if res := args.Get(0); res != nil {
		return res.(*rpc.GetSignatureStatusesResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockedContext creates a context with the default test timeout.
func MockedContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTestTimeout)
}

// accountResult wraps raw account data the way the RPC layer returns it.
func accountResult(owner solana.PublicKey, data []byte) *rpc.GetAccountInfoResult {
	return &rpc.GetAccountInfoResult{
		RPCContext: rpc.RPCContext{},
		Value: &rpc.Account{
			Owner: owner,
			Data:  rpc.DataBytesOrJSONFromBytes(data),
		},
	}
}
