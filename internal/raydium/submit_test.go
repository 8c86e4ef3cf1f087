// internal/raydium/submit_test.go
package raydium

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soltrade/rayswap/internal/blockchain"
)

func TestSubmit_Success(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	signer := solana.NewWallet().PrivateKey
	wantSig := solana.Signature{1, 2, 3}

	client := new(MockClient)
	client.On("GetLatestBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(wantSig, nil)

	submitter := NewTransactionSubmitter(client, zapNop())
	sig, err := submitter.Submit(ctx, []solana.Instruction{noopInstruction(1)}, signer.PublicKey(), signWith(signer))
	require.NoError(t, err)
	assert.Equal(t, wantSig, sig)

	client.AssertNotCalled(t, "SimulateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_BlockhashFails(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	client := new(MockClient)
	client.On("GetLatestBlockhash", mock.Anything).
		Return(solana.Hash{}, errors.New("rpc down"))

	signer := solana.NewWallet().PrivateKey
	submitter := NewTransactionSubmitter(client, zapNop())
	_, err := submitter.Submit(ctx, []solana.Instruction{noopInstruction(1)}, signer.PublicKey(), signWith(signer))

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Nil(t, subErr.Trace, "no trace before a transaction exists")
	client.AssertNotCalled(t, "SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SignFails(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	client := new(MockClient)
	client.On("GetLatestBlockhash", mock.Anything).Return(solana.Hash{9}, nil)

	submitter := NewTransactionSubmitter(client, zapNop())
	_, err := submitter.Submit(ctx, []solana.Instruction{noopInstruction(1)},
		solana.NewWallet().PublicKey(),
		func(tx *solana.Transaction) error { return errors.New("key unavailable") })

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	client.AssertNotCalled(t, "SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SendFailureProducesTrace(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	simErr := map[string]interface{}{
		"InstructionError": []interface{}{float64(2), "Custom"},
	}
	simLogs := []string{
		"Program log: processing",
		"Program log: Error: exceeded slippage",
	}

	client := new(MockClient)
	client.On("GetLatestBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(solana.Signature{}, errors.New("transaction simulation failed"))
	client.On("SimulateTransaction", mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts blockchain.SimulationOptions) bool { return opts.SigVerify })).
		Return(&blockchain.SimulationResult{
			Err:           simErr,
			Logs:          simLogs,
			UnitsConsumed: 40_000,
		}, nil)

	signer := solana.NewWallet().PrivateKey
	submitter := NewTransactionSubmitter(client, zapNop())
	_, err := submitter.Submit(ctx, []solana.Instruction{noopInstruction(1)}, signer.PublicKey(), signWith(signer))

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.NotNil(t, subErr.Trace)
	assert.Equal(t, simLogs, subErr.Trace.Logs)
	assert.Equal(t, uint64(40_000), subErr.Trace.UnitsConsumed)
	assert.Equal(t, 2, subErr.Trace.FailedInstruction)
	client.AssertExpectations(t)
}

func TestSubmit_TraceBestEffort(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	client := new(MockClient)
	client.On("GetLatestBlockhash", mock.Anything).Return(solana.Hash{9}, nil)
	client.On("SendTransactionWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return(solana.Signature{}, errors.New("rejected"))
	client.On("SimulateTransaction", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("simulation unavailable"))

	signer := solana.NewWallet().PrivateKey
	submitter := NewTransactionSubmitter(client, zapNop())
	_, err := submitter.Submit(ctx, []solana.Instruction{noopInstruction(1)}, signer.PublicKey(), signWith(signer))

	// The submission failure must still surface even when the diagnostic
	// simulation cannot run.
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	require.NotNil(t, subErr.Trace)
	assert.Equal(t, -1, subErr.Trace.FailedInstruction)
	assert.Empty(t, subErr.Trace.Logs)
}

func TestFailedInstructionIndex(t *testing.T) {
	assert.Equal(t, -1, failedInstructionIndex(nil))
	assert.Equal(t, -1, failedInstructionIndex("AccountNotFound"))
	assert.Equal(t, -1, failedInstructionIndex(map[string]interface{}{}))
	assert.Equal(t, -1, failedInstructionIndex(map[string]interface{}{
		"InstructionError": []interface{}{},
	}))
	assert.Equal(t, 3, failedInstructionIndex(map[string]interface{}{
		"InstructionError": []interface{}{float64(3), map[string]interface{}{"Custom": float64(30)}},
	}))
	assert.Equal(t, 1, failedInstructionIndex(map[string]interface{}{
		"InstructionError": []interface{}{1, "PrivilegeEscalation"},
	}))
}

func TestWaitForConfirmation(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	sig := solana.Signature{7}

	client := new(MockClient)
	client.On("GetSignatureStatuses", mock.Anything, []solana.Signature{sig}).
		Return(&rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{
				{ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
			},
		}, nil)

	submitter := NewTransactionSubmitter(client, zapNop())
	require.NoError(t, submitter.WaitForConfirmation(ctx, sig))
}

func TestWaitForConfirmation_OnChainFailure(t *testing.T) {
	ctx, cancel := MockedContext()
	defer cancel()

	sig := solana.Signature{7}

	client := new(MockClient)
	client.On("GetSignatureStatuses", mock.Anything, []solana.Signature{sig}).
		Return(&rpc.GetSignatureStatusesResult{
			Value: []*rpc.SignatureStatusesResult{
				{Err: map[string]interface{}{"InstructionError": []interface{}{float64(0), "Custom"}}},
			},
		}, nil)

	submitter := NewTransactionSubmitter(client, zapNop())
	require.Error(t, submitter.WaitForConfirmation(ctx, sig))
}
