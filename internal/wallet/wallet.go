// internal/wallet/wallet.go
package wallet

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Wallet is a Solana keypair loaded from the wallets file.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// NewWallet creates a wallet from a base58-encoded private key.
func NewWallet(privateKeyBase58 string) (*Wallet, error) {
	privateKeyBytes, err := base58.Decode(privateKeyBase58)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	if len(privateKeyBytes) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(privateKeyBytes))
	}
	privateKey := solana.PrivateKey(privateKeyBytes)
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// LoadWallets loads wallets from a CSV file with columns [Name, PrivateKeyBase58].
func LoadWallets(path string) (map[string]*Wallet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or missing data")
	}

	wallets := make(map[string]*Wallet)
	for _, record := range records[1:] {
		if len(record) != 2 {
			continue
		}
		w, err := NewWallet(record[1])
		if err != nil {
			continue
		}
		wallets[record[0]] = w
	}
	return wallets, nil
}

// SignTransaction signs the transaction with the wallet's private key.
func (w *Wallet) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// String returns the wallet's public key.
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
