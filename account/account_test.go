package account

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

const testKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

func TestPrivateKeyAccountDerivesAddress(t *testing.T) {
	t.Parallel()

	acct, err := NewPrivateKeyAccount(testKeyHex)
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	address, err := acct.Address()
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	key, _ := crypto.HexToECDSA(testKeyHex)
	if want := crypto.PubkeyToAddress(key.PublicKey); address != want {
		t.Fatalf("address mismatch: got %s want %s", address, want)
	}
}

func TestSignTextRecoversSigner(t *testing.T) {
	t.Parallel()

	acct, err := NewPrivateKeyAccount(testKeyHex)
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	message := []byte("prove-you-hold-the-key")
	sig, err := acct.SignText(context.Background(), message)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if len(sig) != crypto.SignatureLength {
		t.Fatalf("unexpected signature length %d", len(sig))
	}
	recoverable := make([]byte, len(sig))
	copy(recoverable, sig)
	recoverable[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash(message), recoverable)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	address, _ := acct.Address()
	if got := crypto.PubkeyToAddress(*pub); got != address {
		t.Fatalf("recovered %s, want %s", got, address)
	}
}

func TestTransactOptsCarryContext(t *testing.T) {
	t.Parallel()

	acct, err := NewPrivateKeyAccount(testKeyHex)
	if err != nil {
		t.Fatalf("new account: %v", err)
	}
	opts, err := acct.TransactOpts(context.Background(), big.NewInt(1))
	if err != nil {
		t.Fatalf("transact opts: %v", err)
	}
	address, _ := acct.Address()
	if opts.From != address {
		t.Fatalf("opts.From mismatch: %s", opts.From)
	}
	if opts.Signer == nil {
		t.Fatalf("signer must be configured")
	}
}

func TestUnconfiguredAccountFailsFast(t *testing.T) {
	t.Parallel()

	acct := Unconfigured()
	if _, err := acct.Address(); err != ErrNoAddress {
		t.Fatalf("expected ErrNoAddress, got %v", err)
	}
	if _, err := acct.SignText(context.Background(), []byte("x")); err != ErrNoSigner {
		t.Fatalf("expected ErrNoSigner, got %v", err)
	}
	if _, err := acct.TransactOpts(context.Background(), big.NewInt(1)); err != ErrNoSigner {
		t.Fatalf("expected ErrNoSigner, got %v", err)
	}
	if _, err := NewPrivateKeyAccount("not-a-key"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}
