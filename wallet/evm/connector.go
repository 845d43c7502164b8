package evm

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Connector bridges to an Ethereum-style JSON-RPC provider. It covers what
// the SDK needs from that side of the house: balances, nonces, and contract
// deployment for the one-shot deploy commands.
type Connector struct {
	rpc     *ethclient.Client
	chainID *big.Int
}

// Dial connects to a provider and caches its chain id.
func Dial(ctx context.Context, rpcURL string) (*Connector, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("rpc url is required")
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial evm provider: %w", err)
	}
	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("query chain id: %w", err)
	}
	return &Connector{rpc: client, chainID: chainID}, nil
}

// ChainID returns the provider's chain id.
func (c *Connector) ChainID() *big.Int { return new(big.Int).Set(c.chainID) }

// Balance returns the current balance for an address.
func (c *Connector) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	bal, err := c.rpc.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("balance of %s: %w", addr.Hex(), err)
	}
	return bal, nil
}

// Nonce returns the next pending nonce for an address.
func (c *Connector) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	nonce, err := c.rpc.PendingNonceAt(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("pending nonce for %s: %w", addr.Hex(), err)
	}
	return nonce, nil
}

// SendSigned broadcasts an already-signed transaction.
func (c *Connector) SendSigned(ctx context.Context, tx *ethtypes.Transaction) error {
	if err := c.rpc.SendTransaction(ctx, tx); err != nil {
		return fmt.Errorf("send tx %s: %w", tx.Hash().Hex(), err)
	}
	return nil
}

// Deploy submits a contract-creation transaction and returns the address it
// will occupy once mined.
func (c *Connector) Deploy(ctx context.Context, key *ecdsa.PrivateKey, bytecode []byte, gasLimit uint64) (common.Address, *ethtypes.Transaction, error) {
	if len(bytecode) == 0 {
		return common.Address{}, nil, fmt.Errorf("contract bytecode is empty")
	}
	from := crypto.PubkeyToAddress(key.PublicKey)

	nonce, err := c.rpc.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("pending nonce: %w", err)
	}
	gasPrice, err := c.rpc.SuggestGasPrice(ctx)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("suggest gas price: %w", err)
	}

	tx := ethtypes.NewContractCreation(nonce, big.NewInt(0), gasLimit, gasPrice, bytecode)
	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(c.chainID), key)
	if err != nil {
		return common.Address{}, nil, fmt.Errorf("sign deploy tx: %w", err)
	}
	if err := c.rpc.SendTransaction(ctx, signed); err != nil {
		return common.Address{}, nil, fmt.Errorf("send deploy tx: %w", err)
	}

	return crypto.CreateAddress(from, nonce), signed, nil
}

// WaitMined blocks until the transaction is mined or ctx ends.
func (c *Connector) WaitMined(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.rpc, tx)
	if err != nil {
		return nil, fmt.Errorf("wait mined %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("deploy tx %s reverted", tx.Hash().Hex())
	}
	return receipt, nil
}

// Close releases the underlying RPC connection.
func (c *Connector) Close() {
	c.rpc.Close()
}
