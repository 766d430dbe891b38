// Package chain submits mint transactions to the RunereumNFT contract
// on the test network. The rest of the server only sees the Minter
// capability: a connected address and a way to submit one mint.
package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// MintReceipt is the outcome of a successful on-chain mint.
type MintReceipt struct {
	TokenID       string
	MintTxHash    string
	SetUrisTxHash string
	Contract      string
}

// Minter is the capability the mint pipeline depends on.
type Minter interface {
	// Address returns the signer's address, used as the token owner.
	Address() string
	// Mint mints a token for the recipient and sets its URIs.
	Mint(ctx context.Context, recipient, imageURI, attributesURI string) (*MintReceipt, error)
}

// Minimal ABI for the two calls the server makes plus the Transfer
// event the token id is read from.
const runereumNFTABI = `[
  {"inputs":[{"internalType":"address","name":"to","type":"address"}],"name":"mint","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"},{"internalType":"string","name":"imageUri","type":"string"},{"internalType":"string","name":"attributesUri","type":"string"}],"name":"setUris","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":true,"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"Transfer","type":"event"}
]`

var transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Config describes how to reach the contract.
type Config struct {
	RPCURL          string
	PrivateKey      string // hex, with or without 0x prefix
	ContractAddress string
}

// NFTMinter is the go-ethereum backed Minter.
type NFTMinter struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	key      *ecdsa.PrivateKey
	signer   common.Address
	addr     common.Address
	chainID  *big.Int
}

// NewNFTMinter dials the RPC endpoint and binds the contract.
func NewNFTMinter(ctx context.Context, cfg Config) (*NFTMinter, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC_URL not configured")
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	chainID, err := eth.ChainID(ctx)
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(runereumNFTABI))
	if err != nil {
		eth.Close()
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}

	addr := common.HexToAddress(cfg.ContractAddress)
	return &NFTMinter{
		eth:      eth,
		contract: bind.NewBoundContract(addr, parsed, eth, eth, eth),
		key:      key,
		signer:   crypto.PubkeyToAddress(key.PublicKey),
		addr:     addr,
		chainID:  chainID,
	}, nil
}

// Address returns the signing wallet's address.
func (m *NFTMinter) Address() string {
	return m.signer.Hex()
}

// Mint submits the mint transaction, waits for it, reads the token id
// from the Transfer event, then sets the token's URIs. One attempt per
// transaction; a failure at any point aborts with no cleanup of the
// already-mined mint.
func (m *NFTMinter) Mint(ctx context.Context, recipient, imageURI, attributesURI string) (*MintReceipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(m.key, m.chainID)
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	opts.Context = ctx

	mintTx, err := m.contract.Transact(opts, "mint", common.HexToAddress(recipient))
	if err != nil {
		return nil, fmt.Errorf("submit mint: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, m.eth, mintTx)
	if err != nil {
		return nil, fmt.Errorf("wait for mint: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("mint transaction %s reverted", mintTx.Hash().Hex())
	}

	tokenID, err := tokenIDFromReceipt(receipt)
	if err != nil {
		return nil, err
	}

	setTx, err := m.contract.Transact(opts, "setUris", tokenID, imageURI, attributesURI)
	if err != nil {
		return nil, fmt.Errorf("submit setUris: %w", err)
	}
	if _, err := bind.WaitMined(ctx, m.eth, setTx); err != nil {
		return nil, fmt.Errorf("wait for setUris: %w", err)
	}

	return &MintReceipt{
		TokenID:       tokenID.String(),
		MintTxHash:    mintTx.Hash().Hex(),
		SetUrisTxHash: setTx.Hash().Hex(),
		Contract:      m.addr.Hex(),
	}, nil
}

// Close releases the RPC connection.
func (m *NFTMinter) Close() {
	if m.eth != nil {
		m.eth.Close()
	}
}

func tokenIDFromReceipt(receipt *types.Receipt) (*big.Int, error) {
	for _, lg := range receipt.Logs {
		if len(lg.Topics) == 4 && lg.Topics[0] == transferTopic {
			return new(big.Int).SetBytes(lg.Topics[3].Bytes()), nil
		}
	}
	return nil, fmt.Errorf("no Transfer event in receipt")
}
