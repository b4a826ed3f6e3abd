package backend

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcjson"
	rpc "github.com/btcsuite/btcd/rpcclient"

	"github.com/K0LbAzzeR/dapi/internal/gatewayerr"
	tmbytes "github.com/K0LbAzzeR/dapi/libs/bytes"
	"github.com/K0LbAzzeR/dapi/types"
)

// ChainStatus is the subset of getblockchaininfo the gateway serves.
type ChainStatus struct {
	Chain         string
	Blocks        int64
	BestBlockHash string
	Difficulty    float64
}

// AddressBalance is the confirmed balance and total received for a set of
// addresses, in duffs.
type AddressBalance struct {
	Balance  int64 `json:"balance"`
	Received int64 `json:"received"`
}

// Block is a raw block together with its chain position.
type Block struct {
	Raw           []byte
	Hash          string
	Height        int64
	Confirmations int64
}

// Transaction is a raw transaction together with its confirmation state.
type Transaction struct {
	Raw           []byte
	Height        *int64
	Confirmations *int64
	InstantLocked *bool
}

// CoreClient is the chain query and broadcast API the command handlers
// consume. Implementations translate their transport's structured failures
// into gatewayerr.UpstreamError so the error translator can map them.
type CoreClient interface {
	Ping(ctx context.Context) error
	GetStatus(ctx context.Context) (*ChainStatus, error)
	GetBestBlockHash(ctx context.Context) (string, error)
	GetBlockHash(ctx context.Context, height int64) (string, error)
	GetBlock(ctx context.Context, hash string) (*Block, error)
	GetAddressBalance(ctx context.Context, addresses []string) (*AddressBalance, error)
	GetAddressSummary(ctx context.Context, addresses []string) (map[string]interface{}, error)
	GetAddressUTXOs(ctx context.Context, addresses []string) ([]interface{}, error)
	GetTransaction(ctx context.Context, txid string) (*Transaction, error)
	SendRawTransaction(ctx context.Context, rawTx []byte, allowHighFees bool) (string, error)
	MasternodeListDiff(ctx context.Context, baseBlockHash, blockHash string) (map[string]interface{}, error)

	// ValidatorSet implements quorum.ValidatorRegistry over the node's
	// deterministic masternode list.
	ValidatorSet(ctx context.Context, height int64) ([]*types.Validator, error)

	Close() error
}

// coreClient talks to the core full node over its JSON-RPC interface using
// HTTP POST mode, the only mode the node supports.
type coreClient struct {
	endpoint *rpc.Client
}

// NewCoreClient connects to the node's RPC server.
func NewCoreClient(host, user, pass string) (CoreClient, error) {
	connCfg := &rpc.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         pass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	// The notification parameter is nil since notifications are not
	// supported in HTTP POST mode; the event feed covers that need.
	client, err := rpc.New(connCfg, nil)
	if err != nil {
		return nil, err
	}
	return &coreClient{endpoint: client}, nil
}

func (c *coreClient) Close() error {
	c.endpoint.Shutdown()
	return nil
}

// upstreamError converts the node's structured RPC failures into the
// gateway's upstream error form, keeping code, message and any payload.
func upstreamError(err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		return &gatewayerr.UpstreamError{
			Code:    int(rpcErr.Code),
			Message: rpcErr.Message,
		}
	}
	return err
}

// call performs a raw request and decodes the result into out.
func (c *coreClient) call(method string, out interface{}, params ...interface{}) error {
	raw := make([]json.RawMessage, len(params))
	for i, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshaling %s params: %w", method, err)
		}
		raw[i] = b
	}
	result, err := c.endpoint.RawRequest(method, raw)
	if err != nil {
		return upstreamError(err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("decoding %s result: %w", method, err)
	}
	return nil
}

func (c *coreClient) Ping(ctx context.Context) error {
	return upstreamError(c.endpoint.Ping())
}

func (c *coreClient) GetStatus(ctx context.Context) (*ChainStatus, error) {
	var info struct {
		Chain         string  `json:"chain"`
		Blocks        int64   `json:"blocks"`
		BestBlockHash string  `json:"bestblockhash"`
		Difficulty    float64 `json:"difficulty"`
	}
	if err := c.call("getblockchaininfo", &info); err != nil {
		return nil, err
	}
	return &ChainStatus{
		Chain:         info.Chain,
		Blocks:        info.Blocks,
		BestBlockHash: info.BestBlockHash,
		Difficulty:    info.Difficulty,
	}, nil
}

func (c *coreClient) GetBestBlockHash(ctx context.Context) (string, error) {
	var hash string
	if err := c.call("getbestblockhash", &hash); err != nil {
		return "", err
	}
	return hash, nil
}

func (c *coreClient) GetBlockHash(ctx context.Context, height int64) (string, error) {
	var hash string
	if err := c.call("getblockhash", &hash, height); err != nil {
		return "", err
	}
	return hash, nil
}

func (c *coreClient) GetBlock(ctx context.Context, hash string) (*Block, error) {
	var header struct {
		Height        int64 `json:"height"`
		Confirmations int64 `json:"confirmations"`
	}
	if err := c.call("getblockheader", &header, hash); err != nil {
		return nil, err
	}

	var rawHex string
	if err := c.call("getblock", &rawHex, hash, 0); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("decoding block %s: %w", hash, err)
	}

	return &Block{
		Raw:           raw,
		Hash:          hash,
		Height:        header.Height,
		Confirmations: header.Confirmations,
	}, nil
}

func (c *coreClient) GetAddressBalance(ctx context.Context, addresses []string) (*AddressBalance, error) {
	var balance AddressBalance
	arg := map[string][]string{"addresses": addresses}
	if err := c.call("getaddressbalance", &balance, arg); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *coreClient) GetAddressSummary(ctx context.Context, addresses []string) (map[string]interface{}, error) {
	var summary map[string]interface{}
	arg := map[string][]string{"addresses": addresses}
	if err := c.call("getaddresssummary", &summary, arg); err != nil {
		return nil, err
	}
	return summary, nil
}

func (c *coreClient) GetAddressUTXOs(ctx context.Context, addresses []string) ([]interface{}, error) {
	var utxos []interface{}
	arg := map[string][]string{"addresses": addresses}
	if err := c.call("getaddressutxos", &utxos, arg); err != nil {
		return nil, err
	}
	return utxos, nil
}

func (c *coreClient) GetTransaction(ctx context.Context, txid string) (*Transaction, error) {
	var tx struct {
		Hex           string `json:"hex"`
		Height        *int64 `json:"height"`
		Confirmations *int64 `json:"confirmations"`
		InstantLock   *bool  `json:"instantlock"`
	}
	if err := c.call("getrawtransaction", &tx, txid, true); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(tx.Hex)
	if err != nil {
		return nil, fmt.Errorf("decoding transaction %s: %w", txid, err)
	}
	return &Transaction{
		Raw:           raw,
		Height:        tx.Height,
		Confirmations: tx.Confirmations,
		InstantLocked: tx.InstantLock,
	}, nil
}

func (c *coreClient) SendRawTransaction(ctx context.Context, rawTx []byte, allowHighFees bool) (string, error) {
	var txid string
	if err := c.call("sendrawtransaction", &txid, hex.EncodeToString(rawTx), allowHighFees); err != nil {
		return "", err
	}
	return txid, nil
}

func (c *coreClient) MasternodeListDiff(ctx context.Context, baseBlockHash, blockHash string) (map[string]interface{}, error) {
	var diff map[string]interface{}
	if err := c.call("protx", &diff, "diff", baseBlockHash, blockHash); err != nil {
		return nil, err
	}
	return diff, nil
}

func (c *coreClient) ValidatorSet(ctx context.Context, height int64) ([]*types.Validator, error) {
	var entries []struct {
		ProTxHash string `json:"proTxHash"`
		State     struct {
			Service string `json:"service"`
		} `json:"state"`
	}
	if err := c.call("protx", &entries, "list", "valid", 1, height); err != nil {
		return nil, err
	}

	validators := make([]*types.Validator, 0, len(entries))
	for _, e := range entries {
		proTxHash, err := hex.DecodeString(e.ProTxHash)
		if err != nil {
			return nil, fmt.Errorf("decoding proTxHash %q: %w", e.ProTxHash, err)
		}
		validators = append(validators, &types.Validator{
			ProTxHash: tmbytes.HexBytes(proTxHash),
			Address:   e.State.Service,
		})
	}
	// Canonical order, independent of the node's listing order.
	sort.Sort(types.ValidatorsByProTxHash(validators))
	return validators, nil
}
