package rpc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Endpoints lists the JSON-RPC URL of every supported chain.
type Endpoints struct {
	Ethereum string
	Base     string
	Optimism string
	Arbitrum string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Ethereum: "https://eth.llamarpc.com",
		Base:     "https://mainnet.base.org",
		Optimism: "https://mainnet.optimism.io",
		Arbitrum: "https://arb1.arbitrum.io/rpc",
	}
}

// TransactionCounter answers eth_getTransactionCount for one chain.
type TransactionCounter struct {
	chain  string
	client *ethclient.Client
}

// Dial prepares a counter for endpoint. HTTP endpoints are not contacted until
// the first call.
func Dial(ctx context.Context, chain, endpoint string, httpClient *http.Client) (*TransactionCounter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%s rpc endpoint is empty", chain)
	}
	opts := []gethrpc.ClientOption{}
	if httpClient != nil {
		opts = append(opts, gethrpc.WithHTTPClient(httpClient))
	}
	rc, err := gethrpc.DialOptions(ctx, endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial %s rpc: %w", chain, err)
	}
	return &TransactionCounter{
		chain:  chain,
		client: ethclient.NewClient(rc),
	}, nil
}

func (c *TransactionCounter) TransactionCount(ctx context.Context, address string) (uint64, error) {
	nonce, err := c.client.NonceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, fmt.Errorf("%s eth_getTransactionCount: %w", c.chain, err)
	}
	return nonce, nil
}

func (c *TransactionCounter) Close() error {
	c.client.Close()
	return nil
}
