package node

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"qrdxscope/internal/model"
)

// MaxBlocksPerPage is the node's hard cap for get_blocks.
const MaxBlocksPerPage = 512

// Config holds node client settings.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Logger       *zap.Logger
}

// Client talks to the node's HTTP API. All methods take a context and
// return normalized records; transport failures are retried with
// exponential backoff.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewClient builds a node API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("node url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		logger:       logger,
	}, nil
}

// Status returns the node's chain status.
func (c *Client) Status(ctx context.Context) (model.Status, error) {
	var status model.Status
	err := c.getJSON(ctx, "/get_status", nil, &status)
	return status, err
}

// Block returns a block by number or hash.
func (c *Client) Block(ctx context.Context, block string, fullTransactions bool) (model.Block, error) {
	params := url.Values{}
	params.Set("block", block)
	params.Set("full_transactions", strconv.FormatBool(fullTransactions))

	var result model.Block
	err := c.getJSON(ctx, "/get_block", params, &result)
	return result, err
}

// Blocks returns a paginated block list. The limit is capped at the
// node's maximum page size.
func (c *Client) Blocks(ctx context.Context, offset, limit int) ([]model.Block, error) {
	if limit > MaxBlocksPerPage {
		limit = MaxBlocksPerPage
	}
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))

	var blocks []model.Block
	err := c.getJSON(ctx, "/get_blocks", params, &blocks)
	return blocks, err
}

// Transaction returns a transaction by hash.
func (c *Client) Transaction(ctx context.Context, hash string, verify bool) (model.Transaction, error) {
	params := url.Values{}
	params.Set("tx_hash", hash)
	params.Set("verify", strconv.FormatBool(verify))

	var tx model.Transaction
	if err := c.getJSON(ctx, "/get_transaction", params, &tx); err != nil {
		return model.Transaction{}, err
	}
	tx.Normalize()
	return tx, nil
}

// AddressInfoOptions control address pagination and verification.
type AddressInfoOptions struct {
	TxLimit     int
	Page        int
	ShowPending bool
	Verify      bool
}

// AddressInfo returns balance and transaction history for an address.
func (c *Client) AddressInfo(ctx context.Context, address string, opts AddressInfoOptions) (model.AddressInfo, error) {
	if opts.TxLimit <= 0 {
		opts.TxLimit = 50
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("transactions_count_limit", strconv.Itoa(opts.TxLimit))
	params.Set("page", strconv.Itoa(opts.Page))
	params.Set("show_pending", strconv.FormatBool(opts.ShowPending))
	params.Set("verify", strconv.FormatBool(opts.Verify))

	var info model.AddressInfo
	if err := c.getJSON(ctx, "/get_address_info", params, &info); err != nil {
		return model.AddressInfo{}, err
	}
	info.Normalize()
	return info, nil
}

// AddressTokens returns the tokens held by an address, optionally
// filtered by token type.
func (c *Client) AddressTokens(ctx context.Context, address, tokenType string) (model.AddressTokens, error) {
	params := url.Values{}
	params.Set("address", address)
	if tokenType != "" {
		params.Set("token_type", tokenType)
	}

	var tokens model.AddressTokens
	err := c.getJSON(ctx, "/get_address_tokens", params, &tokens)
	return tokens, err
}

// TokenInfo returns token metadata for a contract address.
func (c *Client) TokenInfo(ctx context.Context, tokenAddress string) (model.TokenInfo, error) {
	params := url.Values{}
	params.Set("token_address", tokenAddress)

	var info model.TokenInfo
	err := c.getJSON(ctx, "/get_token_info", params, &info)
	return info, err
}

// TopAddresses returns the richest or busiest addresses.
func (c *Client) TopAddresses(ctx context.Context, limit int, orderBy string) (model.TopAddresses, error) {
	if limit <= 0 {
		limit = 100
	}
	if orderBy == "" {
		orderBy = "balance"
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("order_by", orderBy)

	var top model.TopAddresses
	err := c.getJSON(ctx, "/get_top_addresses", params, &top)
	return top, err
}

// PendingTransactions returns the mempool contents.
func (c *Client) PendingTransactions(ctx context.Context) (model.PendingTransactions, error) {
	var pending model.PendingTransactions
	if err := c.getJSON(ctx, "/get_pending_transactions", nil, &pending); err != nil {
		return model.PendingTransactions{}, err
	}
	for i := range pending.Transactions {
		pending.Transactions[i].Normalize()
	}
	return pending, nil
}

// SubmitTransaction posts a signed transaction to the network.
func (c *Client) SubmitTransaction(ctx context.Context, tx interface{}) (model.SubmitResult, error) {
	var result model.SubmitResult
	err := c.postJSON(ctx, "/submit_tx", tx, &result)
	return result, err
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	return withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		if err := c.do(req, dest); err != nil {
			c.logger.Warn("node request failed", zap.String("path", path), zap.Error(err))
			return err
		}
		return nil
	})
}

func (c *Client) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	return withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if err := c.do(req, dest); err != nil {
			c.logger.Warn("node request failed", zap.String("path", path), zap.Error(err))
			return err
		}
		return nil
	})
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("node returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
