package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"blockfrost_proxy/internal/app/port"
	"blockfrost_proxy/internal/domain/entity"
	"blockfrost_proxy/internal/pkg/utils"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultRequestTimeout = 20 * time.Second
	contentTypeCBOR       = "application/cbor"
	maxRedirects          = 5
)

// ErrTooManyRedirects is returned when the proxy keeps redirecting past maxRedirects.
var ErrTooManyRedirects = errors.New("too many redirects")

var _ port.BlockfrostAPI = (*BlockfrostClient)(nil)

// BlockfrostClient mirrors the Blockfrost API on top of the same-origin proxy
// endpoint ({endpoint}/{network}/...).
//
// A cancelled context is honoured before each request and between pages; a
// request already on the wire is bounded by its deadline only.
type BlockfrostClient struct {
	client   *fasthttp.Client
	endpoint string
	network  entity.Network
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a BlockfrostClient.
type Option func(*BlockfrostClient)

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(c *fasthttp.Client) Option {
	return func(bc *BlockfrostClient) { bc.client = c }
}

// WithTimeout sets the timeout used when the context has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(bc *BlockfrostClient) {
		if d > 0 {
			bc.timeout = d
		}
	}
}

// NewBlockfrostClient creates a client for the proxy endpoint and numeric network id.
// An unknown network id fails here, before any request is made.
func NewBlockfrostClient(endpoint string, networkID int, logger *zap.Logger, opts ...Option) (*BlockfrostClient, error) {
	network, err := entity.ShowNetwork(networkID)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &BlockfrostClient{
		client:   &fasthttp.Client{Name: "blockfrost-proxy-client"},
		endpoint: strings.TrimRight(endpoint, "/"),
		network:  network,
		timeout:  defaultRequestTimeout,
		logger:   logger.Named("BlockfrostClient").With(zap.String("network", network.String())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Network returns the network the client is bound to.
func (c *BlockfrostClient) Network() entity.Network {
	return c.network
}

type requestInit struct {
	method      string
	contentType string
	body        []byte
}

// do issues one request and decodes the JSON answer into out.
func (c *BlockfrostClient) do(ctx context.Context, path string, query utils.QueryParams, init *requestInit, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	suffix, err := utils.BuildQuery(query)
	if err != nil {
		return err
	}
	requestURL := c.endpoint + "/" + c.network.String() + path + suffix

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if init != nil {
		req.Header.SetMethod(init.method)
		if init.contentType != "" {
			req.Header.SetContentType(init.contentType)
		}
		req.SetBody(init.body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	c.logger.Debug("Requesting Blockfrost proxy", zap.String("url", requestURL), zap.ByteString("method", req.Header.Method()))

	requestURL, err = c.doFollowingRedirects(ctx, req, resp)
	if err != nil {
		return err
	}

	status := resp.StatusCode()
	rawBody := resp.Body()

	// Ответ после редиректов: 2xx и 3xx без Location разбираем как JSON.
	if status < fasthttp.StatusOK || status >= fasthttp.StatusBadRequest {
		c.logger.Debug("Blockfrost proxy request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", rawBody),
		)
		body := make([]byte, len(rawBody))
		copy(body, rawBody)
		return &entity.TransportError{
			Status:     status,
			StatusText: fasthttp.StatusMessage(status),
			URL:        requestURL,
			Body:       body,
		}
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		c.logger.Error("Failed to unmarshal Blockfrost proxy response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return &entity.ParseError{URL: requestURL, Err: err}
	}
	return nil
}

// doFollowingRedirects sends req and follows up to maxRedirects Location hops.
// All hops share one deadline: the context's, or now+timeout.
// 301/302 turn a POST into a body-less GET and 303 always does; 307/308 resend as is.
// It returns the URL of the final response.
func (c *BlockfrostClient) doFollowingRedirects(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) (string, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.timeout)
	}

	for hops := 0; ; hops++ {
		currentURL := req.URI().String()
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to Blockfrost proxy", zap.String("url", currentURL), zap.Error(err))
			return currentURL, fmt.Errorf("failed to execute request to %s: %w", currentURL, err)
		}

		status := resp.StatusCode()
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if !fasthttp.StatusCodeIsRedirect(status) || len(location) == 0 {
			return currentURL, nil
		}
		if hops == maxRedirects {
			return currentURL, fmt.Errorf("%w: stopped after %d hops at %s", ErrTooManyRedirects, maxRedirects, currentURL)
		}
		if err := ctx.Err(); err != nil {
			return currentURL, err
		}

		next := fasthttp.AcquireURI()
		req.URI().CopyTo(next)
		next.UpdateBytes(location)
		req.SetURI(next)
		fasthttp.ReleaseURI(next)

		method := string(req.Header.Method())
		if status == fasthttp.StatusSeeOther ||
			(method == fasthttp.MethodPost && (status == fasthttp.StatusMovedPermanently || status == fasthttp.StatusFound)) {
			req.Header.SetMethod(fasthttp.MethodGet)
			req.ResetBody()
			req.Header.Del(fasthttp.HeaderContentType)
		}

		c.logger.Debug("Following redirect", zap.Int("statusCode", status), zap.String("from", currentURL), zap.String("to", req.URI().String()))
		resp.Reset()
	}
}

func (c *BlockfrostClient) get(ctx context.Context, path string, query utils.QueryParams, out any) error {
	return c.do(ctx, path, query, nil, out)
}

func (c *BlockfrostClient) postCBOR(ctx context.Context, path string, tx entity.TxCBOR, out any) error {
	payload, err := tx.Hex()
	if err != nil {
		return err
	}
	return c.do(ctx, path, nil, &requestInit{
		method:      fasthttp.MethodPost,
		contentType: contentTypeCBOR,
		body:        []byte(payload),
	}, out)
}

// emptyOnNotFound turns a 404 into an empty result: Blockfrost answers 404 for
// addresses that hold no UTXOs.
func emptyOnNotFound[T any](items []T, err error) ([]T, error) {
	if err != nil {
		if entity.IsNotFound(err) {
			return []T{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// AddressesUtxos implements port.BlockfrostAPI.
func (c *BlockfrostClient) AddressesUtxos(ctx context.Context, address string, pagination *entity.Pagination) ([]entity.AddressUTXO, error) {
	var out []entity.AddressUTXO
	err := c.get(ctx, "/addresses/"+address+"/utxos", pagination.Query(), &out)
	return emptyOnNotFound(out, err)
}

// AddressesUtxosAll implements port.BlockfrostAPI.
func (c *BlockfrostClient) AddressesUtxosAll(ctx context.Context, address string, opts *entity.AllPagesOptions) ([]entity.AddressUTXO, error) {
	return utils.CollectPages(ctx, func(ctx context.Context, p entity.Pagination) ([]entity.AddressUTXO, error) {
		return c.AddressesUtxos(ctx, address, &p)
	}, opts)
}

// AddressesUtxosAsset implements port.BlockfrostAPI.
func (c *BlockfrostClient) AddressesUtxosAsset(ctx context.Context, address, asset string, pagination *entity.Pagination) ([]entity.AddressUTXO, error) {
	var out []entity.AddressUTXO
	err := c.get(ctx, "/addresses/"+address+"/utxos/"+asset, pagination.Query(), &out)
	return emptyOnNotFound(out, err)
}

// AssetsHistory implements port.BlockfrostAPI.
func (c *BlockfrostClient) AssetsHistory(ctx context.Context, asset string, pagination *entity.Pagination) ([]entity.AssetHistory, error) {
	var out []entity.AssetHistory
	if err := c.get(ctx, "/assets/"+asset+"/history", pagination.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssetsHistoryAll implements port.BlockfrostAPI.
func (c *BlockfrostClient) AssetsHistoryAll(ctx context.Context, asset string, opts *entity.AllPagesOptions) ([]entity.AssetHistory, error) {
	return utils.CollectPages(ctx, func(ctx context.Context, p entity.Pagination) ([]entity.AssetHistory, error) {
		return c.AssetsHistory(ctx, asset, &p)
	}, opts)
}

// BlocksLatest implements port.BlockfrostAPI.
func (c *BlockfrostClient) BlocksLatest(ctx context.Context) (*entity.Block, error) {
	var out entity.Block
	if err := c.get(ctx, "/blocks/latest", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EpochsParameters implements port.BlockfrostAPI.
func (c *BlockfrostClient) EpochsParameters(ctx context.Context, epoch int) (*entity.EpochParameters, error) {
	return c.epochParameters(ctx, strconv.Itoa(epoch))
}

// EpochsLatestParameters implements port.BlockfrostAPI.
func (c *BlockfrostClient) EpochsLatestParameters(ctx context.Context) (*entity.EpochParameters, error) {
	return c.epochParameters(ctx, "latest")
}

func (c *BlockfrostClient) epochParameters(ctx context.Context, epoch string) (*entity.EpochParameters, error) {
	var out entity.EpochParameters
	if err := c.get(ctx, "/epochs/"+epoch+"/parameters", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScriptsDatum implements port.BlockfrostAPI.
func (c *BlockfrostClient) ScriptsDatum(ctx context.Context, datumHash string) (*entity.ScriptDatum, error) {
	var out entity.ScriptDatum
	if err := c.get(ctx, "/scripts/datum/"+datumHash, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Txs implements port.BlockfrostAPI.
func (c *BlockfrostClient) Txs(ctx context.Context, hash string) (*entity.Transaction, error) {
	var out entity.Transaction
	if err := c.get(ctx, "/txs/"+hash, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TxsMetadata implements port.BlockfrostAPI.
func (c *BlockfrostClient) TxsMetadata(ctx context.Context, hash string) ([]entity.TxMetadata, error) {
	var out []entity.TxMetadata
	if err := c.get(ctx, "/txs/"+hash+"/metadata", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TxSubmit implements port.BlockfrostAPI.
func (c *BlockfrostClient) TxSubmit(ctx context.Context, tx entity.TxCBOR) (string, error) {
	var hash string
	if err := c.postCBOR(ctx, "/tx/submit", tx, &hash); err != nil {
		return "", err
	}
	c.logger.Info("Transaction submitted", zap.String("txHash", hash))
	return hash, nil
}

// UtilsTxsEvaluate implements port.BlockfrostAPI.
func (c *BlockfrostClient) UtilsTxsEvaluate(ctx context.Context, tx entity.TxCBOR) (entity.EvaluationResult, error) {
	var out entity.EvaluationResult
	if err := c.postCBOR(ctx, "/utils/txs/evaluate", tx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
