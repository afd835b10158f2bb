package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/canopy-network/swap/errors"
	"github.com/canopy-network/swap/jsonx"
	"github.com/canopy-network/swap/logx"
	"github.com/canopy-network/swap/monitoring"
	"github.com/canopy-network/swap/types"
	"github.com/canopy-network/swap/utils"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyLog     = 512
)

// RPCClient submits transactions to a node's RPC endpoint as JSON
type RPCClient struct {
	cfg  Config
	http *http.Client
}

var _ Submitter = (*RPCClient)(nil)

func NewClient(cfg Config) (*RPCClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.NewError(errors.ErrCodeInvalidParameter, fmt.Sprintf(errors.ErrMsgEmptyField, "endpoint"))
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &RPCClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *RPCClient) Endpoint() string {
	return c.cfg.Endpoint
}

// Submit posts {"raw_transaction": tx} to <endpoint>/v1/tx. Any transport error or
// non-2xx answer is a NetworkSubmissionFailure.
func (c *RPCClient) Submit(ctx context.Context, tx *types.SignedTransaction) (res SubmitResult, err error) {
	defer func() {
		outcome := monitoring.SignOK
		if err != nil {
			outcome = monitoring.SignOutcome(errors.CodeOf(err))
		}
		monitoring.RecordSubmission(outcome)
	}()

	if tx == nil || tx.Signature == nil {
		return res, errors.NewError(errors.ErrCodeInvalidParameter, fmt.Sprintf(errors.ErrMsgEmptyField, "signature"))
	}
	body, err := jsonx.Marshal(tx.Payload())
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeEncodingMismatch, err, "could not marshal submission payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+submitPath, bytes.NewReader(body))
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeNetworkSubmissionFailure, err, errors.ErrMsgSubmissionUnreachable)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logx.Warn("RPC CLIENT", "submit to ", c.cfg.Endpoint, " failed: ", err)
		return res, errors.Wrap(errors.ErrCodeNetworkSubmissionFailure, err, errors.ErrMsgSubmissionUnreachable)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return res, errors.Wrap(errors.ErrCodeNetworkSubmissionFailure, err, errors.ErrMsgSubmissionUnreachable)
	}
	res.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > maxBodyLog {
			msg = msg[:maxBodyLog]
		}
		return res, errors.NewError(errors.ErrCodeNetworkSubmissionFailure,
			fmt.Sprintf(errors.ErrMsgSubmissionRejected, resp.StatusCode, msg))
	}

	res.TxHash = parseTxHash(respBody)
	logx.Info("RPC CLIENT", "submitted tx ", utils.ShortenLog(res.TxHash), " status ", resp.StatusCode)
	return res, nil
}

// parseTxHash accepts either a bare JSON string or an object with a hash field
func parseTxHash(body []byte) string {
	var hash string
	if err := jsonx.Unmarshal(body, &hash); err == nil {
		return hash
	}
	var obj struct {
		TxHash string `json:"txHash"`
		Hash   string `json:"hash"`
	}
	if err := jsonx.Unmarshal(body, &obj); err == nil {
		if obj.TxHash != "" {
			return obj.TxHash
		}
		return obj.Hash
	}
	return ""
}
