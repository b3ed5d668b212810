package praktikum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps how much of a response is read into memory.
const maxBodySize = 8 << 20

// Client fetches homework statuses from the review API.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	logger   logrus.FieldLogger
	maxBody  int64
}

func New(endpoint, token string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpc: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		maxBody: maxBodySize,
	}
}

type statusesResp struct {
	Homeworks   []homework.Record `json:"homeworks"`
	CurrentDate *int64            `json:"current_date"`
	Error       json.RawMessage   `json:"error"`
	Code        json.RawMessage   `json:"code"`
	Message     string            `json:"message"`
}

func (c *Client) FetchStatuses(ctx context.Context, fromDate int64) (homework.StatusResponse, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(fromDate, 10))

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return homework.StatusResponse{}, c.fail(homework.FetchTransport, params, errors.Wrap(err, "parse endpoint url"))
	}
	q := u.Query()
	for k, v := range params {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return homework.StatusResponse{}, c.fail(homework.FetchTransport, params, errors.Wrap(err, "new request"))
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debugf("Requesting: %s, %s", c.endpoint, params.Encode())
	resp, err := c.httpc.Do(req)
	if err != nil {
		return homework.StatusResponse{}, c.fail(homework.FetchTransport, params, errors.Wrap(err, "do request"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return homework.StatusResponse{}, c.fail(homework.FetchTransport, params, errors.Wrap(err, "read body"))
	}
	if int64(len(body)) > c.maxBody {
		return homework.StatusResponse{}, c.fail(homework.FetchDecode, params, errors.Errorf("response body exceeds %d bytes", c.maxBody))
	}

	ok := resp.StatusCode/100 == 2
	var r statusesResp
	if err := json.Unmarshal(body, &r); err != nil {
		if !ok {
			return homework.StatusResponse{}, c.reject(params, fmt.Sprintf("http %d", resp.StatusCode))
		}
		return homework.StatusResponse{}, c.fail(homework.FetchDecode, params, errors.Wrap(err, "decode"))
	}
	if detail := apiErrorDetail(r); detail != "" {
		return homework.StatusResponse{}, c.reject(params, detail)
	}
	if !ok {
		return homework.StatusResponse{}, c.reject(params, fmt.Sprintf("http %d", resp.StatusCode))
	}

	c.logger.Debug("JSON successfully decoded")
	return homework.StatusResponse{
		Homeworks:   r.Homeworks,
		CurrentDate: r.CurrentDate,
	}, nil
}

func (c *Client) fail(kind homework.FetchErrorKind, params url.Values, err error) error {
	return &homework.FetchError{Kind: kind, URL: c.endpoint, Params: params, Err: err}
}

func (c *Client) reject(params url.Values, detail string) error {
	return &homework.FetchError{Kind: homework.FetchAPIError, URL: c.endpoint, Params: params, Detail: detail}
}

// apiErrorDetail extracts the reason from {"error": {"error": "..."}} or
// {"code": "...", "message": "..."} bodies. Empty means no error was reported.
func apiErrorDetail(r statusesResp) string {
	if !emptyJSON(r.Error) {
		var obj map[string]any
		if json.Unmarshal(r.Error, &obj) == nil {
			if s, ok := obj["error"].(string); ok && s != "" {
				return s
			}
		}
		var s string
		if json.Unmarshal(r.Error, &s) == nil {
			return s
		}
		return string(r.Error)
	}
	if !emptyJSON(r.Code) {
		code := string(r.Code)
		var s string
		if json.Unmarshal(r.Code, &s) == nil {
			code = s
		}
		if r.Message != "" {
			return code + ": " + r.Message
		}
		return code
	}
	return ""
}

func emptyJSON(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", `""`, "{}", "[]", "false", "0":
		return true
	}
	return false
}
