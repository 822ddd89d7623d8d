package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

type (
	// HTTPDoer is the transport the mapper sends requests through.
	// *http.Client satisfies it.
	HTTPDoer interface {
		Do(req *http.Request) (*http.Response, error)
	}

	// HTTPError is returned for any response status that is neither 2xx nor
	// explicitly allowed by the call.
	HTTPError struct {
		Method     string
		URL        string
		StatusCode int
		Body       []byte
	}

	// requestCall is built fresh for every request and never shared.
	requestCall struct {
		method  string
		target  string
		query   url.Values
		payload map[string]any
		allowed []int
	}

	// requestPipeline holds the stages a call goes through: payload encoding,
	// request preparation and response checking.
	requestPipeline struct {
		parametersParser func(payload map[string]any) (io.Reader, string, error)
		requestPrepare   func(ctx context.Context, call requestCall, body io.Reader, contentType string) (*http.Request, error)
		postProcess      func(call requestCall, resp *http.Response) ([]byte, error)
	}
)

const authTokenType = "token"

func (e *HTTPError) Error() string {
	return fmt.Sprintf("asset server returned status %d for %s %s: %s",
		e.StatusCode, e.Method, e.URL, strings.TrimSpace(string(e.Body)))
}

func (m *AssetMapper) pipeline() requestPipeline {
	parser := prepareFormBody
	if m.protocol.Body == BodyJSON {
		parser = prepareJSONBody
	}
	return requestPipeline{
		parametersParser: parser,
		requestPrepare:   m.prepareRequest,
		postProcess:      checkResponse,
	}
}

// execute sends a single call and returns the status code and body of any
// successful or allowed response.
func (m *AssetMapper) execute(ctx context.Context, call requestCall) (int, []byte, error) {
	pipe := m.pipeline()

	var (
		body        io.Reader
		contentType string
		err         error
	)
	if call.payload != nil {
		body, contentType, err = pipe.parametersParser(call.payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s %s payload: %w", call.method, call.target, err)
		}
	}

	request, err := pipe.requestPrepare(ctx, call, body, contentType)
	if err != nil {
		return 0, nil, err
	}

	resp, err := m.client.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("send %s %s: %w", call.method, call.target, redactURL(err, call.target))
	}
	defer resp.Body.Close()

	m.logger.Printf("%s %s -> %d", call.method, call.target, resp.StatusCode)

	data, err := pipe.postProcess(call, resp)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

func (m *AssetMapper) prepareRequest(ctx context.Context, call requestCall, body io.Reader, contentType string) (*http.Request, error) {
	target, err := url.Parse(call.target)
	if err != nil {
		return nil, fmt.Errorf("parse asset url %q: %w", call.target, err)
	}

	query := target.Query()
	for key, values := range call.query {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	if m.authToken != "" && m.authMode == AuthQuery {
		query.Set("token", m.authToken)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, call.method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", call.method, err)
	}
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if m.authToken != "" && m.authMode == AuthHeader {
		token := &oauth2.Token{AccessToken: m.authToken, TokenType: authTokenType}
		token.SetAuthHeader(request)
	}
	return request, nil
}

// redactURL replaces the request URL in a transport error with target,
// which never carries the query token.
func redactURL(err error, target string) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{Op: urlErr.Op, URL: target, Err: urlErr.Err}
}

func checkResponse(call requestCall, resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", call.method, call.target, err)
	}
	if isSuccess(resp.StatusCode) || slices.Contains(call.allowed, resp.StatusCode) {
		return data, nil
	}
	return nil, &HTTPError{
		Method:     call.method,
		URL:        call.target,
		StatusCode: resp.StatusCode,
		Body:       data,
	}
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func prepareJSONBody(payload map[string]any) (io.Reader, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func prepareFormBody(payload map[string]any) (io.Reader, string, error) {
	form := url.Values{}
	for key, value := range payload {
		switch v := value.(type) {
		case string:
			form.Set(key, v)
		case bool:
			form.Set(key, strconv.FormatBool(v))
		default:
			return nil, "", fmt.Errorf("unsupported form value %T for %q", value, key)
		}
	}
	return strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", nil
}
