package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/aiharness/toolserver-contract-tests/framework"
	"github.com/aiharness/toolserver-contract-tests/servicedef"
)

// ToolServerClient manages communication with the tool server under test. It makes plain GET
// requests for the server's status and tool catalog, and POST requests for tool calls.
//
// There are no retries and no timeouts other than those of the underlying http.Client.
type ToolServerClient struct {
	baseURL    string
	projectID  string
	httpClient *http.Client
	logger     framework.Logger
}

// NewToolServerClient creates a ToolServerClient. The project ID is sent with every tool call.
// If httpClient is nil, http.DefaultClient is used; if logger is nil, nothing is logged.
func NewToolServerClient(
	baseURL string,
	projectID string,
	httpClient *http.Client,
	logger framework.Logger,
) *ToolServerClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ToolServerClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		projectID:  projectID,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *ToolServerClient) BaseURL() string {
	return c.baseURL
}

func (c *ToolServerClient) ProjectID() string {
	return c.projectID
}

// WithLogger returns a copy of the client that sends its debug output to a different logger,
// such as the one belonging to a single test.
func (c *ToolServerClient) WithLogger(logger framework.Logger) *ToolServerClient {
	c1 := *c
	if logger != nil {
		c1.logger = logger
	}
	return &c1
}

// GetText makes a GET request to a path relative to the base URL and returns the response
// body as a string.
func (c *ToolServerClient) GetText(path string) (string, error) {
	data, err := c.do("GET", path, nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ListTools queries the server's tool catalog.
func (c *ToolServerClient) ListTools() (servicedef.ToolsListResponse, error) {
	var resp servicedef.ToolsListResponse
	data, err := c.do("GET", servicedef.ToolsPath, nil)
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return resp, &DecodeError{What: "tool list", Data: string(data), Err: err}
	}
	if resp.Tools == nil {
		return resp, &DecodeError{What: "tool list", Data: string(data), Err: errors.New(`missing "tools" property`)}
	}
	return resp, nil
}

// CallTool invokes a tool on the server and returns the content string of a successful result.
//
// The arguments are encoded as a JSON object. If the server does not return a 2xx status, the
// error is a *TransportError and the body is not parsed. If the server says the call did not
// succeed, the error is a *ProtocolError. A body that is not a valid tool call response gives
// a *DecodeError.
func (c *ToolServerClient) CallTool(name string, arguments interface{}) (string, error) {
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	params := servicedef.CallToolParams{
		Name:      name,
		Arguments: arguments,
		ProjectID: c.projectID,
	}
	body, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	data, err := c.do("POST", servicedef.CallPath, body)
	if err != nil {
		return "", err
	}

	var resp servicedef.CallToolResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", &DecodeError{What: "tool call response", Data: string(data), Err: err}
	}
	if resp.DurationMS.IsDefined() {
		c.logger.Printf("<< %s took %dms", name, resp.DurationMS.IntValue())
	}
	if resp.Success == nil || !*resp.Success {
		return "", &ProtocolError{Tool: name, Message: failureMessage(resp)}
	}
	if resp.Content == nil {
		return "", &DecodeError{What: "tool call response", Data: string(data),
			Err: errors.New(`"success" was true but there was no "content"`)}
	}
	return *resp.Content, nil
}

func failureMessage(resp servicedef.CallToolResponse) string {
	if resp.Content != nil && *resp.Content != "" {
		return *resp.Content
	}
	if resp.Error != nil && *resp.Error != "" {
		return *resp.Error
	}
	if resp.Success == nil {
		return `response did not contain a "success" property`
	}
	return "server reported failure with no details"
}

func (c *ToolServerClient) do(method, path string, body []byte) ([]byte, error) {
	url := c.baseURL + path
	var bodyReader io.Reader
	if body != nil {
		c.logger.Printf(">> %s %s %s", method, url, string(body))
		bodyReader = bytes.NewBuffer(body)
	} else {
		c.logger.Printf(">> %s %s", method, url)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< error: %s", err)
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	c.logger.Printf("<< %d %s", resp.StatusCode, string(data))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}
