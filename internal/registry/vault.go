// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/enviz/enviz/internal/fsutil"
	"github.com/enviz/enviz/pkg/definition"
)

// VaultClient speaks the vault's release protocol. The vault is the single
// source of truth for conflict detection: no local pre-check happens, the
// client's job is to post the batch and interpret the response.
type VaultClient struct {
	baseURL    string
	author     string
	httpClient *http.Client
	logger     *log.Logger
}

// NewVaultClient builds a client for the vault at baseURL. An empty author
// falls back to the OS user's display name; a nil httpClient falls back to
// http.DefaultClient, leaving timeout policy to the caller.
func NewVaultClient(baseURL, author string, httpClient *http.Client) *VaultClient {
	if author == "" {
		author = fsutil.AuthorName()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &VaultClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		author:     author,
		httpClient: httpClient,
		logger:     log.NewWithOptions(os.Stderr, log.Options{Prefix: "vault"}),
	}
}

// registriesResponse is the GET /api/registry/all body.
type registriesResponse struct {
	Data struct {
		Content map[string]json.RawMessage `json:"content"`
	} `json:"data"`
}

// serverError is the vault's error shape. Definitions lists conflicting
// requests on 409 responses.
type serverError struct {
	Message     string   `json:"message"`
	Definitions []string `json:"definitions"`
}

type errorResponse struct {
	Error serverError `json:"error"`
}

// Install releases a definition batch into the vault registry id. The
// overwrite flag is forwarded verbatim; the server decides what it may
// replace. Responses map onto the shared taxonomy: 409 to
// DefinitionsExistError, 417 to ErrNoChanges, any other non-success to
// InstallFailedError carrying the server's message or "unknown".
func (c *VaultClient) Install(defs []definition.Definition, id string, overwrite bool) error {
	if len(defs) == 0 {
		return ErrNoChanges
	}

	known, err := c.registries()
	if err != nil {
		return err
	}
	if _, ok := known[id]; !ok {
		return &InstallFailedError{Registry: id, Reason: "not a known vault registry"}
	}

	contents, err := encodeContents(defs)
	if err != nil {
		return &InstallFailedError{Registry: id, Reason: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/api/registry/%s/release?overwrite=%s",
		c.baseURL, url.PathEscape(id), strconv.FormatBool(overwrite))
	form := url.Values{
		"contents": {contents},
		"author":   {c.author},
	}
	resp, err := c.httpClient.PostForm(endpoint, form)
	if err != nil {
		return &InstallFailedError{Registry: id, Reason: err.Error()}
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if o := classifyStatus(resp.StatusCode); o != outcomeInstalled {
		srvErr := decodeServerError(body)
		return outcomeError(o, outcomeDetails{
			registry:  id,
			conflicts: srvErr.Definitions,
			count:     len(srvErr.Definitions),
			reason:    srvErr.Message,
		})
	}

	c.logger.Info("released definitions", "count", len(defs), "registry", id)
	return nil
}

// registries fetches the identifiers the vault knows about.
func (c *VaultClient) registries() (map[string]json.RawMessage, error) {
	fail := func(cause string) error {
		return &InstallFailedError{Reason: "vault registries could not be retrieved: " + cause}
	}

	resp, err := c.httpClient.Get(c.baseURL + "/api/registry/all")
	if err != nil {
		return nil, fail(err.Error())
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(err.Error())
	}
	if classifyStatus(resp.StatusCode) != outcomeInstalled {
		return nil, fail(decodeServerError(body).Message)
	}

	var decoded registriesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fail(err.Error())
	}
	return decoded.Data.Content, nil
}

// encodeContents renders the batch as the wire form: a JSON array of the
// definitions' canonical encodings, itself serialized to a string field.
func encodeContents(defs []definition.Definition) (string, error) {
	encoded := make([]json.RawMessage, len(defs))
	for i, def := range defs {
		data, err := def.Encode()
		if err != nil {
			return "", err
		}
		encoded[i] = data
	}
	contents, err := json.Marshal(encoded)
	if err != nil {
		return "", fmt.Errorf("encoding release contents: %w", err)
	}
	return string(contents), nil
}

// decodeServerError pulls the vault's error shape out of a body,
// substituting "unknown" when the shape is absent or empty.
func decodeServerError(body []byte) serverError {
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err != nil || decoded.Error.Message == "" {
		decoded.Error.Message = "unknown"
	}
	return decoded.Error
}
