package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/ports"
)

// ClientConfig holds the connection settings for the external ledger API.
type ClientConfig struct {
	BaseURL     string
	AccessToken string
	CompanyID   string
	Timeout     time.Duration // default 30 seconds
}

// Client is the HTTP client for the external ledger system.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	companyID   string
}

// NewClient creates a new ledger API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		accessToken: config.AccessToken,
		companyID:   config.CompanyID,
	}
}

var _ ports.LedgerClient = (*Client)(nil)

// ListJournals returns every journal of the company.
func (c *Client) ListJournals(ctx context.Context) ([]domain.ExternalJournal, error) {
	var resp journalsResponse
	if err := c.get(ctx, "/api/1/journals", nil, &resp); err != nil {
		return nil, err
	}
	journals := make([]domain.ExternalJournal, len(resp.Journals))
	for i, j := range resp.Journals {
		journals[i] = domain.ExternalJournal{
			ID:               j.ID,
			Name:             j.Name,
			Kind:             domain.JournalKind(j.Kind),
			DefaultAccountID: j.DefaultAccountID,
		}
	}
	return journals, nil
}

// ListAccounts returns every account of the company.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.ExternalAccount, error) {
	var resp accountsResponse
	if err := c.get(ctx, "/api/1/accounts", nil, &resp); err != nil {
		return nil, err
	}
	accounts := make([]domain.ExternalAccount, len(resp.Accounts))
	for i, a := range resp.Accounts {
		accounts[i] = domain.ExternalAccount{
			ID:   a.ID,
			Name: a.Name,
			Kind: domain.AccountKind(a.Kind),
		}
	}
	return accounts, nil
}

// CreateEntry submits a new entry. The external system always creates it in
// draft state.
func (c *Client) CreateEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	reqBody := createEntryRequest{CompanyID: c.companyID, Entry: fromDomainEntry(entry)}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/1/entries", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp createEntryResponse
	if err := c.do(req, http.StatusCreated, &resp); err != nil {
		return "", err
	}
	return resp.Entry.ID, nil
}

// QueryEntries fetches all entries matching the filter, paging through the
// external API.
func (c *Client) QueryEntries(ctx context.Context, q domain.EntryQuery) ([]domain.LedgerEntry, error) {
	var all []domain.LedgerEntry
	offset := 0
	limit := 100

	for {
		params := url.Values{}
		params.Set("limit", fmt.Sprintf("%d", limit))
		params.Set("offset", fmt.Sprintf("%d", offset))
		if q.ReferencePrefix != "" {
			params.Set("reference_prefix", q.ReferencePrefix)
		}
		if !q.From.IsZero() {
			params.Set("issue_date_from", q.From.Format(dateLayout))
		}
		if !q.To.IsZero() {
			params.Set("issue_date_to", q.To.Format(dateLayout))
		}
		if q.State != "" {
			params.Set("state", string(q.State))
		}

		var resp entriesResponse
		if err := c.get(ctx, "/api/1/entries", params, &resp); err != nil {
			return nil, fmt.Errorf("failed to query entries (offset=%d): %w", offset, err)
		}
		if len(resp.Entries) == 0 {
			break
		}
		for _, p := range resp.Entries {
			entry, err := toDomainEntry(p)
			if err != nil {
				return nil, fmt.Errorf("malformed entry %s in response: %w", p.ID, err)
			}
			all = append(all, entry)
		}
		if len(resp.Entries) < limit {
			break
		}
		offset += limit
	}

	return all, nil
}

// AttachFile uploads a file against an existing entry as multipart form data.
func (c *Client) AttachFile(ctx context.Context, entryID string, filename string, content []byte) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return fmt.Errorf("failed to write form file: %w", err)
	}
	if err := writer.WriteField("company_id", c.companyID); err != nil {
		return fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/1/entries/%s/attachments", c.baseURL, url.PathEscape(entryID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, http.StatusCreated, nil)
}

// get issues an authenticated company-scoped GET and decodes the response.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("company_id", c.companyID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode()), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, http.StatusOK, out)
}

// do executes a request, treating transport and auth failures as the
// distinct ledger-unavailable category. The engine never retries them.
func (c *Client) do(req *http.Request, wantStatus int, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", apperrors.ErrLedgerUnavailable, c.parseError(resp))
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("ledger API returned %d: %s", resp.StatusCode, c.parseError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseError extracts the error message from a failed response body.
func (c *Client) parseError(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return resp.Status
	}
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		if apiErr.ErrorDescription != "" {
			return apiErr.Error + ": " + apiErr.ErrorDescription
		}
		return apiErr.Error
	}
	return strings.TrimSpace(string(body))
}
