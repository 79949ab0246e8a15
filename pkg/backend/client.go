package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"deposit-defender-be/internal/entity"
)

const downloadChunkSize = 32 * 1024

// Client talks to the document/analysis API. It never retries on its own;
// retry is a user affordance owned by the caller.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	retentionHours int
}

func NewClient(baseURL string, retentionHours int) *Client {
	return &Client{
		baseURL:        baseURL,
		retentionHours: retentionHours,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // PDF generation can be slow
		},
	}
}

// ReportEnvelope is the wire shape of GET /api/documents/{caseId}/json.
type ReportEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Report  *entity.Report      `json:"report"`
		Context *entity.CaseContext `json:"context"`
	} `json:"data"`
}

// FetchReport retrieves the analysis report and case context. A 402 comes
// back as KindPaymentRequired so the caller can redirect instead of erroring;
// a 200 with a missing report or status != "ok" is KindMalformed.
func (c *Client) FetchReport(ctx context.Context, caseId, token string) (*ReportEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/documents/%s/json", c.baseURL, caseId), nil)
	if err != nil {
		return nil, networkError(err)
	}
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classify(resp, "Could not load your report.")
	}

	var envelope ReportEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &Error{Kind: KindMalformed, Status: resp.StatusCode,
			Message: "Could not load your report.", Retryable: true}
	}
	if envelope.Status != "ok" || envelope.Data.Report == nil {
		return nil, &Error{Kind: KindMalformed, Status: resp.StatusCode,
			Message: "Could not load your report.", Retryable: true}
	}
	return &envelope, nil
}

// ProgressFunc receives cumulative bytes read and the total from
// Content-Length (0 when the server did not send one) after every chunk.
type ProgressFunc func(read, total int64)

// DownloadDocument streams the case PDF, reporting byte-level progress after
// each chunk, and returns the assembled document.
func (c *Client) DownloadDocument(ctx context.Context, caseId, token string, onProgress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/documents/%s", c.baseURL, caseId), nil)
	if err != nil {
		return nil, networkError(err)
	}
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classify(resp, "Download failed.")
	}

	var total int64
	if resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	var buf bytes.Buffer
	chunk := make([]byte, downloadChunkSize)
	var read int64
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			if onProgress != nil {
				onProgress(read, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, networkError(err)
		}
	}
	return buf.Bytes(), nil
}

// RenderLetter posts the edited letter fields and returns the rendered PDF.
func (c *Client) RenderLetter(ctx context.Context, caseId, token string, fields any) ([]byte, error) {
	payload, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return nil, &Error{Kind: KindRejected, Message: "Invalid letter fields."}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/documents/%s/letter", c.baseURL, caseId), bytes.NewReader(payload))
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classify(resp, "We couldn't generate your letter.")
	}
	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}
	return blob, nil
}

// ExtractResult is the wire shape of the lease extraction endpoint. Every
// field is low-confidence and must pass validation before use.
type ExtractResult struct {
	ExtractedData *entity.ExtractedLeaseData `json:"extractedData"`
	Preview       string                     `json:"preview,omitempty"`
	Sections      []string                   `json:"sections,omitempty"`
}

// ExtractLease uploads a lease document for OCR/LLM extraction.
func (c *Client) ExtractLease(ctx context.Context, caseId, token, filename string, file io.Reader) (*ExtractResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("lease", filename)
	if err != nil {
		return nil, networkError(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, networkError(err)
	}
	if err := writer.Close(); err != nil {
		return nil, networkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/cases/%s/lease", c.baseURL, caseId), &body)
	if err != nil {
		return nil, networkError(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setAuth(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classify(resp, "We couldn't read your lease.")
	}

	var result ExtractResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Kind: KindMalformed, Status: resp.StatusCode,
			Message: "We couldn't read your lease.", Retryable: true}
	}
	return &result, nil
}

// classify converts a non-OK response into the taxonomy, consuming any
// {message, code} error body the service attached.
func (c *Client) classify(resp *http.Response, fallback string) *Error {
	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return &Error{
			Kind:    KindPaymentRequired,
			Status:  resp.StatusCode,
			Message: "Payment required to access this document.",
		}
	case resp.StatusCode == http.StatusNotFound:
		return &Error{
			Kind:   KindNotFound,
			Status: resp.StatusCode,
			Message: fmt.Sprintf(
				"This document has expired. Documents are available for %d hours after purchase.",
				c.retentionHours),
		}
	case body.Code != "":
		kind := KindServer
		if !retryableCodes[body.Code] {
			kind = KindRejected
		}
		return &Error{
			Kind:      kind,
			Status:    resp.StatusCode,
			Code:      body.Code,
			Message:   MessageForCode(body.Code, body.Message),
			Retryable: retryableCodes[body.Code],
		}
	default:
		return &Error{
			Kind:      KindServer,
			Status:    resp.StatusCode,
			Message:   fmt.Sprintf("%s (status %d)", fallback, resp.StatusCode),
			Retryable: resp.StatusCode >= 500,
		}
	}
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
