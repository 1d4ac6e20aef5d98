// file: internals/features/meetings/meetings/service/zoom.go
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"kelasku_backend/internals/configs"
)

/* =======================================================================
   Zoom Server-to-Server OAuth client.
   Token di-cache sampai mendekati expiry; refresh di-serialize pakai mutex.
======================================================================= */

const (
	zoomTokenURL = "https://zoom.us/oauth/token"
	zoomAPIBase  = "https://api.zoom.us/v2"
)

type ZoomClient struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
	BaseURL      string
	TokenURL     string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewZoomClient() *ZoomClient {
	return &ZoomClient{
		AccountID:    configs.ZoomAccountID,
		ClientID:     configs.ZoomClientID,
		ClientSecret: configs.ZoomClientSecret,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		BaseURL:      zoomAPIBase,
		TokenURL:     zoomTokenURL,
	}
}

func (z *ZoomClient) token(ctx context.Context) (string, error) {
	z.mu.Lock()
	defer z.mu.Unlock()

	if z.accessToken != "" && time.Now().Before(z.tokenExpiry.Add(-30*time.Second)) {
		return z.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", z.AccountID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.TokenURL, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(z.ClientID + ":" + z.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := z.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("zoom token request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoom token status %d: %s", resp.StatusCode, body)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("zoom token decode: %w", err)
	}

	z.accessToken = tok.AccessToken
	z.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return z.accessToken, nil
}

/* ===================== Create meeting ===================== */

type CreateMeetingInput struct {
	Topic     string
	StartTime time.Time
	Duration  int // menit
}

type MeetingResult struct {
	ProviderID string
	JoinURL    string
	StartURL   string
}

func (z *ZoomClient) CreateMeeting(ctx context.Context, in CreateMeetingInput) (*MeetingResult, error) {
	accessToken, err := z.token(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"topic":      in.Topic,
		"type":       2, // scheduled meeting
		"start_time": in.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		"duration":   in.Duration,
		"settings": map[string]interface{}{
			"join_before_host": false,
			"waiting_room":     true,
		},
	}
	raw, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, z.BaseURL+"/users/me/meetings", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := z.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom create meeting: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("zoom create meeting status %d: %s", resp.StatusCode, body)
	}

	var out struct {
		ID       int64  `json:"id"`
		JoinURL  string `json:"join_url"`
		StartURL string `json:"start_url"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("zoom create meeting decode: %w", err)
	}

	return &MeetingResult{
		ProviderID: fmt.Sprintf("%d", out.ID),
		JoinURL:    out.JoinURL,
		StartURL:   out.StartURL,
	}, nil
}
