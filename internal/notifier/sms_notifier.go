package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	config "github.com/Keoroanthony/go-crm/configs"
)

var ErrNotConfigured = errors.New("notifier not configured")

type SMSResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Cost       string `json:"cost"`
			Status     string `json:"status"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// SMSSender delivers text messages through the Africa's Talking bulk SMS API.
type SMSSender struct {
	cfg    config.AfricaTalkingConfig
	client *http.Client
}

// NewSMSSender returns nil when no Africa's Talking credentials are set.
func NewSMSSender(cfg config.AfricaTalkingConfig, client *http.Client) *SMSSender {
	if cfg.Username == "" || cfg.APIKey == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SMSSender{cfg: cfg, client: client}
}

func (s *SMSSender) Send(ctx context.Context, toPhoneNumber, message string) error {
	if s == nil {
		return ErrNotConfigured
	}
	if toPhoneNumber == "" {
		return fmt.Errorf("recipient phone number is empty")
	}

	data := url.Values{}
	data.Set("username", s.cfg.Username)
	data.Set("to", toPhoneNumber)
	data.Set("message", message)
	data.Set("from", s.cfg.SenderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.SMSURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create SMS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS send failed: %w", err)
	}
	defer resp.Body.Close()

	var smsResp SMSResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&smsResp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if decodeErr == nil {
			log.Printf("SMS API returned error for %s: Status %d, Message: %s", toPhoneNumber, resp.StatusCode, smsResp.SMSMessageData.Message)
		}
		return fmt.Errorf("SMS API returned non-success status: %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return fmt.Errorf("failed to decode SMS response: %w", decodeErr)
	}

	log.Printf("SMS sent successfully to %s. Message: %s", toPhoneNumber, smsResp.SMSMessageData.Message)
	return nil
}
