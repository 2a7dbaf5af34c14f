package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"caseFilesCPT/internal/config"
)

// ErrOrderNotApproved - покупатель закрыл окно оплаты, не подтвердив заказ
var ErrOrderNotApproved = errors.New("заказ не подтвержден покупателем")

type OrderParams struct {
	CaseID   string `json:"caseId"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type CaptureResult struct {
	OrderID   string `json:"orderId"`
	CaptureID string `json:"captureId"`
	Status    string `json:"status"`
	PayerID   string `json:"payerId"`
}

type Provider interface {
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Payment.BaseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", fmt.Errorf("ошибка формирования запроса токена: %w", err)
	}

	req.SetBasicAuth(c.cfg.Payment.ClientID, c.cfg.Payment.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка запроса токена провайдера: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("провайдер отклонил запрос токена: %d %s", resp.StatusCode, string(raw))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("ошибка разбора ответа токена: %w", err)
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	return c.accessToken, nil
}

// CaptureOrder списывает средства по заказу, уже подтвержденному покупателем
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.cfg.Payment.BaseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("ошибка формирования запроса capture: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса capture: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа capture: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// ORDER_NOT_APPROVED - покупатель закрыл окно, не подтвердив оплату
		if strings.Contains(string(raw), "ORDER_NOT_APPROVED") {
			return nil, ErrOrderNotApproved
		}
		return nil, fmt.Errorf("провайдер отклонил capture: %d %s", resp.StatusCode, string(raw))
	}

	var captureResp struct {
		ID             string `json:"id"`
		Status         string `json:"status"`
		Payer          struct {
			PayerID string `json:"payer_id"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID string `json:"id"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}

	if err := json.Unmarshal(raw, &captureResp); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа capture: %w", err)
	}

	result := &CaptureResult{
		OrderID: captureResp.ID,
		Status:  captureResp.Status,
		PayerID: captureResp.Payer.PayerID,
	}

	if len(captureResp.PurchaseUnits) > 0 && len(captureResp.PurchaseUnits[0].Payments.Captures) > 0 {
		result.CaptureID = captureResp.PurchaseUnits[0].Payments.Captures[0].ID
	}

	return result, nil
}
