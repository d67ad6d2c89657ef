package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
)

type PaymentClient interface {
	CreatePreference(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error)
	WhoAmI(ctx context.Context) (*domain.AccountInfo, error)
}

// preferenceResponse covers both the flat shape and the {body: {...}} envelope older
// SDK versions returned.
type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
	Body      *struct {
		ID        string `json:"id"`
		InitPoint string `json:"init_point"`
	} `json:"body"`
}

type mercadoPagoHTTPClient struct {
	accessToken string
	baseURL     string
	client      *http.Client
	log         *logrus.Logger
}

func NewMercadoPagoHTTPClient(accessToken, baseURL string, timeout time.Duration, logger *logrus.Logger) PaymentClient {
	return &mercadoPagoHTTPClient{
		accessToken: accessToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

func (c *mercadoPagoHTTPClient) CreatePreference(ctx context.Context, pref domain.Preference) (*domain.CreatedPreference, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference: %w", err)
	}

	respBody, err := c.do(ctx, http.MethodPost, "/checkout/preferences", body)
	if err != nil {
		return nil, err
	}

	var decoded preferenceResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		c.log.Errorf("PaymentClient: Failed to decode preference response: %v", err)
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}

	created := &domain.CreatedPreference{ID: decoded.ID, InitPoint: decoded.InitPoint}
	if decoded.Body != nil {
		if created.InitPoint == "" {
			created.InitPoint = decoded.Body.InitPoint
		}
		if created.ID == "" {
			created.ID = decoded.Body.ID
		}
	}
	c.log.Infof("PaymentClient: Preference %s created (reference %s)", created.ID, pref.ExternalReference)
	return created, nil
}

func (c *mercadoPagoHTTPClient) WhoAmI(ctx context.Context) (*domain.AccountInfo, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}

	var info domain.AccountInfo
	decoder := json.NewDecoder(bytes.NewReader(respBody))
	decoder.UseNumber()
	if err := decoder.Decode(&info); err != nil {
		c.log.Errorf("PaymentClient: Failed to decode users/me response: %v", err)
		return nil, fmt.Errorf("failed to decode account response: %w", err)
	}
	return &info, nil
}

func (c *mercadoPagoHTTPClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	url := c.baseURL + path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("PaymentClient: %s %s", method, url)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("PaymentClient: Failed to execute %s %s: %v", method, path, err)
		return nil, unreachable("payment provider", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := &ProviderError{Provider: "payment provider", StatusCode: resp.StatusCode, Message: providerMessage(respBody)}
		c.log.Warnf("PaymentClient: %s %s failed: %v", method, path, perr)
		return nil, perr
	}
	return respBody, nil
}
