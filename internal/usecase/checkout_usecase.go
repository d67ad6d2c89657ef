package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Shoxzn12/level-up-pc/internal/clients"
	"github.com/Shoxzn12/level-up-pc/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Mercado Pago production credentials carry this prefix; sandbox ones start with TEST-.
const productionTokenPrefix = "APP_USR-"

type CheckoutConfig struct {
	AccessToken   string
	Production    bool
	PublicBaseURL string
	CurrencyID    string
}

type CheckoutUseCase interface {
	CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.PreferenceResponse, error)
	WhoAmI(ctx context.Context) (*domain.AccountInfo, error)
}

type checkoutUseCase struct {
	cfg    CheckoutConfig
	client clients.PaymentClient
	now    func() time.Time
	log    *logrus.Logger
}

func NewCheckoutUseCase(cfg CheckoutConfig, client clients.PaymentClient, logger *logrus.Logger) CheckoutUseCase {
	return newCheckoutUseCase(cfg, client, time.Now, logger)
}

func newCheckoutUseCase(cfg CheckoutConfig, client clients.PaymentClient, now func() time.Time, logger *logrus.Logger) *checkoutUseCase {
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	return &checkoutUseCase{
		cfg:    cfg,
		client: client,
		now:    now,
		log:    logger,
	}
}

func (uc *checkoutUseCase) CreatePreference(ctx context.Context, req domain.PreferenceRequest) (*domain.PreferenceResponse, error) {
	if err := uc.checkCredential(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if req.Price == nil || *req.Price <= 0 || math.IsNaN(*req.Price) || math.IsInf(*req.Price, 0) {
		return nil, fmt.Errorf("price must be a positive number: %w", domain.ErrValidation)
	}
	if req.Quantity == nil {
		return nil, fmt.Errorf("quantity is required: %w", domain.ErrValidation)
	}
	quantity, err := wholeNonNegative("quantity", *req.Quantity)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}

	pref := domain.Preference{
		Items:             uc.buildItems(req, title, *req.Price, quantity),
		ExternalReference: uc.externalReference(),
		BackURLs: domain.BackURLs{
			Success: uc.cfg.PublicBaseURL + "/checkout/success",
			Failure: uc.cfg.PublicBaseURL + "/checkout/failure",
			Pending: uc.cfg.PublicBaseURL + "/checkout/pending",
		},
		AutoReturn: "approved",
	}
	if email := strings.TrimSpace(req.PayerEmail); email != "" {
		pref.Payer = &domain.Payer{Email: email}
	}

	uc.log.Infof("Use Case: Creating preference %s with %d items", pref.ExternalReference, len(pref.Items))
	created, err := uc.client.CreatePreference(ctx, pref)
	if err != nil {
		uc.log.Errorf("Use Case: Payment provider failed to create preference %s: %v", pref.ExternalReference, err)
		return nil, err
	}
	if created.InitPoint == "" {
		uc.log.Errorf("Use Case: Preference %s created without init_point", pref.ExternalReference)
		return nil, domain.ErrMissingInitPoint
	}

	return &domain.PreferenceResponse{
		InitPoint:         created.InitPoint,
		PreferenceID:      created.ID,
		ExternalReference: pref.ExternalReference,
	}, nil
}

func (uc *checkoutUseCase) WhoAmI(ctx context.Context) (*domain.AccountInfo, error) {
	if uc.cfg.AccessToken == "" {
		uc.log.Warn("Use Case: Diagnostics requested without MP_ACCESS_TOKEN")
		return nil, fmt.Errorf("MP_ACCESS_TOKEN is not set: %w", domain.ErrNotConfigured)
	}
	info, err := uc.client.WhoAmI(ctx)
	if err != nil {
		uc.log.Warnf("Use Case: Payment provider identity lookup failed: %v", err)
		return nil, err
	}
	return info, nil
}

func (uc *checkoutUseCase) checkCredential() error {
	if uc.cfg.AccessToken == "" {
		uc.log.Error("Use Case: Checkout requested without MP_ACCESS_TOKEN")
		return fmt.Errorf("MP_ACCESS_TOKEN is not set: %w", domain.ErrNotConfigured)
	}
	if !uc.cfg.Production && strings.HasPrefix(uc.cfg.AccessToken, productionTokenPrefix) {
		uc.log.Error("Use Case: Production access token configured outside production, refusing checkout")
		return domain.ErrTestTokenRequired
	}
	return nil
}

// buildItems prefers the caller's cart and falls back to a single line from title/price/quantity.
func (uc *checkoutUseCase) buildItems(req domain.PreferenceRequest, title string, price float64, quantity int) []domain.LineItem {
	if len(req.Items) == 0 {
		return []domain.LineItem{{
			Title:      title,
			UnitPrice:  price,
			Quantity:   quantity,
			CurrencyID: uc.cfg.CurrencyID,
		}}
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		line := domain.LineItem{
			Title:      strings.TrimSpace(cast.ToString(item.Title)),
			Quantity:   1,
			CurrencyID: uc.cfg.CurrencyID,
		}
		if line.Title == "" {
			line.Title = domain.DefaultProductName
		}

		unitPrice := item.UnitPrice
		if unitPrice == nil {
			unitPrice = item.Price
		}
		if p, err := cast.ToFloat64E(unitPrice); err == nil && p > 0 {
			line.UnitPrice = p
		}
		if q, err := cast.ToIntE(item.Quantity); err == nil && q > 0 {
			line.Quantity = q
		}
		items = append(items, line)
	}
	return items
}

// externalReference is millisecond-grained; two checkouts in the same millisecond share it.
func (uc *checkoutUseCase) externalReference() string {
	return fmt.Sprintf("order-%d", uc.now().UnixMilli())
}
