package domain

import "encoding/json"

type PreferenceItemRequest struct {
	Title     interface{} `json:"title"`
	UnitPrice interface{} `json:"unit_price"`
	Price     interface{} `json:"price"`
	Quantity  interface{} `json:"quantity"`
}

type PreferenceRequest struct {
	Title      string                  `json:"title"`
	Price      *float64                `json:"price"`
	Quantity   *float64                `json:"quantity"`
	Items      []PreferenceItemRequest `json:"items"`
	PayerEmail string                  `json:"payerEmail"`
}

type PreferenceResponse struct {
	InitPoint         string `json:"init_point"`
	PreferenceID      string `json:"preference_id,omitempty"`
	ExternalReference string `json:"external_reference"`
}

// Provider-side preference payload.

type LineItem struct {
	Title      string  `json:"title"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
	CurrencyID string  `json:"currency_id,omitempty"`
}

type Payer struct {
	Email string `json:"email"`
}

type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type Preference struct {
	Items             []LineItem `json:"items"`
	Payer             *Payer     `json:"payer,omitempty"`
	ExternalReference string     `json:"external_reference"`
	BackURLs          BackURLs   `json:"back_urls"`
	AutoReturn        string     `json:"auto_return,omitempty"`
}

type CreatedPreference struct {
	ID        string
	InitPoint string
}

// AccountInfo is the reduced view of the provider's users/me resource.
type AccountInfo struct {
	ID         json.Number     `json:"id"`
	Nickname   string          `json:"nickname"`
	Email      string          `json:"email"`
	SiteID     string          `json:"site_id"`
	CurrencyID string          `json:"currency_id,omitempty"`
	Status     json.RawMessage `json:"status,omitempty"`
}
