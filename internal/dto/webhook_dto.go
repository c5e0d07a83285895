package dto

// RevenueCatWebhook is the payment provider's event envelope. The provider is
// a black box here: only the subscription status and period timestamps feed
// the activation logic.
type RevenueCatWebhook struct {
	APIVersion string          `json:"api_version"`
	Event      RevenueCatEvent `json:"event"`
}

type RevenueCatEvent struct {
	Type              string  `json:"type"`
	ID                string  `json:"id"`
	AppUserID         string  `json:"app_user_id"`
	ProductID         string  `json:"product_id"`
	PeriodType        string  `json:"period_type"`
	PurchasedAtMs     int64   `json:"purchased_at_ms"`
	ExpirationAtMs    int64   `json:"expiration_at_ms"`
	Environment       string  `json:"environment"`
	Store             string  `json:"store"`
	TransactionID     string  `json:"transaction_id"`
	IsTrialConversion bool    `json:"is_trial_conversion"`
	Price             float64 `json:"price"`
}
