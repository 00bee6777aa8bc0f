package shopify

import (
	"net/http"

	"shopify-summary-sync/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// WebhookVerifier authenticates inbound webhooks against the app's shared
// secret.
type WebhookVerifier struct {
	app goshopify.App
}

// NewWebhookVerifier creates a verifier with the app's API secret.
func NewWebhookVerifier(apiSecret string) *WebhookVerifier {
	return &WebhookVerifier{
		app: goshopify.App{ApiSecret: apiSecret},
	}
}

// Verify checks the request's HMAC signature against the raw body. The body
// is restored for later reading.
func (v *WebhookVerifier) Verify(r *http.Request) error {
	if !v.app.VerifyWebhookRequest(r) {
		return &domain.ValidationError{Message: "webhook signature verification failed"}
	}
	return nil
}
