package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// CheckoutSessionResponse represents the response from the payment provider
// checkout session API
type CheckoutSessionResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}

// CreateProviderCheckout creates a hosted checkout session with the payment
// provider. The reference is echoed back in the completion webhook metadata
// together with userId and courseId.
func CreateProviderCheckout(reference string, userID, courseID uint, title, description string, amount float64) (*CheckoutSessionResponse, error) {
	successURL := fmt.Sprintf("%s/courses/%d?success=1", config.AppConfig.AppURL, courseID)
	cancelURL := fmt.Sprintf("%s/courses/%d?canceled=1", config.AppConfig.AppURL, courseID)

	client := resty.New()
	resp, err := client.R().
		SetAuthToken(config.AppConfig.PaymentApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":      int64(amount * 100), // smallest currency unit
			"currency":    "USD",
			"name":        title,
			"description": description,
			"quantity":    1,
			"success_url": successURL,
			"cancel_url":  cancelURL,
			"metadata": map[string]string{
				"reference": reference,
				"userId":    fmt.Sprintf("%d", userID),
				"courseId":  fmt.Sprintf("%d", courseID),
			},
		}).
		Post(config.AppConfig.PaymentApiURL + "checkout/sessions")
	if err != nil {
		log.Printf("Failed to create checkout session: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("Checkout session API error: %s", resp.String())
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode())
	}

	var session CheckoutSessionResponse
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout response: %v", err)
	}
	if session.URL == "" {
		return nil, fmt.Errorf("payment provider returned no checkout URL")
	}

	return &session, nil
}

// VerifyWebhookSignature checks the HMAC-SHA256 signature the provider sends
// with each webhook delivery against the shared webhook secret.
func VerifyWebhookSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(config.AppConfig.PaymentWebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
