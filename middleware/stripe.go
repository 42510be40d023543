package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// StripeWebhookAuth verifies the Stripe-Signature header before the webhook
// handler runs. The header carries "t=<unix>,v1=<hmac>" pairs; the signed
// payload is "<t>.<raw body>". The raw body is restored on the request so the
// handler can decode it again.
func StripeWebhookAuth(webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if webhookSecret == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stripe webhook secret is not configured"})
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read webhook body"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		header := c.GetHeader("Stripe-Signature")
		var timestamp, provided string
		for _, part := range strings.Split(header, ",") {
			kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
			if len(kv) != 2 {
				continue
			}
			switch kv[0] {
			case "t":
				timestamp = kv[1]
			case "v1":
				provided = kv[1]
			}
		}
		if timestamp == "" || provided == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(webhookSecret))
		mac.Write([]byte(timestamp))
		mac.Write([]byte("."))
		mac.Write(body)
		calculated := hex.EncodeToString(mac.Sum(nil))

		if !hmac.Equal([]byte(calculated), []byte(strings.ToLower(provided))) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
			c.Abort()
			return
		}

		c.Next()
	}
}
