package main

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const signatureHeaderName = "X-Webhook-Signature"

// verifySignature reads the request body and checks its HMAC-SHA256 signature
// against the configured secret. The header format is "sha256=<hex>". When no
// secret is configured the body is accepted as-is, except in production mode
// where a secret is mandatory.
func verifySignature(r *http.Request, secretKey string) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	if secretKey == "" {
		if os.Getenv("CHATWIRE_ENV") == "production" {
			return nil, fmt.Errorf("webhook secret is required in production mode")
		}
		return body, nil
	}

	signatureHeader := r.Header.Get(signatureHeaderName)
	if signatureHeader == "" {
		return nil, fmt.Errorf("missing signature header: %s", signatureHeaderName)
	}

	parts := strings.SplitN(signatureHeader, "=", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "sha256" {
		return nil, fmt.Errorf("invalid signature format in header %s", signatureHeaderName)
	}
	expectedSignatureHex := parts[1]

	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write(body)
	computedSignatureHex := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(computedSignatureHex), []byte(expectedSignatureHex)) {
		return nil, fmt.Errorf("signature mismatch")
	}

	return body, nil
}
