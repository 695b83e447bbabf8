package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// WooCommerceの署名検証。bodyのHMAC-SHA256をbase64にしたものがヘッダ値と
// 一致するかを定数時間で比較する。
func VerifyWebhookSignature(body []byte, signature string, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
