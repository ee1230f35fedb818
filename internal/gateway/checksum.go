package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Signer computes the X-VERIFY integrity token the gateway expects:
// SHA256 over the request data concatenated with the merchant key, then a
// "###<salt index>" suffix. Deterministic for identical inputs.
type Signer struct {
	key       string
	saltIndex int
}

func NewSigner(merchantKey string, saltIndex int) Signer {
	return Signer{key: merchantKey, saltIndex: saltIndex}
}

// Sign signs the given data. For initiate calls data is the base64 payload
// followed by the pay path; for status calls it is the status path itself.
func (s Signer) Sign(data string) string {
	sum := sha256.Sum256([]byte(data + s.key))
	return hex.EncodeToString(sum[:]) + "###" + strconv.Itoa(s.saltIndex)
}
