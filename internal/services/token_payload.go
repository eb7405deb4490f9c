package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidPayload = errors.New("invalid token payload")

// tokenPayloadPrefix is the scheme marker the scanner apps expect in QR data.
const tokenPayloadPrefix = "attendance_token:"

// payloadTagLength is the hex length of the truncated HMAC integrity tag.
const payloadTagLength = 8

// BuildTokenPayload produces the opaque string the QR renderer encodes:
// the token id plus a short HMAC tag so a tampered payload is detectable
// before any store lookup.
func BuildTokenPayload(tokenID, secret string) string {
	return tokenPayloadPrefix + tokenID + "." + payloadTag(tokenID, secret)
}

// ParseTokenPayload extracts and verifies the token id from a scanned payload.
func ParseTokenPayload(payload, secret string) (string, error) {
	rest, ok := strings.CutPrefix(payload, tokenPayloadPrefix)
	if !ok {
		return "", ErrInvalidPayload
	}
	tokenID, tag, ok := strings.Cut(rest, ".")
	if !ok || tokenID == "" {
		return "", ErrInvalidPayload
	}
	if !hmac.Equal([]byte(tag), []byte(payloadTag(tokenID, secret))) {
		return "", ErrInvalidPayload
	}
	return tokenID, nil
}

func payloadTag(tokenID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(tokenID))
	return hex.EncodeToString(mac.Sum(nil))[:payloadTagLength]
}
