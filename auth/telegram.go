package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// TelegramLogin is the payload posted by the Telegram login widget. Optional
// fields are pointers so an absent field is excluded from the check string,
// matching how the widget signs the payload.
type TelegramLogin struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	AuthDate  int64   `json:"auth_date"`
	Hash      string  `json:"hash"`
}

// Fields returns the signed payload fields as strings, excluding the hash
// itself and any absent optional field.
func (p TelegramLogin) Fields() map[string]string {
	fields := map[string]string{
		"id":         strconv.FormatInt(p.ID, 10),
		"first_name": p.FirstName,
		"auth_date":  strconv.FormatInt(p.AuthDate, 10),
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.Username != nil {
		fields["username"] = *p.Username
	}
	if p.PhotoURL != nil {
		fields["photo_url"] = *p.PhotoURL
	}
	return fields
}

// VerifyTelegramHash reports whether the login payload was signed by the bot
// identified by botToken. It never fails with an error: any mismatch,
// including a malformed claimed hash, yields false.
func VerifyTelegramHash(p TelegramLogin, botToken string) bool {
	return VerifyPayload(p.Fields(), p.Hash, botToken)
}

// VerifyPayload checks an arbitrary signed field map against a claimed hex
// digest. The secret key is the SHA-256 of the bot token; the signed message
// is the sorted key=value lines of the payload joined by newlines.
func VerifyPayload(fields map[string]string, claimedHash, botToken string) bool {
	expected := ComputeHash(fields, botToken)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(claimedHash)) == 1
}

// ComputeHash derives the widget signature for a field map. Exposed so the
// login flow can be exercised end to end in tests.
func ComputeHash(fields map[string]string, botToken string) string {
	secret := sha256.Sum256([]byte(botToken))

	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(checkString(fields)))
	return hex.EncodeToString(mac.Sum(nil))
}

// checkString builds the canonical data-check string: key=value lines sorted
// lexicographically by key, joined by newline.
func checkString(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}
	return strings.Join(lines, "\n")
}
