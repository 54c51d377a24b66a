package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "110201543:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

func strPtr(s string) *string { return &s }

func TestVerifyTelegramHash(t *testing.T) {
	payload := TelegramLogin{
		ID:        987654321,
		FirstName: "Ada",
		LastName:  strPtr("Lovelace"),
		Username:  strPtr("adal"),
		PhotoURL:  strPtr("https://t.me/i/userpic/320/adal.jpg"),
		AuthDate:  1756700000,
	}
	payload.Hash = ComputeHash(payload.Fields(), testBotToken)

	assert.True(t, VerifyTelegramHash(payload, testBotToken))
}

func TestVerifyTelegramHashRejectsTampering(t *testing.T) {
	payload := TelegramLogin{
		ID:        987654321,
		FirstName: "Ada",
		AuthDate:  1756700000,
	}
	payload.Hash = ComputeHash(payload.Fields(), testBotToken)

	payload.FirstName = "Eve"
	assert.False(t, VerifyTelegramHash(payload, testBotToken))
}

func TestVerifyTelegramHashRejectsWrongBotToken(t *testing.T) {
	payload := TelegramLogin{
		ID:        987654321,
		FirstName: "Ada",
		AuthDate:  1756700000,
	}
	payload.Hash = ComputeHash(payload.Fields(), testBotToken)

	assert.False(t, VerifyTelegramHash(payload, "someone-elses-token"))
}

func TestVerifyTelegramHashRejectsMalformedHash(t *testing.T) {
	payload := TelegramLogin{
		ID:        987654321,
		FirstName: "Ada",
		AuthDate:  1756700000,
		Hash:      "not-a-hex-digest",
	}

	assert.False(t, VerifyTelegramHash(payload, testBotToken))
}

func TestFieldsExcludesAbsentOptionals(t *testing.T) {
	payload := TelegramLogin{
		ID:        42,
		FirstName: "Ada",
		AuthDate:  1756700000,
	}

	fields := payload.Fields()
	require.Len(t, fields, 3)
	assert.NotContains(t, fields, "last_name")
	assert.NotContains(t, fields, "username")
	assert.NotContains(t, fields, "photo_url")
	assert.NotContains(t, fields, "hash")
	assert.Equal(t, "42", fields["id"])
}

func TestCheckStringIsSorted(t *testing.T) {
	fields := map[string]string{
		"username":   "adal",
		"id":         "42",
		"first_name": "Ada",
		"auth_date":  "1756700000",
	}

	got := checkString(fields)
	want := "auth_date=1756700000\nfirst_name=Ada\nid=42\nusername=adal"
	assert.Equal(t, want, got)
}

func TestSignatureIndependentOfOptionalPresenceStyle(t *testing.T) {
	// A payload with an absent optional and one with the same optional never
	// set must sign identically; only present fields are part of the message.
	a := TelegramLogin{ID: 7, FirstName: "Grace", AuthDate: 1756700000}
	b := TelegramLogin{ID: 7, FirstName: "Grace", AuthDate: 1756700000, LastName: nil}

	assert.Equal(t, ComputeHash(a.Fields(), testBotToken), ComputeHash(b.Fields(), testBotToken))
}
