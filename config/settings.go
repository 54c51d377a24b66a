package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Settings is the typed configuration surface of the service, assembled once
// at startup from the process environment.
type Settings struct {
	Port string

	SecretKey string
	Algorithm string
	BotToken  string
	Origin    string

	PostgresUser     string
	PostgresPassword string
	PostgresServer   string
	PostgresPort     int
	PostgresDB       string
	PostgresSSLMode  string

	AccessTokenLifetime time.Duration

	BaseDir                string
	UploadDir              string
	AllowedImageTypes      []string
	AllowedImageExtensions []string
	MaxImageSize           int64
}

// Load builds Settings from the environment. Every value has a default except
// the bot token and the database credentials, which have no sensible one; the
// caller decides whether an empty value is fatal.
func Load() Settings {
	c := New()

	return Settings{
		Port: GetString(c, "PORT", "8080"),

		SecretKey: GetString(c, "SECRET_KEY", randomSecret()),
		Algorithm: GetString(c, "ALGORITHM", "HS256"),
		BotToken:  GetString(c, "BOT_TOKEN", ""),
		Origin:    GetString(c, "ORIGIN", ""),

		PostgresUser:     GetString(c, "POSTGRES_USER", ""),
		PostgresPassword: GetString(c, "POSTGRES_PASSWORD", ""),
		PostgresServer:   GetString(c, "POSTGRES_SERVER", "localhost"),
		PostgresPort:     GetInt(c, "POSTGRES_PORT", 5432),
		PostgresDB:       GetString(c, "POSTGRES_DB", ""),
		PostgresSSLMode:  GetString(c, "POSTGRES_SSLMODE", "disable"),

		AccessTokenLifetime: time.Duration(GetInt(c, "ACCESS_TOKEN_EXPIRE_MINUTES", 180)) * time.Minute,

		BaseDir:   GetString(c, "BASE_DIR", "."),
		UploadDir: GetString(c, "UPLOAD_DIR", "uploads"),
		AllowedImageTypes: GetStrings(c, "ALLOWED_IMAGE_TYPES", []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}),
		AllowedImageExtensions: GetStrings(c, "ALLOWED_IMAGE_EXTENSIONS", []string{
			"jpg", "jpeg", "png", "gif", "webp",
		}),
		MaxImageSize: GetInt64(c, "MAX_IMAGE_SIZE", 10*1024*1024),
	}
}

// DSN renders the postgres connection string in the key=value form the GORM
// postgres driver expects.
func (s Settings) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		s.PostgresServer, s.PostgresUser, s.PostgresPassword, s.PostgresDB, s.PostgresPort, s.PostgresSSLMode)
}

// randomSecret mirrors the fallback of generating a throwaway signing key when
// SECRET_KEY is unset. Tokens issued with it do not survive a restart.
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
