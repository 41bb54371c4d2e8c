// seeduser crea (o reactiva) el usuario admin inicial. Pensado para
// correr una sola vez contra una base recién migrada.
package main

import (
	"os"

	"github.com/BryanFuM/saas-gyh-sub000/internal/config"
	"github.com/BryanFuM/saas-gyh-sub000/internal/infra"
	"github.com/BryanFuM/saas-gyh-sub000/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	username := envOr("SEED_USERNAME", "admin")
	password := envOr("SEED_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt failed")
	}

	res := db.Exec(`
		INSERT INTO users (id, username, password_hash, rol, activo, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, true, NOW(), NOW())
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, activo = true, updated_at = NOW()`,
		username, string(hash), model.RolAdmin)
	if res.Error != nil {
		log.Fatal().Err(res.Error).Msg("seed failed")
	}

	log.Info().Str("username", username).Msg("usuario admin listo")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
