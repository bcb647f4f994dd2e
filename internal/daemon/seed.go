package daemon

import (
	"fmt"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/poststats/poststats/internal/auth"
	"github.com/poststats/poststats/internal/config"
	"github.com/poststats/poststats/internal/db/controller/article"
	"github.com/poststats/poststats/internal/db/controller/options"
	"github.com/poststats/poststats/internal/db/models"
)

const (
	defaultAdminUser = "admin"
	welcomeSlug      = "welcome"
)

const welcomeContent = `<p>This service shows a short stats block on every single article:
the number of words, the number of characters and the estimated reading time.</p>
<p>Sign in and open the post stats settings to choose which statistics are shown,
the title of the block and whether it is placed at the beginning or the end of the article.</p>`

// Seed creates what a fresh database needs: the admin role, the admin user,
// the default display options and a welcome article. Existing data is kept.
func Seed(cfg *config.Config, db *gorm.DB) error {
	role, err := auth.NewService(db).EnsureRole(auth.AdminRole, "Administrators",
		auth.PermAdminSettings,
		auth.PermArticleImport,
	)
	if err != nil {
		return err
	}

	if err = seedAdmin(cfg, db, role); err != nil {
		return err
	}

	if err = options.Seed(db); err != nil {
		return fmt.Errorf("failed to seed options: %w", err)
	}

	count, err := article.Count(db)
	if err != nil {
		return err
	}

	if count == 0 {
		if err = article.Save(db, &models.Article{
			Slug:    welcomeSlug,
			Title:   "Welcome",
			Content: welcomeContent,
		}); err != nil {
			return fmt.Errorf("failed to seed welcome article: %w", err)
		}
	}

	return nil
}

func seedAdmin(cfg *config.Config, db *gorm.DB, role *models.Role) error {
	local := auth.NewLocalProvider(db)

	count, err := local.CountUsers()
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	username := cfg.Auth.AdminUser
	if username == "" {
		username = defaultAdminUser
	}

	password := cfg.Auth.AdminPassword
	generated := password == ""

	if generated {
		password = uniuri.NewLen(uniuri.UUIDLen)
	}

	if _, err = local.CreateUser(username, cfg.Auth.AdminEmail, password, role.ID); err != nil {
		return err
	}

	if generated {
		log.Warn().Str("username", username).Str("password", password).
			Msg("created admin user with a generated password, it is shown only once")
	} else {
		log.Info().Str("username", username).Msg("created admin user")
	}

	return nil
}
