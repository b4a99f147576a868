package db

import (
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authadapters "microblog/internal/feature/auth/adapters"
	authentity "microblog/internal/feature/auth/domain/entity"
	postentity "microblog/internal/feature/posts/domain/entity"
	socialadapters "microblog/internal/feature/social/adapters"
)

// OpenDB connects to MySQL, retrying for up to a minute while the database
// comes up. TranslateError is enabled so unique-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func OpenDB(dsn string) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&postentity.Post{},
			&socialadapters.FollowModel{},
			&authadapters.SessionModel{},
			&authadapters.FlashModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
