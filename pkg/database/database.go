package database

import (
	"fmt"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ShouldMigrate 决定启动时是否执行AutoMigrate：
// 开发模式下每次启动都迁移，release模式只在显式传 -migrate / -migrate-only 时迁移，
// 避免线上实例滚动发布时并发改表
func ShouldMigrate(cfg *config.Config) bool {
	if cfg.ForceMigrate || cfg.MigrateOnly {
		return true
	}
	return cfg.Server.Mode != "release"
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if ShouldMigrate(cfg) {
		err = db.AutoMigrate(
			&model.User{},
			&model.Course{},
			&model.CourseModule{},
			&model.Lesson{},
			&model.Enrollment{},
			&model.LessonProgress{},
			&model.Review{},
			&model.CalendarEvent{},
			&model.ActivityLog{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	} else {
		log.Println("Skipping database migration (release mode, use -migrate to force)")
	}

	// 平台至少需要一个管理员账户
	var adminCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&adminCount)
	if adminCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123456"), bcrypt.DefaultCost)
		if err == nil {
			admin := &model.User{
				Name:     "Platform Admin",
				Email:    "admin@learnhub.local",
				Password: string(hashed),
				Role:     model.Admin,
			}
			db.Create(admin)
			log.Println("Seeded default admin account (admin@learnhub.local)")
		}
	}

	return db, nil
}
