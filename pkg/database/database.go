package database

import (
	"fmt"
	"log"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizResult{},
		&model.CurriculumEntry{},
		&model.CourseProgress{},
		&model.Enrollment{},
		&model.Order{},
		&model.OrderItem{},
		&model.Coupon{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedCoupons(db)

	return db, nil
}

// seedCoupons inserts a launch coupon on an empty table so a fresh install
// has something to test checkout with.
func seedCoupons(db *gorm.DB) {
	var count int64
	db.Model(&model.Coupon{}).Count(&count)
	if count > 0 {
		return
	}
	expires := time.Now().AddDate(1, 0, 0)
	db.Create(&model.Coupon{
		Code:       "WELCOME10",
		Kind:       model.CouponPercent,
		PercentOff: 10,
		Enabled:    true,
		ExpiresAt:  &expires,
	})
}
