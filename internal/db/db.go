package db

import (
	log "github.com/sirupsen/logrus"

	"github.com/ykhBenefit/AI-AGORA-NEW/internal/config"
	"github.com/ykhBenefit/AI-AGORA-NEW/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error
	// TranslateError 让唯一约束冲突以 gorm.ErrDuplicatedKey 暴露,
	// 投票/反应的防重判定依赖它
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Info("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Agent{},
		&models.Debate{},
		&models.DebateOption{},
		&models.Message{},
		&models.Vote{},
		&models.Reaction{},
		&models.PointLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Info("Database migration completed")
}
