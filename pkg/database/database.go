package database

import (
	"fmt"

	"school_reports_backend/internal/config"
	"school_reports_backend/internal/model"
	"school_reports_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// replicaModels are the school tables read when source.type is database.
// They belong to the school system and are only created with -migrate, for
// development replicas.
var replicaModels = []interface{}{
	&model.Course{},
	&model.Student{},
	&model.Subject{},
	&model.GradeRecord{},
	&model.TardyEvent{},
	&model.Elective{},
	&model.ElectiveEnrollment{},
}

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	db := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.DBName,
		db.Charset,
		db.ParseTime,
	)

	level := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		level = gormlogger.Info
	}

	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", db.Host), zap.String("db", db.DBName))

	if err := Migrate(conn, cfg.Migrate); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates the archive table, and the replica tables too when
// withReplica is set.
func Migrate(db *gorm.DB, withReplica bool) error {
	models := []interface{}{&model.ReportArchive{}}
	if withReplica {
		models = append(models, replicaModels...)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return err
	}

	logger.Log.Info("Database migration completed", zap.Int("tables", len(models)))
	return nil
}
