// Package db opens the credential store and migrates the schema
package db

import (
	"errors"
	"fmt"

	"boycottwatch/catalog-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch driver := viper.GetString("db.driver"); driver {
	case "postgres":
		dial = postgres.Open(fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			viper.GetString("db.host"),
			viper.GetInt("db.port"),
			viper.GetString("db.username"),
			viper.GetString("db.password"),
			viper.GetString("db.name"),
			viper.GetString("db.sslmode"),
		))
	case "sqlite":
		dial = sqlite.Open(viper.GetString("db.path"))
	default:
		return nil, errors.New("invalid db driver provided: " + driver)
	}

	db, err := gorm.Open(dial)
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(
		&model.Admin{},
		&model.User{},
		&model.Product{},
		&model.Report{},
		&model.Denotion{},
		&model.CountryCode{},
		&model.CompanyCode{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
