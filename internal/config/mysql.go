package config

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// OpenDB connects to MySQL and returns the handle for injection into the
// repositories.
func OpenDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
