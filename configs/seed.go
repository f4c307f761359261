package configs

import (
	"fmt"
	"log"

	"github.com/BeeBeBong/Emenu/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account from env, once.
func SeedAdmin(cfg *Config) error {
	db := DB()
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("username = ?", cfg.AdminUsername).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Username: cfg.AdminUsername,
		Password: string(hash),
		FullName: "Admin",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedTables creates "Table 1..N" on first boot. Existing numbers are
// left alone so restarts never reset occupancy state.
func SeedTables(count int) error {
	db := DB()
	for i := 1; i <= count; i++ {
		number := fmt.Sprintf("Table %d", i)
		if err := db.Where(entity.Table{Number: number}).
			FirstOrCreate(&entity.Table{Number: number, Status: entity.TableAvailable}).Error; err != nil {
			return err
		}
	}
	return nil
}
