package seeders

import (
	"log"

	"github.com/Rakhulsr/go-storefront/app/configs"
	"github.com/Rakhulsr/go-storefront/app/db/fakers"
	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var seedCategoryNames = []string{"Sneakers", "Running", "Basketball", "Lifestyle"}

const productsPerCategory = 6

// DBSeed fills an empty database with sample categories and products plus the
// admin account from ADMIN_EMAIL / ADMIN_PASSWORD.
func DBSeed(db *gorm.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}

	for _, name := range seedCategoryNames {
		category := &models.Category{
			ID:   uuid.New().String(),
			Name: name,
			Slug: slug.Make(name),
		}
		if err := db.FirstOrCreate(category, "slug = ?", category.Slug).Error; err != nil {
			return err
		}

		for i := 0; i < productsPerCategory; i++ {
			product := fakers.ProductFaker(db, category)
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded %d products into category %s", productsPerCategory, name)
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	env := configs.LoadENV
	if env.AdminEmail == "" || env.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set; skipping admin seed.")
		return nil
	}

	admin := &models.User{
		ID:        uuid.New().String(),
		FirstName: "Store",
		LastName:  "Admin",
		Email:     env.AdminEmail,
		Password:  helpers.HashPassword(env.AdminPassword),
		Role:      models.RoleAdmin,
	}
	return db.FirstOrCreate(admin, "email = ?", admin.Email).Error
}
