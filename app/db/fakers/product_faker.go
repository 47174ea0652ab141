package fakers

import (
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fakerSizes = []string{"38", "39", "40", "41", "42", "43", "44"}

var fakerImagePaths = []string{
	"/static/images/products/placeholder-1.jpg",
	"/static/images/products/placeholder-2.jpg",
	"/static/images/products/placeholder-3.jpg",
}

func ProductFaker(db *gorm.DB, category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	productID := uuid.New().String()

	price := decimal.NewFromInt(int64(rand.Intn(400)+50) * 1000)
	oldPrice := decimal.Zero
	if rand.Intn(2) == 0 {
		oldPrice = price.Add(decimal.NewFromInt(int64(rand.Intn(100)+10) * 1000))
	}

	numImages := rand.Intn(len(fakerImagePaths)) + 1
	images := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		images[i] = models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			URL:       fakerImagePaths[rand.Intn(len(fakerImagePaths))],
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	numSizes := rand.Intn(4) + 2
	sizes := make([]models.ProductSize, 0, numSizes)
	for _, s := range rand.Perm(len(fakerSizes))[:numSizes] {
		sizes = append(sizes, models.ProductSize{
			ProductID: productID,
			Size:      fakerSizes[s],
			Stock:     rand.Intn(20) + 1,
		})
	}

	return &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       price,
		OldPrice:    oldPrice,
		ImagePath:   images[0].URL,
		CategoryID:  category.ID,
		Featured:    rand.Intn(3) == 0,
		Sizes:       sizes,
		Images:      images,
	}
}
