package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

// fakeProductRepo serves products from an in-memory map, with an optional
// forced error for the failure paths.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*models.Product
	err      error
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	return f.GetAll(ctx)
}

func (f *fakeProductRepo) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	products, err := f.GetAll(ctx)
	return products, int64(len(products)), err
}

func (f *fakeProductRepo) GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, f.err
}

func (f *fakeProductRepo) SearchProductsPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, f.err
}

func (f *fakeProductRepo) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return nil, f.err
}

func (f *fakeProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := f.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	return f.Create(ctx, product)
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) ReplaceSizes(ctx context.Context, productID string, sizes []models.ProductSize) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[productID]; ok {
		p.Sizes = sizes
	}
	return nil
}

func (f *fakeProductRepo) DecrementSizeStock(ctx context.Context, tx *gorm.DB, productID, size string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range p.Sizes {
		if p.Sizes[i].Size == size && p.Sizes[i].Stock >= qty {
			p.Sizes[i].Stock -= qty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) AddImage(ctx context.Context, image *models.ProductImage) error {
	return nil
}

func (f *fakeProductRepo) GetImageByID(ctx context.Context, id string) (*models.ProductImage, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) DeleteImage(ctx context.Context, id string) error { return nil }

func (f *fakeProductRepo) CountProducts(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.products)), nil
}

// fakeOrderRepo records created orders so tests can assert what was written.
type fakeOrderRepo struct {
	mu      sync.Mutex
	created []*models.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.created {
		if o.OrderCode == orderCode {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetAllOrders(ctx context.Context) ([]models.Order, error) { return nil, nil }

func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) error {
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeOrderRepo) CountOrders(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.created)), nil
}

// fakeTransactionChecker returns a canned gateway response.
type fakeTransactionChecker struct {
	response *coreapi.TransactionStatusResponse
	err      *midtrans.Error
}

func (f *fakeTransactionChecker) CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error) {
	return f.response, f.err
}

// fakeSnapCreator captures the transaction request it was asked to create.
type fakeSnapCreator struct {
	gotReq   *snap.Request
	response *snap.Response
	err      *midtrans.Error
}

func (f *fakeSnapCreator) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.gotReq = req
	return f.response, f.err
}
