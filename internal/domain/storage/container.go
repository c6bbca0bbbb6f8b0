package storage

import (
	"context"
	"errors"

	"shopadmin/internal/domain/admindashboard"
	"shopadmin/internal/domain/customers"
	"shopadmin/internal/domain/orders"
	"shopadmin/internal/domain/products"
	"shopadmin/internal/domain/trialproducts"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool          *pgxpool.Pool
	Products      products.Store
	TrialProducts trialproducts.Store
	Orders        orders.Store
	Customers     customers.Store
	Dashboard     admindashboard.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:          db,
		Products:      products.NewRepository(db),
		TrialProducts: trialproducts.NewRepository(db),
		Orders:        orders.NewRepository(db),
		Customers:     customers.NewRepository(db),
		Dashboard:     admindashboard.NewRepository(db),
	}
}

// Ping checks the database connection behind the container.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return errors.New("storage container has no database pool")
	}
	return c.pool.Ping(ctx)
}
