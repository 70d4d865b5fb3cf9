package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/model/payment"
	"checkout/internal/core/domain/model/shipping"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the archive against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.LineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_lines, orders").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddThenGet_RecordIsFrozen() {
	ctx := context.Background()
	result := suite.newResult("INV-01HXA", "")

	suite.Require().NoError(suite.repository.Add(ctx, result))

	got, err := suite.repository.Get(ctx, "INV-01HXA")
	suite.Require().NoError(err)

	suite.Equal("INV-01HXA", got.Invoice().ID())
	suite.Equal(result.Invoice().CreatedAtEpochMillis(), got.Invoice().CreatedAtEpochMillis())
	suite.Equal("Karim", got.Contact().FullName())
	suite.Equal("01812345678", got.Contact().Phone())
	suite.Equal("12 Green Rd, Dhaka, Dhaka", got.AddressText())
	suite.Equal(shipping.NearZone, got.ShippingTier())
	suite.Equal(payment.CashOnDelivery, got.PaymentMethod())
	suite.Empty(got.Notes())
	suite.Equal("499.5", got.Pricing().Subtotal.String())
	suite.Equal("60", got.Pricing().DeliveryCost.String())
	suite.Equal("499.5", got.Pricing().Total.String())

	lines := got.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal("sku-1", lines[0].ID())
	suite.Equal(2, lines[0].Quantity())
	suite.Equal("99.5", lines[1].UnitPrice().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateInvoice_Fails() {
	ctx := context.Background()
	first := suite.newResult("INV-01HXB", "")
	second := suite.newResult("INV-01HXB", "second attempt")

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().Error(suite.repository.Add(ctx, second))

	got, err := suite.repository.Get(ctx, "INV-01HXB")
	suite.Require().NoError(err)
	suite.Empty(got.Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedResult_Fails() {
	err := suite.repository.Add(context.Background(), &order.Result{})

	suite.Require().ErrorIs(err, order.ErrResultIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	got, err := suite.repository.Get(context.Background(), "INV-MISSING")

	suite.Nil(got)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newResult(invoiceID, notes string) *order.Result {
	invoice, err := order.NewInvoice(invoiceID, time.UnixMilli(1714557600123).UTC())
	suite.Require().NoError(err)

	price, err := kernel.ParseMoney("99.50")
	suite.Require().NoError(err)
	lines := []order.Line{
		order.NewLine("sku-1", "Panjabi", kernel.MustMoneyFromInt(200), 2, "/p.jpg"),
		order.NewLine("sku-2", "Tupi", price, 1, ""),
	}
	subtotal := lines[0].Amount().Add(lines[1].Amount())

	result, err := order.NewResult(
		invoice,
		checkout.NewContactInfo("Karim", "01812345678"),
		"12 Green Rd, Dhaka, Dhaka",
		shipping.NearZone,
		payment.CashOnDelivery,
		notes,
		lines,
		order.Pricing{Subtotal: subtotal, DeliveryCost: shipping.NearZone.FlatCost(), Total: subtotal},
	)
	suite.Require().NoError(err)
	return result
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
