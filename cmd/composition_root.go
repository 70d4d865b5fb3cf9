package cmd

import (
	"context"
	"errors"

	checkouthttp "checkout/internal/adapters/in/http"
	"checkout/internal/adapters/in/http/openapi"
	"checkout/internal/adapters/out/courier"
	"checkout/internal/adapters/out/geodata"
	"checkout/internal/adapters/out/kafka"
	"checkout/internal/adapters/out/postgres"
	"checkout/internal/adapters/out/postgres/orderrepo"
	"checkout/internal/adapters/out/postgres/sessionrepo"
	"checkout/internal/adapters/out/receipthtml"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
	"checkout/internal/jobs"
	"checkout/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dataset    *geodata.Dataset
	composer   *services.OrderComposer
	renderer   *receipthtml.Renderer
	courier    *courier.Client
	gateway    ports.OrderGateway
	events     ports.OrderEventPublisher
	closers    []func() error
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := metrics.New("service")

	dataset, err := geodata.Default()
	if err != nil {
		return nil, err
	}
	composer, err := services.NewOrderComposer(services.NewInvoiceGenerator())
	if err != nil {
		return nil, err
	}
	renderer, err := receipthtml.NewRenderer()
	if err != nil {
		return nil, err
	}

	courierOpts := []courier.Option{courier.WithMetrics(m), courier.WithLogger(logger)}
	direct, err := courier.NewClient(courier.Config{
		BaseURL:   configs.CourierBaseURL,
		APIKey:    configs.CourierAPIKey,
		SecretKey: configs.CourierSecretKey,
		Timeout:   configs.CourierTimeout,
	}, courierOpts...)
	if err != nil {
		return nil, err
	}

	var gateway ports.OrderGateway = direct
	if configs.ProxyURL != "" {
		gateway, err = courier.NewProxyClient(configs.ProxyURL, configs.CourierTimeout, courierOpts...)
		if err != nil {
			return nil, err
		}
	}

	root := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dataset:    dataset,
		composer:   composer,
		renderer:   renderer,
		courier:    direct,
		gateway:    gateway,
		metrics:    m,
		logger:     logger,
	}

	var events ports.OrderEventPublisher = kafka.NoopPublisher{}
	if configs.KafkaEnabled() {
		publisher := kafka.NewOrderPlacedPublisher(kafka.ParseBrokers(configs.KafkaHost), configs.KafkaOrderPlacedTopic)
		root.closers = append(root.closers, publisher.Close)
		events = publisher
	}
	root.events = countingPublisher{next: events, metrics: m}

	return root, nil
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateStartCheckoutCommandHandler() commands.StartCheckoutCommandHandler {
	return commands.NewStartCheckoutCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateChangeQuantityCommandHandler() commands.ChangeQuantityCommandHandler {
	return commands.NewChangeQuantityCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSelectAddressCommandHandler() commands.SelectAddressCommandHandler {
	return commands.NewSelectAddressCommandHandler(c.sessionUoWFactory(), c.dataset)
}

func (c *CompositionRoot) CreateUpdateDeliveryDetailsCommandHandler() commands.UpdateDeliveryDetailsCommandHandler {
	return commands.NewUpdateDeliveryDetailsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSelectShippingTierCommandHandler() commands.SelectShippingTierCommandHandler {
	return commands.NewSelectShippingTierCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateDismissConfirmationCommandHandler() commands.DismissConfirmationCommandHandler {
	return commands.NewDismissConfirmationCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSweepStaleSessionsCommandHandler() commands.SweepStaleSessionsCommandHandler {
	return commands.NewSweepStaleSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() (commands.SubmitOrderCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(
		f, c.composer, c.gateway, c.renderer, c.events, c.configs.CourierTimeout, c.logger,
	)
}

func (c *CompositionRoot) CreateGetCheckoutSummaryQueryHandler() queries.GetCheckoutSummaryQueryHandler {
	return queries.NewGetCheckoutSummaryQueryHandler(
		sessionrepo.NewGormSessionRepository(c.gormDB), c.dataset, c.composer,
	)
}

func (c *CompositionRoot) CreateGetReceiptQueryHandler() queries.GetReceiptQueryHandler {
	return queries.NewGetReceiptQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB), c.renderer)
}

func (c *CompositionRoot) CreateListDivisionsQueryHandler() queries.ListDivisionsQueryHandler {
	return queries.NewListDivisionsQueryHandler(c.dataset)
}

// CreateRouter wires every use case into the echo router.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	submit, err := c.CreateSubmitOrderCommandHandler()
	if err != nil {
		return nil, err
	}
	contract, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}

	server := checkouthttp.NewServer(checkouthttp.Handlers{
		StartCheckout:         c.CreateStartCheckoutCommandHandler(),
		ChangeQuantity:        c.CreateChangeQuantityCommandHandler(),
		SelectAddress:         c.CreateSelectAddressCommandHandler(),
		UpdateDeliveryDetails: c.CreateUpdateDeliveryDetailsCommandHandler(),
		SelectShippingTier:    c.CreateSelectShippingTierCommandHandler(),
		SubmitOrder:           submit,
		DismissConfirmation:   c.CreateDismissConfirmationCommandHandler(),
		CheckoutSummary:       c.CreateGetCheckoutSummaryQueryHandler(),
		Receipt:               c.CreateGetReceiptQueryHandler(),
		Divisions:             c.CreateListDivisionsQueryHandler(),
		Forwarder:             c.courier,
	}, c.logger)

	return checkouthttp.NewRouter(server, checkouthttp.RouterConfig{
		Contract:    contract,
		Metrics:     c.metrics,
		Logger:      c.logger,
		SubmitRate:  c.configs.SubmitRateLimit,
		SubmitBurst: c.configs.SubmitBurst,
	})
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sweep, err := jobs.NewSessionSweepJob(
		c.CreateSweepStaleSessionsCommandHandler(),
		c.configs.SessionTTL,
		commands.SubmitLease(c.configs.CourierTimeout),
		c.configs.SweepSchedule,
		c.metrics,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(sweep), nil
}

// Close releases the outbound clients.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// countingPublisher counts accepted orders before publishing them.
type countingPublisher struct {
	next    ports.OrderEventPublisher
	metrics *metrics.Metrics
}

func (p countingPublisher) PublishOrderPlaced(ctx context.Context, result *order.Result) error {
	p.metrics.OrderPlaced()
	return p.next.PublishOrderPlaced(ctx, result)
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
