package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "quickship/internal/adapters/in/http"
	"quickship/internal/adapters/out/cache"
	"quickship/internal/adapters/out/freight"
	"quickship/internal/adapters/out/kafka"
	"quickship/internal/adapters/out/notify"
	"quickship/internal/adapters/out/postgres"
	"quickship/internal/adapters/out/postgres/blockrepo"
	"quickship/internal/adapters/out/postgres/orderrepo"
	"quickship/internal/adapters/out/postgres/outboxrepo"
	"quickship/internal/adapters/out/postgres/profilerepo"
	"quickship/internal/core/application/usecases/commands"
	"quickship/internal/core/application/usecases/queries"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/jobs"
	"quickship/internal/pkg/inflight"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters to use cases. Built once at startup; every
// Create method hands out a ready-to-use handler sharing the root's
// singletons (cache, in-flight guard, provider clients).
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	uowFactory *postgres.GormUnitOfWorkFactory

	orderListCache *cache.InMemoryOrderListCache
	inflightGuard  *inflight.Guard
	notifier       *notify.SlogNotifier

	rateShopClient *freight.RateShopClient
	bookingClient  *freight.BookingClient
	labelClient    *freight.LabelClient
	eventPublisher *kafka.EventPublisher
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	rateShopClient, err := freight.NewRateShopClient(configs.RateShopBaseURL, configs.FreightAPIKey)
	if err != nil {
		return nil, fmt.Errorf("composition root: %w", err)
	}

	bookingClient, err := freight.NewBookingClient(configs.BookingBaseURL, configs.FreightAPIKey)
	if err != nil {
		return nil, fmt.Errorf("composition root: %w", err)
	}

	labelClient, err := freight.NewLabelClient(configs.LabelBaseURL, configs.FreightAPIKey)
	if err != nil {
		return nil, fmt.Errorf("composition root: %w", err)
	}

	eventPublisher, err := kafka.NewEventPublisher([]string{configs.KafkaHost}, configs.KafkaOutboxTopic)
	if err != nil {
		return nil, fmt.Errorf("composition root: %w", err)
	}

	return &CompositionRoot{
		configs:        configs,
		gormDB:         gormDB,
		logger:         logger,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(gormDB),
		orderListCache: cache.NewInMemoryOrderListCache(),
		inflightGuard:  inflight.NewGuard(),
		notifier:       notify.NewSlogNotifier(logger),
		rateShopClient: rateShopClient,
		bookingClient:  bookingClient,
		labelClient:    labelClient,
		eventPublisher: eventPublisher,
	}, nil
}

// WarmOrderListCache seeds the pending-label cache from the store. Called
// once at startup before the HTTP server accepts requests.
func (c *CompositionRoot) WarmOrderListCache(ctx context.Context) error {
	pending, err := c.claimerRepository().GetAllPendingLabel(ctx)
	if err != nil {
		return fmt.Errorf("warm order list cache: %w", err)
	}

	c.orderListCache.Warm(pending)
	return nil
}

func (c *CompositionRoot) CreateProcessQuickShipCommandHandler() commands.ProcessQuickShipCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})

	retry := commands.DefaultRetryPolicy()
	if c.configs.LabelMaxAttempts > 0 {
		retry.MaxAttempts = c.configs.LabelMaxAttempts
	}
	if c.configs.LabelRetryBaseDelay > 0 {
		retry.BaseDelay = c.configs.LabelRetryBaseDelay
	}

	return commands.NewProcessQuickShipCommandHandler(
		f,
		c.claimerRepository(),
		profilerepo.NewGormProfileRepository(c.gormDB),
		blockrepo.NewGormBlockedCarrierRepository(c.gormDB),
		c.rateShopClient,
		c.bookingClient,
		c.labelClient,
		c.notifier,
		c.orderListCache,
		c.inflightGuard,
		commands.ProfileDefaults{
			OriginProfileID:  c.configs.DefaultOriginProfileID,
			PackageProfileID: c.configs.DefaultPackageProfileID,
		},
		retry,
	)
}

func (c *CompositionRoot) CreateGetPendingLabelOrdersQueryHandler() queries.GetPendingLabelOrdersQueryHandler {
	return queries.NewGetPendingLabelOrdersQueryHandler(c.gormDB, c.orderListCache)
}

func (c *CompositionRoot) CreateGetOrderAuditQueryHandler() queries.GetOrderAuditQueryHandler {
	return queries.NewGetOrderAuditQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateProcessQuickShipCommandHandler(),
		c.CreateGetPendingLabelOrdersQueryHandler(),
		c.CreateGetOrderAuditQueryHandler(),
		c.configs.TenantID,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		c.eventPublisher,
		c.logger,
	)
}

// Close releases resources held by the root.
func (c *CompositionRoot) Close() error {
	return c.eventPublisher.Close()
}

// claimerRepository is the non-transactional order repository used for claim
// and release updates and for cache warming. Claims must be visible to other
// processes immediately, outside any unit of work.
func (c *CompositionRoot) claimerRepository() *orderrepo.GormOrderRepository {
	return orderrepo.NewGormOrderRepository(c.gormDB, noopTracker{})
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
