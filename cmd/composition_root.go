package cmd

import (
	"log/slog"
	"time"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers. Each handler
// gets its own unit of work factory so transactions never leak between
// requests.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	closer     func() error
}

// NewCompositionRoot builds the object graph. When no Kafka host is
// configured, status events are dropped via the noop publisher so the
// service still runs in local setups.
func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	root := CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewNoopPublisher(),
	}

	if configs.KafkaHost != "" {
		publisher, err := kafka.NewPublisher([]string{configs.KafkaHost}, configs.KafkaDeliveryStatusTopic)
		if err != nil {
			return CompositionRoot{}, err
		}
		root.publisher = publisher
		root.closer = publisher.Close
	}

	return root, nil
}

// Close releases the Kafka producer, if one was created.
func (c *CompositionRoot) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateAgentCommandHandler() commands.CreateAgentCommandHandler {
	return commands.NewCreateAgentCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateToggleAvailabilityCommandHandler() commands.ToggleAvailabilityCommandHandler {
	return commands.NewToggleAvailabilityCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateAddZipCoverageCommandHandler() commands.AddZipCoverageCommandHandler {
	return commands.NewAddZipCoverageCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateRemoveZipCoverageCommandHandler() commands.RemoveZipCoverageCommandHandler {
	return commands.NewRemoveZipCoverageCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.fullUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	return commands.NewAcceptDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateArriveAtStoreCommandHandler() commands.ArriveAtStoreCommandHandler {
	return commands.NewArriveAtStoreCommandHandler(c.deliveryUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateVerifyPickupCommandHandler() commands.VerifyPickupCommandHandler {
	return commands.NewVerifyPickupCommandHandler(c.deliveryUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.deliveryUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.fullUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.fullUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateFailDeliveryCommandHandler() commands.FailDeliveryCommandHandler {
	return commands.NewFailDeliveryCommandHandler(c.fullUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateReportIssueCommandHandler() commands.ReportIssueCommandHandler {
	return commands.NewReportIssueCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRateDeliveryCommandHandler() commands.RateDeliveryCommandHandler {
	return commands.NewRateDeliveryCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleDeliveriesCommandHandler() commands.CancelStaleDeliveriesCommandHandler {
	return commands.NewCancelStaleDeliveriesCommandHandler(c.fullUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateGetAgentDashboardQueryHandler() queries.GetAgentDashboardQueryHandler {
	return queries.NewGetAgentDashboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAgentEarningsQueryHandler() queries.GetAgentEarningsQueryHandler {
	return queries.NewGetAgentEarningsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryTrackingQueryHandler() queries.GetDeliveryTrackingQueryHandler {
	return queries.NewGetDeliveryTrackingQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP server with every handler wired in.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateAgent:         c.CreateCreateAgentCommandHandler(),
		ToggleAvailability:  c.CreateToggleAvailabilityCommandHandler(),
		UpdateLocation:      c.CreateUpdateLocationCommandHandler(),
		AddZipCoverage:      c.CreateAddZipCoverageCommandHandler(),
		RemoveZipCoverage:   c.CreateRemoveZipCoverageCommandHandler(),
		AssignOrder:         c.CreateAssignOrderCommandHandler(),
		AcceptDelivery:      c.CreateAcceptDeliveryCommandHandler(),
		ArriveAtStore:       c.CreateArriveAtStoreCommandHandler(),
		VerifyPickup:        c.CreateVerifyPickupCommandHandler(),
		StartTransit:        c.CreateStartTransitCommandHandler(),
		CompleteDelivery:    c.CreateCompleteDeliveryCommandHandler(),
		CancelDelivery:      c.CreateCancelDeliveryCommandHandler(),
		FailDelivery:        c.CreateFailDeliveryCommandHandler(),
		ReportIssue:         c.CreateReportIssueCommandHandler(),
		RateDelivery:        c.CreateRateDeliveryCommandHandler(),
		GetAgentDashboard:   c.CreateGetAgentDashboardQueryHandler(),
		GetAgentEarnings:    c.CreateGetAgentEarningsQueryHandler(),
		GetDeliveryTracking: c.CreateGetDeliveryTrackingQueryHandler(),
	})
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager(staleTimeout time.Duration, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCancelStaleDeliveriesCommandHandler(), staleTimeout, logger)
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
