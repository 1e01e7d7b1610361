package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// ReportIssueCommandHandler files an issue record against a delivery.
// The delivery itself is not modified; issues are an append-only side
// channel.
type ReportIssueCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewReportIssueCommandHandler creates a handler for issue reports.
func NewReportIssueCommandHandler(uowFactory DeliveryUoWFactory) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the issue report. The delivery must exist; its status
// does not matter.
func (h ReportIssueCommandHandler) Handle(ctx context.Context, command ReportIssueCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	issue, err := delivery.NewIssue(
		kernel.NewUUID(), deliveryEntity.ID(), command.IssueType(), command.Description(),
	)
	if err != nil {
		return err
	}

	if err = deliveryRepo.AddIssue(ctx, issue); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
