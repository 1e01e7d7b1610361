package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateAgentCommandIsNotConstructed = errors.New(
		"CreateAgentCommand must be created via NewCreateAgentCommand constructor",
	)
	ErrPhoneNumberIsRequired = errors.New("phone number is required")
)

// CreateAgentCommand represents a request to register a new delivery agent.
// Encapsulates the identity references and vehicle details needed to create
// the agent aggregate. The public agent ID is generated by the handler.
//
// Example:
//
//	cmd, err := NewCreateAgentCommand(userID, storeID, "+14155550123", agent.VehicleMotorcycle)
//	if err != nil {
//	    return fmt.Errorf("invalid agent data: %w", err)
//	}
//
//	handler := NewCreateAgentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register agent: %w", err)
//	}
//	fmt.Printf("Registered agent with ID: %s", cmd.AgentID())
type CreateAgentCommand struct { //nolint:recvcheck //using for validation
	agentID     kernel.UUID
	userID      kernel.UUID
	storeID     kernel.UUID
	phoneNumber string
	vehicleType agent.VehicleType

	guard guard.ConstructorGuard
}

// NewCreateAgentCommand creates a command to register a new delivery agent.
// Automatically generates the internal identifier for the agent.
// Validates the user and store references, phone number and vehicle type.
func NewCreateAgentCommand(
	userID kernel.UUID,
	storeID kernel.UUID,
	phoneNumber string,
	vehicleType agent.VehicleType,
) (CreateAgentCommand, error) {
	command := CreateAgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(kernel.NewUUID()),
		command.setUserID(userID),
		command.setStoreID(storeID),
		command.setPhoneNumber(phoneNumber),
		command.setVehicleType(vehicleType),
	); err != nil {
		return CreateAgentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateAgentCommandIsNotConstructed if validation fails.
func (c CreateAgentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAgentCommandIsNotConstructed)
}

// AgentID returns the generated internal identifier for the new agent.
func (c CreateAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

// UserID returns the linked user account reference.
func (c CreateAgentCommand) UserID() kernel.UUID {
	return c.userID
}

// StoreID returns the agent's home store reference.
func (c CreateAgentCommand) StoreID() kernel.UUID {
	return c.storeID
}

// PhoneNumber returns the agent's contact number.
func (c CreateAgentCommand) PhoneNumber() string {
	return c.phoneNumber
}

// VehicleType returns the agent's delivery vehicle.
func (c CreateAgentCommand) VehicleType() agent.VehicleType {
	return c.vehicleType
}

func (c *CreateAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.agentID = id
	return nil
}

func (c *CreateAgentCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *CreateAgentCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateAgentCommand) setPhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return ErrPhoneNumberIsRequired
	}

	c.phoneNumber = phoneNumber
	return nil
}

func (c *CreateAgentCommand) setVehicleType(vehicleType agent.VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}

	c.vehicleType = vehicleType
	return nil
}
