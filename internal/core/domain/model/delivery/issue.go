package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// IssueType classifies a problem reported against a delivery.
type IssueType int

const (
	// IssueUnknown represents an invalid or undefined issue type.
	IssueUnknown IssueType = iota
	IssueDelay
	IssueDamage
	IssueWrongLocation
	IssueCustomerUnavailable
	IssueTraffic
	IssueVehicle
	IssueWeather
	IssueOther
)

func getIssueTypeStrings() map[IssueType]string {
	return map[IssueType]string{
		IssueUnknown:             "unknown",
		IssueDelay:               "delay",
		IssueDamage:              "damage",
		IssueWrongLocation:       "location",
		IssueCustomerUnavailable: "customer",
		IssueTraffic:             "traffic",
		IssueVehicle:             "vehicle",
		IssueWeather:             "weather",
		IssueOther:               "other",
	}
}

// Validate checks that the issue type is one of the defined kinds.
func (t IssueType) Validate() error {
	if t == IssueUnknown {
		return errs.NewValueIsInvalidErrorWithCause("issue type is invalid",
			fmt.Errorf("%d is not a valid issue type", t))
	}
	if _, ok := getIssueTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("issue type is invalid",
			fmt.Errorf("%d is not a valid issue type", t))
	}
	return nil
}

// String returns the persisted name of the issue type.
func (t IssueType) String() string {
	if str, ok := getIssueTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Issue errors.
var (
	// ErrIssueIsNotConstructed is returned when using an improperly
	// initialized Issue.
	ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue constructor")
	// ErrIssueDescriptionIsRequired is returned when filing an issue without
	// a description.
	ErrIssueDescriptionIsRequired = errs.NewValueIsRequiredError("issue description")
)

// Issue is an append-only problem record against a delivery, filed by the
// agent or generated by the system (for example on cancellation). Issues
// are resolved, never deleted.
type Issue struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	issueType   IssueType
	description string
	resolved    bool
	resolution  string

	guard guard.ConstructorGuard
}

// NewIssue files an unresolved issue against the given delivery.
func NewIssue(
	id kernel.UUID, deliveryID kernel.UUID, issueType IssueType, description string,
) (*Issue, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), issueType.Validate()); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, ErrIssueDescriptionIsRequired
	}

	return &Issue{
		id:          id,
		deliveryID:  deliveryID,
		issueType:   issueType,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreIssue reconstructs an issue from persistent storage.
func RestoreIssue(
	id kernel.UUID, deliveryID kernel.UUID, issueType IssueType,
	description string, resolved bool, resolution string,
) (*Issue, error) {
	issue, err := NewIssue(id, deliveryID, issueType, description)
	if err != nil {
		return nil, err
	}

	issue.resolved = resolved
	issue.resolution = resolution
	return issue, nil
}

// Validate checks that the issue was created via its constructor.
func (i *Issue) Validate() error {
	if i == nil {
		return ErrIssueIsNotConstructed
	}
	return i.guard.Validate(ErrIssueIsNotConstructed)
}

// ID returns the issue identifier.
func (i *Issue) ID() kernel.UUID {
	return i.id
}

// DeliveryID returns the delivery this issue belongs to.
func (i *Issue) DeliveryID() kernel.UUID {
	return i.deliveryID
}

// IssueType returns the problem classification.
func (i *Issue) IssueType() IssueType {
	return i.issueType
}

// Description returns the reporter's free-text description.
func (i *Issue) Description() string {
	return i.description
}

// Resolved reports whether the issue has been closed out.
func (i *Issue) Resolved() bool {
	return i.resolved
}

// Resolution returns the free-text resolution note, empty while open.
func (i *Issue) Resolution() string {
	return i.resolution
}

// Resolve closes the issue with a resolution note.
func (i *Issue) Resolve(resolution string) error {
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}

	i.resolved = true
	i.resolution = resolution
	return nil
}
