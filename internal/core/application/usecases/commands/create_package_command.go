package commands

import (
	"errors"
	"unicode/utf8"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrCreatePackageCommandIsNotConstructed = errors.New(
	"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
)

// CreatePackageCommand registers a new package for a client. The package
// always starts pending.
//
// Example:
//
//	cmd, err := NewCreatePackageCommand(clientID, details, route, &actorID)
//	if err != nil {
//	    return fmt.Errorf("invalid package data: %w", err)
//	}
//	p, err := handler.Handle(ctx, cmd)
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	clientID kernel.ID
	details  parcel.Details
	route    kernel.Route
	actorID  *kernel.ID

	guard guard.ConstructorGuard
}

func NewCreatePackageCommand(
	clientID kernel.ID,
	details parcel.Details,
	route kernel.Route,
	actorID *kernel.ID,
) (CreatePackageCommand, error) {
	cmd := CreatePackageCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setClientID(clientID),
		required("details", details.Validate()),
		required("route", route.Validate()),
		validateActor(actorID),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	cmd.details = details
	cmd.route = route
	cmd.actorID = actorID
	return cmd, nil
}

func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

func (c CreatePackageCommand) ClientID() kernel.ID     { return c.clientID }
func (c CreatePackageCommand) Details() parcel.Details { return c.details }
func (c CreatePackageCommand) Route() kernel.Route     { return c.route }
func (c CreatePackageCommand) ActorID() *kernel.ID     { return c.actorID }

func (c *CreatePackageCommand) setClientID(id kernel.ID) error {
	if err := validateID("client id", id); err != nil {
		return err
	}
	c.clientID = id
	return nil
}

// MaxCommentLength bounds a caller supplied transition comment. A shipment
// cascade prefixes it with "shipment <status>: " in the ledger entry.
const MaxCommentLength = history.MaxCommentLength - 100

func validateComment(comment string) error {
	if n := utf8.RuneCountInString(comment); n > MaxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", n, 0, MaxCommentLength)
	}
	return nil
}

// validateActor accepts a missing actor; a present one must be a constructed ID.
func validateActor(actorID *kernel.ID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("acting user id", err)
	}
	return nil
}

func validateID(name string, id kernel.ID) error {
	return required(name, id.Validate())
}

func required(name string, err error) error {
	if err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
