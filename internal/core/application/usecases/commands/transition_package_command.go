package commands

import (
	"errors"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/guard"
)

var ErrTransitionPackageCommandIsNotConstructed = errors.New(
	"TransitionPackageCommand must be created via NewTransitionPackageCommand constructor",
)

// TransitionPackageCommand asks the package state machine for a status change.
// The requested status is parsed here so an unknown value fails validation
// before any unit of work is opened.
type TransitionPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.ID
	status    parcel.Status
	comment   string
	actorID   *kernel.ID

	guard guard.ConstructorGuard
}

func NewTransitionPackageCommand(
	packageID kernel.ID,
	requestedStatus string,
	comment string,
	actorID *kernel.ID,
) (TransitionPackageCommand, error) {
	status, statusErr := parcel.ParseStatus(requestedStatus)
	comment = strings.TrimSpace(comment)

	if err := errors.Join(
		validateID("package id", packageID),
		statusErr,
		validateComment(comment),
		validateActor(actorID),
	); err != nil {
		return TransitionPackageCommand{}, err
	}

	return TransitionPackageCommand{
		packageID: packageID,
		status:    status,
		comment:   comment,
		actorID:   actorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionPackageCommand) Validate() error {
	return c.guard.Validate(ErrTransitionPackageCommandIsNotConstructed)
}

func (c TransitionPackageCommand) PackageID() kernel.ID  { return c.packageID }
func (c TransitionPackageCommand) Status() parcel.Status { return c.status }
func (c TransitionPackageCommand) Comment() string       { return c.comment }
func (c TransitionPackageCommand) ActorID() *kernel.ID   { return c.actorID }
