package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is the sentinel error for unauthorized actors.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition is the sentinel error for rejected status moves.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidState is the sentinel error for operations attempted while the
	// target object is in a state that does not permit them.
	ErrInvalidState = errors.New("invalid state")

	// ErrInsufficientFunds is the sentinel error for wallet debits that would
	// drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadySettled is the sentinel error for duplicate settlement attempts.
	ErrAlreadySettled = errors.New("order already settled")
)

// ForbiddenError indicates the acting user is not the authorized party for
// the requested operation.
type ForbiddenError struct {
	ActorID string
	Action  string
}

// NewForbiddenError creates a ForbiddenError for the given actor and action.
func NewForbiddenError(actorID, action string) *ForbiddenError {
	return &ForbiddenError{ActorID: actorID, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: actor %s may not %s", ErrForbidden, sanitize(e.ActorID), sanitize(e.Action))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError indicates a status guard rejected the requested move.
type InvalidTransitionError struct {
	From    string
	Trigger string
}

// NewInvalidTransitionError creates an InvalidTransitionError describing the
// current status and the rejected trigger.
func NewInvalidTransitionError(from, trigger string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Trigger: trigger}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, sanitize(e.Trigger), sanitize(e.From))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidStateError indicates an operation was attempted while the object is
// in a state that does not permit it, such as bidding on an order that has
// left the bidding phase.
type InvalidStateError struct {
	State     string
	Operation string
}

// NewInvalidStateError creates an InvalidStateError for the given state and
// operation.
func NewInvalidStateError(state, operation string) *InvalidStateError {
	return &InvalidStateError{State: state, Operation: operation}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed in %s", ErrInvalidState, sanitize(e.Operation), sanitize(e.State))
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// InsufficientFundsError indicates a debit would exceed the wallet balance.
// Balance and Amount carry the string forms of the amounts involved.
type InsufficientFundsError struct {
	WalletID string
	Balance  string
	Amount   string
}

// NewInsufficientFundsError creates an InsufficientFundsError for the given
// wallet, current balance and requested amount.
func NewInsufficientFundsError(walletID, balance, amount string) *InsufficientFundsError {
	return &InsufficientFundsError{WalletID: walletID, Balance: balance, Amount: amount}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: wallet %s holds %s, requested %s",
		ErrInsufficientFunds, sanitize(e.WalletID), sanitize(e.Balance), sanitize(e.Amount))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// AlreadySettledError indicates settlement was requested for an order that
// has already been settled. The repeated attempt performs no wallet mutations.
type AlreadySettledError struct {
	OrderID string
}

// NewAlreadySettledError creates an AlreadySettledError for the given order.
func NewAlreadySettledError(orderID string) *AlreadySettledError {
	return &AlreadySettledError{OrderID: orderID}
}

func (e *AlreadySettledError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadySettled, sanitize(e.OrderID))
}

func (e *AlreadySettledError) Unwrap() error {
	return ErrAlreadySettled
}
