package commands

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/wallet"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

var ErrWalletAlreadyExists = errors.New("user already has a wallet")

// Role-based opening balances. Stores start with more spendable funds than
// riders because they front both product stock and delivery fees.
var (
	storeOpeningBalance = decimal.NewFromInt(1000)
	riderOpeningBalance = decimal.NewFromInt(500)
)

// OpenWalletCommandHandler opens a user's wallet with a role-based opening
// balance. Each user gets exactly one wallet; a second open attempt fails.
type OpenWalletCommandHandler struct {
	uowFactory WalletUoWFactory
	users      ports.UserDirectory
}

// NewOpenWalletCommandHandler creates a handler for wallet opening operations.
func NewOpenWalletCommandHandler(
	uowFactory WalletUoWFactory,
	users ports.UserDirectory,
) OpenWalletCommandHandler {
	return OpenWalletCommandHandler{
		uowFactory: uowFactory,
		users:      users,
	}
}

// Handle processes the wallet opening command.
// Resolves the owner's role to pick the opening balance, rejects duplicate
// wallets, and seeds the ledger with the opening transaction.
func (h OpenWalletCommandHandler) Handle(ctx context.Context, cmd OpenWalletCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	user, err := h.users.Get(ctx, cmd.OwnerID())
	if err != nil {
		return err
	}

	openingBalance, err := openingBalanceForRole(user.Role)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	walletRepo := uow.WalletRepository()

	_, err = walletRepo.GetByOwner(ctx, cmd.OwnerID())
	if err == nil {
		return ErrWalletAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := wallet.NewWallet(cmd.WalletID(), cmd.OwnerID(), openingBalance, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = walletRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func openingBalanceForRole(role ports.UserRole) (kernel.Money, error) {
	switch role {
	case ports.UserRoleStore:
		return kernel.NewMoney(storeOpeningBalance)
	case ports.UserRoleRider:
		return kernel.NewMoney(riderOpeningBalance)
	default:
		return kernel.Money{}, errs.NewValueIsInvalidError("role")
	}
}
