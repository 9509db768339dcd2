package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a store's request to post a new delivery
// order to the marketplace. The order opens in bidding so riders can offer
// their delivery fees.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, storeID,
//	    "Birthday cake", price, feeCeiling,
//	    "12 Main St", "Alice", "+15550100")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	storeID         kernel.UUID
	productName     string
	productPrice    kernel.Money
	feeCeiling      kernel.Money
	deliveryAddress string
	clientName      string
	clientPhone     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to post a new delivery order.
// Validates identifiers, requires all descriptive fields, and requires both
// amounts to be strictly positive.
func NewCreateOrderCommand(
	orderID, storeID kernel.UUID,
	productName string,
	productPrice, feeCeiling kernel.Money,
	deliveryAddress, clientName, clientPhone string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStoreID(storeID),
		cmd.setProductName(productName),
		cmd.setProductPrice(productPrice),
		cmd.setFeeCeiling(feeCeiling),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setClient(clientName, clientPhone),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StoreID returns the store posting the order.
func (c CreateOrderCommand) StoreID() kernel.UUID {
	return c.storeID
}

// ProductName returns the description of the goods.
func (c CreateOrderCommand) ProductName() string {
	return c.productName
}

// ProductPrice returns the value of the goods.
func (c CreateOrderCommand) ProductPrice() kernel.Money {
	return c.productPrice
}

// FeeCeiling returns the store's offered delivery fee ceiling.
func (c CreateOrderCommand) FeeCeiling() kernel.Money {
	return c.feeCeiling
}

// DeliveryAddress returns the destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// ClientName returns the receiving client's name.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// ClientPhone returns the receiving client's phone contact.
func (c CreateOrderCommand) ClientPhone() string {
	return c.clientPhone
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}

	c.productName = productName
	return nil
}

func (c *CreateOrderCommand) setProductPrice(productPrice kernel.Money) error {
	if !productPrice.IsPositive() {
		return errs.NewValueIsInvalidError("productPrice")
	}

	c.productPrice = productPrice
	return nil
}

func (c *CreateOrderCommand) setFeeCeiling(feeCeiling kernel.Money) error {
	if !feeCeiling.IsPositive() {
		return errs.NewValueIsInvalidError("feeCeiling")
	}

	c.feeCeiling = feeCeiling
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setClient(clientName, clientPhone string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	if clientPhone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}

	c.clientName = clientName
	c.clientPhone = clientPhone
	return nil
}
