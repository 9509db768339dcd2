// Package http exposes the marketplace operations over a REST API.
// It coordinates between HTTP handlers and application use cases and maps
// domain error kinds onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Error is the JSON body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server implements the REST API for the marketplace.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	openWalletHandler         commands.OpenWalletCommandHandler
	createOrderHandler        commands.CreateOrderCommandHandler
	placeBidHandler           commands.PlaceBidCommandHandler
	selectBidHandler          commands.SelectBidCommandHandler
	depositEscrowHandler      commands.DepositEscrowCommandHandler
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler
	markOrderReviewedHandler  commands.MarkOrderReviewedCommandHandler

	// Query handlers
	getOpenOrdersHandler      queries.GetOpenOrdersQueryHandler
	getWalletStatementHandler queries.GetWalletStatementQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	openWalletHandler commands.OpenWalletCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	placeBidHandler commands.PlaceBidCommandHandler,
	selectBidHandler commands.SelectBidCommandHandler,
	depositEscrowHandler commands.DepositEscrowCommandHandler,
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	markOrderReviewedHandler commands.MarkOrderReviewedCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getWalletStatementHandler queries.GetWalletStatementQueryHandler,
) *Server {
	return &Server{
		openWalletHandler:         openWalletHandler,
		createOrderHandler:        createOrderHandler,
		placeBidHandler:           placeBidHandler,
		selectBidHandler:          selectBidHandler,
		depositEscrowHandler:      depositEscrowHandler,
		advanceOrderStatusHandler: advanceOrderStatusHandler,
		markOrderReviewedHandler:  markOrderReviewedHandler,
		getOpenOrdersHandler:      getOpenOrdersHandler,
		getWalletStatementHandler: getWalletStatementHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/wallets", s.OpenWallet)
	api.GET("/wallets/:ownerId/statement", s.GetWalletStatement)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/:orderId/bids", s.PlaceBid)
	api.POST("/orders/:orderId/selected-bid", s.SelectBid)
	api.POST("/orders/:orderId/escrow-deposits", s.DepositEscrow)
	api.POST("/orders/:orderId/status", s.AdvanceOrderStatus)
	api.POST("/orders/:orderId/review", s.MarkOrderReviewed)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// OpenWalletRequest is the body for POST /api/v1/wallets.
type OpenWalletRequest struct {
	OwnerID string `json:"owner_id"`
}

// OpenWalletResponse returns the identifier of the newly opened wallet.
type OpenWalletResponse struct {
	WalletID string `json:"wallet_id"`
}

// OpenWallet handles POST /api/v1/wallets - opens a wallet for a user.
func (s *Server) OpenWallet(ctx echo.Context) error {
	var req OpenWalletRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	ownerID, err := kernel.UUIDFromString(req.OwnerID)
	if err != nil {
		return badRequest(ctx, "Invalid owner id: "+err.Error())
	}

	walletID := kernel.NewUUID()
	cmd, err := commands.NewOpenWalletCommand(walletID, ownerID)
	if err != nil {
		return badRequest(ctx, "Invalid wallet data: "+err.Error())
	}

	if handleErr := s.openWalletHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, OpenWalletResponse{WalletID: walletID.String()})
}

// CreateOrderRequest is the body for POST /api/v1/orders.
// Monetary amounts travel as decimal strings to avoid float rounding.
type CreateOrderRequest struct {
	StoreID         string `json:"store_id"`
	ProductName     string `json:"product_name"`
	ProductPrice    string `json:"product_price"`
	FeeCeiling      string `json:"fee_ceiling"`
	DeliveryAddress string `json:"delivery_address"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
}

// CreateOrderResponse returns the identifier of the newly posted order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder handles POST /api/v1/orders - posts a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	storeID, err := kernel.UUIDFromString(req.StoreID)
	if err != nil {
		return badRequest(ctx, "Invalid store id: "+err.Error())
	}

	productPrice, err := kernel.NewMoneyFromString(req.ProductPrice)
	if err != nil {
		return badRequest(ctx, "Invalid product price: "+err.Error())
	}

	feeCeiling, err := kernel.NewMoneyFromString(req.FeeCeiling)
	if err != nil {
		return badRequest(ctx, "Invalid fee ceiling: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, storeID,
		req.ProductName,
		productPrice, feeCeiling,
		req.DeliveryAddress, req.ClientName, req.ClientPhone,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// OpenOrder is one entry in the bidding feed.
type OpenOrder struct {
	ID              string    `json:"id"`
	StoreID         string    `json:"store_id"`
	ProductName     string    `json:"product_name"`
	ProductPrice    string    `json:"product_price"`
	FeeCeiling      string    `json:"fee_ceiling"`
	DeliveryAddress string    `json:"delivery_address"`
	ClientName      string    `json:"client_name"`
	BidsCount       int       `json:"bids_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// GetOpenOrders handles GET /api/v1/orders/open - the feed riders browse.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve open orders")
	}

	response := make([]OpenOrder, len(orders))
	for i, o := range orders {
		response[i] = OpenOrder{
			ID:              o.ID.String(),
			StoreID:         o.StoreID.String(),
			ProductName:     o.ProductName,
			ProductPrice:    o.ProductPrice.String(),
			FeeCeiling:      o.FeeCeiling.String(),
			DeliveryAddress: o.DeliveryAddress,
			ClientName:      o.ClientName,
			BidsCount:       o.BidsCount,
			CreatedAt:       o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlaceBidRequest is the body for POST /api/v1/orders/:orderId/bids.
type PlaceBidRequest struct {
	RiderID string `json:"rider_id"`
	Amount  string `json:"amount"`
}

// PlaceBid handles POST /api/v1/orders/:orderId/bids - places or amends a bid.
func (s *Server) PlaceBid(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req PlaceBidRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return badRequest(ctx, "Invalid rider id: "+err.Error())
	}

	amount, err := kernel.NewMoneyFromString(req.Amount)
	if err != nil {
		return badRequest(ctx, "Invalid bid amount: "+err.Error())
	}

	cmd, err := commands.NewPlaceBidCommand(orderID, riderID, amount)
	if err != nil {
		return badRequest(ctx, "Invalid bid data: "+err.Error())
	}

	if handleErr := s.placeBidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SelectBidRequest is the body for POST /api/v1/orders/:orderId/selected-bid.
type SelectBidRequest struct {
	ActorID string `json:"actor_id"`
	BidID   string `json:"bid_id"`
}

// SelectBid handles POST /api/v1/orders/:orderId/selected-bid - the store
// picks the winning bid and closes the bidding window.
func (s *Server) SelectBid(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req SelectBidRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	bidID, err := kernel.UUIDFromString(req.BidID)
	if err != nil {
		return badRequest(ctx, "Invalid bid id: "+err.Error())
	}

	cmd, err := commands.NewSelectBidCommand(orderID, actorID, bidID)
	if err != nil {
		return badRequest(ctx, "Invalid selection data: "+err.Error())
	}

	if handleErr := s.selectBidHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DepositEscrowRequest is the body for POST /api/v1/orders/:orderId/escrow-deposits.
// Party is "STORE" or "RIDER".
type DepositEscrowRequest struct {
	ActorID string `json:"actor_id"`
	Party   string `json:"party"`
}

// DepositEscrow handles POST /api/v1/orders/:orderId/escrow-deposits - locks
// the delivery fee or the product collateral in escrow.
func (s *Server) DepositEscrow(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req DepositEscrowRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	party, err := commands.PartyFromString(req.Party)
	if err != nil {
		return badRequest(ctx, "Invalid party: "+err.Error())
	}

	cmd, err := commands.NewDepositEscrowCommand(orderID, actorID, party)
	if err != nil {
		return badRequest(ctx, "Invalid deposit data: "+err.Error())
	}

	if handleErr := s.depositEscrowHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderStatusRequest is the body for POST /api/v1/orders/:orderId/status.
// Target is one of "IN_TRANSIT", "DELIVERED", "COMPLETED".
type AdvanceOrderStatusRequest struct {
	ActorID string `json:"actor_id"`
	Target  string `json:"target"`
}

// AdvanceOrderStatus handles POST /api/v1/orders/:orderId/status - pickup,
// delivery, and receipt confirmations. Confirming receipt settles the order.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AdvanceOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+err.Error())
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, actorID, target)
	if err != nil {
		return badRequest(ctx, "Invalid confirmation data: "+err.Error())
	}

	if handleErr := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderReviewedRequest is the body for POST /api/v1/orders/:orderId/review.
type MarkOrderReviewedRequest struct {
	ActorID string `json:"actor_id"`
}

// MarkOrderReviewed handles POST /api/v1/orders/:orderId/review - the store
// flags the completed order as reviewed.
func (s *Server) MarkOrderReviewed(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req MarkOrderReviewedRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+err.Error())
	}

	cmd, err := commands.NewMarkOrderReviewedCommand(orderID, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if handleErr := s.markOrderReviewedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StatementTransaction is one ledger entry in the statement response.
type StatementTransaction struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Direction   string    `json:"direction"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// WalletStatement is the response for GET /api/v1/wallets/:ownerId/statement.
type WalletStatement struct {
	WalletID     string                 `json:"wallet_id"`
	OwnerID      string                 `json:"owner_id"`
	Balance      string                 `json:"balance"`
	EscrowHeld   string                 `json:"escrow_held"`
	Transactions []StatementTransaction `json:"transactions"`
}

// GetWalletStatement handles GET /api/v1/wallets/:ownerId/statement.
func (s *Server) GetWalletStatement(ctx echo.Context) error {
	ownerID, err := pathUUID(ctx, "ownerId")
	if err != nil {
		return badRequest(ctx, "Invalid owner id: "+err.Error())
	}

	query, err := queries.NewGetWalletStatementQuery(ownerID)
	if err != nil {
		return badRequest(ctx, "Invalid statement request: "+err.Error())
	}

	statement, err := s.getWalletStatementHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	transactions := make([]StatementTransaction, len(statement.Transactions))
	for i, t := range statement.Transactions {
		transactions[i] = StatementTransaction{
			ID:          t.ID.String(),
			Amount:      t.Amount.String(),
			Direction:   t.Direction,
			Description: t.Description,
			Timestamp:   t.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, WalletStatement{
		WalletID:     statement.WalletID.String(),
		OwnerID:      statement.OwnerID.String(),
		Balance:      statement.Balance.String(),
		EscrowHeld:   statement.EscrowHeld.String(),
		Transactions: transactions,
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError translates an application error into an HTTP response using
// the error kind, never the message, to pick the status code.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrAlreadySettled),
		errors.Is(err, commands.ErrWalletAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
