package handler

import (
	"strconv"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/middleware"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// patchProductRequest is either a stock delta {action, quantity} or a field update, never both
type patchProductRequest struct {
	Action   *string `json:"action"`
	Quantity *int64  `json:"quantity"`

	Brand       *string `json:"brand"`
	Barcode     *int64  `json:"barcode"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Stocks      *int64  `json:"stocks"`
}

func (r *patchProductRequest) isDelta() bool {
	return r.Action != nil || r.Quantity != nil
}

func (r *patchProductRequest) hasFields() bool {
	return r.Brand != nil || r.Barcode != nil || r.Description != nil || r.Category != nil || r.Stocks != nil
}

// CreateProduct handles POST /api/v1/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.AddProductRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	product, err := h.service.AddProduct(c.UserContext(), req, middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetProducts handles GET /api/v1/products?archived=false|true
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	archived, err := strconv.ParseBool(c.Query("archived", "false"))
	if err != nil {
		return apperr.Validation("archived must be true or false")
	}

	products, err := h.service.ListProducts(c.UserContext(), archived)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// GetProductTransactions handles GET /api/v1/products/:id/transactions
func (h *InventoryHandler) GetProductTransactions(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	history, err := h.service.ProductHistory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// UpdateProduct handles PATCH /api/v1/products/:id
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}

	var req patchProductRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	var product *model.Product
	actor := middleware.ActorFrom(c)
	switch {
	case req.isDelta() && req.hasFields():
		return apperr.Validation("send either {action, quantity} or product fields, not both")

	case req.isDelta():
		if req.Action == nil || req.Quantity == nil {
			return apperr.Validation("action and quantity are both required for a stock change")
		}
		action, ok := model.ParseStockAction(*req.Action)
		if !ok {
			return apperr.Validation("action must be one of: Stock In, Stock Out")
		}
		if action == model.ActionStockIn {
			product, err = h.service.StockIn(c.UserContext(), id, *req.Quantity, actor)
		} else {
			product, err = h.service.StockOut(c.UserContext(), id, *req.Quantity, actor)
		}

	default:
		product, err = h.service.EditProduct(c.UserContext(), id, service.EditProductRequest{
			Brand:       req.Brand,
			Barcode:     req.Barcode,
			Description: req.Description,
			Category:    req.Category,
			Stocks:      req.Stocks,
		}, actor)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product updated", "product": product})
}

// ArchiveProduct handles PATCH /api/v1/products/:id/archive and DELETE /api/v1/products/:id
func (h *InventoryHandler) ArchiveProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	product, err := h.service.ArchiveProduct(c.UserContext(), id, middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product archived", "product": product})
}

func (h *InventoryHandler) RestoreProduct(c *fiber.Ctx) error {
	id, err := parseID(c, "product")
	if err != nil {
		return err
	}
	product, err := h.service.RestoreProduct(c.UserContext(), id, middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product restored", "product": product})
}

// ArchiveAllProducts handles DELETE /api/v1/products
func (h *InventoryHandler) ArchiveAllProducts(c *fiber.Ctx) error {
	n, err := h.service.ArchiveAllProducts(c.UserContext(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Products archived", "archived": n})
}

// CreateTransaction handles POST /api/v1/transactions
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.RecordTransactionRequest
	if err := decodeStrict(c, &req); err != nil {
		return err
	}

	view, err := h.service.RecordTransaction(c.UserContext(), req, middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction recorded", "transaction": view})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.ListTransactions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	tx, err := h.service.GetTransaction(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(tx)
}

// DeleteTransaction purges one log entry. Irreversible.
func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := parseID(c, "transaction")
	if err != nil {
		return err
	}
	if err := h.service.PurgeTransaction(c.UserContext(), id, middleware.ActorFrom(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

// DeleteAllTransactions purges the whole log. Irreversible.
func (h *InventoryHandler) DeleteAllTransactions(c *fiber.Ctx) error {
	n, err := h.service.PurgeAllTransactions(c.UserContext(), middleware.ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Transactions deleted", "deleted": n})
}
