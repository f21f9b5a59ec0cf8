package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Caja-api/internal/application/dto"
	"github.com/jhoicas/Caja-api/internal/application/inventory"
)

// InventoryHandler maneja catálogo y transacciones de inventario (protegido, admin).
type InventoryHandler struct {
	products     *inventory.ProductUseCase
	transactions *inventory.TransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(products *inventory.ProductUseCase, transactions *inventory.TransactionUseCase) *InventoryHandler {
	return &InventoryHandler{products: products, transactions: transactions}
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
	}
}

// ListProduct godoc
// @Summary      Listar productos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Nombre o código de barras"
// @Param        category_id query  string  false  "Filtrar por categoría"
// @Param        sort_by     query  string  false  "name | barcode"
// @Param        sort_order  query  string  false  "asc | desc"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/inventory/listProduct [get]
func (h *InventoryHandler) ListProduct(c *fiber.Ctx) error {
	out, err := h.products.List(c.Context(),
		c.Query("search"), c.Query("category_id"),
		c.Query("sort_by"), c.Query("sort_order"),
		pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DetailProduct godoc
// @Summary      Detalle de producto con historial de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/detailProduct/{id} [get]
func (h *InventoryHandler) DetailProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.products.Detail(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddProduct godoc
// @Summary      Crear producto con precio y stock inicial
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/addProduct [post]
func (h *InventoryHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.products.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto (edición parcial)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/updateProduct/{id} [put]
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.products.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Borrado lógico de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/deleteProduct/{id} [delete]
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.products.Delete(c.Context(), GetUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado"})
}

// DeleteProducts godoc
// @Summary      Borrado lógico de varios productos
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteProductsRequest  true  "IDs a borrar"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/deleteProduct [delete]
func (h *InventoryHandler) DeleteProducts(c *fiber.Ctx) error {
	var in dto.DeleteProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.products.DeleteMultiple(c.Context(), GetUserID(c), in.IDs); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "productos eliminados"})
}

// TransactionList godoc
// @Summary      Historial de transacciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Número, tipo o producto"
// @Param        type        query  string  false  "sale | purchase | adjustment"
// @Param        sort_by     query  string  false  "date | no"
// @Param        sort_order  query  string  false  "asc | desc"
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/inventory/transactionList [get]
func (h *InventoryHandler) TransactionList(c *fiber.Ctx) error {
	out, err := h.transactions.TransactionList(c.Context(),
		c.Query("search"), c.Query("type"),
		c.Query("sort_by"), c.Query("sort_order"),
		pageFromQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// TransactionDetail godoc
// @Summary      Detalle de una transacción
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactionDetail/{id} [get]
func (h *InventoryHandler) TransactionDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.transactions.TransactionDetail(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PurchaseTransaction godoc
// @Summary      Registrar una compra de mercancía
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseTransactionRequest  true  "Líneas de compra"
// @Success      201   {object}  dto.TransactionCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchaseTransaction [post]
func (h *InventoryHandler) PurchaseTransaction(c *fiber.Ctx) error {
	var in dto.PurchaseTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.transactions.Purchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AdjustmentTransaction godoc
// @Summary      Registrar un ajuste de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentTransactionRequest  true  "Líneas de ajuste (cantidad final por producto)"
// @Success      201   {object}  dto.TransactionCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustmentTransaction [post]
func (h *InventoryHandler) AdjustmentTransaction(c *fiber.Ctx) error {
	var in dto.AdjustmentTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.transactions.Adjustment(c.Context(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
