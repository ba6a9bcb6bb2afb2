package http

import (
	"errors"
	"net/http"

	"github.com/abuRizq/vegetable-shop/internal/auth/service"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/httpx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleListCategories godoc
//
//	@Summary		List Categories Endpoint
//	@Description	All product categories, ordered by name. Public.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	httpx.Envelope{data=CategoryListResponse}	"categories"
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/api/categories [get].
func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.CatalogService.ListCategories(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("listing categories failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}

	httpx.WriteData(w, http.StatusOK, CategoryListResponse{Categories: out})
}

// HandleCreateCategory godoc
//
//	@Summary		Create Category Endpoint
//	@Description	Add a product category. Admin only.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateCategoryRequest	true	"name"
//	@Success		201		{object}	httpx.Envelope{data=CategoryResponse}	"category"
//	@Failure		400		{object}	httpx.ErrorBody	"validation failed"
//	@Failure		401		{object}	httpx.ErrorBody	"missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorBody	"insufficient permissions"
//	@Failure		409		{object}	httpx.ErrorBody	"category name already in use"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/categories [post].
func (h *CatalogHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := req.validate(); details != nil {
		httpx.WriteValidationError(w, details)
		return
	}

	category, err := h.CatalogService.CreateCategory(ctx, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryTaken) {
			httpx.WriteError(w, http.StatusConflict, "category name already in use")
			return
		}
		slogx.FromContext(ctx).Error("creating category failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	httpx.WriteData(w, http.StatusCreated, toCategoryResponse(category))
}

// HandleListProducts godoc
//
//	@Summary		List Products Endpoint
//	@Description	Paginated product listing, newest first, optionally scoped to a category. Public.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string	false	"Category id to filter by"
//	@Param			limit		query		int		false	"Page size (max 100, default 20)"
//	@Param			offset		query		int		false	"Rows to skip"
//	@Success		200			{object}	httpx.Envelope{data=ProductListResponse}	"products, total"
//	@Failure		500			{object}	httpx.ErrorBody
//	@Router			/api/products [get].
func (h *CatalogHandler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categoryID := r.URL.Query().Get("category")
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	products, total, err := h.CatalogService.ListProducts(ctx, categoryID, limit, offset)
	if err != nil {
		slogx.FromContext(ctx).Error("listing products failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}

	httpx.WriteData(w, http.StatusOK, ProductListResponse{
		Products: out,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// HandleGetProduct godoc
//
//	@Summary		Get Product Endpoint
//	@Description	A single product by id. Public.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Product id"
//	@Success		200	{object}	httpx.Envelope{data=ProductResponse}	"product"
//	@Failure		404	{object}	httpx.ErrorBody	"unknown product"
//	@Failure		500	{object}	httpx.ErrorBody
//	@Router			/api/products/{id} [get].
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := h.CatalogService.GetProduct(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "unknown product")
			return
		}
		slogx.FromContext(ctx).Error("loading product failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	httpx.WriteData(w, http.StatusOK, toProductResponse(product))
}

// HandleCreateProduct godoc
//
//	@Summary		Create Product Endpoint
//	@Description	Add a product to an existing category. Admin only.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		CreateProductRequest	true	"categoryId, name, priceCents"
//	@Success		201		{object}	httpx.Envelope{data=ProductResponse}	"product"
//	@Failure		400		{object}	httpx.ErrorBody	"validation failed or unknown category"
//	@Failure		401		{object}	httpx.ErrorBody	"missing or invalid token"
//	@Failure		403		{object}	httpx.ErrorBody	"insufficient permissions"
//	@Failure		500		{object}	httpx.ErrorBody
//	@Router			/api/products [post].
func (h *CatalogHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if details := req.validate(); details != nil {
		httpx.WriteValidationError(w, details)
		return
	}

	product, err := h.CatalogService.CreateProduct(ctx, service.CreateProductParams{
		CategoryID:         req.CategoryID,
		Name:               req.Name,
		Description:        req.Description,
		PriceCents:         req.PriceCents,
		DiscountPriceCents: req.DiscountPriceCents,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategory) {
			httpx.WriteValidationError(w, map[string]string{"categoryId": "unknown category"})
			return
		}
		slogx.FromContext(ctx).Error("creating product failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	httpx.WriteData(w, http.StatusCreated, toProductResponse(product))
}
