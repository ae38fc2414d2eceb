package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/plant-nursery-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Apurer/plant-nursery-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/plant-nursery-api/internal/domains/catalog/ports"
	inventorymapper "github.com/Apurer/plant-nursery-api/internal/domains/inventory/adapters/http/mapper"
	apierrors "github.com/Apurer/plant-nursery-api/internal/shared/errors"
)

// Get /api/plants
func (a *api) listPlants(c *gin.Context) {
	var query catalogmapper.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	input, err := catalogmapper.ToListInput(query)
	if err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	a.respondPlants(c, input)
}

// Get /api/admin/plants
func (a *api) adminPlants(c *gin.Context) {
	a.respondPlants(c, catalogports.ListInput{})
}

func (a *api) respondPlants(c *gin.Context, input catalogports.ListInput) {
	result, err := a.services.Catalog.List(c.Request.Context(), input)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	count := len(result.Products)
	var pagination any
	if p := catalogmapper.FromDomainPagination(result.Pagination); p != nil {
		count = p.Total
		pagination = p
	}
	a.responder.List(c, "Plants retrieved successfully", catalogmapper.FromDomainPlants(result.Products), count, pagination)
}

// Get /api/plants/:id
func (a *api) getPlant(c *gin.Context) {
	id, ok := a.parseIDParam(c, "id")
	if !ok {
		return
	}
	plant, err := a.services.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Plant retrieved successfully", catalogmapper.FromDomainPlant(plant))
}

// Get /api/categories
func (a *api) categories(c *gin.Context) {
	counts, err := a.services.Catalog.Categories(c.Request.Context())
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Categories retrieved successfully", catalogmapper.FromDomainCategories(counts), len(counts), nil)
}

// Post /api/admin/plants
func (a *api) addPlant(c *gin.Context) {
	var payload catalogmapper.CreatePlant
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("Missing required plant fields"))
		return
	}
	plant, err := a.services.Catalog.AddProduct(c.Request.Context(), catalogmapper.ToAddProductInput(payload, currentUserID(c)))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Plant added successfully", catalogmapper.FromDomainPlant(plant))
}

// Get /api/admin/inventory/low-stock
func (a *api) lowStock(c *gin.Context) {
	threshold := catalogapp.DefaultLowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			a.responder.Respond(c, apierrors.ErrValidation.WithDetail("threshold must be an integer"))
			return
		}
		threshold = value
	}
	products, err := a.services.Catalog.LowStock(c.Request.Context(), threshold)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Low stock plants retrieved successfully", catalogmapper.FromDomainPlants(products), len(products), nil)
}

// Get /api/admin/inventory/:id/transactions
func (a *api) stockHistory(c *gin.Context) {
	id, ok := a.parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := a.services.Inventory.History(c.Request.Context(), id)
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.List(c, "Inventory transactions retrieved successfully", inventorymapper.FromDomainTransactions(history), len(history), nil)
}

// Post /api/admin/inventory/:id
func (a *api) applyStock(c *gin.Context) {
	id, ok := a.parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload inventorymapper.Movement
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	plant, tx, err := a.services.Inventory.Apply(c.Request.Context(), inventorymapper.ToDomainMovement(id, payload, currentUserID(c)))
	if err != nil {
		a.responder.RespondError(c, err)
		return
	}
	a.responder.OK(c, http.StatusOK, "Stock updated successfully", gin.H{
		"plant":       catalogmapper.FromDomainPlant(plant),
		"transaction": inventorymapper.FromDomainTransaction(tx),
	})
}

func (a *api) parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		a.responder.Respond(c, apierrors.ErrValidation.WithDetail("Invalid plant ID"))
		return 0, false
	}
	return id, true
}
