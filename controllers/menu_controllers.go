package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/delight-cuisine/middlewares"
	"github.com/yeremiapane/delight-cuisine/services"
	"github.com/yeremiapane/delight-cuisine/utils"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenuItems
// Query: category, available, include_deleted (admin only)
func (mc *MenuController) GetMenuItems(c *gin.Context) {
	filter := services.MenuFilter{}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	available, ok := queryBool(c, "available")
	if !ok {
		return
	}
	filter.Available = available

	includeDeleted, ok := queryBool(c, "include_deleted")
	if !ok {
		return
	}
	filter.IncludeDeleted = includeDeleted != nil && *includeDeleted

	items, err := mc.Menu.List(c.Request.Context(), middlewares.ActorFromContext(c), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", gin.H{
		"menu_items": items,
		"count":      len(items),
	})
}

func (mc *MenuController) GetMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	includeDeleted, ok := queryBool(c, "include_deleted")
	if !ok {
		return
	}

	item, err := mc.Menu.Get(c.Request.Context(), middlewares.ActorFromContext(c), id, includeDeleted != nil && *includeDeleted)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body services.MenuItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := mc.Menu.Create(c.Request.Context(), middlewares.ActorFromContext(c), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}

	var body services.MenuItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}

	item, err := mc.Menu.Update(c.Request.Context(), middlewares.ActorFromContext(c), id, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

func (mc *MenuController) ToggleMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}

	item, err := mc.Menu.ToggleAvailability(c.Request.Context(), middlewares.ActorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "Item disabled successfully"
	if item.Available {
		message = "Item enabled successfully"
	}
	utils.RespondJSON(c, http.StatusOK, message, item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}

	item, err := mc.Menu.SoftDelete(c.Request.Context(), middlewares.ActorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", item)
}

func (mc *MenuController) RestoreMenuItem(c *gin.Context) {
	id, ok := paramID(c, "item_id")
	if !ok {
		return
	}

	item, err := mc.Menu.Restore(c.Request.Context(), middlewares.ActorFromContext(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item restored successfully", item)
}

// GetCategories -> distinct categories of non-deleted items
func (mc *MenuController) GetCategories(c *gin.Context) {
	categories, err := mc.Menu.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", gin.H{
		"categories": categories,
		"count":      len(categories),
	})
}
