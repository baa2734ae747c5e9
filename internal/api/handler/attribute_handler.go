package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plateful/recipe-api/internal/core/ports"
)

// updateAttributeRequest renames a tag or ingredient.
type updateAttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

// TagHandler handles HTTP requests for tag operations. Tags are created
// through nested recipe writes, so the surface is list/update/delete only.
type TagHandler struct {
	tags ports.TagService
}

func NewTagHandler(tags ports.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// List returns the caller's tags, name-descending.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        assigned_only  query     int  false  "Limit to tags attached to at least one recipe"
// @Success      200            {array}   attributeResponse
// @Failure      400            {object}  map[string]string
// @Failure      401            {object}  map[string]string
// @Router       /api/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	assignedOnly, err := parseAssignedOnly(c.QueryParam("assigned_only"))
	if err != nil {
		return err
	}

	tags, err := h.tags.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return err
	}

	out := make([]attributeResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, attributeResponse{ID: t.ID, Name: t.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Update renames an owned tag.
//
// @Summary      Update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Tag id"
// @Param        body  body      updateAttributeRequest  true  "New name"
// @Success      200   {object}  attributeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/tags/{id} [patch]
func (h *TagHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAttributeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tags.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attributeResponse{ID: tag.ID, Name: tag.Name})
}

// Delete removes an owned tag.
//
// @Summary      Delete a tag
// @Tags         tags
// @Security     BearerAuth
// @Param        id  path  int  true  "Tag id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.tags.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// IngredientHandler mirrors TagHandler for ingredients.
type IngredientHandler struct {
	ingredients ports.IngredientService
}

func NewIngredientHandler(ingredients ports.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// List returns the caller's ingredients, name-descending.
//
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        assigned_only  query     int  false  "Limit to ingredients attached to at least one recipe"
// @Success      200            {array}   attributeResponse
// @Failure      400            {object}  map[string]string
// @Failure      401            {object}  map[string]string
// @Router       /api/ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	assignedOnly, err := parseAssignedOnly(c.QueryParam("assigned_only"))
	if err != nil {
		return err
	}

	ingredients, err := h.ingredients.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return err
	}

	out := make([]attributeResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, attributeResponse{ID: i.ID, Name: i.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// Update renames an owned ingredient.
//
// @Summary      Update an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Ingredient id"
// @Param        body  body      updateAttributeRequest  true  "New name"
// @Success      200   {object}  attributeResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/ingredients/{id} [patch]
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateAttributeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ingredient, err := h.ingredients.Update(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attributeResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Delete removes an owned ingredient.
//
// @Summary      Delete an ingredient
// @Tags         ingredients
// @Security     BearerAuth
// @Param        id  path  int  true  "Ingredient id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.ingredients.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// parseAssignedOnly interprets the assigned_only query flag; "1"/"true" turn
// it on, empty/"0"/"false" leave it off.
func parseAssignedOnly(raw string) (bool, error) {
	switch raw {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, echo.NewHTTPError(http.StatusBadRequest, "assigned_only must be 0 or 1")
	}
}
