package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/plateful/recipe-api/internal/api/metrics"
	"github.com/plateful/recipe-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	recipes ports.RecipeService
	images  ports.ImageService
}

func NewRecipeHandler(recipes ports.RecipeService, images ports.ImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// List returns the caller's recipes, optionally narrowed by tag/ingredient ids.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        tags         query     string  false  "Comma-separated tag ids"
// @Param        ingredients  query     string  false  "Comma-separated ingredient ids"
// @Success      200          {array}   recipeListItem
// @Failure      400          {object}  map[string]string
// @Failure      401          {object}  map[string]string
// @Router       /api/recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	tagIDs, err := parseIDList(c.QueryParam("tags"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "tags must be a comma-separated list of ids")
	}
	ingredientIDs, err := parseIDList(c.QueryParam("ingredients"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ingredients must be a comma-separated list of ids")
	}

	recipes, err := h.recipes.List(c.Request().Context(), userID, ports.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRecipeListResponse(recipes))
}

// Get returns a single owned recipe with its tags and ingredients.
//
// @Summary      Get a recipe
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe id"
// @Success      200  {object}  recipeDetailResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	recipe, err := h.recipes.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRecipeDetailResponse(recipe))
}

// Create stores a new recipe for the caller, resolving nested tags and
// ingredients by name.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe details"
// @Success      201   {object}  recipeDetailResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	recipe, err := h.recipes.Create(c.Request().Context(), userID, ports.CreateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        attributeInputs(req.Tags),
		Ingredients: attributeInputs(req.Ingredients),
	})
	if err != nil {
		return err
	}

	metrics.RecipesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, newRecipeDetailResponse(recipe))
}

// Update applies a partial (PATCH) or full (PUT) update to an owned recipe.
//
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Recipe id"
// @Param        body  body      updateRecipeRequest  true  "Fields to change"
// @Success      200   {object}  recipeDetailResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Request().Method == http.MethodPut {
		if err := requireFullUpdate(&req); err != nil {
			return err
		}
	}

	in := ports.UpdateRecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
	}
	if req.Tags != nil {
		tags := attributeInputs(*req.Tags)
		in.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := attributeInputs(*req.Ingredients)
		in.Ingredients = &ingredients
	}

	recipe, err := h.recipes.Update(c.Request().Context(), userID, id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newRecipeDetailResponse(recipe))
}

// Delete removes an owned recipe.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  int  true  "Recipe id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadImage attaches an image file to an owned recipe.
//
// @Summary      Upload a recipe image
// @Tags         recipes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int   true  "Recipe id"
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  recipeDetailResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read image file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read image file")
	}

	recipe, err := h.images.Upload(c.Request().Context(), userID, id, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	metrics.ImagesUploadedTotal.Inc()
	return c.JSON(http.StatusOK, newRecipeDetailResponse(recipe))
}

// requireFullUpdate enforces PUT semantics: every scalar the create payload
// requires must be present.
func requireFullUpdate(req *updateRecipeRequest) error {
	if req.Title == nil || req.TimeMinutes == nil || req.Price == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "title, time_minutes and price are required")
	}
	return nil
}

// parseIDList parses a comma-separated id list ("1,2,3"). An empty string
// yields no filter; any non-numeric element is an error.
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
