package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

type stubRecipeService struct {
	listFunc   func(ctx context.Context, userID uint, filter ports.RecipeFilter) ([]domain.Recipe, error)
	getFunc    func(ctx context.Context, userID, id uint) (*domain.Recipe, error)
	createFunc func(ctx context.Context, userID uint, in ports.CreateRecipeInput) (*domain.Recipe, error)
	updateFunc func(ctx context.Context, userID, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error)
	deleteFunc func(ctx context.Context, userID, id uint) error
}

func (s *stubRecipeService) List(ctx context.Context, userID uint, filter ports.RecipeFilter) ([]domain.Recipe, error) {
	return s.listFunc(ctx, userID, filter)
}

func (s *stubRecipeService) Get(ctx context.Context, userID, id uint) (*domain.Recipe, error) {
	return s.getFunc(ctx, userID, id)
}

func (s *stubRecipeService) Create(ctx context.Context, userID uint, in ports.CreateRecipeInput) (*domain.Recipe, error) {
	return s.createFunc(ctx, userID, in)
}

func (s *stubRecipeService) Update(ctx context.Context, userID, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
	return s.updateFunc(ctx, userID, id, in)
}

func (s *stubRecipeService) Delete(ctx context.Context, userID, id uint) error {
	return s.deleteFunc(ctx, userID, id)
}

type stubImageService struct {
	uploadFunc func(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*domain.Recipe, error)
}

func (s *stubImageService) Upload(ctx context.Context, userID, recipeID uint, filename string, data []byte) (*domain.Recipe, error) {
	return s.uploadFunc(ctx, userID, recipeID, filename, data)
}

func authedContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newTestContext(method, target, body)
	c.Set("user_id", uint(1))
	return c, rec
}

func TestRecipeHandler_List_ForwardsFilters(t *testing.T) {
	var got ports.RecipeFilter
	h := NewRecipeHandler(&stubRecipeService{
		listFunc: func(_ context.Context, _ uint, filter ports.RecipeFilter) ([]domain.Recipe, error) {
			got = filter
			return nil, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodGet, "/api/recipes?tags=1,2&ingredients=3", "")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !reflect.DeepEqual(got.TagIDs, []uint{1, 2}) {
		t.Fatalf("unexpected tag filter: %v", got.TagIDs)
	}
	if !reflect.DeepEqual(got.IngredientIDs, []uint{3}) {
		t.Fatalf("unexpected ingredient filter: %v", got.IngredientIDs)
	}
}

func TestRecipeHandler_List_NoFilters(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		listFunc: func(_ context.Context, _ uint, filter ports.RecipeFilter) ([]domain.Recipe, error) {
			if filter.TagIDs != nil || filter.IngredientIDs != nil {
				t.Fatalf("expected empty filter, got %+v", filter)
			}
			return []domain.Recipe{{ID: 2, Title: "Second"}, {ID: 1, Title: "First"}}, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodGet, "/api/recipes", "")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}

	var items []recipeListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].ID != 2 {
		t.Fatalf("unexpected listing: %+v", items)
	}
}

func TestRecipeHandler_List_BadTagFilter(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		listFunc: func(context.Context, uint, ports.RecipeFilter) ([]domain.Recipe, error) {
			t.Fatal("service must not be called for a bad filter")
			return nil, nil
		},
	}, &stubImageService{})

	c, _ := authedContext(http.MethodGet, "/api/recipes?tags=1,abc", "")

	he := asHTTPError(t, h.List(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestRecipeHandler_Get(t *testing.T) {
	price := decimal.RequireFromString("5.25")
	h := NewRecipeHandler(&stubRecipeService{
		getFunc: func(_ context.Context, userID, id uint) (*domain.Recipe, error) {
			if userID != 1 || id != 42 {
				t.Fatalf("unexpected lookup: user=%d id=%d", userID, id)
			}
			return &domain.Recipe{
				ID: 42, UserID: 1, Title: "Sample", TimeMinutes: 10, Price: price,
				Tags:      []domain.Tag{{ID: 1, Name: "Dinner"}},
				ImagePath: "recipe/abc.jpg",
			}, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodGet, "/api/recipes/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}

	var resp recipeDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 42 || len(resp.Tags) != 1 {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if resp.Image == nil || *resp.Image != "/media/recipe/abc.jpg" {
		t.Fatalf("unexpected image url: %v", resp.Image)
	}
}

func TestRecipeHandler_Get_BadID(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{}, &stubImageService{})

	c, _ := authedContext(http.MethodGet, "/api/recipes/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	he := asHTTPError(t, h.Get(c))
	if he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", he.Code)
	}
}

func TestRecipeHandler_Create(t *testing.T) {
	var got ports.CreateRecipeInput
	h := NewRecipeHandler(&stubRecipeService{
		createFunc: func(_ context.Context, userID uint, in ports.CreateRecipeInput) (*domain.Recipe, error) {
			got = in
			return &domain.Recipe{ID: 1, UserID: userID, Title: in.Title, TimeMinutes: in.TimeMinutes, Price: in.Price}, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodPost, "/api/recipes",
		`{"title":"Thai prawn curry","time_minutes":30,"price":"12.50","tags":[{"name":"Thai"},{"name":"Dinner"}]}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Title != "Thai prawn curry" || got.TimeMinutes != 30 {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected price: %s", got.Price)
	}
	if len(got.Tags) != 2 || got.Tags[0].Name != "Thai" {
		t.Fatalf("unexpected tags: %+v", got.Tags)
	}
}

func TestRecipeHandler_Create_MissingTitle(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		createFunc: func(context.Context, uint, ports.CreateRecipeInput) (*domain.Recipe, error) {
			t.Fatal("service must not be called for an invalid payload")
			return nil, nil
		},
	}, &stubImageService{})

	c, _ := authedContext(http.MethodPost, "/api/recipes", `{"time_minutes":30}`)

	he := asHTTPError(t, h.Create(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestRecipeHandler_Update_Patch(t *testing.T) {
	var got ports.UpdateRecipeInput
	h := NewRecipeHandler(&stubRecipeService{
		updateFunc: func(_ context.Context, _, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
			got = in
			return &domain.Recipe{ID: id, Title: *in.Title}, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodPatch, "/api/recipes/5", `{"title":"New title"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Title == nil || *got.Title != "New title" {
		t.Fatalf("title not forwarded: %+v", got)
	}
	if got.TimeMinutes != nil || got.Price != nil || got.Tags != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}

func TestRecipeHandler_Update_EmptyTagList(t *testing.T) {
	var got ports.UpdateRecipeInput
	h := NewRecipeHandler(&stubRecipeService{
		updateFunc: func(_ context.Context, _, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
			got = in
			return &domain.Recipe{ID: id}, nil
		},
	}, &stubImageService{})

	c, _ := authedContext(http.MethodPatch, "/api/recipes/5", `{"tags":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Tags == nil || len(*got.Tags) != 0 {
		t.Fatalf("an explicit empty list must reach the service as empty, got %+v", got.Tags)
	}
}

func TestRecipeHandler_Update_PutRequiresFullPayload(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		updateFunc: func(context.Context, uint, uint, ports.UpdateRecipeInput) (*domain.Recipe, error) {
			t.Fatal("service must not be called for an incomplete PUT")
			return nil, nil
		},
	}, &stubImageService{})

	c, _ := authedContext(http.MethodPut, "/api/recipes/5", `{"title":"Only a title"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	he := asHTTPError(t, h.Update(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestRecipeHandler_Update_PutWithFullPayload(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		updateFunc: func(_ context.Context, _, id uint, in ports.UpdateRecipeInput) (*domain.Recipe, error) {
			return &domain.Recipe{ID: id, Title: *in.Title, TimeMinutes: *in.TimeMinutes, Price: *in.Price}, nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodPut, "/api/recipes/5",
		`{"title":"Full","time_minutes":25,"price":"9.99"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecipeHandler_Update_NotFound(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{
		updateFunc: func(context.Context, uint, uint, ports.UpdateRecipeInput) (*domain.Recipe, error) {
			return nil, domain.ErrNotFound
		},
	}, &stubImageService{})

	c, _ := authedContext(http.MethodPatch, "/api/recipes/5", `{"title":"X"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.Update(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound to propagate, got %v", err)
	}
}

func TestRecipeHandler_Delete(t *testing.T) {
	deleted := false
	h := NewRecipeHandler(&stubRecipeService{
		deleteFunc: func(_ context.Context, userID, id uint) error {
			if userID != 1 || id != 9 {
				t.Fatalf("unexpected delete: user=%d id=%d", userID, id)
			}
			deleted = true
			return nil
		},
	}, &stubImageService{})

	c, rec := authedContext(http.MethodDelete, "/api/recipes/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !deleted {
		t.Fatal("service delete was not called")
	}
}

func TestRecipeHandler_UploadImage(t *testing.T) {
	payload := []byte("\x89PNG\r\n\x1a\nfakepixels")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "photo.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	h := NewRecipeHandler(&stubRecipeService{}, &stubImageService{
		uploadFunc: func(_ context.Context, userID, recipeID uint, filename string, data []byte) (*domain.Recipe, error) {
			if userID != 1 || recipeID != 3 {
				t.Fatalf("unexpected upload target: user=%d recipe=%d", userID, recipeID)
			}
			if filename != "photo.png" {
				t.Fatalf("unexpected filename %q", filename)
			}
			if !bytes.Equal(data, payload) {
				t.Fatal("payload bytes were altered in transit")
			}
			return &domain.Recipe{ID: recipeID, UserID: userID, Title: "Sample", ImagePath: "recipe/key.png"}, nil
		},
	})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/recipes/3/upload-image", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.UploadImage(c); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp recipeDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Image == nil || *resp.Image != "/media/recipe/key.png" {
		t.Fatalf("unexpected image url: %v", resp.Image)
	}
}

func TestRecipeHandler_UploadImage_MissingFile(t *testing.T) {
	h := NewRecipeHandler(&stubRecipeService{}, &stubImageService{
		uploadFunc: func(context.Context, uint, uint, string, []byte) (*domain.Recipe, error) {
			t.Fatal("service must not be called without a file")
			return nil, nil
		},
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/recipes/3/upload-image", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(1))
	c.SetParamNames("id")
	c.SetParamValues("3")

	he := asHTTPError(t, h.UploadImage(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestParseIDList(t *testing.T) {
	cases := []struct {
		in      string
		want    []uint
		wantErr bool
	}{
		{"", nil, false},
		{"1", []uint{1}, false},
		{"1,2,3", []uint{1, 2, 3}, false},
		{"1, 2", []uint{1, 2}, false},
		{"abc", nil, true},
		{"1,,2", nil, true},
		{"-1", nil, true},
	}

	for _, tc := range cases {
		got, err := parseIDList(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseIDList(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseIDList(%q): %v", tc.in, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parseIDList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
