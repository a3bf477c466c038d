package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMenuHandlerRejectsNonPositiveIngredientQuantity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Validation runs before any repository access, so a nil repository is
	// fine here. A -200g line would otherwise be stored and later deflate
	// every COGS report that touches the dish.
	h := NewMenuHandler(nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "negative quantity",
			body: `{"name":"Paneer Tikka","category":"Starters","price":320,"department":"restaurant","ingredients":[{"inventory_id":"inv-paneer","quantity":-200,"unit":"g"}]}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "zero quantity",
			body: `{"name":"Paneer Tikka","category":"Starters","price":320,"department":"restaurant","ingredients":[{"inventory_id":"inv-paneer","quantity":0,"unit":"g"}]}`,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "missing inventory id",
			body: `{"name":"Paneer Tikka","category":"Starters","price":320,"department":"restaurant","ingredients":[{"quantity":200,"unit":"g"}]}`,
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run("create "+tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/menu", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			h.Create(c)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.want, w.Body.String())
			}
		})
		t.Run("update "+tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Params = gin.Params{{Key: "id", Value: "menu-tikka"}}
			c.Request = httptest.NewRequest(http.MethodPut, "/api/v1/menu/menu-tikka", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			h.Update(c)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
