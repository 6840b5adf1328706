// internal/tests/api_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/school-sales-backend/internal/config"
	"github.com/javajoker/school-sales-backend/internal/i18n"
	"github.com/javajoker/school-sales-backend/internal/repository/repotest"
	"github.com/javajoker/school-sales-backend/internal/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta struct {
		Pagination struct {
			Page         int   `json:"page"`
			ItemsPerPage int   `json:"items_per_page"`
			Total        int64 `json:"total"`
			TotalPages   int   `json:"total_pages"`
			NextPage     *int  `json:"next_page"`
			PreviousPage *int  `json:"previous_page"`
		} `json:"pagination"`
	} `json:"meta"`
}

type record struct {
	ID               uuid.UUID       `json:"id"`
	TeamID           *uuid.UUID      `json:"team_id"`
	ClassroomID      *uuid.UUID      `json:"classroom_id"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TotalSalesPounds decimal.Decimal `json:"total_sales_pounds"`
	TotalSalesBaht   decimal.Decimal `json:"total_sales_baht"`
}

type APITestSuite struct {
	suite.Suite
	store  *repotest.Store
	router *gin.Engine
	cancel context.CancelFunc
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("en"))
}

func (suite *APITestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Sales:       config.SalesConfig{RepairConcurrency: 2},
	}

	var ctx context.Context
	ctx, suite.cancel = context.WithCancel(context.Background())
	suite.store = repotest.NewStore()
	suite.router = router.Initialize(ctx, suite.store, cfg)
}

func (suite *APITestSuite) TearDownTest() {
	suite.cancel()
}

func (suite *APITestSuite) request(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response envelope
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err, w.Body.String())
	return w, response
}

func (suite *APITestSuite) create(path string, body interface{}) record {
	w, response := suite.request("POST", path, body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	assert.True(suite.T(), response.Success)

	var r record
	suite.Require().NoError(json.Unmarshal(response.Data, &r))
	return r
}

func (suite *APITestSuite) team(id uuid.UUID) record {
	w, response := suite.request("GET", "/v1/teams/"+id.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var r record
	suite.Require().NoError(json.Unmarshal(response.Data, &r))
	return r
}

func (suite *APITestSuite) TestOrderToTeamSalesFlow() {
	product := suite.create("/v1/products", map[string]interface{}{"name": "Chocolate cake", "price": 100})
	team := suite.create("/v1/teams", map[string]interface{}{
		"name":          "Red",
		"classroom_ids": []string{uuid.NewString()},
	})
	order := suite.create("/v1/orders", map[string]interface{}{
		"customer_name": "Somchai",
		"team_id":       team.ID,
		"total_price":   600,
		"deposit":       100,
		"book_number":   1,
		"number":        1,
	})

	item := suite.create("/v1/order-items", map[string]interface{}{
		"order_id":   order.ID,
		"product_id": product.ID,
		"pound":      3,
		"quantity":   2,
	})
	assert.True(suite.T(), item.Subtotal.Equal(decimal.NewFromInt(600)))

	got := suite.team(team.ID)
	assert.True(suite.T(), got.TotalSalesPounds.Equal(decimal.NewFromInt(6)), got.TotalSalesPounds.String())
	assert.True(suite.T(), got.TotalSalesBaht.Equal(decimal.NewFromInt(600)), got.TotalSalesBaht.String())

	w, _ := suite.request("PATCH", "/v1/order-items/"+item.ID.String(), map[string]interface{}{"quantity": 1})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	got = suite.team(team.ID)
	assert.True(suite.T(), got.TotalSalesBaht.Equal(decimal.NewFromInt(300)))

	w, response := suite.request("GET", "/v1/order-items/order/"+order.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var items []record
	suite.Require().NoError(json.Unmarshal(response.Data, &items))
	assert.Len(suite.T(), items, 1)

	w, _ = suite.request("DELETE", "/v1/orders/"+order.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	got = suite.team(team.ID)
	assert.True(suite.T(), got.TotalSalesBaht.IsZero())
	assert.True(suite.T(), got.TotalSalesPounds.IsZero())

	w, _ = suite.request("GET", "/v1/order-items/"+item.ID.String(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestErrorMapping() {
	product := suite.create("/v1/products", map[string]interface{}{"name": "Cookie", "price": 40})
	suite.create("/v1/orders", map[string]interface{}{"customer_name": "A", "book_number": 1, "number": 1})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{name: "deposit above total", method: "POST", path: "/v1/orders",
			body:   map[string]interface{}{"customer_name": "B", "total_price": 10, "deposit": 20, "book_number": 1, "number": 2},
			status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "duplicate book number", method: "POST", path: "/v1/orders",
			body:   map[string]interface{}{"customer_name": "B", "book_number": 1, "number": 1},
			status: http.StatusConflict, code: "CONFLICT"},
		{name: "missing required field", method: "POST", path: "/v1/products",
			body:   map[string]interface{}{"price": 1},
			status: http.StatusBadRequest, code: "VALIDATION_ERROR"},
		{name: "malformed id", method: "GET", path: "/v1/orders/not-a-uuid",
			status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "unknown order", method: "GET", path: "/v1/orders/" + uuid.NewString(),
			status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "item for unknown order", method: "POST", path: "/v1/order-items",
			body:   map[string]interface{}{"order_id": uuid.NewString(), "product_id": product.ID, "pound": 1, "quantity": 1},
			status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "order with unknown team", method: "POST", path: "/v1/orders",
			body:   map[string]interface{}{"customer_name": "C", "team_id": uuid.NewString(), "book_number": 9, "number": 9},
			status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "unknown route", method: "GET", path: "/v1/nothing",
			status: http.StatusNotFound, code: "NOT_FOUND"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w, response := suite.request(tt.method, tt.path, tt.body)
			assert.Equal(suite.T(), tt.status, w.Code, w.Body.String())
			assert.False(suite.T(), response.Success)
			suite.Require().NotNil(response.Error)
			assert.Equal(suite.T(), tt.code, response.Error.Code)
		})
	}
}

func (suite *APITestSuite) TestNotFoundIsLocalized() {
	tests := []struct {
		path    string
		english string
		thai    string
	}{
		{path: "/v1/orders/", english: "Order not found", thai: "ไม่พบคำสั่งซื้อ"},
		{path: "/v1/order-items/", english: "Order item not found", thai: "ไม่พบรายการสินค้าในคำสั่งซื้อ"},
		{path: "/v1/products/", english: "Product not found", thai: "ไม่พบสินค้า"},
		{path: "/v1/teams/", english: "Team not found", thai: "ไม่พบทีม"},
		{path: "/v1/classrooms/", english: "Classroom not found", thai: "ไม่พบห้องเรียน"},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			w, response := suite.request("GET", tt.path+uuid.NewString(), nil)
			assert.Equal(suite.T(), http.StatusNotFound, w.Code)
			require.NotNil(suite.T(), response.Error)
			assert.Equal(suite.T(), tt.english, response.Error.Message)

			w, response = suite.request("GET", tt.path+uuid.NewString(), nil, "Accept-Language", "th-TH,th;q=0.9")
			assert.Equal(suite.T(), http.StatusNotFound, w.Code)
			require.NotNil(suite.T(), response.Error)
			assert.Equal(suite.T(), tt.thai, response.Error.Message)
		})
	}
}

func (suite *APITestSuite) TestOrderClassroomReference() {
	science := uuid.NewString()
	classroom := suite.create("/v1/classrooms", map[string]interface{}{
		"name":           "M.4/1",
		"teacher_id":     uuid.NewString(),
		"department_id":  science,
		"grade_level_id": uuid.NewString(),
		"students":       []map[string]string{{"studentId": "6501", "studentName": "Anan"}},
	})
	suite.create("/v1/classrooms", map[string]interface{}{
		"name":           "M.5/1",
		"teacher_id":     uuid.NewString(),
		"department_id":  uuid.NewString(),
		"grade_level_id": uuid.NewString(),
	})

	order := suite.create("/v1/orders", map[string]interface{}{
		"customer_name": "Somchai", "classroom_id": classroom.ID, "book_number": 1, "number": 1,
	})
	require.NotNil(suite.T(), order.ClassroomID)
	assert.Equal(suite.T(), classroom.ID, *order.ClassroomID)

	w, response := suite.request("POST", "/v1/orders", map[string]interface{}{
		"customer_name": "Nok", "classroom_id": uuid.NewString(), "book_number": 1, "number": 2,
	})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code, w.Body.String())
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "NOT_FOUND", response.Error.Code)

	w, response = suite.request("GET", "/v1/classrooms?department_id="+science, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(suite.T(), 1, response.Meta.Pagination.Total)

	w, _ = suite.request("POST", "/v1/classrooms", map[string]interface{}{"name": "M.6/1"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w, _ = suite.request("DELETE", "/v1/classrooms/"+classroom.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, response = suite.request("GET", "/v1/orders/"+order.ID.String(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var reloaded record
	suite.Require().NoError(json.Unmarshal(response.Data, &reloaded))
	assert.Nil(suite.T(), reloaded.ClassroomID)
}

func (suite *APITestSuite) TestRecalculationFailureReturnsSavedRecord() {
	product := suite.create("/v1/products", map[string]interface{}{"name": "Cake", "price": 100})
	team := suite.create("/v1/teams", map[string]interface{}{"name": "Blue", "classroom_ids": []string{uuid.NewString()}})
	order := suite.create("/v1/orders", map[string]interface{}{"customer_name": "A", "team_id": team.ID, "book_number": 1, "number": 1})

	suite.store.UpdateSalesErr = assert.AnError
	w, response := suite.request("POST", "/v1/order-items", map[string]interface{}{
		"order_id": order.ID, "product_id": product.ID, "pound": 1, "quantity": 1,
	})
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	suite.Require().NotNil(response.Error)
	assert.Equal(suite.T(), "RECALCULATION_FAILED", response.Error.Code)

	var saved record
	suite.Require().NoError(json.Unmarshal(response.Error.Details, &saved))
	assert.NotEqual(suite.T(), uuid.Nil, saved.ID)

	suite.store.UpdateSalesErr = nil
	w, response = suite.request("POST", "/v1/teams/recalculate", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.True(suite.T(), response.Success)
	assert.True(suite.T(), suite.team(team.ID).TotalSalesBaht.Equal(decimal.NewFromInt(100)))

	w, _ = suite.request("POST", "/v1/teams/"+team.ID.String()+"/recalculate", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestOrderSearchAndPagination() {
	for i, name := range []string{"Anong", "Boonmee", "Chai"} {
		suite.create("/v1/orders", map[string]interface{}{"customer_name": name, "book_number": 3, "number": i + 1, "advisor": "Kru Dao"})
	}

	w, response := suite.request("GET", "/v1/orders?page=1&items_per_page=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.EqualValues(suite.T(), 3, response.Meta.Pagination.Total)
	assert.Equal(suite.T(), 2, response.Meta.Pagination.TotalPages)
	require.NotNil(suite.T(), response.Meta.Pagination.NextPage)
	assert.Equal(suite.T(), 2, *response.Meta.Pagination.NextPage)
	assert.Nil(suite.T(), response.Meta.Pagination.PreviousPage)
	assert.Equal(suite.T(), "3", w.Header().Get("X-Total-Count"))

	w, response = suite.request("GET", "/v1/orders?search=boon", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.EqualValues(suite.T(), 1, response.Meta.Pagination.Total)
}

func (suite *APITestSuite) TestHealth() {
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
