package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository/repotest"
	"github.com/javajoker/school-sales-backend/internal/utils"
)

type SalesPipelineTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *repotest.Store

	teamSales  *TeamSalesService
	orders     *OrderService
	orderItems *OrderItemService
	products   *ProductService
	teams      *TeamService
	classrooms *ClassroomService

	cake   *models.Product
	cookie *models.Product
	red    *models.Team
	blue   *models.Team
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intPtr(i int) *int {
	return &i
}

func (suite *SalesPipelineTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = repotest.NewStore()
	suite.teamSales = NewTeamSalesService(suite.store, 2)
	suite.orders = NewOrderService(suite.store, suite.teamSales)
	suite.orderItems = NewOrderItemService(suite.store, suite.teamSales)
	suite.products = NewProductService(suite.store)
	suite.teams = NewTeamService(suite.store)
	suite.classrooms = NewClassroomService(suite.store)

	var err error
	suite.cake, err = suite.products.Create(suite.ctx, &CreateProductRequest{Name: "Chocolate cake", Price: dec("100")})
	suite.Require().NoError(err)
	suite.cookie, err = suite.products.Create(suite.ctx, &CreateProductRequest{Name: "Butter cookie", Price: dec("40")})
	suite.Require().NoError(err)

	suite.red, err = suite.teams.Create(suite.ctx, &CreateTeamRequest{Name: "Red", ClassroomIDs: []uuid.UUID{uuid.New()}})
	suite.Require().NoError(err)
	suite.blue, err = suite.teams.Create(suite.ctx, &CreateTeamRequest{Name: "Blue", ClassroomIDs: []uuid.UUID{uuid.New(), uuid.New()}})
	suite.Require().NoError(err)
}

func (suite *SalesPipelineTestSuite) createOrder(number int, teamID *uuid.UUID) *models.Order {
	order, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{
		CustomerName: "Somchai",
		TeamID:       teamID,
		TotalPrice:   dec("1000"),
		BookNumber:   1,
		Number:       number,
		Deposit:      dec("200"),
		Advisor:      "Kru Malee",
	})
	suite.Require().NoError(err)
	return order
}

func (suite *SalesPipelineTestSuite) addItem(orderID uuid.UUID, product *models.Product, pound string, quantity int) *models.OrderItem {
	item, err := suite.orderItems.Create(suite.ctx, &CreateOrderItemRequest{
		OrderID:   orderID,
		ProductID: product.ID,
		Pound:     dec(pound),
		Quantity:  quantity,
	})
	suite.Require().NoError(err)
	return item
}

func (suite *SalesPipelineTestSuite) assertTotals(teamID uuid.UUID, pounds, baht string) {
	team, err := suite.teams.FindByID(suite.ctx, teamID)
	suite.Require().NoError(err)
	assert.True(suite.T(), team.TotalSalesPounds.Equal(dec(pounds)), "pounds: got %s, want %s", team.TotalSalesPounds, pounds)
	assert.True(suite.T(), team.TotalSalesBaht.Equal(dec(baht)), "baht: got %s, want %s", team.TotalSalesBaht, baht)
}

func (suite *SalesPipelineTestSuite) TestItemCreationUpdatesTeamTotals() {
	order := suite.createOrder(1, &suite.red.ID)
	suite.assertTotals(suite.red.ID, "0", "0")

	item := suite.addItem(order.ID, suite.cake, "3", 2)

	assert.True(suite.T(), item.Subtotal.Equal(dec("600")))
	suite.assertTotals(suite.red.ID, "6", "600")

	suite.addItem(order.ID, suite.cookie, "0.5", 4)
	suite.assertTotals(suite.red.ID, "8", "680")
	suite.assertTotals(suite.blue.ID, "0", "0")
}

func (suite *SalesPipelineTestSuite) TestSubtotalUsesStoredProductPrice() {
	order := suite.createOrder(1, &suite.red.ID)

	item, err := suite.orderItems.Create(suite.ctx, &CreateOrderItemRequest{
		OrderID:   order.ID,
		ProductID: suite.cake.ID,
		Pound:     dec("2"),
		Quantity:  1,
		UnitPrice: decPtr("1"),
	})
	suite.Require().NoError(err)

	assert.True(suite.T(), item.UnitPrice.Equal(dec("1")))
	assert.True(suite.T(), item.Subtotal.Equal(dec("200")))
	suite.assertTotals(suite.red.ID, "2", "200")
}

func (suite *SalesPipelineTestSuite) TestOrderWithoutTeamTriggersNoRecalculation() {
	order := suite.createOrder(1, nil)
	suite.addItem(order.ID, suite.cake, "1", 1)

	assert.Equal(suite.T(), 0, suite.store.SalesUpdates(suite.red.ID))
	assert.Equal(suite.T(), 0, suite.store.SalesUpdates(suite.blue.ID))
}

func (suite *SalesPipelineTestSuite) TestItemUpdateRecalculatesOnce() {
	order := suite.createOrder(1, &suite.red.ID)
	item := suite.addItem(order.ID, suite.cake, "1", 1)
	before := suite.store.SalesUpdates(suite.red.ID)

	updated, err := suite.orderItems.Update(suite.ctx, item.ID, &UpdateOrderItemRequest{Quantity: intPtr(5)})
	suite.Require().NoError(err)

	assert.True(suite.T(), updated.Subtotal.Equal(dec("500")))
	assert.Equal(suite.T(), before+1, suite.store.SalesUpdates(suite.red.ID))
	suite.assertTotals(suite.red.ID, "5", "500")
}

func (suite *SalesPipelineTestSuite) TestItemProductChangeReprices() {
	order := suite.createOrder(1, &suite.red.ID)
	item := suite.addItem(order.ID, suite.cake, "2", 1)

	updated, err := suite.orderItems.Update(suite.ctx, item.ID, &UpdateOrderItemRequest{ProductID: &suite.cookie.ID})
	suite.Require().NoError(err)

	assert.True(suite.T(), updated.UnitPrice.Equal(dec("40")))
	assert.True(suite.T(), updated.Subtotal.Equal(dec("80")))
	suite.assertTotals(suite.red.ID, "2", "80")
}

func (suite *SalesPipelineTestSuite) TestItemMovedToOrderOfAnotherTeam() {
	redOrder := suite.createOrder(1, &suite.red.ID)
	blueOrder := suite.createOrder(2, &suite.blue.ID)
	item := suite.addItem(redOrder.ID, suite.cake, "1", 3)
	suite.assertTotals(suite.red.ID, "3", "300")

	_, err := suite.orderItems.Update(suite.ctx, item.ID, &UpdateOrderItemRequest{OrderID: &blueOrder.ID})
	suite.Require().NoError(err)

	suite.assertTotals(suite.red.ID, "0", "0")
	suite.assertTotals(suite.blue.ID, "3", "300")
}

func (suite *SalesPipelineTestSuite) TestOrderMovedBetweenTeams() {
	order := suite.createOrder(1, &suite.red.ID)
	suite.addItem(order.ID, suite.cake, "2", 2)
	suite.assertTotals(suite.red.ID, "4", "400")

	updated, err := suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{TeamID: SetUUID(suite.blue.ID)})
	suite.Require().NoError(err)
	require.NotNil(suite.T(), updated.TeamID)
	assert.Equal(suite.T(), suite.blue.ID, *updated.TeamID)

	suite.assertTotals(suite.red.ID, "0", "0")
	suite.assertTotals(suite.blue.ID, "4", "400")

	_, err = suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{TeamID: OptionalUUID{Set: true}})
	suite.Require().NoError(err)
	suite.assertTotals(suite.blue.ID, "0", "0")
}

func (suite *SalesPipelineTestSuite) TestOrderRemovalClearsItemsAndTotals() {
	order := suite.createOrder(1, &suite.red.ID)
	suite.addItem(order.ID, suite.cake, "1", 1)
	suite.addItem(order.ID, suite.cookie, "1", 1)
	suite.assertTotals(suite.red.ID, "2", "140")

	suite.Require().NoError(suite.orders.Remove(suite.ctx, order.ID))

	items, total, err := suite.orderItems.FindAll(suite.ctx, OrderItemListParams{OrderID: &order.ID})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), items)
	assert.Zero(suite.T(), total)
	suite.assertTotals(suite.red.ID, "0", "0")

	_, err = suite.orders.FindByID(suite.ctx, order.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SalesPipelineTestSuite) TestItemRemoval() {
	order := suite.createOrder(1, &suite.red.ID)
	cake := suite.addItem(order.ID, suite.cake, "1", 1)
	suite.addItem(order.ID, suite.cookie, "1", 1)

	suite.Require().NoError(suite.orderItems.Remove(suite.ctx, cake.ID))
	suite.assertTotals(suite.red.ID, "1", "40")

	err := suite.orderItems.Remove(suite.ctx, cake.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *SalesPipelineTestSuite) TestOrderValidation() {
	tests := []struct {
		name    string
		req     CreateOrderRequest
		message string
	}{
		{name: "blank customer", req: CreateOrderRequest{CustomerName: "  "}, message: "customer name is required"},
		{name: "negative total", req: CreateOrderRequest{CustomerName: "A", TotalPrice: dec("-1")}, message: "total price cannot be negative"},
		{name: "negative deposit", req: CreateOrderRequest{CustomerName: "A", TotalPrice: dec("10"), Deposit: dec("-1")}, message: "deposit cannot be negative"},
		{name: "deposit above total", req: CreateOrderRequest{CustomerName: "A", TotalPrice: dec("10"), Deposit: dec("11")}, message: "deposit cannot be greater than total price"},
		{name: "deposit 150 on total 100", req: CreateOrderRequest{CustomerName: "Somchai", TotalPrice: dec("100"), Deposit: dec("150"), BookNumber: 3, Number: 9}, message: "deposit cannot be greater than total price"},
		{name: "unknown status", req: CreateOrderRequest{CustomerName: "A", Status: "shipped"}, message: "invalid order status"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			order, err := suite.orders.Create(suite.ctx, &tt.req)
			suite.Require().Error(err)
			assert.Nil(suite.T(), order)
			assert.ErrorIs(suite.T(), err, ErrValidation)
			assert.Contains(suite.T(), err.Error(), tt.message)

			_, err = suite.store.Orders().FindByBookNumberAndNumber(suite.ctx, tt.req.BookNumber, tt.req.Number)
			assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
		})
	}

	_, total, err := suite.orders.FindAll(suite.ctx, OrderListParams{utils.PaginationParams{Page: 1, Limit: 10}})
	suite.Require().NoError(err)
	assert.Zero(suite.T(), total)
}

func (suite *SalesPipelineTestSuite) TestOrderUpdateChecksMergedAmounts() {
	order := suite.createOrder(1, nil)

	_, err := suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{TotalPrice: decPtr("100")})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Contains(suite.T(), err.Error(), "total price cannot be less than deposit")

	_, err = suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{Deposit: decPtr("1001")})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	assert.Contains(suite.T(), err.Error(), "deposit cannot be greater than total price")

	updated, err := suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{TotalPrice: decPtr("100"), Deposit: decPtr("50")})
	suite.Require().NoError(err)
	assert.True(suite.T(), updated.Deposit.Equal(dec("50")))
	assert.Equal(suite.T(), "Somchai", updated.CustomerName)
}

func (suite *SalesPipelineTestSuite) TestDuplicateBookNumber() {
	suite.createOrder(7, nil)
	other := suite.createOrder(8, nil)

	_, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{CustomerName: "B", BookNumber: 1, Number: 7})
	assert.ErrorIs(suite.T(), err, ErrConflict)

	_, err = suite.orders.Update(suite.ctx, other.ID, &UpdateOrderRequest{Number: intPtr(7)})
	assert.ErrorIs(suite.T(), err, ErrConflict)

	_, err = suite.orders.Update(suite.ctx, other.ID, &UpdateOrderRequest{Number: intPtr(8), Advisor: new(string)})
	assert.NoError(suite.T(), err)
}

func (suite *SalesPipelineTestSuite) TestItemValidation() {
	order := suite.createOrder(1, nil)

	tests := []struct {
		name  string
		req   CreateOrderItemRequest
		want  error
		match string
	}{
		{name: "zero pound", req: CreateOrderItemRequest{OrderID: order.ID, ProductID: suite.cake.ID, Pound: dec("0"), Quantity: 1}, want: ErrValidation, match: "pound must be greater than 0"},
		{name: "zero quantity", req: CreateOrderItemRequest{OrderID: order.ID, ProductID: suite.cake.ID, Pound: dec("1"), Quantity: 0}, want: ErrValidation, match: "quantity must be greater than 0"},
		{name: "negative unit price", req: CreateOrderItemRequest{OrderID: order.ID, ProductID: suite.cake.ID, Pound: dec("1"), Quantity: 1, UnitPrice: decPtr("-5")}, want: ErrValidation, match: "unit price cannot be negative"},
		{name: "missing product", req: CreateOrderItemRequest{OrderID: order.ID, ProductID: uuid.New(), Pound: dec("1"), Quantity: 1}, want: ErrNotFound, match: "product not found"},
		{name: "missing order", req: CreateOrderItemRequest{OrderID: uuid.New(), ProductID: suite.cake.ID, Pound: dec("1"), Quantity: 1}, want: ErrNotFound, match: "order not found"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.orderItems.Create(suite.ctx, &tt.req)
			assert.ErrorIs(suite.T(), err, tt.want)
			assert.Contains(suite.T(), err.Error(), tt.match)
		})
	}
}

func (suite *SalesPipelineTestSuite) TestOrderWithUnknownTeamIsRejected() {
	missing := uuid.New()
	_, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{CustomerName: "A", TeamID: &missing})
	assert.ErrorIs(suite.T(), err, ErrReference)
}

func (suite *SalesPipelineTestSuite) createClassroom(name string, departmentID uuid.UUID) *models.Classroom {
	classroom, err := suite.classrooms.Create(suite.ctx, &CreateClassroomRequest{
		Name:         name,
		TeacherID:    uuid.New(),
		DepartmentID: departmentID,
		GradeLevelID: uuid.New(),
		Students:     models.JSONB{{"studentId": "6501", "studentName": "Anan"}},
	})
	suite.Require().NoError(err)
	return classroom
}

func (suite *SalesPipelineTestSuite) TestOrderAttachesToStoredClassroom() {
	classroom := suite.createClassroom("M.4/1", uuid.New())

	order, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{CustomerName: "A", BookNumber: 4, Number: 1, ClassroomID: &classroom.ID})
	suite.Require().NoError(err)
	require.NotNil(suite.T(), order.ClassroomID)
	assert.Equal(suite.T(), classroom.ID, *order.ClassroomID)
	require.NotNil(suite.T(), order.Classroom)
	assert.Equal(suite.T(), "M.4/1", order.Classroom.Name)

	suite.Require().NoError(suite.classrooms.Delete(suite.ctx, classroom.ID))
	reloaded, err := suite.orders.FindByID(suite.ctx, order.ID)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), reloaded.ClassroomID)
}

func (suite *SalesPipelineTestSuite) TestOrderWithUnknownClassroomIsRejected() {
	missing := uuid.New()
	_, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{CustomerName: "A", BookNumber: 4, Number: 2, ClassroomID: &missing})
	assert.ErrorIs(suite.T(), err, ErrReference)

	_, err = suite.store.Orders().FindByBookNumberAndNumber(suite.ctx, 4, 2)
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)

	order := suite.createOrder(1, nil)
	_, err = suite.orders.Update(suite.ctx, order.ID, &UpdateOrderRequest{ClassroomID: SetUUID(missing)})
	assert.ErrorIs(suite.T(), err, ErrReference)
}

func (suite *SalesPipelineTestSuite) TestClassroomLifecycle() {
	science := uuid.New()
	suite.createClassroom("M.4/1", science)
	suite.createClassroom("M.4/2", science)
	arts := suite.createClassroom("M.5/1", uuid.New())

	_, err := suite.classrooms.Create(suite.ctx, &CreateClassroomRequest{Name: " ", TeacherID: uuid.New(), DepartmentID: science, GradeLevelID: uuid.New()})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	_, err = suite.classrooms.Create(suite.ctx, &CreateClassroomRequest{Name: "M.6/1", DepartmentID: science, GradeLevelID: uuid.New()})
	assert.ErrorIs(suite.T(), err, ErrValidation)
	_, err = suite.classrooms.Create(suite.ctx, &CreateClassroomRequest{Name: "M.4/1", TeacherID: uuid.New(), DepartmentID: science, GradeLevelID: uuid.New()})
	assert.ErrorIs(suite.T(), err, ErrConflict)

	classrooms, total, err := suite.classrooms.FindAll(suite.ctx, ClassroomListParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10},
		DepartmentID:     &science,
	})
	suite.Require().NoError(err)
	assert.EqualValues(suite.T(), 2, total)
	assert.Len(suite.T(), classrooms, 2)

	renamed := "M.5/2"
	updated, err := suite.classrooms.Update(suite.ctx, arts.ID, &UpdateClassroomRequest{Name: &renamed})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "M.5/2", updated.Name)
	assert.Len(suite.T(), updated.Students, 1)

	_, err = suite.classrooms.FindByID(suite.ctx, uuid.New())
	var notFound *NotFoundError
	require.ErrorAs(suite.T(), err, &notFound)
	assert.Equal(suite.T(), "classroom", notFound.Resource)
}

func (suite *SalesPipelineTestSuite) TestRecalculationFailureSurfaces() {
	order := suite.createOrder(1, &suite.red.ID)
	suite.store.UpdateSalesErr = errors.New("connection reset")

	item, err := suite.orderItems.Create(suite.ctx, &CreateOrderItemRequest{
		OrderID:   order.ID,
		ProductID: suite.cake.ID,
		Pound:     dec("1"),
		Quantity:  1,
	})
	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, ErrRecalculation)
	require.NotNil(suite.T(), item)

	stored, err := suite.orderItems.FindByID(suite.ctx, item.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), stored.Subtotal.Equal(dec("100")))
	suite.assertTotals(suite.red.ID, "0", "0")

	suite.store.UpdateSalesErr = nil
	report, err := suite.teamSales.RecalculateAll(suite.ctx)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 2, report.Teams)
	assert.Equal(suite.T(), 2, report.Recalculated)
	suite.assertTotals(suite.red.ID, "1", "100")
}

func (suite *SalesPipelineTestSuite) TestRecalculateAllReportsFailures() {
	suite.store.UpdateSalesErr = errors.New("disk full")

	report, err := suite.teamSales.RecalculateAll(suite.ctx)
	suite.Require().Error(err)
	assert.Equal(suite.T(), 2, report.Teams)
	assert.Zero(suite.T(), report.Recalculated)
	assert.ElementsMatch(suite.T(), []uuid.UUID{suite.red.ID, suite.blue.ID}, report.Failed)
}

func (suite *SalesPipelineTestSuite) TestRecalculateAllStopsWhenCancelled() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	report, err := suite.teamSales.RecalculateAll(ctx)
	suite.Require().Error(err)
	assert.ErrorIs(suite.T(), err, context.Canceled)
	require.NotNil(suite.T(), report)
	assert.Equal(suite.T(), 2, report.Teams)
	assert.Zero(suite.T(), report.Recalculated)
	assert.Zero(suite.T(), suite.store.SalesUpdates(suite.red.ID))
	assert.Zero(suite.T(), suite.store.SalesUpdates(suite.blue.ID))
}

func (suite *SalesPipelineTestSuite) TestRecalculateMissingTeam() {
	_, err := suite.teamSales.Recalculate(suite.ctx, uuid.New())
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	missing := uuid.New()
	assert.NoError(suite.T(), suite.teamSales.RecalculateTeams(suite.ctx, &missing, nil))
}

func (suite *SalesPipelineTestSuite) TestTeamDeletionDetachesOrders() {
	order := suite.createOrder(1, &suite.red.ID)
	item := suite.addItem(order.ID, suite.cake, "1", 1)

	suite.Require().NoError(suite.teams.Delete(suite.ctx, suite.red.ID))

	reloaded, err := suite.orders.FindByID(suite.ctx, order.ID)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), reloaded.TeamID)

	_, err = suite.orderItems.Update(suite.ctx, item.ID, &UpdateOrderItemRequest{Quantity: intPtr(2)})
	assert.NoError(suite.T(), err)
}

func (suite *SalesPipelineTestSuite) TestProductInUseCannotBeDeleted() {
	order := suite.createOrder(1, nil)
	suite.addItem(order.ID, suite.cake, "1", 1)

	err := suite.products.Delete(suite.ctx, suite.cake.ID)
	assert.ErrorIs(suite.T(), err, ErrConflict)

	assert.NoError(suite.T(), suite.products.Delete(suite.ctx, suite.cookie.ID))
	assert.ErrorIs(suite.T(), suite.products.Delete(suite.ctx, suite.cookie.ID), ErrNotFound)
}

func (suite *SalesPipelineTestSuite) TestProductPriceChangeKeepsStoredSubtotals() {
	order := suite.createOrder(1, &suite.red.ID)
	item := suite.addItem(order.ID, suite.cake, "1", 1)

	_, err := suite.products.Update(suite.ctx, suite.cake.ID, &UpdateProductRequest{Price: decPtr("150")})
	suite.Require().NoError(err)

	stored, err := suite.orderItems.FindByID(suite.ctx, item.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), stored.Subtotal.Equal(dec("100")))

	updated, err := suite.orderItems.Update(suite.ctx, item.ID, &UpdateOrderItemRequest{Pound: decPtr("2")})
	suite.Require().NoError(err)
	assert.True(suite.T(), updated.Subtotal.Equal(dec("300")))
	suite.assertTotals(suite.red.ID, "2", "300")
}

func (suite *SalesPipelineTestSuite) TestSearchAndPagination() {
	for i := 1; i <= 3; i++ {
		suite.createOrder(i, nil)
	}
	_, err := suite.orders.Create(suite.ctx, &CreateOrderRequest{CustomerName: "Nok", BookNumber: 2, Number: 1, Advisor: "Kru Somsri"})
	suite.Require().NoError(err)

	orders, total, err := suite.orders.FindAll(suite.ctx, OrderListParams{utils.PaginationParams{Page: 1, Limit: 2}})
	suite.Require().NoError(err)
	assert.Len(suite.T(), orders, 2)
	assert.EqualValues(suite.T(), 4, total)

	orders, total, err = suite.orders.FindAll(suite.ctx, OrderListParams{utils.PaginationParams{Page: 1, Limit: 10, Search: "somsri"}})
	suite.Require().NoError(err)
	require.Len(suite.T(), orders, 1)
	assert.EqualValues(suite.T(), 1, total)
	assert.Equal(suite.T(), "Nok", orders[0].CustomerName)
}

func (suite *SalesPipelineTestSuite) TestTeamValidation() {
	_, err := suite.teams.Create(suite.ctx, &CreateTeamRequest{Name: "Green"})
	assert.ErrorIs(suite.T(), err, ErrValidation)

	_, err = suite.teams.Create(suite.ctx, &CreateTeamRequest{Name: "Red", ClassroomIDs: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(suite.T(), err, ErrConflict)

	person := models.TeamTypePerson
	team, err := suite.teams.Update(suite.ctx, suite.blue.ID, &UpdateTeamRequest{TeamType: &person})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TeamTypePerson, team.TeamType)
	assert.Len(suite.T(), team.ClassroomIDs, 2)
}

func TestSalesPipelineSuite(t *testing.T) {
	suite.Run(t, new(SalesPipelineTestSuite))
}

func TestSumTeamSales(t *testing.T) {
	teamID := uuid.New()
	orders := []models.Order{
		{OrderItems: []models.OrderItem{
			{Pound: dec("3"), Quantity: 2, Subtotal: dec("600")},
			{Pound: dec("0.5"), Quantity: 1, Subtotal: dec("50")},
		}},
		{},
		{OrderItems: []models.OrderItem{{Pound: dec("1.25"), Quantity: 4, Subtotal: dec("125")}}},
	}

	sales := SumTeamSales(teamID, orders)

	assert.Equal(t, teamID, sales.TeamID)
	assert.True(t, sales.TotalSalesPounds.Equal(dec("11.5")))
	assert.True(t, sales.TotalSalesBaht.Equal(dec("775")))
	assert.Equal(t, 3, sales.Orders)
	assert.Equal(t, 3, sales.OrderItems)
}

func TestOptionalUUIDUnmarshal(t *testing.T) {
	id := uuid.New()

	var req UpdateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"team_id":"`+id.String()+`"}`), &req))
	assert.True(t, req.TeamID.Set)
	require.NotNil(t, req.TeamID.Value)
	assert.Equal(t, id, *req.TeamID.Value)
	assert.False(t, req.ClassroomID.Set)

	req = UpdateOrderRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"team_id":null}`), &req))
	assert.True(t, req.TeamID.Set)
	assert.Nil(t, req.TeamID.Value)
}
