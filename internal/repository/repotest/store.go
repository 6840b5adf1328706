// Package repotest provides an in-memory repository.Store for tests.
//
// It follows the same error contract as the GORM store: missing rows return
// gorm.ErrRecordNotFound, unique violations gorm.ErrDuplicatedKey and
// dangling references gorm.ErrForeignKeyViolated. Deleting an order cascades
// to its items and deleting a team or classroom detaches its orders, as the
// schema does.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/school-sales-backend/internal/models"
	"github.com/javajoker/school-sales-backend/internal/repository"
)

type data struct {
	orders     map[uuid.UUID]models.Order
	orderItems map[uuid.UUID]models.OrderItem
	teams      map[uuid.UUID]models.Team
	products   map[uuid.UUID]models.Product
	classrooms map[uuid.UUID]models.Classroom
}

func (d *data) clone() *data {
	c := &data{
		orders:     make(map[uuid.UUID]models.Order, len(d.orders)),
		orderItems: make(map[uuid.UUID]models.OrderItem, len(d.orderItems)),
		teams:      make(map[uuid.UUID]models.Team, len(d.teams)),
		products:   make(map[uuid.UUID]models.Product, len(d.products)),
		classrooms: make(map[uuid.UUID]models.Classroom, len(d.classrooms)),
	}
	for k, v := range d.orders {
		c.orders[k] = v
	}
	for k, v := range d.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range d.teams {
		c.teams[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	for k, v := range d.classrooms {
		c.classrooms[k] = v
	}
	return c
}

// Store is an in-memory repository.Store. The zero value is not usable; use
// NewStore.
type Store struct {
	mu   *sync.Mutex
	data *data

	// UpdateSalesErr, when set, is returned by Teams().UpdateSales.
	UpdateSalesErr error
	// CreateOrderErr, when set, is returned by Orders().Create.
	CreateOrderErr error

	salesUpdates map[uuid.UUID]int
}

var _ repository.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		mu: &sync.Mutex{},
		data: &data{
			orders:     make(map[uuid.UUID]models.Order),
			orderItems: make(map[uuid.UUID]models.OrderItem),
			teams:      make(map[uuid.UUID]models.Team),
			products:   make(map[uuid.UUID]models.Product),
			classrooms: make(map[uuid.UUID]models.Classroom),
		},
		salesUpdates: make(map[uuid.UUID]int),
	}
}

// SalesUpdates reports how many times the totals of a team were written.
func (s *Store) SalesUpdates(teamID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.salesUpdates[teamID]
}

func (s *Store) Orders() repository.OrderRepository         { return orderRepo{s} }
func (s *Store) OrderItems() repository.OrderItemRepository { return orderItemRepo{s} }
func (s *Store) Teams() repository.TeamRepository           { return teamRepo{s} }
func (s *Store) Products() repository.ProductRepository     { return productRepo{s} }
func (s *Store) Classrooms() repository.ClassroomRepository { return classroomRepo{s} }

// WithinTransaction restores the previous contents when fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func stamp(base *models.BaseModel) {
	now := time.Now()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = now
	}
	base.UpdatedAt = now
}

func window[T any](rows []T, page repository.Page) []T {
	if page.Limit <= 0 {
		return rows
	}
	if page.Offset >= len(rows) {
		return []T{}
	}
	end := page.Offset + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[page.Offset:end]
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Orders

type orderRepo struct{ s *Store }

func (r orderRepo) Create(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.data

	if r.s.CreateOrderErr != nil {
		return r.s.CreateOrderErr
	}
	if err := d.checkOrderRefs(order); err != nil {
		return err
	}
	if d.bookNumberTaken(order.BookNumber, order.Number, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}

	stamp(&order.BaseModel)
	row := *order
	row.OrderItems, row.Team, row.Classroom = nil, nil, nil
	d.orders[order.ID] = row
	return nil
}

func (d *data) checkOrderRefs(order *models.Order) error {
	if order.TeamID != nil {
		if _, ok := d.teams[*order.TeamID]; !ok {
			return gorm.ErrForeignKeyViolated
		}
	}
	if order.ClassroomID != nil {
		if _, ok := d.classrooms[*order.ClassroomID]; !ok {
			return gorm.ErrForeignKeyViolated
		}
	}
	return nil
}

func (d *data) bookNumberTaken(bookNumber, number int, except uuid.UUID) bool {
	for id, o := range d.orders {
		if id != except && o.BookNumber == bookNumber && o.Number == number {
			return true
		}
	}
	return false
}

func (d *data) itemsOf(orderID uuid.UUID) []models.OrderItem {
	items := []models.OrderItem{}
	for _, it := range d.orderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items
}

func (d *data) loadOrder(o models.Order) models.Order {
	o.OrderItems = d.itemsOf(o.ID)
	if o.TeamID != nil {
		if t, ok := d.teams[*o.TeamID]; ok {
			o.Team = &t
		}
	}
	if o.ClassroomID != nil {
		if c, ok := d.classrooms[*o.ClassroomID]; ok {
			o.Classroom = &c
		}
	}
	return o
}

func (r orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := r.s.data.loadOrder(o)
	return &loaded, nil
}

func (r orderRepo) FindAll(ctx context.Context, filter repository.OrderFilter) ([]models.Order, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Order
	for _, o := range r.s.data.orders {
		if filter.Search != "" && !contains(o.CustomerName, filter.Search) && !contains(o.Advisor, filter.Search) {
			continue
		}
		rows = append(rows, r.s.data.loadOrder(o))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return window(rows, filter.Page), int64(len(rows)), nil
}

func (r orderRepo) Update(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.data

	existing, ok := d.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := d.checkOrderRefs(order); err != nil {
		return err
	}
	if d.bookNumberTaken(order.BookNumber, order.Number, order.ID) {
		return gorm.ErrDuplicatedKey
	}

	row := *order
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	row.OrderItems, row.Team, row.Classroom = nil, nil, nil
	d.orders[order.ID] = row
	return nil
}

func (r orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.data

	if _, ok := d.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(d.orders, id)
	for itemID, it := range d.orderItems {
		if it.OrderID == id {
			delete(d.orderItems, itemID)
		}
	}
	return nil
}

func (r orderRepo) FindByTeamID(ctx context.Context, teamID uuid.UUID) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Order
	for _, o := range r.s.data.orders {
		if o.TeamID != nil && *o.TeamID == teamID {
			o.OrderItems = r.s.data.itemsOf(o.ID)
			rows = append(rows, o)
		}
	}
	return rows, nil
}

func (r orderRepo) FindByBookNumberAndNumber(ctx context.Context, bookNumber, number int) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.data.orders {
		if o.BookNumber == bookNumber && o.Number == number {
			found := o
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Order items

type orderItemRepo struct{ s *Store }

func (d *data) checkItemRefs(item *models.OrderItem) error {
	if _, ok := d.orders[item.OrderID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := d.products[item.ProductID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	return nil
}

func (d *data) loadItem(it models.OrderItem) models.OrderItem {
	if p, ok := d.products[it.ProductID]; ok {
		it.Product = &p
	}
	if o, ok := d.orders[it.OrderID]; ok {
		it.Order = &o
	}
	return it
}

func (r orderItemRepo) Create(ctx context.Context, item *models.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.data

	if err := d.checkItemRefs(item); err != nil {
		return err
	}
	stamp(&item.BaseModel)
	row := *item
	row.Order, row.Product = nil, nil
	d.orderItems[item.ID] = row
	return nil
}

func (r orderItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.data.orderItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := r.s.data.loadItem(it)
	return &loaded, nil
}

func (r orderItemRepo) FindAll(ctx context.Context, filter repository.OrderItemFilter) ([]models.OrderItem, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.OrderItem
	for _, it := range r.s.data.orderItems {
		if filter.OrderID != nil && it.OrderID != *filter.OrderID {
			continue
		}
		rows = append(rows, r.s.data.loadItem(it))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return window(rows, filter.Page), int64(len(rows)), nil
}

func (r orderItemRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := r.s.data.itemsOf(orderID)
	for i := range items {
		items[i] = r.s.data.loadItem(items[i])
	}
	return items, nil
}

func (r orderItemRepo) Update(ctx context.Context, item *models.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.data

	existing, ok := d.orderItems[item.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := d.checkItemRefs(item); err != nil {
		return err
	}
	row := *item
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	row.Order, row.Product = nil, nil
	d.orderItems[item.ID] = row
	return nil
}

func (r orderItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orderItems[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.data.orderItems, id)
	return nil
}

func (r orderItemRepo) DeleteByOrder(ctx context.Context, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.data.orderItems {
		if it.OrderID == orderID {
			delete(r.s.data.orderItems, id)
		}
	}
	return nil
}

// Teams

type teamRepo struct{ s *Store }

func (d *data) teamNameTaken(name string, except uuid.UUID) bool {
	for id, t := range d.teams {
		if id != except && t.Name == name {
			return true
		}
	}
	return false
}

func (r teamRepo) Create(ctx context.Context, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.teamNameTaken(team.Name, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	stamp(&team.BaseModel)
	r.s.data.teams[team.ID] = *team
	return nil
}

func (r teamRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.data.teams[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r teamRepo) LockByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	return r.FindByID(ctx, id)
}

func (r teamRepo) FindAll(ctx context.Context, filter repository.TeamFilter) ([]models.Team, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Team
	for _, t := range r.s.data.teams {
		if filter.Search != "" && !contains(t.Name, filter.Search) {
			continue
		}
		rows = append(rows, t)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return window(rows, filter.Page), int64(len(rows)), nil
}

func (r teamRepo) Update(ctx context.Context, team *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.teams[team.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.s.data.teamNameTaken(team.Name, team.ID) {
		return gorm.ErrDuplicatedKey
	}
	existing.Name = team.Name
	existing.ClassroomIDs = team.ClassroomIDs
	existing.TeamType = team.TeamType
	existing.UpdatedAt = time.Now()
	r.s.data.teams[team.ID] = existing
	return nil
}

func (r teamRepo) UpdateSales(ctx context.Context, id uuid.UUID, pounds, baht decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.UpdateSalesErr != nil {
		return r.s.UpdateSalesErr
	}
	t, ok := r.s.data.teams[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.TotalSalesPounds = pounds
	t.TotalSalesBaht = baht
	t.UpdatedAt = time.Now()
	r.s.data.teams[id] = t
	r.s.salesUpdates[id]++
	return nil
}

func (r teamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.teams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.data.teams, id)
	for orderID, o := range r.s.data.orders {
		if o.TeamID != nil && *o.TeamID == id {
			o.TeamID = nil
			r.s.data.orders[orderID] = o
		}
	}
	return nil
}

func (r teamRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]uuid.UUID, 0, len(r.s.data.teams))
	for id := range r.s.data.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

// Products

type productRepo struct{ s *Store }

func (d *data) productNameTaken(name string, except uuid.UUID) bool {
	for id, p := range d.products {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (r productRepo) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.productNameTaken(product.Name, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	stamp(&product.BaseModel)
	r.s.data.products[product.ID] = *product
	return nil
}

func (r productRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r productRepo) FindAll(ctx context.Context, filter repository.ProductFilter) ([]models.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Product
	for _, p := range r.s.data.products {
		if filter.Search != "" && !contains(p.Name, filter.Search) && !contains(p.Description, filter.Search) {
			continue
		}
		rows = append(rows, p)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return window(rows, filter.Page), int64(len(rows)), nil
}

func (r productRepo) Update(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.products[product.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.s.data.productNameTaken(product.Name, product.ID) {
		return gorm.ErrDuplicatedKey
	}
	existing.Name = product.Name
	existing.Price = product.Price
	existing.Description = product.Description
	existing.UpdatedAt = time.Now()
	r.s.data.products[product.ID] = existing
	return nil
}

func (r productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, it := range r.s.data.orderItems {
		if it.ProductID == id {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(r.s.data.products, id)
	return nil
}

// Classrooms

type classroomRepo struct{ s *Store }

func (d *data) classroomNameTaken(name string, except uuid.UUID) bool {
	for id, c := range d.classrooms {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (r classroomRepo) Create(ctx context.Context, classroom *models.Classroom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.data.classroomNameTaken(classroom.Name, uuid.Nil) {
		return gorm.ErrDuplicatedKey
	}
	stamp(&classroom.BaseModel)
	r.s.data.classrooms[classroom.ID] = *classroom
	return nil
}

func (r classroomRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Classroom, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.classrooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r classroomRepo) FindAll(ctx context.Context, filter repository.ClassroomFilter) ([]models.Classroom, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []models.Classroom
	for _, c := range r.s.data.classrooms {
		if filter.Search != "" && !contains(c.Name, filter.Search) {
			continue
		}
		if filter.DepartmentID != nil && c.DepartmentID != *filter.DepartmentID {
			continue
		}
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return window(rows, filter.Page), int64(len(rows)), nil
}

func (r classroomRepo) Update(ctx context.Context, classroom *models.Classroom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.data.classrooms[classroom.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if r.s.data.classroomNameTaken(classroom.Name, classroom.ID) {
		return gorm.ErrDuplicatedKey
	}
	row := *classroom
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now()
	r.s.data.classrooms[classroom.ID] = row
	return nil
}

func (r classroomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.classrooms[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.data.classrooms, id)
	for orderID, o := range r.s.data.orders {
		if o.ClassroomID != nil && *o.ClassroomID == id {
			o.ClassroomID = nil
			r.s.data.orders[orderID] = o
		}
	}
	return nil
}
