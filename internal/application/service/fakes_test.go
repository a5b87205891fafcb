package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shrey0428/ExoticBill/internal/domain/billing"
	"github.com/Shrey0428/ExoticBill/internal/domain/entity"
	"github.com/Shrey0428/ExoticBill/internal/domain/enum"
	"github.com/Shrey0428/ExoticBill/internal/domain/repository"
	"github.com/Shrey0428/ExoticBill/pkg/pagination"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fakeTx struct {
	calls int
	depth int
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	f.depth++
	defer func() { f.depth-- }()
	return fn(ctx)
}

// fakeBillRepo keeps the ledger in memory
type fakeBillRepo struct {
	mu        sync.Mutex
	nextID    uint
	bills     map[uint]entity.Bill
	deleted   []entity.DeletedBill
	createErr error
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{nextID: 1, bills: map[uint]entity.Bill{}}
}

func (r *fakeBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if bill.ID == 0 {
		bill.ID = r.nextID
	}
	if bill.ID >= r.nextID {
		r.nextID = bill.ID + 1
	}
	r.bills[bill.ID] = *bill
	return nil
}

func (r *fakeBillRepo) GetByID(ctx context.Context, id uint) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBillRepo) sorted(keep func(entity.Bill) bool, newestFirst bool) []entity.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Bill
	for _, b := range r.bills {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].ID > out[j].ID
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *fakeBillRepo) ListByEmployee(ctx context.Context, employeeCID string) ([]entity.Bill, error) {
	return r.sorted(func(b entity.Bill) bool { return b.EmployeeCID == employeeCID }, true), nil
}

func (r *fakeBillRepo) ListByCustomer(ctx context.Context, customerCID string) ([]entity.Bill, error) {
	return r.sorted(func(b entity.Bill) bool { return b.CustomerCID == customerCID }, true), nil
}

func matchesFilter(b entity.Bill, f repository.BillFilter) bool {
	if f.From != nil && b.BilledAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !b.BilledAt.Before(*f.To) {
		return false
	}
	if f.BillingType != "" && b.BillingType != f.BillingType {
		return false
	}
	if f.EmployeeCID != "" && !strings.Contains(strings.ToLower(b.EmployeeCID), strings.ToLower(f.EmployeeCID)) {
		return false
	}
	if f.CustomerCID != "" && !strings.Contains(strings.ToLower(b.CustomerCID), strings.ToLower(f.CustomerCID)) {
		return false
	}
	return true
}

func (r *fakeBillRepo) Query(ctx context.Context, filter repository.BillFilter, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	all := r.sorted(func(b entity.Bill) bool { return matchesFilter(b, filter) }, true)
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (r *fakeBillRepo) QueryAll(ctx context.Context, filter repository.BillFilter) ([]entity.Bill, error) {
	return r.sorted(func(b entity.Bill) bool { return matchesFilter(b, filter) }, false), nil
}

func (r *fakeBillRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bills, id)
	return nil
}

func (r *fakeBillRepo) CreateDeleted(ctx context.Context, deleted *entity.DeletedBill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, *deleted)
	return nil
}

func (r *fakeBillRepo) ListDeleted(ctx context.Context, params *pagination.PaginationParams) ([]entity.DeletedBill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entity.DeletedBill(nil), r.deleted...)
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]entity.Employee
}

func newFakeEmployeeRepo(employees ...entity.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: map[string]entity.Employee{}}
	for _, e := range employees {
		r.employees[e.CID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	if _, ok := r.employees[employee.CID]; ok {
		return repository.ErrDuplicateKey
	}
	r.employees[employee.CID] = *employee
	return nil
}

func (r *fakeEmployeeRepo) GetByCID(ctx context.Context, cid string) (*entity.Employee, error) {
	e, ok := r.employees[cid]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *fakeEmployeeRepo) Update(ctx context.Context, employee *entity.Employee) error {
	r.employees[employee.CID] = *employee
	return nil
}

func (r *fakeEmployeeRepo) Delete(ctx context.Context, cid string) error {
	delete(r.employees, cid)
	return nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, hood string) ([]entity.Employee, error) {
	var out []entity.Employee
	for _, e := range r.employees {
		if hood == "" || e.Hood == hood {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeEmployeeRepo) ReassignHood(ctx context.Context, from, to string) error {
	for cid, e := range r.employees {
		if e.Hood == from {
			e.Hood = to
			r.employees[cid] = e
		}
	}
	return nil
}

type fakeHoodRepo struct {
	hoods map[string]entity.Hood
}

func newFakeHoodRepo(names ...string) *fakeHoodRepo {
	r := &fakeHoodRepo{hoods: map[string]entity.Hood{}}
	for i, n := range append([]string{entity.UnassignedHood}, names...) {
		r.hoods[n] = entity.Hood{ID: uint(i + 1), Name: n}
	}
	return r
}

func (r *fakeHoodRepo) Create(ctx context.Context, hood *entity.Hood) error {
	if _, ok := r.hoods[hood.Name]; ok {
		return repository.ErrDuplicateKey
	}
	hood.ID = uint(len(r.hoods) + 1)
	r.hoods[hood.Name] = *hood
	return nil
}

func (r *fakeHoodRepo) GetByName(ctx context.Context, name string) (*entity.Hood, error) {
	h, ok := r.hoods[name]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *fakeHoodRepo) List(ctx context.Context) ([]entity.Hood, error) {
	var out []entity.Hood
	for _, h := range r.hoods {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeHoodRepo) Delete(ctx context.Context, name string) error {
	delete(r.hoods, name)
	return nil
}

type historyKey struct {
	cid string
	at  time.Time
}

type fakeMembershipRepo struct {
	active  map[string]entity.Membership
	history map[historyKey]entity.MembershipHistory
}

func newFakeMembershipRepo(memberships ...entity.Membership) *fakeMembershipRepo {
	r := &fakeMembershipRepo{
		active:  map[string]entity.Membership{},
		history: map[historyKey]entity.MembershipHistory{},
	}
	for _, m := range memberships {
		r.active[m.CustomerCID] = m
	}
	return r
}

func (r *fakeMembershipRepo) Get(ctx context.Context, customerCID string) (*entity.Membership, error) {
	m, ok := r.active[customerCID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *fakeMembershipRepo) Upsert(ctx context.Context, membership *entity.Membership) error {
	r.active[membership.CustomerCID] = *membership
	return nil
}

func (r *fakeMembershipRepo) ListActivatedSince(ctx context.Context, since time.Time) ([]entity.Membership, error) {
	var out []entity.Membership
	for _, m := range r.active {
		if !m.ActivatedAt.Before(since) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivatedAt.After(out[j].ActivatedAt) })
	return out, nil
}

func (r *fakeMembershipRepo) CountActivatedSince(ctx context.Context, since time.Time) (int64, error) {
	list, _ := r.ListActivatedSince(ctx, since)
	return int64(len(list)), nil
}

func (r *fakeMembershipRepo) ListActivatedBefore(ctx context.Context, cutoff time.Time) ([]entity.Membership, error) {
	var out []entity.Membership
	for _, m := range r.active {
		if m.ActivatedAt.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepo) DeleteIfUnchanged(ctx context.Context, customerCID string, activatedAt time.Time) (bool, error) {
	m, ok := r.active[customerCID]
	if !ok || !m.ActivatedAt.Equal(activatedAt) {
		return false, nil
	}
	delete(r.active, customerCID)
	return true, nil
}

func (r *fakeMembershipRepo) AppendHistory(ctx context.Context, history *entity.MembershipHistory) error {
	key := historyKey{history.CustomerCID, history.ActivatedAt}
	if _, ok := r.history[key]; ok {
		return nil
	}
	history.ID = uint(len(r.history) + 1)
	r.history[key] = *history
	return nil
}

func (r *fakeMembershipRepo) History(ctx context.Context, customerCID string) ([]entity.MembershipHistory, error) {
	var out []entity.MembershipHistory
	for _, h := range r.history {
		if h.CustomerCID == customerCID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivatedAt.After(out[j].ActivatedAt) })
	return out, nil
}

type fakeLoyaltyRepo struct {
	accounts map[string]entity.LoyaltyAccount
	history  []entity.LoyaltyHistory
}

func newFakeLoyaltyRepo() *fakeLoyaltyRepo {
	return &fakeLoyaltyRepo{accounts: map[string]entity.LoyaltyAccount{}}
}

func (r *fakeLoyaltyRepo) GetAccount(ctx context.Context, customerCID string) (*entity.LoyaltyAccount, error) {
	a, ok := r.accounts[customerCID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeLoyaltyRepo) AddPoints(ctx context.Context, customerCID string, delta int64, at time.Time) (*entity.LoyaltyAccount, error) {
	a := r.accounts[customerCID]
	a.CustomerCID = customerCID
	a.Points += delta
	if a.Points < 0 {
		a.Points = 0
	}
	a.UpdatedAt = at
	r.accounts[customerCID] = a
	return &a, nil
}

func (r *fakeLoyaltyRepo) AppendHistory(ctx context.Context, history *entity.LoyaltyHistory) error {
	history.ID = uint(len(r.history) + 1)
	r.history = append(r.history, *history)
	return nil
}

func (r *fakeLoyaltyRepo) History(ctx context.Context, customerCID string) ([]entity.LoyaltyHistory, error) {
	var out []entity.LoyaltyHistory
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].CustomerCID == customerCID {
			out = append(out, r.history[i])
		}
	}
	return out, nil
}

type fakeShiftRepo struct {
	shifts []entity.Shift
}

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	shift.ID = uint(len(r.shifts) + 1)
	r.shifts = append(r.shifts, *shift)
	return nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	for i := range r.shifts {
		if r.shifts[i].ID == shift.ID {
			r.shifts[i] = *shift
			return nil
		}
	}
	return errors.New("shift not found")
}

func (r *fakeShiftRepo) GetOpen(ctx context.Context, employeeCID string) (*entity.Shift, error) {
	for i := range r.shifts {
		if r.shifts[i].EmployeeCID == employeeCID && r.shifts[i].IsOpen() {
			s := r.shifts[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *fakeShiftRepo) ListOpen(ctx context.Context) ([]entity.Shift, error) {
	var out []entity.Shift
	for _, s := range r.shifts {
		if s.IsOpen() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) List(ctx context.Context, employeeCID string, params *pagination.PaginationParams) ([]entity.Shift, int64, error) {
	var out []entity.Shift
	for i := len(r.shifts) - 1; i >= 0; i-- {
		if employeeCID == "" || r.shifts[i].EmployeeCID == employeeCID {
			out = append(out, r.shifts[i])
		}
	}
	return out, int64(len(out)), nil
}

// fakeAnalyticsRepo aggregates whatever is in a fakeBillRepo and counts its calls
type fakeAnalyticsRepo struct {
	bills *fakeBillRepo
	calls int
}

func (r *fakeAnalyticsRepo) TotalsByType(ctx context.Context, employeeCID string) ([]repository.TypeTotal, error) {
	r.calls++
	byType := map[enum.BillingType]*repository.TypeTotal{}
	for _, b := range r.bills.sorted(func(b entity.Bill) bool { return employeeCID == "" || b.EmployeeCID == employeeCID }, false) {
		t, ok := byType[b.BillingType]
		if !ok {
			t = &repository.TypeTotal{BillingType: b.BillingType, Total: decimal.Zero, Commission: decimal.Zero, Tax: decimal.Zero}
			byType[b.BillingType] = t
		}
		t.Total = t.Total.Add(b.TotalAmount)
		t.Commission = t.Commission.Add(b.Commission)
		t.Tax = t.Tax.Add(b.Tax)
		t.BillCount++
	}
	var out []repository.TypeTotal
	for _, t := range byType {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) RankEmployees(ctx context.Context, metric enum.RankMetric, limit int) ([]repository.EmployeeTotal, error) {
	r.calls++
	totals := map[string]*repository.EmployeeTotal{}
	for _, b := range r.bills.sorted(func(entity.Bill) bool { return true }, false) {
		t, ok := totals[b.EmployeeCID]
		if !ok {
			t = &repository.EmployeeTotal{EmployeeCID: b.EmployeeCID, Revenue: decimal.Zero, Commission: decimal.Zero, Tax: decimal.Zero}
			totals[b.EmployeeCID] = t
		}
		t.Revenue = t.Revenue.Add(b.TotalAmount)
		t.Commission = t.Commission.Add(b.Commission)
		t.BillCount++
	}
	var out []repository.EmployeeTotal
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue.GreaterThan(out[j].Revenue) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) HoodTotals(ctx context.Context) ([]repository.HoodTotal, error) {
	r.calls++
	return nil, nil
}

func (r *fakeAnalyticsRepo) DailyRevenue(ctx context.Context, since time.Time, timezone string) ([]repository.DailyRevenue, error) {
	r.calls++
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	days := map[string]*repository.DailyRevenue{}
	for _, b := range r.bills.sorted(func(b entity.Bill) bool { return !b.BilledAt.Before(since) }, false) {
		date := b.BilledAt.In(loc).Format("2006-01-02")
		d, ok := days[date]
		if !ok {
			d = &repository.DailyRevenue{Date: date, Revenue: decimal.Zero}
			days[date] = d
		}
		d.Revenue = d.Revenue.Add(b.TotalAmount)
		d.BillCount++
	}
	var out []repository.DailyRevenue
	for _, d := range days {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeAnalyticsRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	r.calls++
	total := decimal.Zero
	var count int64
	for _, b := range r.bills.sorted(func(b entity.Bill) bool { return !b.BilledAt.Before(from) && b.BilledAt.Before(to) }, false) {
		total = total.Add(b.TotalAmount)
		count++
	}
	return total, count, nil
}

func (r *fakeAnalyticsRepo) TopCustomers(ctx context.Context, limit int) ([]repository.CustomerTotal, error) {
	r.calls++
	return nil, nil
}

// fakeCache stores JSON like the Redis cache does
type fakeCache struct {
	entries map[string][]byte
	purges  int
	// purgesInTx counts purges issued while tx still had a transaction open
	purgesInTx int
	tx         *fakeTx
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.purges++
	if c.tx != nil && c.tx.depth > 0 {
		c.purgesInTx++
	}
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}

// testLedger wires every ledger service against in-memory fakes at a fixed clock
type testLedger struct {
	card        *billing.RateCard
	tx          *fakeTx
	cache       *fakeCache
	bills       *fakeBillRepo
	employees   *fakeEmployeeRepo
	hoods       *fakeHoodRepo
	memberships *fakeMembershipRepo
	loyaltyRepo *fakeLoyaltyRepo

	loyalty    *LoyaltyService
	billing    *BillingService
	membership *MembershipService
	billSvc    *BillService
}

func newTestLedger(now time.Time, employees ...entity.Employee) *testLedger {
	l := &testLedger{
		card:        billing.DefaultRateCard(),
		tx:          &fakeTx{},
		cache:       newFakeCache(),
		bills:       newFakeBillRepo(),
		employees:   newFakeEmployeeRepo(employees...),
		hoods:       newFakeHoodRepo(),
		memberships: newFakeMembershipRepo(),
		loyaltyRepo: newFakeLoyaltyRepo(),
	}
	l.cache.tx = l.tx
	clock := fixedClock(now)

	l.loyalty = NewLoyaltyService(l.loyaltyRepo, l.tx, l.card)
	l.loyalty.now = clock
	l.billing = NewBillingService(l.bills, l.employees, l.memberships, l.loyalty, l.tx, l.cache, l.card)
	l.billing.now = clock
	l.membership = NewMembershipService(l.memberships, l.billing, l.tx, l.cache, l.card)
	l.membership.now = clock
	l.billSvc = NewBillService(l.bills, l.tx, l.cache)
	l.billSvc.now = clock
	return l
}

func (l *testLedger) setNow(now time.Time) {
	clock := fixedClock(now)
	l.loyalty.now = clock
	l.billing.now = clock
	l.membership.now = clock
	l.billSvc.now = clock
}
