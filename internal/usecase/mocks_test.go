package usecase

import (
	"context"
	"time"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// テスト用の固定部品
// =====================

type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return []string{
		"00000000-0000-0000-0000-000000000001",
		"00000000-0000-0000-0000-000000000002",
		"00000000-0000-0000-0000-000000000003",
		"00000000-0000-0000-0000-000000000004",
		"00000000-0000-0000-0000-000000000005",
		"00000000-0000-0000-0000-000000000006",
		"00000000-0000-0000-0000-000000000007",
		"00000000-0000-0000-0000-000000000008",
	}[(g.n-1)%8]
}

type nopLogger struct{}

func (l *nopLogger) Infof(format string, args ...interface{})  {}
func (l *nopLogger) Warnf(format string, args ...interface{})  {}
func (l *nopLogger) Errorf(format string, args ...interface{}) {}

// bcryptを回さない軽量ハッシャ
type stubHasher struct{}

func (h *stubHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

type stubVerifier struct{}

func (v *stubVerifier) Verify(plain string, hashed string) bool {
	return hashed == "hashed:"+plain
}

// =====================
// UserRepository モック
// =====================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, page int, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	total, _ := args.Get(1).(int64)
	return users, total, args.Error(2)
}

func (m *MockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.UserRepository = (*MockUserRepo)(nil)

// =====================
// SkuMappingRepository モック
// =====================

type MockSkuMappingRepo struct {
	mock.Mock
}

func (m *MockSkuMappingRepo) Create(ctx context.Context, mapping *model.SkuMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockSkuMappingRepo) FindByID(ctx context.Context, mappingID string) (model.SkuMapping, error) {
	args := m.Called(ctx, mappingID)
	mp, _ := args.Get(0).(model.SkuMapping)
	return mp, args.Error(1)
}

func (m *MockSkuMappingRepo) FindActiveBySku(ctx context.Context, sku string) (model.SkuMapping, bool, error) {
	args := m.Called(ctx, sku)
	mp, _ := args.Get(0).(model.SkuMapping)
	return mp, args.Bool(1), args.Error(2)
}

func (m *MockSkuMappingRepo) List(ctx context.Context) ([]model.SkuMapping, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.SkuMapping)
	return items, args.Error(1)
}

func (m *MockSkuMappingRepo) Update(ctx context.Context, mapping *model.SkuMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockSkuMappingRepo) Delete(ctx context.Context, mappingID string) error {
	args := m.Called(ctx, mappingID)
	return args.Error(0)
}

var _ repo.SkuMappingRepository = (*MockSkuMappingRepo)(nil)

// =====================
// EnrollmentRepository モック
// =====================

type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Upsert(ctx context.Context, enrollment *model.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepo) FindByUserAndCourse(ctx context.Context, userID string, courseID string) (model.Enrollment, bool, error) {
	args := m.Called(ctx, userID, courseID)
	e, _ := args.Get(0).(model.Enrollment)
	return e, args.Bool(1), args.Error(2)
}

func (m *MockEnrollmentRepo) ListByUserID(ctx context.Context, userID string) ([]model.Enrollment, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Enrollment)
	return items, args.Error(1)
}

func (m *MockEnrollmentRepo) DeleteByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ repo.EnrollmentRepository = (*MockEnrollmentRepo)(nil)

// =====================
// WooOrderRepository / WooOrderItemRepository モック
// =====================

type MockWooOrderRepo struct {
	mock.Mock
}

func (m *MockWooOrderRepo) Create(ctx context.Context, order *model.WooOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockWooOrderRepo) FindByWooOrderID(ctx context.Context, wooOrderID int64) (model.WooOrder, bool, error) {
	args := m.Called(ctx, wooOrderID)
	o, _ := args.Get(0).(model.WooOrder)
	return o, args.Bool(1), args.Error(2)
}

var _ repo.WooOrderRepository = (*MockWooOrderRepo)(nil)

type MockWooOrderItemRepo struct {
	mock.Mock
}

func (m *MockWooOrderItemRepo) Create(ctx context.Context, item *model.WooOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWooOrderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.WooOrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.WooOrderItem)
	return items, args.Error(1)
}

var _ repo.WooOrderItemRepository = (*MockWooOrderItemRepo)(nil)

// =====================
// PasswordResetRepository モック
// =====================

type MockPasswordResetRepo struct {
	mock.Mock
}

func (m *MockPasswordResetRepo) Create(ctx context.Context, reset *model.PasswordReset) error {
	args := m.Called(ctx, reset)
	return args.Error(0)
}

func (m *MockPasswordResetRepo) FindByHash(ctx context.Context, tokenHash string) (model.PasswordReset, bool, error) {
	args := m.Called(ctx, tokenHash)
	r, _ := args.Get(0).(model.PasswordReset)
	return r, args.Bool(1), args.Error(2)
}

func (m *MockPasswordResetRepo) MarkUsed(ctx context.Context, resetID string) error {
	args := m.Called(ctx, resetID)
	return args.Error(0)
}

func (m *MockPasswordResetRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

var _ repo.PasswordResetRepository = (*MockPasswordResetRepo)(nil)

// =====================
// CommentRepository モック
// =====================

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepo) FindByID(ctx context.Context, commentID string) (model.Comment, error) {
	args := m.Called(ctx, commentID)
	c, _ := args.Get(0).(model.Comment)
	return c, args.Error(1)
}

func (m *MockCommentRepo) ListBySection(ctx context.Context, courseID string, sectionID string) ([]model.Comment, error) {
	args := m.Called(ctx, courseID, sectionID)
	items, _ := args.Get(0).([]model.Comment)
	return items, args.Error(1)
}

func (m *MockCommentRepo) ListReplies(ctx context.Context, parentCommentID string) ([]model.Comment, error) {
	args := m.Called(ctx, parentCommentID)
	items, _ := args.Get(0).([]model.Comment)
	return items, args.Error(1)
}

func (m *MockCommentRepo) Update(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepo) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

var _ repo.CommentRepository = (*MockCommentRepo)(nil)

// =====================
// Mailer モック
// =====================

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendCredentialEmail(ctx context.Context, email string, firstName string, password string) error {
	args := m.Called(ctx, email, firstName, password)
	return args.Error(0)
}

func (m *MockMailer) SendWelcomeEmail(ctx context.Context, email string, firstName string, courseName string) error {
	args := m.Called(ctx, email, firstName, courseName)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordResetEmail(ctx context.Context, email string, resetLink string) error {
	args := m.Called(ctx, email, resetLink)
	return args.Error(0)
}

var _ Mailer = (*MockMailer)(nil)

// =====================
// TransactionManager スタブ（fnをそのまま実行する）
// =====================

type stubTxRepos struct {
	wooOrders     *MockWooOrderRepo
	wooOrderItems *MockWooOrderItemRepo
	users         *MockUserRepo
	skuMappings   *MockSkuMappingRepo
	enrollments   *MockEnrollmentRepo
}

func (r *stubTxRepos) WooOrders() repo.WooOrderRepository         { return r.wooOrders }
func (r *stubTxRepos) WooOrderItems() repo.WooOrderItemRepository { return r.wooOrderItems }
func (r *stubTxRepos) Users() repo.UserRepository                 { return r.users }
func (r *stubTxRepos) SkuMappings() repo.SkuMappingRepository     { return r.skuMappings }
func (r *stubTxRepos) Enrollments() repo.EnrollmentRepository     { return r.enrollments }

type stubTxManager struct {
	repos *stubTxRepos
}

func (tm *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(tm.repos)
}

var _ repo.TransactionManager = (*stubTxManager)(nil)
