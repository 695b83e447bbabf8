package usecase

import (
	"context"
	"testing"
	"time"

	"courseapp/internal/domain/model"
	repo "courseapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// 取り込みテスト用セットアップ
// =====================

type ingestFixture struct {
	uc            *OrderIngestionUsecase
	wooOrders     *MockWooOrderRepo
	wooOrderItems *MockWooOrderItemRepo
	users         *MockUserRepo
	skuMappings   *MockSkuMappingRepo
	enrollments   *MockEnrollmentRepo
	mailer        *MockMailer
}

func newIngestFixture() *ingestFixture {
	f := &ingestFixture{
		wooOrders:     new(MockWooOrderRepo),
		wooOrderItems: new(MockWooOrderItemRepo),
		users:         new(MockUserRepo),
		skuMappings:   new(MockSkuMappingRepo),
		enrollments:   new(MockEnrollmentRepo),
		mailer:        new(MockMailer),
	}

	tx := &stubTxManager{repos: &stubTxRepos{
		wooOrders:     f.wooOrders,
		wooOrderItems: f.wooOrderItems,
		users:         f.users,
		skuMappings:   f.skuMappings,
		enrollments:   f.enrollments,
	}}

	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	provisioner := NewAccountProvisioner(&stubHasher{}, &seqIDGen{}, clock)

	f.uc = NewOrderIngestionUsecase(tx, provisioner, f.mailer, &seqIDGen{}, clock, &nopLogger{})
	return f
}

func completedOrder() WooOrderPayload {
	return WooOrderPayload{
		ID:       12345,
		OrderKey: "wc_order_abc",
		Status:   "completed",
		Currency: "EUR",
		Total:    "49.00",
		Billing: WooBillingPayload{
			Email:     "Asiakas@Example.com",
			FirstName: "Matti",
			LastName:  "Meikäläinen",
		},
		LineItems: []WooLineItem{
			{ProductID: 100, Name: "Go-kurssi", Sku: "COURSE-GO", Quantity: 1, Total: "49.00"},
		},
		DateCreated: "2025-06-01T11:59:00",
	}
}

// =====================
// Ingest
// =====================

// completed以外のステータスは何もせず成功
func TestOrderIngestion_SkipsNonCompletedOrder(t *testing.T) {
	f := newIngestFixture()

	order := completedOrder()
	order.Status = "pending"

	result, err := f.uc.Ingest(context.Background(), order)

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Order not completed, skipping", result.Message)

	f.wooOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 同じwoo_order_idの再配信 => 一意制約違反を「処理済み」として200相当で返す
func TestOrderIngestion_DuplicateOrderIsNoop(t *testing.T) {
	f := newIngestFixture()

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(repo.ErrDuplicateOrder)

	result, err := f.uc.Ingest(context.Background(), completedOrder())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Order already processed", result.Message)
	assert.Equal(t, int64(12345), result.OrderID)

	//明細処理もメールも走らない
	f.skuMappings.AssertNotCalled(t, "FindActiveBySku", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendCredentialEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 新規顧客 => STUDENT作成＋enrollment＋認証情報メール＋ウェルカムメール
func TestOrderIngestion_NewCustomerGetsAccountAndEnrollment(t *testing.T) {
	f := newIngestFixture()

	mapping := model.SkuMapping{
		ID:          "m-1",
		Sku:         "COURSE-GO",
		CourseID:    "c-1",
		ProductName: "Go-kurssi",
		IsActive:    true,
	}

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "COURSE-GO").Return(mapping, true, nil)
	//メールは正規化されて検索される
	f.users.On("FindByEmail", mock.Anything, "asiakas@example.com").Return(nil, nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.wooOrderItems.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.enrollments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendCredentialEmail", mock.Anything, "asiakas@example.com", "Matti", mock.Anything).Return(nil)
	f.mailer.On("SendWelcomeEmail", mock.Anything, "asiakas@example.com", "Matti", "Go-kurssi").Return(nil)

	result, err := f.uc.Ingest(context.Background(), completedOrder())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Order processed successfully", result.Message)

	f.users.AssertExpectations(t)
	f.enrollments.AssertExpectations(t)
	f.mailer.AssertExpectations(t)

	//作られるのはSTUDENT・有効・正規化済みemail
	created := f.users.Calls[1].Arguments.Get(1).(*model.User)
	assert.Equal(t, model.RoleStudent, created.Role)
	assert.True(t, created.IsActive)
	assert.Equal(t, "asiakas@example.com", created.Email)
}

// 既存顧客 => アカウント再利用。パスワード再生成も認証情報メールもしない
func TestOrderIngestion_ExistingCustomerReusesAccount(t *testing.T) {
	f := newIngestFixture()

	existing := &model.User{
		ID:           "u-1",
		Email:        "asiakas@example.com",
		PasswordHash: "hashed:old",
		Role:         model.RoleStudent,
		IsActive:     true,
	}
	mapping := model.SkuMapping{ID: "m-1", Sku: "COURSE-GO", CourseID: "c-1", ProductName: "Go-kurssi", IsActive: true}

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "COURSE-GO").Return(mapping, true, nil)
	f.users.On("FindByEmail", mock.Anything, "asiakas@example.com").Return(existing, nil)
	f.wooOrderItems.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.enrollments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendWelcomeEmail", mock.Anything, "asiakas@example.com", "Matti", "Go-kurssi").Return(nil)

	result, err := f.uc.Ingest(context.Background(), completedOrder())

	assert.NoError(t, err)
	assert.True(t, result.Success)

	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendCredentialEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.mailer.AssertExpectations(t)

	//enrollmentは既存ユーザーIDで張られる
	enrollment := f.enrollments.Calls[0].Arguments.Get(1).(*model.Enrollment)
	assert.Equal(t, "u-1", enrollment.UserID)
	assert.Equal(t, "c-1", enrollment.CourseID)
	assert.Equal(t, model.EnrollmentStatusActive, enrollment.Status)
}

// マッピングの無いSKUは行単位でスキップし、他の行は処理される
func TestOrderIngestion_UnmappedSkuSkipsLineOnly(t *testing.T) {
	f := newIngestFixture()

	order := completedOrder()
	order.LineItems = []WooLineItem{
		{ProductID: 100, Name: "Tuntematon", Sku: "UNKNOWN-SKU", Quantity: 1, Total: "10.00"},
		{ProductID: 101, Name: "Go-kurssi", Sku: "COURSE-GO", Quantity: 1, Total: "49.00"},
	}

	mapping := model.SkuMapping{ID: "m-1", Sku: "COURSE-GO", CourseID: "c-1", ProductName: "Go-kurssi", IsActive: true}
	existing := &model.User{ID: "u-1", Email: "asiakas@example.com", Role: model.RoleStudent, IsActive: true}

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "UNKNOWN-SKU").Return(model.SkuMapping{}, false, nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "COURSE-GO").Return(mapping, true, nil)
	f.users.On("FindByEmail", mock.Anything, "asiakas@example.com").Return(existing, nil)
	f.wooOrderItems.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.enrollments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendWelcomeEmail", mock.Anything, "asiakas@example.com", "Matti", "Go-kurssi").Return(nil)

	result, err := f.uc.Ingest(context.Background(), order)

	assert.NoError(t, err)
	assert.True(t, result.Success)

	//enrollmentは1件だけ
	f.enrollments.AssertNumberOfCalls(t, "Upsert", 1)
	f.mailer.AssertNumberOfCalls(t, "SendWelcomeEmail", 1)
}

// メール送信の失敗では取り込みを失敗にしない
func TestOrderIngestion_MailFailureDoesNotFailIngestion(t *testing.T) {
	f := newIngestFixture()

	mapping := model.SkuMapping{ID: "m-1", Sku: "COURSE-GO", CourseID: "c-1", ProductName: "Go-kurssi", IsActive: true}
	existing := &model.User{ID: "u-1", Email: "asiakas@example.com", Role: model.RoleStudent, IsActive: true}

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "COURSE-GO").Return(mapping, true, nil)
	f.users.On("FindByEmail", mock.Anything, "asiakas@example.com").Return(existing, nil)
	f.wooOrderItems.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.enrollments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	result, err := f.uc.Ingest(context.Background(), completedOrder())

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Order processed successfully", result.Message)
}

// enrollmentのupsert失敗も行単位で切り離され、注文全体は成功する
func TestOrderIngestion_EnrollmentFailureIsIsolated(t *testing.T) {
	f := newIngestFixture()

	mapping := model.SkuMapping{ID: "m-1", Sku: "COURSE-GO", CourseID: "c-1", ProductName: "Go-kurssi", IsActive: true}
	existing := &model.User{ID: "u-1", Email: "asiakas@example.com", Role: model.RoleStudent, IsActive: true}

	f.wooOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.skuMappings.On("FindActiveBySku", mock.Anything, "COURSE-GO").Return(mapping, true, nil)
	f.users.On("FindByEmail", mock.Anything, "asiakas@example.com").Return(existing, nil)
	f.wooOrderItems.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.enrollments.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)

	result, err := f.uc.Ingest(context.Background(), completedOrder())

	assert.NoError(t, err)
	assert.True(t, result.Success)

	//失敗した行のメールは送られない
	f.mailer.AssertNotCalled(t, "SendWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
