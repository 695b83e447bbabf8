package usecase

import (
	"context"
	"testing"
	"time"

	"courseapp/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubIssuer struct{}

func (i *stubIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	return "token-for-" + userID, now.Add(15 * time.Minute), nil
}

type authFixture struct {
	uc     *AuthUsecase
	users  *MockUserRepo
	resets *MockPasswordResetRepo
	mailer *MockMailer
	now    time.Time
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  new(MockUserRepo),
		resets: new(MockPasswordResetRepo),
		mailer: new(MockMailer),
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	f.uc = NewAuthUsecase(
		f.users,
		f.resets,
		&stubVerifier{},
		&stubHasher{},
		&stubIssuer{},
		f.mailer,
		&seqIDGen{},
		&fixedClock{t: f.now},
		&nopLogger{},
		"https://app.example.com/set-new-password",
	)
	return f
}

func activeUser() *model.User {
	return &model.User{
		ID:           "u-1",
		Email:        "matti@example.com",
		PasswordHash: "hashed:oikea-salasana",
		Role:         model.RoleStudent,
		IsActive:     true,
	}
}

// =====================
// Login
// =====================

// 正常ログイン：トークンが返り、ハッシュは外に出ない
func TestAuth_Login_Success(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "matti@example.com").Return(activeUser(), nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    " Matti@Example.com ",
		Password: "oikea-salasana",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-for-u-1", out.AccessToken)
	assert.Equal(t, int(15*time.Minute/time.Second), out.ExpiresIn)
	assert.Empty(t, out.User.PasswordHash)
	assert.Equal(t, "u-1", out.User.ID)
}

// 存在しないユーザー => ErrInvalidCredentials（存在有無は区別しない）
func TestAuth_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "tuntematon@example.com").Return(nil, nil)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "tuntematon@example.com",
		Password: "jotain",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// パスワード違い => ErrInvalidCredentials
func TestAuth_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "matti@example.com").Return(activeUser(), nil)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "matti@example.com",
		Password: "väärä-salasana",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// 停止済みユーザー => ErrUserInactive
func TestAuth_Login_InactiveUser(t *testing.T) {
	f := newAuthFixture()

	user := activeUser()
	user.IsActive = false
	f.users.On("FindByEmail", mock.Anything, "matti@example.com").Return(user, nil)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "matti@example.com",
		Password: "oikea-salasana",
	})

	assert.ErrorIs(t, err, ErrUserInactive)
}

// last_login更新の失敗ではログインを落とさない
func TestAuth_Login_LastLoginUpdateFailureTolerated(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "matti@example.com").Return(activeUser(), nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(assert.AnError)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "matti@example.com",
		Password: "oikea-salasana",
	})

	assert.NoError(t, err)
	assert.Equal(t, "token-for-u-1", out.AccessToken)
}

// =====================
// RequestPasswordReset
// =====================

// 未登録emailでもエラーにしない（存在を漏らさない）
func TestAuth_RequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "tuntematon@example.com").Return(nil, nil)

	err := f.uc.RequestPasswordReset(context.Background(), "tuntematon@example.com")

	assert.NoError(t, err)
	f.resets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.mailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
}

// 登録済み => トークンを保存してリンクをメールする。DBにはハッシュだけ残る
func TestAuth_RequestPasswordReset_CreatesTokenAndSendsMail(t *testing.T) {
	f := newAuthFixture()

	f.users.On("FindByEmail", mock.Anything, "matti@example.com").Return(activeUser(), nil)
	f.resets.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.mailer.On("SendPasswordResetEmail", mock.Anything, "matti@example.com", mock.Anything).Return(nil)

	err := f.uc.RequestPasswordReset(context.Background(), "matti@example.com")

	assert.NoError(t, err)
	f.resets.AssertExpectations(t)
	f.mailer.AssertExpectations(t)

	reset := f.resets.Calls[0].Arguments.Get(1).(*model.PasswordReset)
	assert.Equal(t, "u-1", reset.UserID)
	assert.Equal(t, f.now.Add(time.Hour), reset.ExpiresAt)
	//ハッシュはsha256 hex（64文字）で、平文とは別物
	assert.Len(t, reset.TokenHash, 64)

	link := f.mailer.Calls[0].Arguments.Get(2).(string)
	assert.Contains(t, link, "https://app.example.com/set-new-password?token=")
	assert.NotContains(t, link, reset.TokenHash)
}

// =====================
// ConfirmPasswordReset
// =====================

// 不明トークン => ErrInvalidResetToken
func TestAuth_ConfirmPasswordReset_UnknownToken(t *testing.T) {
	f := newAuthFixture()

	f.resets.On("FindByHash", mock.Anything, mock.Anything).Return(model.PasswordReset{}, false, nil)

	err := f.uc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetInput{
		Token:       "ei-ole-olemassa",
		NewPassword: "uusi-salasana",
	})

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// 期限切れ => ErrInvalidResetToken
func TestAuth_ConfirmPasswordReset_ExpiredToken(t *testing.T) {
	f := newAuthFixture()

	reset := model.PasswordReset{
		ID:        "r-1",
		UserID:    "u-1",
		ExpiresAt: f.now.Add(-time.Minute),
	}
	f.resets.On("FindByHash", mock.Anything, mock.Anything).Return(reset, true, nil)

	err := f.uc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetInput{
		Token:       "vanhentunut",
		NewPassword: "uusi-salasana",
	})

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// 使用済み => ErrInvalidResetToken（ワンタイム）
func TestAuth_ConfirmPasswordReset_UsedToken(t *testing.T) {
	f := newAuthFixture()

	used := f.now.Add(-time.Minute)
	reset := model.PasswordReset{
		ID:        "r-1",
		UserID:    "u-1",
		ExpiresAt: f.now.Add(time.Hour),
		UsedAt:    &used,
	}
	f.resets.On("FindByHash", mock.Anything, mock.Anything).Return(reset, true, nil)

	err := f.uc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetInput{
		Token:       "kaytetty",
		NewPassword: "uusi-salasana",
	})

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// 8文字未満 => ErrPasswordTooShort
func TestAuth_ConfirmPasswordReset_TooShortPassword(t *testing.T) {
	f := newAuthFixture()

	err := f.uc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetInput{
		Token:       "jokin",
		NewPassword: "lyhyt",
	})

	assert.ErrorIs(t, err, ErrPasswordTooShort)
	f.resets.AssertNotCalled(t, "FindByHash", mock.Anything, mock.Anything)
}

// 正常 => パスワードが更新されトークンは使用済みになる
func TestAuth_ConfirmPasswordReset_Success(t *testing.T) {
	f := newAuthFixture()

	reset := model.PasswordReset{
		ID:        "r-1",
		UserID:    "u-1",
		ExpiresAt: f.now.Add(time.Hour),
	}
	f.resets.On("FindByHash", mock.Anything, mock.Anything).Return(reset, true, nil)
	f.users.On("FindByID", mock.Anything, "u-1").Return(activeUser(), nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.resets.On("MarkUsed", mock.Anything, "r-1").Return(nil)

	err := f.uc.ConfirmPasswordReset(context.Background(), ConfirmPasswordResetInput{
		Token:       "kelvollinen",
		NewPassword: "uusi-salasana",
	})

	assert.NoError(t, err)
	f.resets.AssertExpectations(t)

	updated := f.users.Calls[1].Arguments.Get(1).(*model.User)
	assert.Equal(t, "hashed:uusi-salasana", updated.PasswordHash)
}
