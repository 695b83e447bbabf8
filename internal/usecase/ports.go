package usecase

import (
	"context"
	"time"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// トランザクションメール送信。失敗しても業務処理は止めない。
type Mailer interface {
	SendCredentialEmail(ctx context.Context, email string, firstName string, password string) error
	SendWelcomeEmail(ctx context.Context, email string, firstName string, courseName string) error
	SendPasswordResetEmail(ctx context.Context, email string, resetLink string) error
}

// usecase内のログ出力。echoのLoggerがこれを満たす。
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
