package validator

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

// UUID形式チェック
func ValidateUUID(s string) error {
	if s == "" {
		return ErrInvalidInput
	}
	if _, err := uuid.Parse(s); err != nil {
		return ErrInvalidInput
	}
	return nil
}

// コメント本文：空白のみ禁止、最大2000文字
func ValidateCommentContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ErrInvalidInput
	}
	if utf8.RuneCountInString(content) > 2000 {
		return ErrInvalidInput
	}
	return nil
}

// SKU：空白のみ禁止、最大100文字
func ValidateSku(sku string) error {
	trimmed := strings.TrimSpace(sku)
	if trimmed == "" || len(trimmed) > 100 {
		return ErrInvalidInput
	}
	return nil
}
