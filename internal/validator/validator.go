// Package validator は usecase 共通の入力チェック。
// ここでのエラーは usecase 側で 400 に変換される。
package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"backoffice/internal/domain/model"

	"github.com/shopspring/decimal"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 必須チェック（前後の空白は無視）
func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s required", ErrInvalidInput, field)
	}
	return nil
}

// 簡易メール形式をチェック
func Email(v string) error {
	if !emailRe.MatchString(v) {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return nil
}

// 金額は 0 以上・小数2桁まで
func Money(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must be >= 0", ErrInvalidInput, field)
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", ErrInvalidInput, field)
	}
	return nil
}

// パレット外の色はフォールバックせずエラー
func Color(c model.StatusColor) error {
	if !c.Valid() {
		return fmt.Errorf("%w: color must be one of %s", ErrInvalidInput, paletteList())
	}
	return nil
}

func Role(r model.Role) error {
	if !r.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, r)
	}
	return nil
}

// パスワード最低文字数（8）
func Password(p string) error {
	if len(p) < 8 {
		return fmt.Errorf("%w: password too short", ErrInvalidInput)
	}
	return nil
}

func paletteList() string {
	names := make([]string, 0, len(model.Palette))
	for _, c := range model.Palette {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
