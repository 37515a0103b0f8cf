package domain

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует ошибку чекаута для вызывающей стороны.
type ErrorKind string

const (
	// KindInvalidInput — некорректные данные корзины/позиции/товара; обнаруживается до внешних вызовов.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindNotFound — клиент или корзина не найдены (или корзина принадлежит другому клиенту).
	KindNotFound ErrorKind = "not_found"
	// KindDomain — отказ по бизнес-правилу: нет стока, платёж отклонён, ошибка списания.
	KindDomain ErrorKind = "domain"
)

// Error — ошибка с тегом варианта. Сообщение показывается клиенту как есть.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is позволяет сопоставлять ошибку с "базовой" ошибкой варианта (без сообщения):
// errors.Is(err, ErrNotFound) истинно для любого NotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

var (
	// ErrInvalidInput сопоставляется с любой ошибкой валидации.
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	// ErrNotFound сопоставляется с любой ошибкой поиска.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrDomain сопоставляется с любым отказом по бизнес-правилу.
	ErrDomain = &Error{Kind: KindDomain}
)

var (
	// ErrCustomerNotFound — клиент с указанным ID отсутствует.
	ErrCustomerNotFound = NotFound("Customer not found")
	// ErrCartNotFound — корзины нет или она принадлежит другому клиенту.
	ErrCartNotFound = NotFound("Cart not found")
	// ErrOutOfStock — склад сообщил, что часть позиций недоступна.
	ErrOutOfStock = DomainError("Items out of stock")
	// ErrPaymentNotAuthorized — платёжный провайдер не авторизовал сумму.
	ErrPaymentNotAuthorized = DomainError("Payment not authorized")
	// ErrStockDebit — склад не смог списать товары после авторизации платежа.
	ErrStockDebit = DomainError("Stock debit error")
)

// InvalidInput создаёт ошибку валидации с сообщением, указывающим на конкретное поле.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// NotFound создаёт ошибку поиска.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// DomainError создаёт ошибку бизнес-правила.
func DomainError(message string) *Error {
	return &Error{Kind: KindDomain, Message: message}
}

// KindOf возвращает вариант ошибки или пустую строку, если это не *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
