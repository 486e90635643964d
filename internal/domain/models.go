package domain

import "github.com/shopspring/decimal"

// Product представляет товар каталога.
// Нулевой ID означает, что товар ещё не сохранён.
type Product struct {
	ID          int64           `json:"id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// IsTransient сообщает, что хранилище ещё не присвоило ID
func (p Product) IsTransient() bool { return p.ID == 0 }

// Ограничения на границе, проверяются только транспортным слоем
const (
	ProductNameMinLen        = 3
	ProductNameMaxLen        = 100
	ProductDescriptionMaxLen = 1000

	// price column is decimal(19,2)
	PriceScale            = 2
	PriceMaxIntegerDigits = 17
)
