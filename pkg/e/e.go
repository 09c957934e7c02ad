package e

import "fmt"

var (
	// Загрузка набора данных
	ErrLengthMismatch      = fmt.Errorf("embedding matrix and reference list length mismatch")
	ErrDuplicateReference  = fmt.Errorf("duplicate image reference in embedding index")
	ErrDimensionMismatch   = fmt.Errorf("embedding vectors have different dimensions")
	ErrEmptyDataset        = fmt.Errorf("dataset is empty")
	ErrMissingColumn       = fmt.Errorf("required column is missing")
	ErrUnknownSource       = fmt.Errorf("unknown data source")
	ErrSourceNotConfigured = fmt.Errorf("data source is not configured")
	ErrCollectionMismatch  = fmt.Errorf("qdrant collection does not match embedding index")

	// Поиск похожих товаров
	ErrNotFound        = fmt.Errorf("not found")
	ErrImageNotIndexed = fmt.Errorf("image reference is not in embedding index: %w", ErrNotFound)

	// 400 Bad Request
	ErrStatusBadRequest    = fmt.Errorf("bad request")
	ErrInvalidK            = fmt.Errorf("k must be non-negative")
	ErrInvalidLimit        = fmt.Errorf("limit must be non-negative")
	ErrSessionRequired     = fmt.Errorf("session id is required")
	ErrInvalidSession      = fmt.Errorf("session id is malformed")
	ErrImageURLRequired    = fmt.Errorf("image url is required")
	ErrInvalidCartEntry    = fmt.Errorf("cart entry must reference a product or carry a snapshot")

	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
