package model

// OrderLine — строка заказа: стабильный ключ ("Код ТМЦ") + свободный текст названия.
type OrderLine struct {
	ID      string `json:"id"`      // Код ТМЦ
	RawName string `json:"rawName"` // Название, как в файле
}

// SupplierEntry — позиция каталога поставщика.
type SupplierEntry struct {
	Nomenclature string `json:"nomenclature"` // Номенклатура
	ExternalID   string `json:"externalId"`   // КИЗ
	SecondaryID  string `json:"secondaryId"`  // BOOK_ID
}

// Attributes — извлечённые из названия атрибуты; пустая строка = «не найден».
type Attributes struct {
	ProductType string `json:"productType"`
	ProductCode string `json:"productCode"`
	Size        string `json:"size"`
	Color       string `json:"color"`
}

// NormalizedRecord — кэш нормализации/извлечения для одной строки.
// Считается один раз за прогон и не мутируется.
type NormalizedRecord struct {
	Norm  string // нормализованный текст (всегда определён)
	Attrs Attributes
}

type Method string

const (
	MethodExact     Method = "exact"
	MethodCodeOnly  Method = "code_only" // зарезервирован: join по артикулу отключён
	MethodFuzzy     Method = "fuzzy"
	MethodUnmatched Method = "unmatched"
)

// MatchResult — итог каскада для одной строки заказа. После назначения
// методом ярус результат не пересматривается.
type MatchResult struct {
	OrderID      string   `json:"orderId"`
	OrderRawName string   `json:"orderRawName"`
	Code         string   `json:"code"`
	Size         string   `json:"size"`
	Color        string   `json:"color"`
	Nomenclature string   `json:"nomenclature,omitempty"`
	ExternalID   string   `json:"externalId,omitempty"`
	SecondaryID  string   `json:"secondaryId,omitempty"`
	Method       Method   `json:"method"`
	Score        *float64 `json:"score,omitempty"` // 0..100, только для fuzzy
}

// Result — полный ответ прогона.
type Result struct {
	Rows      []MatchResult `json:"rows"`
	Orders    int           `json:"orders"`
	Suppliers int           `json:"suppliers"`
	Exact     int           `json:"exact"`
	Fuzzy     int           `json:"fuzzy"`
	Unmatched int           `json:"unmatched"`
}
