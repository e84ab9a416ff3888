// Package api описывает тела запросов и ответов HTTP API сервера последовательностей.
package api

// CreateSequenceRequest содержит параметры новой последовательности.
// Начальная позиция задается либо Count, либо Text.
type CreateSequenceRequest struct {
	Name      string `json:"name,omitempty"`       // имя; если пусто, сервер создаст случайное
	Alphabet  string `json:"alphabet,omitempty"`   // символы алфавита; если пусто, используется алфавит по умолчанию
	MinLength int    `json:"min_length,omitempty"` // минимальная длина идентификатора
	Count     string `json:"count,omitempty"`      // начальное значение счетчика в десятичной записи
	Text      string `json:"text,omitempty"`       // начальный идентификатор
}

// Sequence описывает последовательность и ее текущий идентификатор.
type Sequence struct {
	Name      string `json:"name"`
	Current   string `json:"current"`
	Count     string `json:"count"`
	Alphabet  string `json:"alphabet"`
	MinLength int    `json:"min_length"`
}

// TakeResponse содержит выданные идентификаторы.
type TakeResponse struct {
	IDs []string `json:"ids"`
}

// MoveRequest содержит величину сдвига счетчика.
type MoveRequest struct {
	By uint64 `json:"by"`
}

// PositionRequest задает новую позицию счетчика значением или идентификатором.
type PositionRequest struct {
	Count *string `json:"count,omitempty"`
	Text  *string `json:"text,omitempty"`
}

// ReconfigureRequest меняет алфавит и минимальную длину. Отсутствующие поля не меняются.
type ReconfigureRequest struct {
	Alphabet  *string `json:"alphabet,omitempty"`
	MinLength *int    `json:"min_length,omitempty"`
}

// ConvertRequest описывает перевод идентификатора между алфавитами.
type ConvertRequest struct {
	Source          string `json:"source,omitempty"`
	Target          string `json:"target,omitempty"`
	SourceMinLength int    `json:"source_min_length,omitempty"`
	TargetMinLength int    `json:"target_min_length,omitempty"`
	Text            string `json:"text"`
	Reverse         bool   `json:"reverse,omitempty"`
}

// ConvertResponse содержит результат перевода.
type ConvertResponse struct {
	Result string `json:"result"`
}

// Stats содержит количество последовательностей и пользователей в сервисе.
type Stats struct {
	Sequences int `json:"sequences"` // количество последовательностей в сервисе
	Users     int `json:"users"`     // количество пользователей в сервисе
}
