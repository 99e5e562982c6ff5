package wsmodels

type ServerMessage struct {
	ToUserID  string `json:"-"`
	Time      string `json:"time"`     // время события
	Title     string `json:"title"`    // заголовок
	Msg       string `json:"msg"`      // текст события
	Severity  string `json:"severity"` // важность: info/success/warning/danger
	IsManager bool   `json:"is_manager"`
	Data      string `json:"data,omitempty"` // ссылки на записи (json)
}
