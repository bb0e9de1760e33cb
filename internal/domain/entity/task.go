package entity

import "time"

// Виды отложенных задач. Закрытое множество: каждому виду соответствует
// функция в реестре taskrunner.
const (
	// TaskKindResetPoints - обнуление очков пользователей, проходивших формы администратора
	TaskKindResetPoints = "reset_points"
	// TaskKindSessionWinners - вычисление топ-3 победителей текущей сессии
	TaskKindSessionWinners = "session_winners"
)

// AllTaskKinds возвращает все известные виды задач
func AllTaskKinds() []string {
	return []string{TaskKindResetPoints, TaskKindSessionWinners}
}

// IsValidTaskKind проверяет, что вид задачи входит в закрытое множество
func IsValidTaskKind(kind string) bool {
	for _, k := range AllTaskKinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// Task представляет отложенную административную задачу.
// Инвариант: не более одной незавершенной задачи на пару (admin_id, kind),
// обеспечивается уникальным индексом. При перепланировании строка мутирует:
// якорь сбрасывается на текущее время, флаг завершения снимается.
type Task struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AdminID       uint      `gorm:"not null;uniqueIndex:idx_tasks_admin_kind" json:"admin_id"`
	Kind          string    `gorm:"size:50;not null;uniqueIndex:idx_tasks_admin_kind" json:"kind"`
	DurationValue int       `gorm:"not null" json:"duration_value"`
	DurationUnit  string    `gorm:"size:20;not null" json:"duration_unit"` // minutes, hours, days
	AnchorTime    time.Time `gorm:"not null" json:"anchor_time"`           // Момент, от которого отсчитывается длительность
	Completed     bool      `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Task) TableName() string {
	return "tasks"
}
