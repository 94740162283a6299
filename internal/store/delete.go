package store

// DeletePhase состояние двухшагового удаления: idle → armed → executing → idle
type DeletePhase int

const (
	DeleteIdle DeletePhase = iota
	DeleteArmed
	DeleteExecuting
)

func (p DeletePhase) String() string {
	switch p {
	case DeleteArmed:
		return "armed"
	case DeleteExecuting:
		return "executing"
	default:
		return "idle"
	}
}

// DeleteState текущая фаза удаления и кандидат
type DeleteState struct {
	Phase     DeletePhase
	Candidate string
}

// Armed сообщает, ожидает ли id подтверждения удаления
func (d DeleteState) Armed(id string) bool {
	return d.Phase == DeleteArmed && d.Candidate == id
}
