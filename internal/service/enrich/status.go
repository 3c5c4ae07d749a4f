package enrich

// Status is the correction state shown next to the editor.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusThinking  Status = "thinking"
	StatusCorrected Status = "corrected"
	StatusEmpty     Status = "empty"
	StatusNotReady  Status = "not_ready"
	StatusFailed    Status = "failed"
)

// Message returns the German status line for s.
func (s Status) Message() string {
	switch s {
	case StatusPending:
		return "Warte auf Tipp-Pause …"
	case StatusThinking:
		return "KI denkt …"
	case StatusCorrected:
		return "Korrigiert ✔"
	case StatusEmpty:
		return "Keine Antwort von der KI erhalten."
	case StatusNotReady:
		return "KI konnte nicht geladen werden."
	case StatusFailed:
		return "Fehler bei der KI-Korrektur."
	default:
		return ""
	}
}
