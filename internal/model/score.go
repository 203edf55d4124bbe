package model

// Score compares resolved chains against gold chains
type Score struct {
	MUC     Metric   `json:"muc"`    // Link-based
	BCubed  Metric   `json:"bcubed"` // Mention-based
	Signals []Signal `json:"signals"`
}

// Metric is a precision / recall pair with its harmonic mean
type Metric struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Signal is a diagnostic finding with the data it was derived from
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// SignalType classifies a diagnostic signal
type SignalType string

const (
	SignalSplitChain     SignalType = "split_chain"     // Gold chain spread over several resolved chains
	SignalConflatedChain SignalType = "conflated_chain" // Resolved chain joining several gold chains
	SignalLowRecall      SignalType = "low_recall"
	SignalLowPrecision   SignalType = "low_precision"
)

// SignalSeverity indicates the importance of a signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
