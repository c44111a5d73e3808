package diagnostics

import (
	"time"

	"github.com/coreman2200/arcastrip/internal/protocol"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes published on the diagnostics feed.
const (
	CodeCommand      = "LINK.COMMAND"
	CodeButton       = "BUTTON.REPORT"
	CodeTickFault    = "LOOP.FAULT"
	CodeSchedule     = "PALETTE.SCHEDULE"
	CodeControl      = "CONTROL.APPLIED"
	CodeControlError = "CONTROL.REJECTED"
	CodeUnframed     = "LINK.UNFRAMED"
	CodeTestDone     = "TEST.DONE"
)

type Diagnostic struct {
	Time           time.Time      `json:"time"`
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Command records one inbound byte, its decoded command and the echo that
// went out for it. The wire itself carries no tag telling echoes from reports.
func Command(b byte, c protocol.Command) Diagnostic {
	return Diagnostic{
		Time:     time.Now(),
		Severity: Info,
		Code:     CodeCommand,
		Summary:  "byte received",
		Detail:   c.String(),
		Evidence: map[string]any{"byte": int(b), "echo": int(b), "command": c.String()},
	}
}

// Button records a level change and the report byte sent for it.
func Button(l protocol.Level) Diagnostic {
	return Diagnostic{
		Time:     time.Now(),
		Severity: Info,
		Code:     CodeButton,
		Summary:  "button level changed",
		Detail:   l.String(),
		Evidence: map[string]any{"level": l.String(), "report": int(protocol.Report(l))},
	}
}

func TickFault(err error) Diagnostic {
	return Diagnostic{
		Time:     time.Now(),
		Severity: Warn,
		Code:     CodeTickFault,
		Summary:  "loop iteration fault",
		Detail:   err.Error(),
		LikelyCauses: []string{
			"strip driver write failed",
			"link peer disconnected",
		},
		SuggestedFixes: []string{
			"check SPI wiring and power",
			"check the radio link or transport settings",
		},
	}
}

// Unframed warns that echoes and button reports share one untagged stream.
func Unframed() Diagnostic {
	return Diagnostic{
		Time:     time.Now(),
		Severity: Warn,
		Code:     CodeUnframed,
		Summary:  "outbound link is unframed",
		Detail:   "echo bytes 0x00/0x01 cannot be told apart from button reports on the wire",
		SuggestedFixes: []string{
			"send only printable command bytes ('0', '1') so echoes differ from reports",
		},
	}
}
