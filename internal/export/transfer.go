package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matemagica/matemagica/internal/ledger"
	"github.com/matemagica/matemagica/internal/profile"
)

// Transfer codes move a learner's report between devices as one line of
// text, pasteable or QR-encodable. The payload is a trimmed report rather
// than the full export: error history and app metadata stay home.
const (
	TransferPrefix      = "MMR1:"
	ReportSchema        = "progress_report"
	ReportSchemaVersion = "1.0"
)

// Report is the lightweight document carried inside a transfer code. It has
// everything the classroom rollup needs and nothing else.
type Report struct {
	Schema        string                         `json:"schema"`
	SchemaVersion string                         `json:"schemaVersion"`
	ProfileID     string                         `json:"profileId"`
	Student       profile.Student                `json:"student"`
	School        profile.School                 `json:"school"`
	Overview      Overview                       `json:"overview"`
	Units         []UnitResult                   `json:"units"`
	Skills        map[string]*ledger.SkillRecord `json:"skills"`
	ErrorsByType  map[string]int                 `json:"errorsByType"`
	Inclusion     Inclusion                      `json:"inclusion"`
}

// ReportFrom trims a full export document down to its transfer report.
func ReportFrom(doc *Document) *Report {
	return &Report{
		Schema:        ReportSchema,
		SchemaVersion: ReportSchemaVersion,
		ProfileID:     doc.ProfileID,
		Student:       doc.Student,
		School:        doc.School,
		Overview:      doc.Overview,
		Units:         doc.Units,
		Skills:        doc.Skills,
		ErrorsByType:  doc.Errors.ByType,
		Inclusion:     doc.Settings.Inclusion,
	}
}

// Document widens a report back into an export document so both import
// paths feed the aggregation engine the same shape. The trimmed fields come
// back empty.
func (r *Report) Document() *Document {
	return &Document{
		Schema:        DocSchema,
		SchemaVersion: DocSchemaVersion,
		ProfileID:     r.ProfileID,
		Student:       r.Student,
		School:        r.School,
		Overview:      r.Overview,
		Units:         r.Units,
		Skills:        r.Skills,
		Errors:        ErrorsSection{ByType: r.ErrorsByType},
		Settings:      SettingsSection{Inclusion: r.Inclusion},
	}
}

// EncodeTransferCode renders a report as its one-line code.
func EncodeTransferCode(r *Report) (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return TransferPrefix + base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeTransferCode parses a transfer code back into a report. Codes with
// the wrong prefix, a broken payload or an unknown schema version are
// rejected with a specific error; nothing is partially applied.
func DecodeTransferCode(code string) (*Report, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, TransferPrefix) {
		return nil, fmt.Errorf("not a transfer code: missing %q prefix", TransferPrefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(code, TransferPrefix))
	if err != nil {
		return nil, fmt.Errorf("decode transfer code: %w", err)
	}
	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse transfer payload: %w", err)
	}
	if r.Schema != ReportSchema {
		return nil, fmt.Errorf("unexpected payload schema %q", r.Schema)
	}
	if r.SchemaVersion != ReportSchemaVersion {
		return nil, fmt.Errorf("unsupported report version %q", r.SchemaVersion)
	}
	return &r, nil
}
