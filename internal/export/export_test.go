package export

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/questiongen"
	"github.com/matemagica/matemagica/internal/streak"
)

func testProgress(now time.Time) *profile.Progress {
	p := &profile.Profile{
		ID:         "p1",
		FirstName:  "Ana",
		GradeYear:  6,
		ClassGroup: "6B",
		SchoolName: "Escola Azul",
		StartEntry: 6,
	}
	prog := profile.NewProgress(p, now)
	led := prog.Ledger(func() time.Time { return now })
	led.RecordOutcome("g6_order_ops", true, "mid")
	led.RecordOutcome("g6_dec_compare", false, "mid")
	prog.Errors.Record(questiongen.ErrProc, "g6_dec_compare", now)
	prog.RecordNodeAttempt("g6_u1_l1", 0.875, true, 2, now)
	prog.History.TotalSessions = 3
	prog.History.TotalMinutes = 14
	prog.Streak.MarkActive(streak.DayKey(now))
	return prog
}

func TestBuild(t *testing.T) {
	now := time.Now()
	doc := Build(testProgress(now), "1.0.0", now)

	if doc.Schema != DocSchema || doc.SchemaVersion != DocSchemaVersion {
		t.Errorf("schema header %s/%s", doc.Schema, doc.SchemaVersion)
	}
	if doc.Overview.StartEntry != "g6" {
		t.Errorf("startEntry %q, want track key g6", doc.Overview.StartEntry)
	}
	if doc.Overview.WeeklyActiveDays != 1 {
		t.Errorf("weeklyActiveDays %d, want 1 for a learner active today", doc.Overview.WeeklyActiveDays)
	}
	if len(doc.Units) != 1 || doc.Units[0].NodeID != "g6_u1_l1" {
		t.Errorf("units %+v", doc.Units)
	}
	if doc.Skills["g6_order_ops"] == nil {
		t.Error("skills map missing ledger record")
	}
	if doc.Errors.ByType["E_PROC"] != 1 {
		t.Errorf("errors %+v", doc.Errors.ByType)
	}
}

func TestBuild_IdleLearnerHasNoWeeklyActivity(t *testing.T) {
	now := time.Now()
	prog := testProgress(now.AddDate(0, 0, -10))
	prog.Streak = streak.State{LastActiveDate: streak.DayKey(now.AddDate(0, 0, -10))}

	doc := Build(prog, "1.0.0", now)
	if doc.Overview.WeeklyActiveDays != 0 {
		t.Errorf("weeklyActiveDays %d, want 0 after 10 idle days", doc.Overview.WeeklyActiveDays)
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	now := time.Now()
	doc := Build(testProgress(now), "1.0.0", now)
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	back, err := Validate(raw)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if back.ProfileID != "p1" || back.Student.FirstName != "Ana" {
		t.Errorf("decoded %+v", back)
	}
}

func TestValidate_Rejections(t *testing.T) {
	now := time.Now()
	good := Build(testProgress(now), "1.0.0", now)

	cases := []struct {
		name   string
		mutate func(m map[string]any)
	}{
		{"wrong schema", func(m map[string]any) { m["schema"] = "something_else" }},
		{"missing version", func(m map[string]any) { delete(m, "schemaVersion") }},
		{"missing profileId", func(m map[string]any) { delete(m, "profileId") }},
		{"empty student name", func(m map[string]any) {
			m["student"].(map[string]any)["firstName"] = ""
		}},
		{"missing school name", func(m map[string]any) {
			delete(m["student"].(map[string]any), "classGroup")
		}},
	}
	for _, c := range cases {
		raw, _ := json.Marshal(good)
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatal(err)
		}
		c.mutate(m)
		mutated, _ := json.Marshal(m)
		if _, err := Validate(mutated); err == nil {
			t.Errorf("%s: document accepted", c.name)
		}
	}

	if _, err := Validate([]byte("not json")); err == nil {
		t.Error("non-JSON accepted")
	}
}

func TestTransferCode_RoundTrip(t *testing.T) {
	// A wall-clock instant in UTC so DeepEqual survives the JSON round trip.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	report := ReportFrom(Build(testProgress(now), "1.0.0", now))

	code, err := EncodeTransferCode(report)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.HasPrefix(code, TransferPrefix) || strings.Contains(code, "\n") {
		t.Errorf("code %q is not a one-line prefixed token", code)
	}

	back, err := DecodeTransferCode(code)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(report, back) {
		t.Errorf("round trip changed the report:\n got %+v\nwant %+v", back, report)
	}
}

func TestDecodeTransferCode_Rejections(t *testing.T) {
	now := time.Now()
	report := ReportFrom(Build(testProgress(now), "1.0.0", now))
	code, err := EncodeTransferCode(report)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := DecodeTransferCode("XYZ9:" + strings.TrimPrefix(code, TransferPrefix)); err == nil {
		t.Error("wrong prefix accepted")
	}
	if _, err := DecodeTransferCode(TransferPrefix + "!!not-base64!!"); err == nil {
		t.Error("broken payload accepted")
	}

	report.SchemaVersion = "9.9"
	futureCode, err := EncodeTransferCode(report)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeTransferCode(futureCode); err == nil {
		t.Error("unknown report version accepted")
	}
}

func TestReportDocumentWidening(t *testing.T) {
	now := time.Now()
	doc := Build(testProgress(now), "1.0.0", now)
	widened := ReportFrom(doc).Document()

	if widened.ProfileID != doc.ProfileID || widened.Errors.ByType["E_PROC"] != 1 {
		t.Errorf("widened document lost data: %+v", widened)
	}
	if len(widened.Errors.Recent) != 0 {
		t.Error("recent errors should not survive the transfer trim")
	}
}
