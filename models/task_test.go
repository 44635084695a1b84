package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fullTask() Task {
	start := NewDate(2024, time.January, 15)
	end := NewDate(2024, time.January, 20)
	return Task{
		ID:                   7,
		TaskName:             "Cable Installation",
		StartDate:            &start,
		EndDate:              &end,
		Responsible:          "Operator A",
		Status:               StatusInProgress,
		Remarks:              Ptr("line 3"),
		Priority:             Ptr(PriorityHigh),
		Category:             Ptr("Electrical"),
		EstimatedHours:       Ptr(10),
		ActualHours:          Ptr(4),
		CompletionPercentage: Ptr(40),
		Department:           Ptr("Production"),
		IsCritical:           Ptr(true),
	}
}

func TestMappingRoundTrip(t *testing.T) {
	task := fullTask()
	if diff := cmp.Diff(task, ToEntity(ToDTO(task))); diff != "" {
		t.Fatalf("round trip changed the record (-want +got):\n%s", diff)
	}

	sparse := Task{ID: 1, TaskName: "x", Responsible: "y", Status: StatusHold}
	if diff := cmp.Diff(sparse, ToEntity(ToDTO(sparse))); diff != "" {
		t.Fatalf("round trip changed sparse record (-want +got):\n%s", diff)
	}
}

func TestApplyDefaults(t *testing.T) {
	var task Task
	task.ApplyDefaults()
	want := Task{
		Priority:             Ptr(PriorityMedium),
		Category:             Ptr("General"),
		EstimatedHours:       Ptr(8),
		CompletionPercentage: Ptr(0),
		Department:           Ptr("Production"),
		IsCritical:           Ptr(false),
	}
	if diff := cmp.Diff(want, task); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}

	task = fullTask()
	task.ApplyDefaults()
	if diff := cmp.Diff(fullTask(), task); diff != "" {
		t.Fatalf("defaults overwrote supplied values (-want +got):\n%s", diff)
	}
}

func TestTaskDTO_JSON(t *testing.T) {
	body := `{"taskName":"UPS Setup","startDate":"2024-02-01","endDate":null,
		"responsible":"Operator B","status":"IN_PROGRESS","priority":"LOW","isCritical":true}`

	var dto TaskDTO
	if err := json.Unmarshal([]byte(body), &dto); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dto.StartDate == nil || dto.StartDate.String() != "2024-02-01" {
		t.Fatalf("unexpected start date: %v", dto.StartDate)
	}
	if dto.EndDate != nil {
		t.Fatalf("expected nil end date")
	}
	if !dto.HasStatus() || *dto.Status != StatusInProgress {
		t.Fatalf("unexpected status: %v", dto.Status)
	}
	if *dto.Priority != PriorityLow || !*dto.IsCritical {
		t.Fatalf("unexpected dto: %+v", dto)
	}

	out, err := json.Marshal(dto)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, frag := range []string{`"startDate":"2024-02-01"`, `"status":"IN_PROGRESS"`, `"estimatedHours":null`} {
		if !strings.Contains(string(out), frag) {
			t.Errorf("marshalled JSON %s missing %s", out, frag)
		}
	}
}

func TestTaskDTO_JSONRejectsUnknownEnums(t *testing.T) {
	for _, body := range []string{
		`{"status":"DONE"}`,
		`{"priority":"URGENT"}`,
		`{"startDate":"15/01/2024"}`,
	} {
		var dto TaskDTO
		if err := json.Unmarshal([]byte(body), &dto); err == nil {
			t.Errorf("expected error decoding %s", body)
		}
	}
}

func TestTaskDTO_EmptyStatusIsAbsent(t *testing.T) {
	var dto TaskDTO
	if err := json.Unmarshal([]byte(`{"status":""}`), &dto); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dto.HasStatus() {
		t.Fatalf("empty status should count as absent")
	}
}

func TestTaskDTO_EmptyPriorityIsAbsent(t *testing.T) {
	var dto TaskDTO
	if err := json.Unmarshal([]byte(`{"priority":""}`), &dto); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if dto.PriorityOrNil() != nil {
		t.Fatalf("empty priority should count as absent")
	}

	task := ToEntity(dto)
	if task.Priority != nil {
		t.Fatalf("ToEntity kept empty priority: %q", *task.Priority)
	}
	task.ApplyDefaults()
	if *task.Priority != PriorityMedium {
		t.Fatalf("want %s got %s", PriorityMedium, *task.Priority)
	}

	empty := TaskPriority("")
	direct := Task{Priority: &empty}
	direct.ApplyDefaults()
	if *direct.Priority != PriorityMedium {
		t.Fatalf("ApplyDefaults kept empty priority")
	}
}

func TestDateScan(t *testing.T) {
	cases := []struct {
		name string
		src  interface{}
	}{
		{"time", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"text", "2024-03-09"},
		{"bytes", []byte("2024-03-09")},
		{"rfc3339", "2024-03-09T00:00:00Z"},
	}
	for _, tc := range cases {
		var d Date
		if err := d.Scan(tc.src); err != nil {
			t.Errorf("%s: Scan: %v", tc.name, err)
			continue
		}
		if d.String() != "2024-03-09" {
			t.Errorf("%s: got %s", tc.name, d)
		}
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Errorf("expected error for int source")
	}
	v, err := NewDate(2024, time.March, 9).Value()
	if err != nil || v != "2024-03-09" {
		t.Errorf("Value() = %v, %v", v, err)
	}
}
