package models

import (
	"encoding/json"
	"fmt"
	"time"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "NOT_STARTED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusHold       TaskStatus = "HOLD"
)

// AllStatuses lista os status na ordem em que aparecem no resumo.
var AllStatuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted, StatusHold}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusHold:
		return true
	}
	return false
}

// ParseTaskStatus aceita apenas os nomes simbólicos do enum.
func ParseTaskStatus(v string) (TaskStatus, error) {
	s := TaskStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("status inválido: %q", v)
	}
	return s, nil
}

// UnmarshalJSON rejeita valores desconhecidos; "" vira o valor zero (ausente).
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseTaskStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParseTaskPriority(v string) (TaskPriority, error) {
	p := TaskPriority(v)
	if !p.Valid() {
		return "", fmt.Errorf("prioridade inválida: %q", v)
	}
	return p, nil
}

func (p *TaskPriority) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == "" {
		*p = ""
		return nil
	}
	parsed, err := ParseTaskPriority(v)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Task representa uma linha da tabela tasks.
// Campos ponteiro são colunas que aceitam NULL.
type Task struct {
	ID                   int64
	TaskName             string
	StartDate            *Date
	EndDate              *Date
	Responsible          string
	Status               TaskStatus
	Remarks              *string
	Priority             *TaskPriority
	Category             *string
	EstimatedHours       *int
	ActualHours          *int
	CompletionPercentage *int
	Department           *string
	IsCritical           *bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Valores padrão aplicados na primeira persistência.
const (
	DefaultPriority             = PriorityMedium
	DefaultCategory             = "General"
	DefaultEstimatedHours       = 8
	DefaultCompletionPercentage = 0
	DefaultDepartment           = "Production"
	DefaultIsCritical           = false
)

// ApplyDefaults preenche apenas os campos ausentes. Status não entra aqui:
// quem cria a tarefa decide o status inicial.
func (t *Task) ApplyDefaults() {
	if t.Priority == nil || *t.Priority == "" {
		t.Priority = Ptr(DefaultPriority)
	}
	if t.Category == nil {
		t.Category = Ptr(DefaultCategory)
	}
	if t.EstimatedHours == nil {
		t.EstimatedHours = Ptr(DefaultEstimatedHours)
	}
	if t.CompletionPercentage == nil {
		t.CompletionPercentage = Ptr(DefaultCompletionPercentage)
	}
	if t.Department == nil {
		t.Department = Ptr(DefaultDepartment)
	}
	if t.IsCritical == nil {
		t.IsCritical = Ptr(DefaultIsCritical)
	}
}

// TaskDTO é a representação exposta na API.
type TaskDTO struct {
	ID                   int64         `json:"id"`
	TaskName             string        `json:"taskName"`
	StartDate            *Date         `json:"startDate"`
	EndDate              *Date         `json:"endDate"`
	Responsible          string        `json:"responsible"`
	Status               *TaskStatus   `json:"status"`
	Remarks              *string       `json:"remarks"`
	Priority             *TaskPriority `json:"priority"`
	Category             *string       `json:"category"`
	EstimatedHours       *int          `json:"estimatedHours"`
	ActualHours          *int          `json:"actualHours"`
	CompletionPercentage *int          `json:"completionPercentage"`
	Department           *string       `json:"department"`
	IsCritical           *bool         `json:"isCritical"`
}

// PriorityOrNil trata prioridade vazia como ausente, igual ao status.
func (d TaskDTO) PriorityOrNil() *TaskPriority {
	if d.Priority == nil || *d.Priority == "" {
		return nil
	}
	return d.Priority
}

// HasStatus indica se o chamador informou um status não vazio.
func (d TaskDTO) HasStatus() bool {
	return d.Status != nil && *d.Status != ""
}

type TaskSummary struct {
	TotalTasks      int64 `json:"totalTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	OnHoldTasks     int64 `json:"onHoldTasks"`
	NotStartedTasks int64 `json:"notStartedTasks"`
}

// Ptr retorna um ponteiro para v.
func Ptr[T any](v T) *T {
	return &v
}
