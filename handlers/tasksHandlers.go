package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tarefas-producao/models"
	"tarefas-producao/services"
	"tarefas-producao/utilities"

	"github.com/gorilla/mux"
)

// TaskService é o que os handlers precisam do serviço de tarefas.
type TaskService interface {
	ListTasksFiltered(ctx context.Context, f services.TaskFilter) ([]models.TaskDTO, error)
	GetTask(ctx context.Context, id int64) (*models.TaskDTO, error)
	CreateTask(ctx context.Context, input models.TaskDTO) (*models.TaskDTO, error)
	CreateTaskWithDefaults(ctx context.Context, input models.TaskDTO) (*models.TaskDTO, error)
	UpdateTask(ctx context.Context, id int64, input models.TaskDTO) (*models.TaskDTO, error)
	DeleteTask(ctx context.Context, id int64) error
	GetSummary(ctx context.Context) (*models.TaskSummary, error)
	InitializeSampleData(ctx context.Context) (int, error)
}

// SampleDataMessage é a resposta de POST /api/tasks/initialize.
const SampleDataMessage = "Sample data initialized successfully"

type TaskHandler struct {
	service TaskService
	log     utilities.Logger
}

func NewTaskHandler(service TaskService, logger utilities.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: logger}
}

// Register monta as rotas de tarefas em r (normalmente /api/tasks).
// As rotas fixas vêm antes de /{id} para não serem capturadas por ela.
func (h *TaskHandler) Register(r *mux.Router) {
	r.HandleFunc("", h.ListTasks).Methods("GET")
	r.HandleFunc("", h.CreateTask).Methods("POST")
	r.HandleFunc("/summary", h.GetSummary).Methods("GET")
	r.HandleFunc("/initialize", h.InitializeSampleData).Methods("POST")
	r.HandleFunc("/create", h.CreateTaskWithDefaults).Methods("POST")
	r.HandleFunc("/{id:[0-9]+}", h.GetTask).Methods("GET")
	r.HandleFunc("/{id:[0-9]+}", h.UpdateTask).Methods("PUT")
	r.HandleFunc("/{id:[0-9]+}", h.DeleteTask).Methods("DELETE")
}

// ListTasks lista as tarefas, com filtro opcional por query string
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.log.Error(err, "ListTasks: Filtro inválido")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tasks, err := h.service.ListTasksFiltered(r.Context(), filter)
	if err != nil {
		h.serverError(w, err, "ListTasks: Erro ao buscar tarefas")
		return
	}

	h.log.Info("Tarefas listadas com sucesso - total: %d", len(tasks))
	writeJSON(w, h.log, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetTask(r.Context(), id)
	if err != nil {
		h.failure(w, err, "GetTask")
		return
	}
	writeJSON(w, h.log, http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeTask(w, r, "CreateTask")
	if !ok {
		return
	}

	created, err := h.service.CreateTask(r.Context(), input)
	if err != nil {
		h.serverError(w, err, "CreateTask: Erro ao criar tarefa")
		return
	}
	writeJSON(w, h.log, http.StatusOK, created)
}

// CreateTaskWithDefaults garante todos os campos opcionais preenchidos.
// Qualquer falha aqui é reportada como 400.
func (h *TaskHandler) CreateTaskWithDefaults(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeTask(w, r, "CreateTaskWithDefaults")
	if !ok {
		return
	}

	created, err := h.service.CreateTaskWithDefaults(r.Context(), input)
	if err != nil {
		h.log.Error(err, "CreateTaskWithDefaults: Erro ao criar tarefa")
		http.Error(w, "Could not create task", http.StatusBadRequest)
		return
	}
	writeJSON(w, h.log, http.StatusOK, created)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeTask(w, r, "UpdateTask")
	if !ok {
		return
	}

	updated, err := h.service.UpdateTask(r.Context(), id, input)
	if err != nil {
		h.failure(w, err, "UpdateTask")
		return
	}
	writeJSON(w, h.log, http.StatusOK, updated)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), id); err != nil {
		h.failure(w, err, "DeleteTask")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *TaskHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.serverError(w, err, "GetSummary: Erro ao calcular resumo")
		return
	}
	writeJSON(w, h.log, http.StatusOK, summary)
}

func (h *TaskHandler) InitializeSampleData(w http.ResponseWriter, r *http.Request) {
	if _, err := h.service.InitializeSampleData(r.Context()); err != nil {
		h.serverError(w, err, "InitializeSampleData: Erro ao inserir dados de exemplo")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, SampleDataMessage)
}

func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr, ok := mux.Vars(r)["id"]
	if !ok {
		h.log.Error(errors.New("id não encontrado nos parâmetros da rota"), "Parâmetro ausente")
		http.Error(w, "Task ID is required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Error(err, "id inválido")
		http.Error(w, "Invalid Task ID format", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) decodeTask(w http.ResponseWriter, r *http.Request, op string) (models.TaskDTO, bool) {
	var input models.TaskDTO
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.log.Error(err, op+": Erro ao decodificar JSON da tarefa")
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// failure responde 404 para ErrTaskNotFound e 500 para o resto.
func (h *TaskHandler) failure(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		h.log.Debug("%s: %v", op, err)
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	h.serverError(w, err, op)
}

func (h *TaskHandler) serverError(w http.ResponseWriter, err error, context string) {
	h.log.Error(err, context)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func parseFilter(r *http.Request) (services.TaskFilter, error) {
	var f services.TaskFilter
	q := r.URL.Query()

	if v := q.Get("status"); v != "" {
		status, err := models.ParseTaskStatus(v)
		if err != nil {
			return f, err
		}
		f.Status = status
	}
	if v := q.Get("priority"); v != "" {
		priority, err := models.ParseTaskPriority(v)
		if err != nil {
			return f, err
		}
		f.Priority = priority
	}
	f.Department = q.Get("department")
	f.Category = q.Get("category")
	if v := q.Get("critical"); v != "" {
		critical, err := strconv.ParseBool(v)
		if err != nil {
			return f, fmt.Errorf("critical inválido: %q", v)
		}
		f.IsCritical = &critical
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, log utilities.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err, "Erro ao codificar resposta JSON")
	}
}
