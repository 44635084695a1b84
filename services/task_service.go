package services

import (
	"context"
	"errors"
	"fmt"

	"tarefas-producao/models"
	"tarefas-producao/repository"
	"tarefas-producao/utilities"
)

// ErrTaskNotFound é retornado quando o identificador não existe.
var ErrTaskNotFound = errors.New("tarefa não encontrada")

type TaskService struct {
	store repository.TaskStore
	log   utilities.Logger
}

func NewTaskService(store repository.TaskStore, logger utilities.Logger) *TaskService {
	return &TaskService{store: store, log: logger}
}

// notFound traduz o ErrNotFound do store para ErrTaskNotFound.
func notFound(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("tarefa %d: %w", id, ErrTaskNotFound)
	}
	return err
}

func (s *TaskService) ListTasks(ctx context.Context) ([]models.TaskDTO, error) {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Listando %d tarefas", len(tasks))
	return models.ToDTOs(tasks), nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*models.TaskDTO, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	dto := models.ToDTO(*task)
	return &dto, nil
}

// CreateTask aplica NOT_STARTED quando o status está ausente; os demais
// padrões são aplicados pelo store na inserção.
func (s *TaskService) CreateTask(ctx context.Context, input models.TaskDTO) (*models.TaskDTO, error) {
	task := models.ToEntity(input)
	if !input.HasStatus() {
		task.Status = models.StatusNotStarted
		s.log.Debug("Status ausente, usando %s", models.StatusNotStarted)
	}

	saved, err := s.store.Insert(ctx, task)
	if err != nil {
		return nil, err
	}

	s.log.Info("Tarefa criada com sucesso: %s (ID: %d, status: %s)", saved.TaskName, saved.ID, saved.Status)
	dto := models.ToDTO(*saved)
	return &dto, nil
}

// CreateTaskWithDefaults preenche todos os campos opcionais antes de
// delegar para CreateTask, usando o mesmo passo de padrões do store.
func (s *TaskService) CreateTaskWithDefaults(ctx context.Context, input models.TaskDTO) (*models.TaskDTO, error) {
	task := models.ToEntity(input)
	if !input.HasStatus() {
		task.Status = models.StatusNotStarted
	}
	task.ApplyDefaults()
	return s.CreateTask(ctx, models.ToDTO(task))
}

// UpdateTask substitui todos os campos, inclusive por nulos. O status só é
// trocado quando informado.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, input models.TaskDTO) (*models.TaskDTO, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	s.log.Debug("Atualizando tarefa %d (status atual: %s)", id, existing.Status)

	existing.TaskName = input.TaskName
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.Responsible = input.Responsible
	if input.HasStatus() {
		existing.Status = *input.Status
		s.log.Debug("Status da tarefa %d alterado para %s", id, existing.Status)
	}
	existing.Remarks = input.Remarks
	existing.Priority = input.PriorityOrNil()
	existing.Category = input.Category
	existing.EstimatedHours = input.EstimatedHours
	existing.ActualHours = input.ActualHours
	existing.CompletionPercentage = input.CompletionPercentage
	existing.Department = input.Department
	existing.IsCritical = input.IsCritical

	updated, err := s.store.Update(ctx, *existing)
	if err != nil {
		return nil, notFound(id, err)
	}

	s.log.Info("Tarefa atualizada com sucesso: %d (status: %s)", id, updated.Status)
	dto := models.ToDTO(*updated)
	return &dto, nil
}

// DeleteTask verifica a existência antes de excluir para que a falha seja
// reportada como ErrTaskNotFound e não como erro genérico do banco.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("tarefa %d: %w", id, ErrTaskNotFound)
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return notFound(id, err)
	}
	s.log.Info("Tarefa excluída com sucesso: %d", id)
	return nil
}

func (s *TaskService) GetSummary(ctx context.Context) (*models.TaskSummary, error) {
	total, err := s.store.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		n, err := s.store.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = n
	}

	summary := &models.TaskSummary{
		TotalTasks:      total,
		CompletedTasks:  counts[models.StatusCompleted],
		InProgressTasks: counts[models.StatusInProgress],
		OnHoldTasks:     counts[models.StatusHold],
		NotStartedTasks: counts[models.StatusNotStarted],
	}
	s.log.Debug("Resumo: %+v", *summary)
	return summary, nil
}
