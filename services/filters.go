package services

import (
	"context"

	"tarefas-producao/models"
)

// TaskFilter seleciona tarefas por um único atributo. Campos vazios são
// ignorados; se vários forem informados vale a ordem status, prioridade,
// departamento, categoria, criticidade.
type TaskFilter struct {
	Status     models.TaskStatus
	Priority   models.TaskPriority
	Department string
	Category   string
	IsCritical *bool
}

func (f TaskFilter) Empty() bool {
	return f.Status == "" && f.Priority == "" && f.Department == "" && f.Category == "" && f.IsCritical == nil
}

// ListTasksFiltered usa as consultas por atributo do store; sem filtro
// equivale a ListTasks.
func (s *TaskService) ListTasksFiltered(ctx context.Context, f TaskFilter) ([]models.TaskDTO, error) {
	var (
		tasks []models.Task
		err   error
	)
	switch {
	case f.Status != "":
		tasks, err = s.store.FindByStatus(ctx, f.Status)
	case f.Priority != "":
		tasks, err = s.store.FindByPriority(ctx, f.Priority)
	case f.Department != "":
		tasks, err = s.store.FindByDepartment(ctx, f.Department)
	case f.Category != "":
		tasks, err = s.store.FindByCategory(ctx, f.Category)
	case f.IsCritical != nil:
		tasks, err = s.store.FindByIsCritical(ctx, *f.IsCritical)
	default:
		return s.ListTasks(ctx)
	}
	if err != nil {
		return nil, err
	}
	s.log.Debug("Filtro %+v retornou %d tarefas", f, len(tasks))
	return models.ToDTOs(tasks), nil
}
