package services

import (
	"context"

	"tarefas-producao/models"
)

// sampleTask monta uma tarefa de exemplo. Percentual e criticidade seguem o
// status e a prioridade; departamento segue a categoria.
func sampleTask(name, responsible string, status models.TaskStatus, priority models.TaskPriority, category string) models.TaskDTO {
	completion := 0
	switch status {
	case models.StatusCompleted:
		completion = 100
	case models.StatusInProgress:
		completion = 50
	}

	department := "Production"
	if category == "IT" {
		department = "IT"
	}

	return models.TaskDTO{
		TaskName:             name,
		Responsible:          responsible,
		Status:               models.Ptr(status),
		Remarks:              models.Ptr("Sample task"),
		Priority:             models.Ptr(priority),
		Category:             models.Ptr(category),
		EstimatedHours:       models.Ptr(8),
		CompletionPercentage: models.Ptr(completion),
		Department:           models.Ptr(department),
		IsCritical:           models.Ptr(priority == models.PriorityHigh),
	}
}

func sampleTasks() []models.TaskDTO {
	return []models.TaskDTO{
		sampleTask("Cable Installation", "Operator A", models.StatusNotStarted, models.PriorityHigh, "Electrical"),
		sampleTask("UPS Setup", "Operator B", models.StatusInProgress, models.PriorityMedium, "Electrical"),
		sampleTask("Monitor Setup", "Operator C", models.StatusCompleted, models.PriorityLow, "IT"),
		sampleTask("PC Installation", "Operator D", models.StatusHold, models.PriorityMedium, "IT"),
	}
}

// InitializeSampleData insere as tarefas de exemplo apenas se o banco estiver
// vazio. Retorna quantas tarefas foram inseridas.
func (s *TaskService) InitializeSampleData(ctx context.Context) (int, error) {
	total, err := s.store.CountAll(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		s.log.Info("Banco já contém %d tarefas, dados de exemplo ignorados", total)
		return 0, nil
	}

	s.log.Info("Inicializando dados de exemplo")
	inserted := 0
	for _, sample := range sampleTasks() {
		saved, err := s.CreateTask(ctx, sample)
		if err != nil {
			return inserted, err
		}
		inserted++
		s.log.Debug("Tarefa de exemplo criada: %s (status: %s)", saved.TaskName, *saved.Status)
	}
	s.log.Info("Dados de exemplo inicializados: %d tarefas", inserted)
	return inserted, nil
}
