package models

// ToDTO converte o registro persistido para a representação da API.
// Nenhum campo é renomeado, descartado ou reformatado.
func ToDTO(t Task) TaskDTO {
	var status *TaskStatus
	if t.Status != "" {
		status = Ptr(t.Status)
	}
	return TaskDTO{
		ID:                   t.ID,
		TaskName:             t.TaskName,
		StartDate:            t.StartDate,
		EndDate:              t.EndDate,
		Responsible:          t.Responsible,
		Status:               status,
		Remarks:              t.Remarks,
		Priority:             t.Priority,
		Category:             t.Category,
		EstimatedHours:       t.EstimatedHours,
		ActualHours:          t.ActualHours,
		CompletionPercentage: t.CompletionPercentage,
		Department:           t.Department,
		IsCritical:           t.IsCritical,
	}
}

// ToEntity faz o caminho inverso. ID e timestamps ficam a cargo do store.
func ToEntity(d TaskDTO) Task {
	var status TaskStatus
	if d.Status != nil {
		status = *d.Status
	}
	return Task{
		ID:                   d.ID,
		TaskName:             d.TaskName,
		StartDate:            d.StartDate,
		EndDate:              d.EndDate,
		Responsible:          d.Responsible,
		Status:               status,
		Remarks:              d.Remarks,
		Priority:             d.PriorityOrNil(),
		Category:             d.Category,
		EstimatedHours:       d.EstimatedHours,
		ActualHours:          d.ActualHours,
		CompletionPercentage: d.CompletionPercentage,
		Department:           d.Department,
		IsCritical:           d.IsCritical,
	}
}

func ToDTOs(tasks []Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		dtos = append(dtos, ToDTO(t))
	}
	return dtos
}
