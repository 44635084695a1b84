package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tarefas-producao/database"
	"tarefas-producao/models"
	"tarefas-producao/utilities"
)

// ErrNotFound indica que nenhuma linha corresponde ao identificador.
var ErrNotFound = errors.New("registro não encontrado")

// TaskStore é a abstração de persistência das tarefas.
type TaskStore interface {
	Insert(ctx context.Context, task models.Task) (*models.Task, error)
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	Update(ctx context.Context, task models.Task) (*models.Task, error)
	DeleteByID(ctx context.Context, id int64) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)

	FindByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
	FindByDepartment(ctx context.Context, department string) ([]models.Task, error)
	FindByPriority(ctx context.Context, priority models.TaskPriority) ([]models.Task, error)
	FindByCategory(ctx context.Context, category string) ([]models.Task, error)
	FindByIsCritical(ctx context.Context, critical bool) ([]models.Task, error)
}

// SQLTaskStore implementa TaskStore sobre database/sql (Postgres ou SQLite).
type SQLTaskStore struct {
	db      *sql.DB
	dialect database.Dialect
	log     utilities.Logger
	now     func() time.Time
}

func NewSQLTaskStore(db *sql.DB, dialect database.Dialect, logger utilities.Logger) *SQLTaskStore {
	return &SQLTaskStore{
		db:      db,
		dialect: dialect,
		log:     logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

const taskColumns = `id, task_name, start_date, end_date, responsible, status, remarks,
	priority, category, estimated_hours, actual_hours, completion_percentage,
	department, is_critical, created_at, updated_at`

// rebind troca os placeholders "?" por "$n" quando o banco é Postgres.
func (s *SQLTaskStore) rebind(query string) string {
	if s.dialect != database.Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// timestamp trunca para microssegundos, a precisão do TIMESTAMPTZ do Postgres.
func (s *SQLTaskStore) timestamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}

func (s *SQLTaskStore) Insert(ctx context.Context, task models.Task) (*models.Task, error) {
	task.ApplyDefaults()
	now := s.timestamp()
	task.CreatedAt = now
	task.UpdatedAt = now

	query := s.rebind(`
		INSERT INTO tasks (task_name, start_date, end_date, responsible, status, remarks,
			priority, category, estimated_hours, actual_hours, completion_percentage,
			department, is_critical, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowContext(ctx, query,
		task.TaskName,
		task.StartDate,
		task.EndDate,
		task.Responsible,
		string(task.Status),
		task.Remarks,
		task.Priority,
		task.Category,
		task.EstimatedHours,
		task.ActualHours,
		task.CompletionPercentage,
		task.Department,
		task.IsCritical,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao inserir tarefa: %w", err)
	}

	s.log.Debug("Tarefa inserida: %s (ID: %d, status: %s)", task.TaskName, task.ID, task.Status)
	return &task, nil
}

func (s *SQLTaskStore) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	query := s.rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		s.log.Debug("Tarefa %d não encontrada", id)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tarefa %d: %w", id, err)
	}
	s.log.Debug("Tarefa encontrada: %s (ID: %d, status: %s)", task.TaskName, task.ID, task.Status)
	return task, nil
}

func (s *SQLTaskStore) FindAll(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Encontradas %d tarefas", len(tasks))
	return tasks, nil
}

// Update substitui a linha inteira, exceto id e created_at.
func (s *SQLTaskStore) Update(ctx context.Context, task models.Task) (*models.Task, error) {
	task.UpdatedAt = s.timestamp()

	query := s.rebind(`
		UPDATE tasks SET task_name = ?, start_date = ?, end_date = ?, responsible = ?,
			status = ?, remarks = ?, priority = ?, category = ?, estimated_hours = ?,
			actual_hours = ?, completion_percentage = ?, department = ?, is_critical = ?,
			updated_at = ?
		WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query,
		task.TaskName,
		task.StartDate,
		task.EndDate,
		task.Responsible,
		string(task.Status),
		task.Remarks,
		task.Priority,
		task.Category,
		task.EstimatedHours,
		task.ActualHours,
		task.CompletionPercentage,
		task.Department,
		task.IsCritical,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar tarefa %d: %w", task.ID, err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	s.log.Debug("Tarefa atualizada: %s (ID: %d, status: %s)", task.TaskName, task.ID, task.Status)
	return &task, nil
}

func (s *SQLTaskStore) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("erro ao excluir tarefa %d: %w", id, err)
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	s.log.Debug("Tarefa %d excluída", id)
	return nil
}

func (s *SQLTaskStore) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar tarefas: %w", err)
	}
	s.log.Debug("Total de tarefas: %d", n)
	return n, nil
}

func (s *SQLTaskStore) CountByStatus(ctx context.Context, status models.TaskStatus) (int64, error) {
	var n int64
	query := s.rebind(`SELECT COUNT(*) FROM tasks WHERE status = ?`)
	if err := s.db.QueryRowContext(ctx, query, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("erro ao contar tarefas com status %s: %w", status, err)
	}
	s.log.Debug("Tarefas com status %s: %d", status, n)
	return n, nil
}

func (s *SQLTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := s.rebind(`SELECT EXISTS(SELECT 1 FROM tasks WHERE id = ?)`)
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("erro ao verificar existência da tarefa %d: %w", id, err)
	}
	return exists, nil
}

func (s *SQLTaskStore) FindByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	return s.findWhere(ctx, "status", string(status))
}

func (s *SQLTaskStore) FindByDepartment(ctx context.Context, department string) ([]models.Task, error) {
	return s.findWhere(ctx, "department", department)
}

func (s *SQLTaskStore) FindByPriority(ctx context.Context, priority models.TaskPriority) ([]models.Task, error) {
	return s.findWhere(ctx, "priority", string(priority))
}

func (s *SQLTaskStore) FindByCategory(ctx context.Context, category string) ([]models.Task, error) {
	return s.findWhere(ctx, "category", category)
}

func (s *SQLTaskStore) FindByIsCritical(ctx context.Context, critical bool) ([]models.Task, error) {
	return s.findWhere(ctx, "is_critical", critical)
}

// findWhere recebe apenas nomes de coluna fixos dos métodos acima.
func (s *SQLTaskStore) findWhere(ctx context.Context, column string, value interface{}) ([]models.Task, error) {
	tasks, err := s.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+column+` = ? ORDER BY id`, value)
	if err != nil {
		return nil, err
	}
	s.log.Debug("Encontradas %d tarefas com %s = %v", len(tasks), column, value)
	return tasks, nil
}

func (s *SQLTaskStore) query(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tarefas: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler tarefa: %w", err)
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer tarefas: %w", err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row scanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.ID,
		&t.TaskName,
		&t.StartDate,
		&t.EndDate,
		&t.Responsible,
		&t.Status,
		&t.Remarks,
		&t.Priority,
		&t.Category,
		&t.EstimatedHours,
		&t.ActualHours,
		&t.CompletionPercentage,
		&t.Department,
		&t.IsCritical,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao ler linhas afetadas: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
