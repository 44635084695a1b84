package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Date é uma data de calendário sem hora nem fuso (YYYY-MM-DD).
// JSON usa MarshalText/UnmarshalText de civil.Date.
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err != nil {
		return Date{}, fmt.Errorf("data inválida %q: esperado YYYY-MM-DD", s)
	}
	return Date{d}, nil
}

// Value grava a data como texto; Postgres converte para DATE.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan aceita time.Time (lib/pq e modernc em colunas DATE) ou texto.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Date = civil.DateOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	}
	return fmt.Errorf("tipo não suportado para Date: %T", src)
}

func (d *Date) scanText(s string) error {
	// Alguns drivers devolvem "2006-01-02T00:00:00Z" para colunas DATE.
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
