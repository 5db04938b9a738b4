package querybuilder

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles schema-qualified SQL with `?` placeholders. Callers
// rebind to the driver's placeholder style (sqlx.Rebind) before executing.
type QueryBuilder interface {
	Select(cols ...string) QueryBuilder
	From(table string) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder
	Or(clause string, args ...interface{}) QueryBuilder
	OrderBy(col string, asc bool) QueryBuilder
	Limit(n int) QueryBuilder

	Insert(cols ...string) QueryBuilder
	Into(table string) QueryBuilder
	Values(values ...interface{}) QueryBuilder
	OnConflict(cols ...string) QueryBuilder
	DoNothing() QueryBuilder

	Update(table string) QueryBuilder
	Set(col string, value interface{}) QueryBuilder

	Delete(table string) QueryBuilder

	Build() (string, []interface{})
}

type condition struct {
	connector string
	clause    string
	args      []interface{}
}

type assignment struct {
	col   string
	value interface{}
}

type queryBuilder struct {
	schema        string
	table         string
	cols          []string
	conditions    []condition
	orderBy       []string
	limit         int
	values        [][]interface{}
	assignments   []assignment
	onConflict    []string
	conflictClose string
	isUpdate      bool
	isDelete      bool
}

func NewQueryBuilder(schema string) QueryBuilder {
	if schema == "" {
		schema = "public"
	}
	return &queryBuilder{schema: schema}
}

func (q *queryBuilder) Select(cols ...string) QueryBuilder {
	q.cols = append(q.cols, cols...)
	return q
}

func (q *queryBuilder) From(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Into(table string) QueryBuilder {
	q.table = table
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	return q.And(clause, args...)
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{connector: "AND", clause: clause, args: args})
	return q
}

func (q *queryBuilder) Or(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{connector: "OR", clause: clause, args: args})
	return q
}

func (q *queryBuilder) OrderBy(col string, asc bool) QueryBuilder {
	direction := "ASC"
	if !asc {
		direction = "DESC"
	}
	q.orderBy = append(q.orderBy, fmt.Sprintf("%s %s", col, direction))
	return q
}

func (q *queryBuilder) Limit(n int) QueryBuilder {
	q.limit = n
	return q
}

func (q *queryBuilder) Insert(cols ...string) QueryBuilder {
	q.cols = cols
	return q
}

func (q *queryBuilder) Values(values ...interface{}) QueryBuilder {
	q.values = append(q.values, values)
	return q
}

func (q *queryBuilder) OnConflict(cols ...string) QueryBuilder {
	q.onConflict = cols
	return q
}

func (q *queryBuilder) DoNothing() QueryBuilder {
	q.conflictClose = "DO NOTHING"
	return q
}

func (q *queryBuilder) Update(table string) QueryBuilder {
	q.table = table
	q.isUpdate = true
	return q
}

func (q *queryBuilder) Set(col string, value interface{}) QueryBuilder {
	q.assignments = append(q.assignments, assignment{col: col, value: value})
	return q
}

func (q *queryBuilder) Delete(table string) QueryBuilder {
	q.table = table
	q.isDelete = true
	return q
}

func (q *queryBuilder) Build() (string, []interface{}) {
	switch {
	case len(q.values) > 0:
		return q.buildInsert()
	case q.isUpdate:
		return q.buildUpdate()
	case q.isDelete:
		return q.buildDelete()
	default:
		return q.buildSelect()
	}
}

func (q *queryBuilder) qualifiedTable() string {
	return fmt.Sprintf("%s.%s", q.schema, q.table)
}

func (q *queryBuilder) whereClause() (string, []interface{}) {
	if len(q.conditions) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(q.conditions))
	var args []interface{}
	for i, cond := range q.conditions {
		if i > 0 {
			parts = append(parts, cond.connector)
		}
		parts = append(parts, cond.clause)
		args = append(args, cond.args...)
	}
	return " WHERE " + strings.Join(parts, " "), args
}

func (q *queryBuilder) buildSelect() (string, []interface{}) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(q.cols, ", "), q.qualifiedTable())
	where, args := q.whereClause()
	query += where
	if len(q.orderBy) > 0 {
		query += " ORDER BY " + strings.Join(q.orderBy, ", ")
	}
	if q.limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.limit)
	}
	return query, args
}

func (q *queryBuilder) buildInsert() (string, []interface{}) {
	var args []interface{}
	tuples := make([]string, 0, len(q.values))
	for _, row := range q.values {
		if len(row) != len(q.cols) {
			return "", nil
		}
		placeholders := make([]string, len(row))
		for i, val := range row {
			placeholders[i] = "?"
			args = append(args, val)
		}
		tuples = append(tuples, fmt.Sprintf("(%s)", strings.Join(placeholders, ", ")))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		q.qualifiedTable(), strings.Join(q.cols, ", "), strings.Join(tuples, ", "))
	if len(q.onConflict) > 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s) %s", strings.Join(q.onConflict, ", "), q.conflictClose)
	}
	return query, args
}

func (q *queryBuilder) buildUpdate() (string, []interface{}) {
	if len(q.assignments) == 0 {
		return "", nil
	}
	sets := make([]string, 0, len(q.assignments))
	var args []interface{}
	for _, a := range q.assignments {
		sets = append(sets, fmt.Sprintf("%s = ?", a.col))
		args = append(args, a.value)
	}
	query := fmt.Sprintf("UPDATE %s SET %s", q.qualifiedTable(), strings.Join(sets, ", "))
	where, whereArgs := q.whereClause()
	query += where
	args = append(args, whereArgs...)
	return query, args
}

func (q *queryBuilder) buildDelete() (string, []interface{}) {
	// Unconditional deletes are never intended; refuse to build one.
	if len(q.conditions) == 0 {
		return "", nil
	}
	where, args := q.whereClause()
	return fmt.Sprintf("DELETE FROM %s%s", q.qualifiedTable(), where), args
}
