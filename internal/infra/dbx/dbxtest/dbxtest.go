// Package dbxtest provides a scripted dbx.Querier for repository tests.
package dbxtest

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Result is what a matched statement returns. Each inner slice of Rows is one
// row, scanned positionally into the caller's destinations.
type Result struct {
	Rows [][]any
	Err  error
	Tag  string
}

type Call struct {
	SQL  string
	Args []any
}

// Querier answers statements by the first registered fragment they contain.
// Unmatched statements fail the call with an error.
type Querier struct {
	mu      sync.Mutex
	scripts []script
	calls   []Call
}

type script struct {
	fragment string
	result   Result
}

func New() *Querier { return &Querier{} }

// On registers result for statements containing fragment.
func (q *Querier) On(fragment string, result Result) *Querier {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.scripts = append(q.scripts, script{fragment: fragment, result: result})
	return q
}

// Calls returns every statement seen so far.
func (q *Querier) Calls() []Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Call, len(q.calls))
	copy(out, q.calls)
	return out
}

// CallsMatching returns the statements containing fragment.
func (q *Querier) CallsMatching(fragment string) []Call {
	var out []Call
	for _, c := range q.Calls() {
		if strings.Contains(c.SQL, fragment) {
			out = append(out, c)
		}
	}
	return out
}

func (q *Querier) match(sql string, args []any) (Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.calls = append(q.calls, Call{SQL: sql, Args: args})
	for _, s := range q.scripts {
		if strings.Contains(sql, s.fragment) {
			return s.result, nil
		}
	}
	return Result{}, fmt.Errorf("dbxtest: unexpected statement: %s", sql)
}

func (q *Querier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	res, err := q.match(sql, args)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag(res.Tag), res.Err
}

func (q *Querier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	res, err := q.match(sql, args)
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		return nil, res.Err
	}
	return &rows{data: res.Rows, idx: -1}, nil
}

func (q *Querier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	res, err := q.match(sql, args)
	if err != nil {
		return row{err: err}
	}
	if res.Err != nil {
		return row{err: res.Err}
	}
	if len(res.Rows) == 0 {
		return row{err: pgx.ErrNoRows}
	}
	return row{values: res.Rows[0]}
}

type row struct {
	values []any
	err    error
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

type rows struct {
	data [][]any
	idx  int
}

func (r *rows) Close()                                       {}
func (r *rows) Err() error                                   { return nil }
func (r *rows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *rows) RawValues() [][]byte                          { return nil }
func (r *rows) Conn() *pgx.Conn                              { return nil }

func (r *rows) Next() bool {
	r.idx++
	return r.idx < len(r.data)
}

func (r *rows) Scan(dest ...any) error {
	return assign(r.data[r.idx], dest)
}

func (r *rows) Values() ([]any, error) {
	return r.data[r.idx], nil
}

// assign copies values into pointer destinations. A nil value zeroes the
// destination; a value of the destination's element type is set directly and
// a non-pointer value is converted when the destination is a pointer to pointer.
func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return fmt.Errorf("dbxtest: row has %d values, scan wants %d", len(values), len(dest))
	}
	for i, d := range dest {
		dv := reflect.ValueOf(d)
		if dv.Kind() != reflect.Pointer || dv.IsNil() {
			return fmt.Errorf("dbxtest: destination %d is not a pointer", i)
		}
		target := dv.Elem()
		if values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(values[i])
		switch {
		case v.Type().AssignableTo(target.Type()):
			target.Set(v)
		case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v)
			target.Set(p)
		case v.Type().ConvertibleTo(target.Type()):
			target.Set(v.Convert(target.Type()))
		default:
			return fmt.Errorf("dbxtest: cannot scan %T into %s", values[i], target.Type())
		}
	}
	return nil
}
