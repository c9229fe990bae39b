package attrsort_test

import (
	"errors"
)

type person struct {
	name string
	age  int
}

func (p *person) GetName() string { return p.name }
func (p person) GetAge() int      { return p.age }

type flag struct {
	label  string
	active bool
}

func (f flag) IsActive() bool { return f.active }

type employee struct {
	first string
}

func (e employee) GetFirstName() string { return e.first }

type faulty struct{}

func (faulty) GetName() string { panic("boom") }

var errNoAge = errors.New("no age")

func (faulty) GetAge() (int, error) { return 0, errNoAge }

func (faulty) IsAge() bool { return true }

// record is indexable and also exposes accessors.
type record struct {
	fields map[string]any
	label  string
}

func (r record) Index(key string) (any, bool) {
	v, ok := r.fields[key]

	return v, ok
}

func (r record) GetLabel() string { return r.label }

// getter has an accessor for the empty attribute.
type getter struct {
	id    string
	value int
}

func (g getter) Get() int { return g.value }

// sheet is indexable only through its pointer.
type sheet struct {
	cells map[string]any
}

func (s *sheet) Index(key string) (any, bool) {
	v, ok := s.cells[key]

	return v, ok
}

func (s *sheet) GetTitle() string { return "sheet" }

// dynamic resolves accessors without reflection.
type dynamic map[string]any

func (d dynamic) GetAttribute(name string) (any, bool) {
	v, ok := d["get:"+name]

	return v, ok
}

func (d dynamic) IsAttribute(name string) (any, bool) {
	v, ok := d["is:"+name]

	return v, ok
}

func row(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)

	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}

	return m
}
