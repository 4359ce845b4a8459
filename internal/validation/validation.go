// Package validation checks form input before it is sent to the API.
package validation

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/garnizeh/pedidos/pkg/models"
	"github.com/qri-io/jsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names.
const (
	SchemaLogin          = "login"
	SchemaRegister       = "register"
	SchemaPedido         = "pedido"
	SchemaDisponibilidad = "disponibilidad"
	SchemaCalificacion   = "calificacion"
	SchemaArea           = "area"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// FieldError is one rejected field. Field is empty for form-level problems.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in one form.
type ValidationError struct {
	Form   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Form, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validator holds the compiled form schemas.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
	defaultErr  error
)

// Default returns a process-wide Validator over the embedded schemas.
func Default() (*Validator, error) {
	defaultOnce.Do(func() { defaultV, defaultErr = New() })
	return defaultV, defaultErr
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}
	for _, e := range entries {
		b, err := fs.ReadFile(schemaFS, path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		v.schemas[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = rs
	}
	return v, nil
}

// Names lists the known schemas in order.
func (v *Validator) Names() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, 0, len(v.schemas))
	for k := range v.schemas {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Validate checks value, encoded as JSON, against the named schema.
func (v *Validator) Validate(ctx context.Context, name string, value any) error {
	v.mu.RLock()
	rs, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s form: %w", name, err)
	}
	keyErrs, err := rs.ValidateBytes(ctx, b)
	if err != nil {
		return fmt.Errorf("validate %s form: %w", name, err)
	}
	if len(keyErrs) == 0 {
		return nil
	}

	ve := &ValidationError{Form: name}
	for _, ke := range keyErrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   strings.Trim(ke.PropertyPath, "/"),
			Message: ke.Message,
		})
	}
	return ve
}

func (v *Validator) Login(ctx context.Context, req models.LoginRequest) error {
	return v.Validate(ctx, SchemaLogin, req)
}

func (v *Validator) Register(ctx context.Context, req models.RegisterRequest) error {
	return v.Validate(ctx, SchemaRegister, registerForm(req))
}

// registerForm drops an empty telefono so the optional pattern is not applied.
func registerForm(req models.RegisterRequest) map[string]any {
	m := map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"nombre":   req.Nombre,
		"apellido": req.Apellido,
		"rol":      string(req.Rol),
	}
	if req.Telefono != "" {
		m["telefono"] = req.Telefono
	}
	return m
}

// Pedido validates the form and each of its disponibilidades. Problems in
// slot i are reported under "disponibilidades/i/<field>".
func (v *Validator) Pedido(ctx context.Context, form models.PedidoForm) error {
	var fields []FieldError
	if err := v.Validate(ctx, SchemaPedido, form); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		fields = append(fields, ve.Fields...)
	}
	for i, d := range form.Disponibilidades {
		err := v.Disponibilidad(ctx, d)
		if err == nil {
			continue
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for _, f := range ve.Fields {
			f.Field = strings.TrimSuffix(fmt.Sprintf("disponibilidades/%d/%s", i, f.Field), "/")
			fields = append(fields, f)
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Form: SchemaPedido, Fields: fields}
	}
	return nil
}

// Disponibilidad validates one slot, including that it starts before it ends.
func (v *Validator) Disponibilidad(ctx context.Context, d models.PedidoDisponibilidad) error {
	if err := v.Validate(ctx, SchemaDisponibilidad, d); err != nil {
		return err
	}
	if d.HoraInicio >= d.HoraFin {
		return &ValidationError{Form: SchemaDisponibilidad, Fields: []FieldError{
			{Field: "horaFin", Message: "horaFin must be after horaInicio"},
		}}
	}
	return nil
}

// Calificacion validates a rating and its optional comment.
func (v *Validator) Calificacion(ctx context.Context, score int, comentario string) error {
	m := map[string]any{"calificacion": score}
	if comentario != "" {
		m["comentario"] = comentario
	}
	return v.Validate(ctx, SchemaCalificacion, m)
}

func (v *Validator) Area(ctx context.Context, a models.Area) error {
	m := map[string]any{"nombre": a.Nombre}
	if a.Descripcion != nil {
		m["descripcion"] = *a.Descripcion
	}
	return v.Validate(ctx, SchemaArea, m)
}
