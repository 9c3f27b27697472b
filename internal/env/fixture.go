package env

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/corekernel/corekernel/internal/name"
	"github.com/corekernel/corekernel/internal/term"
)

// Fixture is the on-disk YAML shape for a standalone environment snapshot,
// used by tests and the REPL's :load command to seed an Environment without
// a surface-syntax parser (out of scope, spec.md §1). Term fields use the
// compact node encoding of TermYAML.
type Fixture struct {
	DataTypes []DataTypeYAML `yaml:"datatypes"`
	Ctors     []CtorYAML     `yaml:"constructors"`
	Globals   []GlobalYAML   `yaml:"globals"`
}

type DataTypeYAML struct {
	Name        IdentYAML `yaml:"name"`
	Type        *TermYAML `yaml:"type"`
	NumParams   int       `yaml:"num_params"`
	NumIndices  int       `yaml:"num_indices"`
	IsPrimitive bool      `yaml:"primitive"`
	Small       bool      `yaml:"small"`
}

type CtorYAML struct {
	Name      IdentYAML `yaml:"name"`
	DataType  IdentYAML `yaml:"datatype"`
	Type      *TermYAML `yaml:"type"`
	NumParams int       `yaml:"num_params"`
	NumArgs   int       `yaml:"num_args"`
}

type GlobalYAML struct {
	Name  IdentYAML `yaml:"name"`
	Type  *TermYAML `yaml:"type"`
	Value *TermYAML `yaml:"value"`
}

// IdentYAML is the YAML-friendly shape of name.Ident.
type IdentYAML struct {
	Module string `yaml:"module"`
	Local  string `yaml:"local"`
}

func (i IdentYAML) toIdent() name.Ident { return name.New(i.Module, i.Local) }

// TermYAML is a compact, one-field-populated-at-a-time encoding of term.Term
// sufficient to write fixtures by hand; it covers binders, application,
// literals, the unit type and value, and datatype/constructor applications.
// It has no encoding for pairs, records, arrays, Constant, Let, RecursorApp,
// or ExtCns; terms using those are built programmatically instead.
type TermYAML struct {
	Sort   *uint      `yaml:"sort"`
	Var    *int       `yaml:"var"`
	Nat    *uint64    `yaml:"nat"`
	Str    *string    `yaml:"str"`
	Global *IdentYAML `yaml:"global"`

	Lambda *BinderYAML `yaml:"lambda"`
	Pi     *BinderYAML `yaml:"pi"`
	App    *AppYAML    `yaml:"app"`

	UnitType *bool `yaml:"unit_type"`
	UnitVal  *bool `yaml:"unit_value"`

	DataTypeApp *DataTypeAppYAML `yaml:"datatype_app"`
	CtorApp     *CtorAppYAML     `yaml:"ctor_app"`
}

type BinderYAML struct {
	Name IdentYAML `yaml:"name"`
	Type *TermYAML `yaml:"type"`
	Body *TermYAML `yaml:"body"`
}

type AppYAML struct {
	Func *TermYAML `yaml:"func"`
	Arg  *TermYAML `yaml:"arg"`
}

type DataTypeAppYAML struct {
	ID      IdentYAML  `yaml:"id"`
	Params  []TermYAML `yaml:"params"`
	Indices []TermYAML `yaml:"indices"`
}

type CtorAppYAML struct {
	ID   IdentYAML  `yaml:"id"`
	Args []TermYAML `yaml:"args"`
}

// toTerm decodes a TermYAML node into a hash-consed term.Term, failing if
// no field (or more than one) is populated.
func toTerm(fac *term.Factory, t *TermYAML) (term.Term, error) {
	if t == nil {
		return nil, fmt.Errorf("env: nil term node")
	}
	populated := 0
	for _, set := range []bool{
		t.Sort != nil, t.Var != nil, t.Nat != nil, t.Str != nil, t.Global != nil,
		t.Lambda != nil, t.Pi != nil, t.App != nil, t.UnitType != nil, t.UnitVal != nil,
		t.DataTypeApp != nil, t.CtorApp != nil,
	} {
		if set {
			populated++
		}
	}
	if populated > 1 {
		return nil, fmt.Errorf("env: term node has more than one populated field")
	}
	switch {
	case t.Sort != nil:
		return fac.MkSort(name.Sort(*t.Sort)), nil
	case t.Var != nil:
		return fac.MkLocalVar(*t.Var), nil
	case t.Nat != nil:
		return fac.MkNatLit(*t.Nat), nil
	case t.Str != nil:
		return fac.MkStringLit(*t.Str), nil
	case t.Global != nil:
		return fac.MkGlobalDef(t.Global.toIdent()), nil
	case t.Lambda != nil:
		return buildBinder(fac, t.Lambda, fac.MkLambda)
	case t.Pi != nil:
		return buildBinder(fac, t.Pi, fac.MkPi)
	case t.App != nil:
		fn, err := toTerm(fac, t.App.Func)
		if err != nil {
			return nil, err
		}
		arg, err := toTerm(fac, t.App.Arg)
		if err != nil {
			return nil, err
		}
		return fac.MkApp(fn, arg), nil
	case t.UnitType != nil && *t.UnitType:
		return fac.MkUnitType(), nil
	case t.UnitVal != nil && *t.UnitVal:
		return fac.MkUnitValue(), nil
	case t.DataTypeApp != nil:
		params, err := toTerms(fac, t.DataTypeApp.Params)
		if err != nil {
			return nil, err
		}
		indices, err := toTerms(fac, t.DataTypeApp.Indices)
		if err != nil {
			return nil, err
		}
		return fac.MkDataTypeApp(t.DataTypeApp.ID.toIdent(), params, indices), nil
	case t.CtorApp != nil:
		args, err := toTerms(fac, t.CtorApp.Args)
		if err != nil {
			return nil, err
		}
		return fac.MkCtorApp(t.CtorApp.ID.toIdent(), args), nil
	default:
		return nil, fmt.Errorf("env: term node has no populated field")
	}
}

func buildBinder(fac *term.Factory, b *BinderYAML, mk func(name.Ident, term.Term, term.Term) *term.Shared) (term.Term, error) {
	ty, err := toTerm(fac, b.Type)
	if err != nil {
		return nil, err
	}
	body, err := toTerm(fac, b.Body)
	if err != nil {
		return nil, err
	}
	return mk(b.Name.toIdent(), ty, body), nil
}

func toTerms(fac *term.Factory, ts []TermYAML) ([]term.Term, error) {
	out := make([]term.Term, len(ts))
	for i := range ts {
		v, err := toTerm(fac, &ts[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// LoadFixture decodes a Fixture from r and registers its contents into a
// fresh Environment seeded with RegisterBaseline.
func LoadFixture(fac *term.Factory, r io.Reader) (*Environment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("env: reading fixture: %w", err)
	}

	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("env: parsing fixture YAML: %w", err)
	}

	e := New()
	if err := RegisterBaseline(fac, e); err != nil {
		return nil, fmt.Errorf("env: registering baseline: %w", err)
	}

	for _, d := range fx.DataTypes {
		ty, err := toTerm(fac, d.Type)
		if err != nil {
			return nil, fmt.Errorf("env: datatype %s: %w", d.Name.Local, err)
		}
		if err := e.RegisterDataType(&DataType{
			Name:        d.Name.toIdent(),
			Type:        ty,
			NumParams:   d.NumParams,
			NumIndices:  d.NumIndices,
			IsPrimitive: d.IsPrimitive,
			Small:       d.Small,
		}); err != nil {
			return nil, err
		}
	}

	for _, c := range fx.Ctors {
		ty, err := toTerm(fac, c.Type)
		if err != nil {
			return nil, fmt.Errorf("env: constructor %s: %w", c.Name.Local, err)
		}
		if err := e.RegisterCtor(&Ctor{
			Name:      c.Name.toIdent(),
			DataType:  c.DataType.toIdent(),
			Type:      ty,
			NumParams: c.NumParams,
			NumArgs:   c.NumArgs,
		}); err != nil {
			return nil, err
		}
		if dt, ok := e.FindDataType(c.DataType.toIdent()); ok {
			dt.Ctors = append(dt.Ctors, c.Name.toIdent())
		}
	}

	for _, g := range fx.Globals {
		info := &GlobalInfo{}
		if g.Type != nil {
			ty, err := toTerm(fac, g.Type)
			if err != nil {
				return nil, fmt.Errorf("env: global %s: %w", g.Name.Local, err)
			}
			info.Type = ty
		}
		if g.Value != nil {
			val, err := toTerm(fac, g.Value)
			if err != nil {
				return nil, fmt.Errorf("env: global %s: %w", g.Name.Local, err)
			}
			info.Value = val
			info.HasDefn = true
		}
		e.RegisterGlobal(g.Name.toIdent(), info)
	}

	return e, nil
}
