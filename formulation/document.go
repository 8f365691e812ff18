package formulation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MaxDocumentSize caps model files read by LoadFile (1 MiB).
const MaxDocumentSize = 1 << 20

var documentValidate = validator.New()

// Document is the YAML shape of a model file:
//
//	name: toy
//	sense: max
//	variables:
//	  - {name: x1}
//	  - {name: x2, sign: "+", type: int}
//	objective: "2*x1 + 3*x2"
//	constraints:
//	  - {name: cap, expr: "x1 + x2 <= 4"}
//
// When variables is omitted, variables are discovered in first-appearance
// order (objective first, then constraints) and default to continuous, >= 0.
type Document struct {
	Name        string               `yaml:"name"`
	Sense       string               `yaml:"sense" validate:"required,oneof=max min maximize minimize"`
	Variables   []VariableDocument   `yaml:"variables" validate:"omitempty,dive"`
	Objective   string               `yaml:"objective" validate:"required"`
	Constraints []ConstraintDocument `yaml:"constraints" validate:"dive"`
}

// VariableDocument declares one variable's restrictions.
type VariableDocument struct {
	Name string `yaml:"name" validate:"required"`
	Sign string `yaml:"sign" validate:"omitempty,oneof=+ - urs positive negative free unrestricted"`
	Type string `yaml:"type" validate:"omitempty,oneof=continuous int integer bin binary"`
}

// ConstraintDocument is one named constraint expression.
type ConstraintDocument struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr" validate:"required"`
}

// Load decodes and builds a formulation from YAML.
func Load(r io.Reader) (*Formulation, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	return doc.Build()
}

// LoadFile reads a YAML model from path. Files larger than MaxDocumentSize are rejected.
func LoadFile(path string) (*Formulation, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Size() > MaxDocumentSize {
		return nil, fmt.Errorf("model %s is %d bytes (max %d): %w", path, fi.Size(), MaxDocumentSize, ErrInvalidDocument)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Build validates the document's struct tags and converts it into a Formulation.
func (d *Document) Build() (*Formulation, error) {
	// 1. Struct-level validation
	if err := documentValidate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%s: %s: %w", verrs[0].Namespace(), verrs[0].Tag(), ErrInvalidDocument)
		}

		return nil, fmt.Errorf("%v: %w", err, ErrInvalidDocument)
	}
	sense, _ := ParseSense(d.Sense)

	// 2. Variables (declared or discovered)
	vars, err := d.variables()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(vars))
	for i := range vars {
		names[i] = vars[i].Name
	}

	// 3. Objective and constraints
	obj, err := ParseObjective(d.Objective, names)
	if err != nil {
		return nil, err
	}
	for i := range vars {
		vars[i].Objective = obj[i]
	}
	cons := make([]Constraint, 0, len(d.Constraints))
	for _, cd := range d.Constraints {
		c, err := ParseConstraint(cd.Name, cd.Expr, names)
		if err != nil {
			return nil, err
		}
		cons = append(cons, c)
	}

	return New(d.Name, sense, vars, cons)
}

func (d *Document) variables() ([]Variable, error) {
	if len(d.Variables) > 0 {
		vars := make([]Variable, len(d.Variables))
		for i, vd := range d.Variables {
			sign, ok := ParseSign(vd.Sign)
			if !ok {
				return nil, fmt.Errorf("variable %q sign %q: %w", vd.Name, vd.Sign, ErrInvalidDocument)
			}
			kind, ok := ParseIntRestriction(vd.Type)
			if !ok {
				return nil, fmt.Errorf("variable %q type %q: %w", vd.Name, vd.Type, ErrInvalidDocument)
			}
			vars[i] = Variable{Name: vd.Name, Sign: sign, Int: kind}
		}

		return vars, nil
	}

	var names []string
	seen := map[string]bool{}
	sources := append([]string{d.Objective}, exprs(d.Constraints)...)
	for _, src := range sources {
		ids, err := Identifiers(src)
		if err != nil {
			return nil, fmt.Errorf("expression %q: %w", src, err)
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				names = append(names, id)
			}
		}
	}
	vars := make([]Variable, len(names))
	for i, n := range names {
		vars[i] = Variable{Name: n}
	}

	return vars, nil
}

func exprs(cs []ConstraintDocument) []string {
	out := make([]string, len(cs))
	for i := range cs {
		out[i] = cs[i].Expr
	}

	return out
}
