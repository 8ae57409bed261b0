package emit

import (
	"strings"

	"cppts/internal/ir"
)

// renderNamespace emits nothing itself; every item gets its own segment
// with the namespace appended to the path.
func renderNamespace(r *Renderer, st State, n ir.Node) error {
	ns := n.(*ir.Namespace)
	inner := st.enter(ScopeNamespace, ns.Name)
	for _, item := range ns.Items {
		if err := r.Render(inner.into(st.Module.Segment()), item); err != nil {
			return err
		}
	}
	return nil
}

func renderDeclaration(r *Renderer, st State, n ir.Node) error {
	decl := n.(*ir.Declaration)
	for _, d := range decl.Declarators {
		head := r.declarationHead(st, decl, d)
		var lines []string
		if d.Init != nil {
			init, err := r.lines(st, d.Init)
			if err != nil {
				return err
			}
			lines = concat([]string{head}, " = ", init)
		} else {
			lines = []string{head}
		}
		st.Module.Append(st.Body, glue("", lines, ";")...)
	}
	return nil
}

func (r *Renderer) declarationHead(st State, decl *ir.Declaration, d ir.Declarator) string {
	return r.declarationKeyword(st, decl, d.Init != nil) + r.binding(d)
}

func (r *Renderer) declarationKeyword(st State, decl *ir.Declaration, initialized bool) string {
	if st.Scope == ScopeClass {
		kw := ""
		if decl.Static {
			kw += "static "
		}
		if decl.Const {
			kw += "readonly "
		}
		return kw
	}
	switch {
	case decl.Extern:
		return "declare let "
	case decl.Const && initialized:
		return "const "
	}
	return "let "
}

func (r *Renderer) binding(d ir.Declarator) string {
	if t := r.types.Map(d.Type); t != "" {
		return d.Name + ": " + t
	}
	return d.Name
}

// declarationList renders every declarator behind a single keyword, the
// form a for-loop header needs. const applies only when all are initialized.
func (r *Renderer) declarationList(st State, decl *ir.Declaration) (string, error) {
	initialized := true
	parts := make([]string, 0, len(decl.Declarators))
	for _, d := range decl.Declarators {
		part := r.binding(d)
		if d.Init == nil {
			initialized = false
		} else {
			init, err := r.lines(st, d.Init)
			if err != nil {
				return "", err
			}
			part += " = " + inline(init)
		}
		parts = append(parts, part)
	}
	return r.declarationKeyword(st, decl, initialized) + strings.Join(parts, ", "), nil
}

func (r *Renderer) parameters(st State, params []ir.Parameter) (string, error) {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		part := p.Name
		if t := r.types.Map(p.Type); t != "" {
			part += ": " + t
		}
		if p.Default != nil {
			def, err := r.lines(st, p.Default)
			if err != nil {
				return "", err
			}
			part += " = " + inline(def)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", "), nil
}

// renderFunction emits a function in its own segment, or a method when
// rendered inside a class. A method named like its class is the constructor.
func renderFunction(r *Renderer, st State, n ir.Node) error {
	fn := n.(*ir.FunctionDefinition)
	params, err := r.parameters(st, fn.Parameters)
	if err != nil {
		return err
	}
	ret := ""
	if t := r.types.Map(fn.ReturnType); t != "" {
		ret = ": " + t
	}

	var head string
	switch class := st.class(); {
	case class != "" && fn.Name == class:
		head = "constructor(" + params + ") {"
	case class != "":
		head = fn.Name + "(" + params + ")" + ret + " {"
		if fn.Static {
			head = "static " + head
		}
	default:
		head = "function " + fn.Name + "(" + params + ")" + ret + " {"
		st = st.into(st.Module.Segment())
	}
	return r.block(st.local(), []string{head}, fn.Body, "}")
}

func renderStruct(r *Renderer, st State, n ir.Node) error {
	def := n.(*ir.StructDefinition)
	head := "class " + def.Name
	if def.Base != "" {
		head += " extends " + r.types.Map(def.Base)
	}
	inner := st.into(st.Module.Segment()).enter(ScopeClass, def.Name)
	return r.block(inner, []string{head + " {"}, def.Members, "}")
}

func renderEnum(r *Renderer, st State, n ir.Node) error {
	def := n.(*ir.EnumDefinition)
	out := []string{"enum " + def.Name + " {"}
	for _, m := range def.Members {
		if m.Value == nil {
			out = append(out, indentUnit+m.Name+",")
			continue
		}
		value, err := r.lines(st, m.Value)
		if err != nil {
			return err
		}
		out = append(out, indent(glue(m.Name+" = ", value, ","), 1)...)
	}
	out = append(out, "}")
	st.Module.Append(st.Module.Segment(), out...)
	return nil
}

func renderTypeAlias(r *Renderer, st State, n ir.Node) error {
	alias := n.(*ir.TypeAlias)
	t := r.types.Map(alias.Type)
	if t == "" {
		t = "any"
	}
	st.Module.Append(st.Body, "type "+alias.Name+" = "+t+";")
	return nil
}

func renderBlock(r *Renderer, st State, n ir.Node) error {
	return r.block(st, []string{"{"}, n.(*ir.Block).Statements, "}")
}
