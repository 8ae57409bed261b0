package ir

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Dump renders nodes as a YAML document with stable key order.
func Dump(nodes []Node) ([]byte, error) {
	doc := seq()
	for _, n := range nodes {
		doc.Content = append(doc.Content, toYAML(n))
	}
	return yaml.Marshal(doc)
}

type field struct {
	key   string
	value *yaml.Node
}

func toYAML(n Node) *yaml.Node {
	if n == nil {
		return scalar("null", "!!null")
	}
	fields := []field{{"kind", str(n.Kind().String())}}
	switch v := n.(type) {
	case *Namespace:
		fields = append(fields, field{"name", str(v.Name)}, field{"items", list(v.Items)})
	case *Declaration:
		ds := seq()
		for _, d := range v.Declarators {
			ds.Content = append(ds.Content, mapping([]field{
				{"name", str(d.Name)}, {"type", str(d.Type)}, {"init", toYAML(d.Init)},
			}))
		}
		fields = append(fields,
			field{"const", boolean(v.Const)}, field{"static", boolean(v.Static)},
			field{"extern", boolean(v.Extern)}, field{"declarators", ds})
	case *FunctionDefinition:
		ps := seq()
		for _, p := range v.Parameters {
			ps.Content = append(ps.Content, mapping([]field{
				{"name", str(p.Name)}, {"type", str(p.Type)}, {"default", toYAML(p.Default)},
			}))
		}
		fields = append(fields, field{"name", str(v.Name)}, field{"parameters", ps},
			field{"returnType", str(v.ReturnType)}, field{"body", list(v.Body)})
	case *StructDefinition:
		fields = append(fields, field{"name", str(v.Name)}, field{"base", str(v.Base)}, field{"members", list(v.Members)})
	case *EnumDefinition:
		ms := seq()
		for _, m := range v.Members {
			ms.Content = append(ms.Content, mapping([]field{{"name", str(m.Name)}, {"value", toYAML(m.Value)}}))
		}
		fields = append(fields, field{"name", str(v.Name)}, field{"members", ms})
	case *TypeAlias:
		fields = append(fields, field{"name", str(v.Name)}, field{"type", str(v.Type)})
	case *Block:
		fields = append(fields, field{"statements", list(v.Statements)})
	case *IfStatement:
		cs := seq()
		for _, c := range v.Choices {
			cs.Content = append(cs.Content, mapping([]field{
				{"condition", toYAML(c.Condition)}, {"statements", list(c.Statements)},
			}))
		}
		fields = append(fields, field{"choices", cs})
	case *ForStatement:
		fields = append(fields, field{"init", toYAML(v.Init)}, field{"test", toYAML(v.Test)},
			field{"update", toYAML(v.Update)}, field{"body", list(v.Body)})
	case *ForRangeStatement:
		fields = append(fields, field{"name", str(v.Name)}, field{"type", str(v.Type)},
			field{"range", toYAML(v.Range)}, field{"body", list(v.Body)})
	case *WhileStatement:
		fields = append(fields, field{"condition", toYAML(v.Condition)}, field{"statements", list(v.Statements)})
	case *DoStatement:
		fields = append(fields, field{"condition", toYAML(v.Condition)}, field{"statements", list(v.Statements)})
	case *SwitchStatement:
		fields = append(fields, field{"condition", toYAML(v.Condition)}, field{"statements", list(v.Statements)})
	case *CaseStatement:
		fields = append(fields, field{"isDefault", boolean(v.IsDefault)}, field{"test", toYAML(v.Test)},
			field{"statements", list(v.Statements)})
	case *ReturnStatement:
		fields = append(fields, field{"statement", toYAML(v.Statement)})
	case *ThrowStatement:
		fields = append(fields, field{"expression", toYAML(v.Expression)})
	case *BreakStatement, *ContinueStatement, *NullLiteral:
	case *BinaryExpression:
		fields = append(fields, field{"operator", str(v.Operator)}, field{"left", toYAML(v.Left)}, field{"right", toYAML(v.Right)})
	case *UnaryExpression:
		fields = append(fields, field{"operator", str(v.Operator)}, field{"expression", toYAML(v.Expression)})
	case *UpdateExpression:
		fields = append(fields, field{"operator", str(v.Operator)}, field{"expression", toYAML(v.Expression)},
			field{"isPostfix", boolean(v.IsPostfix)})
	case *ConditionalExpression:
		fields = append(fields, field{"test", toYAML(v.Test)}, field{"success", toYAML(v.Success)}, field{"failure", toYAML(v.Failure)})
	case *AssignmentExpression:
		fields = append(fields, field{"left", toYAML(v.Left)}, field{"operator", str(v.Operator)}, field{"right", toYAML(v.Right)})
	case *CallExpression:
		fields = append(fields, field{"object", toYAML(v.Object)}, field{"args", list(v.Args)})
	case *NewExpression:
		fields = append(fields, field{"type", str(v.Type)}, field{"args", list(v.Args)})
	case *Path:
		fields = append(fields, field{"steps", list(v.Steps)})
	case *IndexStep:
		fields = append(fields, field{"expression", toYAML(v.Expression)})
	case *Reference:
		fields = append(fields, field{"name", str(v.Name)})
	case *NumberLiteral:
		fields = append(fields, field{"value", str(v.Value)})
	case *BooleanLiteral:
		fields = append(fields, field{"value", boolean(v.Value)})
	case *StringLiteral:
		fields = append(fields, field{"value", str(v.Value)})
	case *UserDefinedLiteral:
		fields = append(fields, field{"text", str(v.Text)})
	case *ParenthesizedExpression:
		fields = append(fields, field{"value", toYAML(v.Value)})
	case *ArrayLiteral:
		fields = append(fields, field{"elements", list(v.Elements)})
	}
	return mapping(fields)
}

func list(nodes []Node) *yaml.Node {
	out := seq()
	for _, n := range nodes {
		out.Content = append(out.Content, toYAML(n))
	}
	return out
}

func mapping(fields []field) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		m.Content = append(m.Content, str(f.key), f.value)
	}
	return m
}

func seq() *yaml.Node { return &yaml.Node{Kind: yaml.SequenceNode} }

func str(s string) *yaml.Node { return scalar(s, "!!str") }

func boolean(b bool) *yaml.Node { return scalar(strconv.FormatBool(b), "!!bool") }

func scalar(value, tag string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
