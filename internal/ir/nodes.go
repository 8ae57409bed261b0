package ir

// Node is the closed set of normalized variants. Only types in this package
// implement it. Each node exclusively owns its children and is never mutated
// after the normalizer returns it.
type Node interface {
	Kind() Kind
	node()
}

// Declarator is one name introduced by a Declaration.
type Declarator struct {
	Name string
	Type string // source type text, empty when inferred
	Init Node   // nil when absent
}

// Parameter is one function parameter.
type Parameter struct {
	Name    string
	Type    string
	Default Node
}

// Choice is one arm of an if/else chain. Condition is nil only for a trailing else.
type Choice struct {
	Condition  Node
	Statements []Node
}

// EnumMember is one enumerator.
type EnumMember struct {
	Name  string
	Value Node
}

type (
	Namespace struct {
		Name  string // empty for anonymous namespaces
		Items []Node
	}

	Declaration struct {
		Declarators []Declarator
		Const       bool
		Static      bool
		Extern      bool
	}

	FunctionDefinition struct {
		Name       string
		Parameters []Parameter
		ReturnType string // empty for constructors
		Body       []Node
		Static     bool
	}

	StructDefinition struct {
		Name    string
		Base    string
		Members []Node
	}

	EnumDefinition struct {
		Name    string
		Members []EnumMember
	}

	TypeAlias struct {
		Name string
		Type string
	}

	Block struct {
		Statements []Node
	}

	IfStatement struct {
		Choices []Choice
	}

	ForStatement struct {
		Init   Node
		Test   Node
		Update Node
		Body   []Node
	}

	ForRangeStatement struct {
		Name  string
		Type  string
		Range Node
		Body  []Node
	}

	WhileStatement struct {
		Condition  Node
		Statements []Node
	}

	DoStatement struct {
		Condition  Node
		Statements []Node
	}

	SwitchStatement struct {
		Condition  Node
		Statements []Node
	}

	CaseStatement struct {
		IsDefault  bool
		Test       Node
		Statements []Node
	}

	ReturnStatement struct {
		Statement Node
	}

	ThrowStatement struct {
		Expression Node
	}

	BreakStatement    struct{}
	ContinueStatement struct{}

	BinaryExpression struct {
		Operator string
		Left     Node
		Right    Node
	}

	UnaryExpression struct {
		Operator   string
		Expression Node
	}

	UpdateExpression struct {
		Operator   string
		Expression Node
		IsPostfix  bool
	}

	ConditionalExpression struct {
		Test    Node
		Success Node
		Failure Node
	}

	AssignmentExpression struct {
		Left     Node
		Operator string
		Right    Node
	}

	CallExpression struct {
		Object Node
		Args   []Node
	}

	// NewExpression constructs a value of the C++ type Type from Args, as in
	// the declarator "P p(1, 2)".
	NewExpression struct {
		Type string
		Args []Node
	}

	// Path is a flattened member/index chain. Steps[0] is the base expression;
	// every later step is a *Reference (field access) or an *IndexStep.
	Path struct {
		Steps []Node
	}

	IndexStep struct {
		Expression Node
	}

	Reference struct {
		Name string
	}

	NumberLiteral struct {
		Value string
	}

	BooleanLiteral struct {
		Value bool
	}

	StringLiteral struct {
		Value string
	}

	UserDefinedLiteral struct {
		Text string
	}

	NullLiteral struct{}

	ParenthesizedExpression struct {
		Value Node
	}

	ArrayLiteral struct {
		Elements []Node
	}
)

func (*Namespace) Kind() Kind               { return KindNamespace }
func (*Declaration) Kind() Kind             { return KindDeclaration }
func (*FunctionDefinition) Kind() Kind      { return KindFunctionDefinition }
func (*StructDefinition) Kind() Kind        { return KindStructDefinition }
func (*EnumDefinition) Kind() Kind          { return KindEnumDefinition }
func (*TypeAlias) Kind() Kind               { return KindTypeAlias }
func (*Block) Kind() Kind                   { return KindBlock }
func (*IfStatement) Kind() Kind             { return KindIfStatement }
func (*ForStatement) Kind() Kind            { return KindForStatement }
func (*ForRangeStatement) Kind() Kind       { return KindForRangeStatement }
func (*WhileStatement) Kind() Kind          { return KindWhileStatement }
func (*DoStatement) Kind() Kind             { return KindDoStatement }
func (*SwitchStatement) Kind() Kind         { return KindSwitchStatement }
func (*CaseStatement) Kind() Kind           { return KindCaseStatement }
func (*ReturnStatement) Kind() Kind         { return KindReturnStatement }
func (*ThrowStatement) Kind() Kind          { return KindThrowStatement }
func (*BreakStatement) Kind() Kind          { return KindBreakStatement }
func (*ContinueStatement) Kind() Kind       { return KindContinueStatement }
func (*BinaryExpression) Kind() Kind        { return KindBinaryExpression }
func (*UnaryExpression) Kind() Kind         { return KindUnaryExpression }
func (*UpdateExpression) Kind() Kind        { return KindUpdateExpression }
func (*ConditionalExpression) Kind() Kind   { return KindConditionalExpression }
func (*AssignmentExpression) Kind() Kind    { return KindAssignmentExpression }
func (*CallExpression) Kind() Kind          { return KindCallExpression }
func (*NewExpression) Kind() Kind           { return KindNewExpression }
func (*Path) Kind() Kind                    { return KindPath }
func (*IndexStep) Kind() Kind               { return KindIndexStep }
func (*Reference) Kind() Kind               { return KindReference }
func (*NumberLiteral) Kind() Kind           { return KindNumberLiteral }
func (*BooleanLiteral) Kind() Kind          { return KindBooleanLiteral }
func (*StringLiteral) Kind() Kind           { return KindStringLiteral }
func (*UserDefinedLiteral) Kind() Kind      { return KindUserDefinedLiteral }
func (*NullLiteral) Kind() Kind             { return KindNullLiteral }
func (*ParenthesizedExpression) Kind() Kind { return KindParenthesizedExpression }
func (*ArrayLiteral) Kind() Kind            { return KindArrayLiteral }

func (*Namespace) node()               {}
func (*Declaration) node()             {}
func (*FunctionDefinition) node()      {}
func (*StructDefinition) node()        {}
func (*EnumDefinition) node()          {}
func (*TypeAlias) node()               {}
func (*Block) node()                   {}
func (*IfStatement) node()             {}
func (*ForStatement) node()            {}
func (*ForRangeStatement) node()       {}
func (*WhileStatement) node()          {}
func (*DoStatement) node()             {}
func (*SwitchStatement) node()         {}
func (*CaseStatement) node()           {}
func (*ReturnStatement) node()         {}
func (*ThrowStatement) node()          {}
func (*BreakStatement) node()          {}
func (*ContinueStatement) node()       {}
func (*BinaryExpression) node()        {}
func (*UnaryExpression) node()         {}
func (*UpdateExpression) node()        {}
func (*ConditionalExpression) node()   {}
func (*AssignmentExpression) node()    {}
func (*CallExpression) node()          {}
func (*NewExpression) node()           {}
func (*Path) node()                    {}
func (*IndexStep) node()               {}
func (*Reference) node()               {}
func (*NumberLiteral) node()           {}
func (*BooleanLiteral) node()          {}
func (*StringLiteral) node()           {}
func (*UserDefinedLiteral) node()      {}
func (*NullLiteral) node()             {}
func (*ParenthesizedExpression) node() {}
func (*ArrayLiteral) node()            {}
