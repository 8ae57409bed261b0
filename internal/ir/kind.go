package ir

// Kind enumerates normalized node variants.
type Kind uint8

const (
	KindNamespace Kind = iota
	KindDeclaration
	KindFunctionDefinition
	KindStructDefinition
	KindEnumDefinition
	KindTypeAlias
	KindBlock
	KindIfStatement
	KindForStatement
	KindForRangeStatement
	KindWhileStatement
	KindDoStatement
	KindSwitchStatement
	KindCaseStatement
	KindReturnStatement
	KindThrowStatement
	KindBreakStatement
	KindContinueStatement
	KindBinaryExpression
	KindUnaryExpression
	KindUpdateExpression
	KindConditionalExpression
	KindAssignmentExpression
	KindCallExpression
	KindNewExpression
	KindPath
	KindIndexStep
	KindReference
	KindNumberLiteral
	KindBooleanLiteral
	KindStringLiteral
	KindUserDefinedLiteral
	KindNullLiteral
	KindParenthesizedExpression
	KindArrayLiteral

	// KindCount is the number of variants; keep it last.
	KindCount
)

var kindNames = [KindCount]string{
	KindNamespace:               "Namespace",
	KindDeclaration:             "Declaration",
	KindFunctionDefinition:      "FunctionDefinition",
	KindStructDefinition:        "StructDefinition",
	KindEnumDefinition:          "EnumDefinition",
	KindTypeAlias:               "TypeAlias",
	KindBlock:                   "Block",
	KindIfStatement:             "IfStatement",
	KindForStatement:            "ForStatement",
	KindForRangeStatement:       "ForRangeStatement",
	KindWhileStatement:          "WhileStatement",
	KindDoStatement:             "DoStatement",
	KindSwitchStatement:         "SwitchStatement",
	KindCaseStatement:           "CaseStatement",
	KindReturnStatement:         "ReturnStatement",
	KindThrowStatement:          "ThrowStatement",
	KindBreakStatement:          "BreakStatement",
	KindContinueStatement:       "ContinueStatement",
	KindBinaryExpression:        "BinaryExpression",
	KindUnaryExpression:         "UnaryExpression",
	KindUpdateExpression:        "UpdateExpression",
	KindConditionalExpression:   "ConditionalExpression",
	KindAssignmentExpression:    "AssignmentExpression",
	KindCallExpression:          "CallExpression",
	KindNewExpression:           "NewExpression",
	KindPath:                    "Path",
	KindIndexStep:               "IndexStep",
	KindReference:               "Reference",
	KindNumberLiteral:           "NumberLiteral",
	KindBooleanLiteral:          "BooleanLiteral",
	KindStringLiteral:           "StringLiteral",
	KindUserDefinedLiteral:      "UserDefinedLiteral",
	KindNullLiteral:             "NullLiteral",
	KindParenthesizedExpression: "ParenthesizedExpression",
	KindArrayLiteral:            "ArrayLiteral",
}

// String returns the variant name.
func (k Kind) String() string {
	if k < KindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// AllKinds lists every variant in declaration order.
func AllKinds() []Kind {
	out := make([]Kind, 0, KindCount)
	for k := Kind(0); k < KindCount; k++ {
		out = append(out, k)
	}
	return out
}

// IsExpression reports whether nodes of this kind are expressions, i.e. they
// need a terminating semicolon when they appear in statement position.
func (k Kind) IsExpression() bool {
	switch k {
	case KindBinaryExpression, KindUnaryExpression, KindUpdateExpression,
		KindConditionalExpression, KindAssignmentExpression, KindCallExpression,
		KindNewExpression, KindPath, KindReference, KindNumberLiteral, KindBooleanLiteral,
		KindStringLiteral, KindUserDefinedLiteral, KindNullLiteral,
		KindParenthesizedExpression, KindArrayLiteral:
		return true
	}
	return false
}
