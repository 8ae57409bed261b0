package normalize

import (
	"slices"

	"cppts/internal/ir"
)

var produced = []ir.Kind{
	ir.KindNamespace,
	ir.KindDeclaration,
	ir.KindFunctionDefinition,
	ir.KindStructDefinition,
	ir.KindEnumDefinition,
	ir.KindTypeAlias,
	ir.KindBlock,
	ir.KindIfStatement,
	ir.KindForStatement,
	ir.KindForRangeStatement,
	ir.KindWhileStatement,
	ir.KindDoStatement,
	ir.KindSwitchStatement,
	ir.KindCaseStatement,
	ir.KindReturnStatement,
	ir.KindThrowStatement,
	ir.KindBreakStatement,
	ir.KindContinueStatement,
	ir.KindBinaryExpression,
	ir.KindUnaryExpression,
	ir.KindUpdateExpression,
	ir.KindConditionalExpression,
	ir.KindAssignmentExpression,
	ir.KindCallExpression,
	ir.KindNewExpression,
	ir.KindPath,
	ir.KindIndexStep,
	ir.KindReference,
	ir.KindNumberLiteral,
	ir.KindBooleanLiteral,
	ir.KindStringLiteral,
	ir.KindUserDefinedLiteral,
	ir.KindNullLiteral,
	ir.KindParenthesizedExpression,
	ir.KindArrayLiteral,
}

// Kinds lists every node kind File can produce.
func Kinds() []ir.Kind {
	return slices.Clone(produced)
}
