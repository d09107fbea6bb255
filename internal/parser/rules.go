package parser

// Rule names as they appear in the tree.
const (
	RuleTranslationUnit     = "translation_unit"
	RuleEnableDirective     = "enable_directive"
	RuleRequiresDirective   = "requires_directive"
	RuleDiagnosticDirective = "diagnostic_directive"
	RuleDiagnosticControl   = "diagnostic_control"
	RuleAttribute           = "attribute"
	RuleFunctionDecl        = "function_decl"
	RuleParamList           = "param_list"
	RuleParam               = "param"
	RuleStructDecl          = "struct_decl"
	RuleStructMember        = "struct_member"
	RuleGlobalVariableDecl  = "global_variable_decl"
	RuleVariableDecl        = "variable_decl"
	RuleVariableQualifier   = "variable_qualifier"
	RuleOptionallyTypedID   = "optionally_typed_ident"
	RuleOverrideDecl        = "override_decl"
	RuleGlobalConstantDecl  = "global_constant_decl"
	RuleTypeAliasDecl       = "type_alias_decl"
	RuleConstAssert         = "const_assert_statement"
	RuleTypeDecl            = "type_decl"
	RuleTemplateList        = "template_list"

	RuleBlock         = "block"
	RuleReturn        = "return_statement"
	RuleIf            = "if_statement"
	RuleSwitch        = "switch_statement"
	RuleCaseClause    = "case_clause"
	RuleDefaultClause = "default_clause"
	RuleLoop          = "loop_statement"
	RuleContinuing    = "continuing_statement"
	RuleFor           = "for_statement"
	RuleWhile         = "while_statement"
	RuleBreak         = "break_statement"
	RuleBreakIf       = "break_if_statement"
	RuleContinue      = "continue_statement"
	RuleDiscard       = "discard_statement"
	RuleVariableStmt  = "variable_statement"
	RuleFuncCallStmt  = "func_call_statement"
	RuleAssignment    = "assignment_statement"
	RuleIncrement     = "increment_statement"
	RuleDecrement     = "decrement_statement"

	RuleOr             = "short_circuit_or_expression"
	RuleAnd            = "short_circuit_and_expression"
	RuleBitwise        = "bitwise_expression"
	RuleRelational     = "relational_expression"
	RuleShift          = "shift_expression"
	RuleAdditive       = "additive_expression"
	RuleMultiplicative = "multiplicative_expression"
	RuleUnary          = "unary_expression"
	RuleMember         = "member_expression"
	RuleIndex          = "index_expression"
	RuleCall           = "call_expression"
	RuleArgumentList   = "argument_list"
	RuleParen          = "paren_expression"
)
