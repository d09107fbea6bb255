package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a byte sequence that matched no token category.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal (42, 0x1F, 7u, 3i).
	IntLit
	// FloatLit represents a floating point literal (1.0, .5, 1e3, 0x1p4, 2.0h).
	FloatLit

	KwAlias       // alias
	KwBreak       // break
	KwCase        // case
	KwConst       // const
	KwConstAssert // const_assert
	KwContinue    // continue
	KwContinuing  // continuing
	KwDefault     // default
	KwDiagnostic  // diagnostic
	KwDiscard     // discard
	KwElse        // else
	KwEnable      // enable
	KwFalse       // false
	KwFn          // fn
	KwFor         // for
	KwIf          // if
	KwLet         // let
	KwLoop        // loop
	KwOverride    // override
	KwRequires    // requires
	KwReturn      // return
	KwStruct      // struct
	KwSwitch      // switch
	KwTrue        // true
	KwVar         // var
	KwWhile       // while

	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	Bang          // !
	Assign        // =
	Lt            // <
	Gt            // >
	Dot           // .
	Comma         // ,
	Colon         // :
	Semicolon     // ;
	At            // @
	Underscore    // _
	Arrow         // ->
	PlusPlus      // ++
	MinusMinus    // --
	EqEq          // ==
	BangEq        // !=
	LtEq          // <=
	GtEq          // >=
	AndAnd        // &&
	OrOr          // ||
	Shl           // <<
	Shr           // >>
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]

	numKinds
)

// NumKinds is the number of token kinds; every Kind is below it.
const NumKinds = int(numKinds)

var kindNames = [numKinds]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Ident:    "Ident",
	IntLit:   "IntLit",
	FloatLit: "FloatLit",

	KwAlias:       "alias",
	KwBreak:       "break",
	KwCase:        "case",
	KwConst:       "const",
	KwConstAssert: "const_assert",
	KwContinue:    "continue",
	KwContinuing:  "continuing",
	KwDefault:     "default",
	KwDiagnostic:  "diagnostic",
	KwDiscard:     "discard",
	KwElse:        "else",
	KwEnable:      "enable",
	KwFalse:       "false",
	KwFn:          "fn",
	KwFor:         "for",
	KwIf:          "if",
	KwLet:         "let",
	KwLoop:        "loop",
	KwOverride:    "override",
	KwRequires:    "requires",
	KwReturn:      "return",
	KwStruct:      "struct",
	KwSwitch:      "switch",
	KwTrue:        "true",
	KwVar:         "var",
	KwWhile:       "while",

	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Bang:          "!",
	Assign:        "=",
	Lt:            "<",
	Gt:            ">",
	Dot:           ".",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
	At:            "@",
	Underscore:    "_",
	Arrow:         "->",
	PlusPlus:      "++",
	MinusMinus:    "--",
	EqEq:          "==",
	BangEq:        "!=",
	LtEq:          "<=",
	GtEq:          ">=",
	AndAnd:        "&&",
	OrOr:          "||",
	Shl:           "<<",
	Shr:           ">>",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
}

// String returns the keyword or operator spelling, or the category name for
// identifiers, literals, EOF and Invalid.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Quoted renders k the way diagnostics mention it: fixed spellings in quotes,
// categories by description.
func (k Kind) Quoted() string {
	switch k {
	case Invalid:
		return "invalid token"
	case EOF:
		return "<EOF>"
	case Ident:
		return "identifier"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	default:
		return "'" + k.String() + "'"
	}
}

// IsAssignOp reports whether k is '=' or a compound assignment operator.
func (k Kind) IsAssignOp() bool {
	switch k {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}
