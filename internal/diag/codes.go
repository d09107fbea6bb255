package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003
	LexIdentNotNFC              Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectDeclaration  Code = 2002
	SynExpectStatement    Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectType         Code = 2005
	SynExpectIdentifier   Code = 2006
	SynExpectSemicolon    Code = 2007
	SynUnclosedDelimiter  Code = 2008
	SynTrailingInput      Code = 2009
	SynDirectiveAfterDecl Code = 2010
	SynEmptyStruct        Code = 2011
	SynTooDeep            Code = 2012
	SynTooManyErrors      Code = 2099

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexIdentNotNFC:              "Identifier is not in Unicode NFC form",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectDeclaration:        "Expected declaration",
	SynExpectStatement:          "Expected statement",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected type",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectSemicolon:          "Expected semicolon",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynTrailingInput:            "Unexpected input after end of translation unit",
	SynDirectiveAfterDecl:       "Directive after declaration",
	SynEmptyStruct:              "Structure without members",
	SynTooDeep:                  "Nesting too deep",
	SynTooManyErrors:            "Too many errors",
	IOLoadFileError:             "Failed to load file",
	IOCacheError:                "Tree cache failure",
}

// ID returns the stable identifier, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
