package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Дерево токенов
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynMismatchedClose   Code = 2003

	// Печать
	FmtInfo            Code = 3000
	FmtNeedsFormatting Code = 3001
	FmtInternal        Code = 3002
	FmtNotIdempotent   Code = 3003
	FmtInertOption     Code = 3004
	FmtVerbatimSegment Code = 3005

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Конфигурация
	CfgInfo         Code = 5000
	CfgInvalidValue Code = 5001
	CfgParseError   Code = 5002
	CfgUnknownKey   Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynMismatchedClose:          "Mismatched closing delimiter",
	FmtInfo:                     "Formatter information",
	FmtNeedsFormatting:          "File is not formatted",
	FmtInternal:                 "Internal formatter error",
	FmtNotIdempotent:            "Formatting is not idempotent",
	FmtInertOption:              "Option is accepted but has no effect",
	FmtVerbatimSegment:          "Segment kept verbatim",
	IOLoadFileError:             "I/O load file error",
	IOWriteFileError:            "I/O write file error",
	CfgInfo:                     "Configuration information",
	CfgInvalidValue:             "Invalid option value",
	CfgParseError:               "Malformed configuration file",
	CfgUnknownKey:               "Unknown configuration key",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
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
