package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeSearch Type = "search"
	TypeFilter Type = "filter"
	TypeClear  Type = "clear"
	TypeExport Type = "export"
	TypeTheme  Type = "theme"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title string
}

// SearchArgs carries the free-text query; an empty query clears the search.
type SearchArgs struct {
	Query string
}

// FilterArgs carries axis:value selections. Clear resets every axis.
type FilterArgs struct {
	Clear      bool
	Statuses   []string
	Categories []string
	Urgencies  []string
	From       string
	To         string
}

type ExportArgs struct {
	Format string
}

type ThemeArgs struct {
	Name string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Search *SearchArgs
	Filter *FilterArgs
	Export *ExportArgs
	Theme  *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, ":"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: strings.Join(args, " ")}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeExport:
		return parseExport(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "clear") {
		return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Clear: true}}, nil
	}
	out := FilterArgs{}
	for _, arg := range args {
		axis, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("filter expects axis:value, got %q", arg)}
		}
		switch strings.ToLower(axis) {
		case "status":
			out.Statuses = append(out.Statuses, value)
		case "category":
			out.Categories = append(out.Categories, value)
		case "urgency":
			out.Urgencies = append(out.Urgencies, value)
		case "from":
			out.From = value
		case "to":
			out.To = value
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter axis: %s", axis)}
		}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &out}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a format (csv or json)"}
	}
	format := strings.ToLower(args[0])
	if format != "csv" && format != "json" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported export format: %s", format)}
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Format: format}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "theme requires light or dark"}
	}
	name := strings.ToLower(args[0])
	if name != "light" && name != "dark" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unsupported theme: %s", name)}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Name: name}}, nil
}
