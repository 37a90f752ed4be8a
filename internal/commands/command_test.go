package commands

import (
	"errors"
	"testing"
)

func TestParseAdd(t *testing.T) {
	cmd, err := Parse(":add buy milk")
	if err != nil {
		t.Fatalf("parse add failed: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil || cmd.Add.Title != "buy milk" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestParseAddWithoutTitle(t *testing.T) {
	_, err := Parse("add")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseSearchAllowsEmptyQuery(t *testing.T) {
	cmd, err := Parse("search")
	if err != nil {
		t.Fatalf("parse search failed: %v", err)
	}
	if cmd.Search == nil || cmd.Search.Query != "" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	cmd, err = Parse("search tax report")
	if err != nil {
		t.Fatalf("parse search failed: %v", err)
	}
	if cmd.Search.Query != "tax report" {
		t.Fatalf("query got %q", cmd.Search.Query)
	}
}

func TestParseFilterAxes(t *testing.T) {
	cmd, err := Parse("filter status:Done category:Work urgency:Today from:2024-01-01 to:2024-01-31")
	if err != nil {
		t.Fatalf("parse filter failed: %v", err)
	}
	f := cmd.Filter
	if f == nil {
		t.Fatal("expected filter args")
	}
	if len(f.Statuses) != 1 || f.Statuses[0] != "Done" {
		t.Fatalf("statuses got %v", f.Statuses)
	}
	if len(f.Categories) != 1 || f.Categories[0] != "Work" {
		t.Fatalf("categories got %v", f.Categories)
	}
	if len(f.Urgencies) != 1 || f.Urgencies[0] != "Today" {
		t.Fatalf("urgencies got %v", f.Urgencies)
	}
	if f.From != "2024-01-01" || f.To != "2024-01-31" {
		t.Fatalf("range got %q..%q", f.From, f.To)
	}
}

func TestParseFilterClear(t *testing.T) {
	cmd, err := Parse("filter clear")
	if err != nil {
		t.Fatalf("parse filter clear failed: %v", err)
	}
	if cmd.Filter == nil || !cmd.Filter.Clear {
		t.Fatalf("expected clear flag: %+v", cmd)
	}
}

func TestParseFilterRejectsUnknownAxis(t *testing.T) {
	_, err := Parse("filter priority:High")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}

func TestParseExport(t *testing.T) {
	cmd, err := Parse("export csv")
	if err != nil {
		t.Fatalf("parse export failed: %v", err)
	}
	if cmd.Export == nil || cmd.Export.Format != "csv" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if _, err := Parse("export xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseTheme(t *testing.T) {
	cmd, err := Parse("theme light")
	if err != nil {
		t.Fatalf("parse theme failed: %v", err)
	}
	if cmd.Theme == nil || cmd.Theme.Name != "light" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if _, err := Parse("theme sepia"); err == nil {
		t.Fatal("expected error for unsupported theme")
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("snooze everything")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", ":"} {
		_, err := Parse(input)
		var cmdErr *CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
			t.Fatalf("input %q: expected empty_input, got %v", input, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("clear")
	if err != nil {
		t.Fatalf("parse clear failed: %v", err)
	}
	called := false
	result, err := Execute(cmd, Handlers{
		Clear: func() (Result, error) {
			called = true
			return Result{Message: "cleared"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || result.Message != "cleared" {
		t.Fatalf("unexpected result: %+v called=%v", result, called)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("export json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got %v", err)
	}
}
