package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cram/internal/cli"
	"cram/internal/config"

	"github.com/cucumber/godog"
)

const mcqDeckCSV = `question,option_a,option_b,option_c,option_d,correct_answer,explanation
What is 2+2?,2,4,3,6,b,Basic arithmetic.
The Earth is flat,True,False,,,b,
`

const brokenDeckCSV = mcqDeckCSV + "missing options,,,,,,\n"

const vocabDeckCSV = `term,definition,ease,repetitions,last_review
heap,a partially ordered tree,,,
stack,last in first out,,,
`

const rawQuestionsCSV = `What is the capital of France?,Paris
The sky is blue,1
Sorting a linked list in place,merge sort
`

type featureState struct {
	workspace   string
	previousWD  string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
	initialized bool
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a workspace with the practice deck "([^"]+)"$`, state.aWorkspaceWithPracticeDeck)
	ctx.Step(`^a workspace with a malformed practice deck "([^"]+)"$`, state.aWorkspaceWithMalformedDeck)
	ctx.Step(`^a workspace with the vocabulary deck "([^"]+)"$`, state.aWorkspaceWithVocabularyDeck)
	ctx.Step(`^a workspace with the raw question file "([^"]+)"$`, state.aWorkspaceWithRawFile)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the templates directory contains "([^"]+)"$`, state.theTemplatesDirContains)
}

func (s *featureState) reset() {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.initialized = false
}

func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	if s.workspace != "" {
		_ = os.RemoveAll(s.workspace)
	}
	s.workspace = ""
	s.previousWD = ""
}

// initWorkspace creates a temp root with a minimal config and moves into it
// so commands discover the workspace the way a user's shell session would.
func (s *featureState) initWorkspace() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "cram-feature-*")
	if err != nil {
		return fmt.Errorf("create temp workspace: %w", err)
	}
	// Resolve symlinks so paths printed by commands match the cwd.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	s.workspace = dir

	configPath := config.ConfigPath(dir)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte("ui: plain\n"), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

func (s *featureState) writeDeck(name, content string) error {
	if err := s.initWorkspace(); err != nil {
		return err
	}
	decksDir := filepath.Join(s.workspace, "practice_decks")
	if err := os.MkdirAll(decksDir, 0o755); err != nil {
		return fmt.Errorf("create decks dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(decksDir, name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write deck %s: %w", name, err)
	}
	return nil
}

func (s *featureState) aWorkspaceWithPracticeDeck(name string) error {
	return s.writeDeck(name, mcqDeckCSV)
}

func (s *featureState) aWorkspaceWithMalformedDeck(name string) error {
	return s.writeDeck(name, brokenDeckCSV)
}

func (s *featureState) aWorkspaceWithVocabularyDeck(name string) error {
	return s.writeDeck(name, vocabDeckCSV)
}

func (s *featureState) aWorkspaceWithRawFile(name string) error {
	if err := s.initWorkspace(); err != nil {
		return err
	}
	path := filepath.Join(s.workspace, name)
	if err := os.WriteFile(path, []byte(rawQuestionsCSV), 0o644); err != nil {
		return fmt.Errorf("write raw file %s: %w", name, err)
	}
	return nil
}

func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "cram" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	output := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			command := strings.TrimSpace(cell.Value)
			if command == "" {
				continue
			}
			if !strings.Contains(output, command) {
				return fmt.Errorf("expected command %q in output", command)
			}
		}
	}
	return nil
}

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("expected exit code 0, got %d (stderr: %q)", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("expected non-zero exit code")
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected %q in output, got %q", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theTemplatesDirContains(name string) error {
	path := filepath.Join(s.workspace, "vocabulary_template", name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected template file %s: %w", name, err)
	}
	return nil
}
