// Package snake asks questions on a terminal.
package snake

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// Prompter runs promptui prompts against the given streams. Nil streams
// use the terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func (p Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopCloser{p.Out}
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} : ",
	Valid:   "{{ . | green }} : ",
	Invalid: "{{ . | red }} : ",
	Success: "{{ . | bold }} : ",
}

// Clear is the answer that empties a prompted value instead of keeping
// its default.
const Clear = "-"

// Answer resolves a raw prompt result: empty keeps def, Clear empties.
func Answer(result, def string) string {
	switch strings.TrimSpace(result) {
	case "":
		return def
	case Clear:
		return ""
	}
	return result
}

// String asks for a line of text. An empty answer returns def, and Clear
// returns an empty string.
func (p Prompter) String(label, def string, validate func(string) error) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s [%s, %s to clear]", label, def, Clear)
	}
	result, err := p.ask(label, validate, true)
	if err != nil {
		return "", err
	}
	return Answer(result, def), nil
}

func (p Prompter) ask(label string, validate func(string) error, clearable bool) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate: func(input string) error {
			if input == "" || (clearable && input == Clear) || validate == nil {
				return nil
			}
			return validate(input)
		},
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}
	return prompt.Run()
}

// Int asks for a number within [lo, hi].
func (p Prompter) Int(label string, def, lo, hi int) (int, error) {
	validate := func(input string) error {
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errors.New("not a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
	result, err := p.ask(fmt.Sprintf("%s [%d]", label, def), validate, false)
	if err != nil {
		return 0, err
	}
	if result == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(result))
}

// Bool asks a yes/no question.
func (p Prompter) Bool(label string, def bool) (bool, error) {
	validInput := "y/[n]"
	if def {
		validInput = "[y]/n"
	}
	validate := func(input string) error {
		_, err := ParseBool(input)
		return err
	}
	result, err := p.ask(fmt.Sprintf("%s %s", label, validInput), validate, false)
	if err != nil {
		return false, err
	}
	if result == "" {
		return def, nil
	}
	return ParseBool(result)
}

// Select asks to pick one of choices and returns its index.
func (p Prompter) Select(label string, choices []string) (int, error) {
	prompt := promptui.Select{
		HideHelp: true,
		Label:    label,
		Items:    choices,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}?",
			Active:   "➜  {{ . | bold }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold }}",
		},
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}
	i, _, err := prompt.Run()
	return i, err
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
