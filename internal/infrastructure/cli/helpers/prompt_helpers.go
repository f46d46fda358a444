package helpers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

// PromptForYesNo asks a yes/no question on a plain line reader.
// An empty answer selects defaultValue; EOF is reported as domain.ErrInterrupted.
func PromptForYesNo(out io.Writer, reader *bufio.Reader, promptText string, defaultValue bool) (bool, error) {
	fmt.Fprint(out, YesNoPrompt(promptText, defaultValue))

	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return ParseYesNo(line, defaultValue), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return false, domain.ErrInterrupted
		}
		return false, fmt.Errorf("read answer: %w", err)
	}
	return ParseYesNo(line, defaultValue), nil
}

// PromptForString reads one trimmed line, returning defaultValue when it is empty.
func PromptForString(out io.Writer, reader *bufio.Reader, promptText string, defaultValue string) (string, error) {
	fmt.Fprintf(out, "%s ", promptText)
	if defaultValue != "" {
		fmt.Fprintf(out, "(default: %s)", defaultValue)
	}
	fmt.Fprint(out, ": ")

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read answer: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		if errors.Is(err, io.EOF) && defaultValue == "" {
			return "", domain.ErrInterrupted
		}
		return defaultValue, nil
	}
	return line, nil
}

// YesNoPrompt renders "question [Y/n]: " for the given default.
func YesNoPrompt(question string, defaultYes bool) string {
	return fmt.Sprintf("%s [%s]: ", question, buildYesNoLabel(defaultYes))
}

// ParseYesNo interprets an answer. Anything other than y/yes is a no,
// except an empty answer which keeps the default.
func ParseYesNo(answer string, defaultValue bool) bool {
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer == "" {
		return defaultValue
	}
	return isAffirmativeResponse(answer)
}

// buildYesNoLabel constructs the appropriate y/N or Y/n label based on the default
func buildYesNoLabel(defaultIsYes bool) string {
	if defaultIsYes {
		return "Y/n"
	}
	return "y/N"
}

func isAffirmativeResponse(response string) bool {
	return response == "y" || response == "yes"
}
