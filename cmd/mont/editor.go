package main

import (
	"fmt"
	"os"
	"os/exec"
)

// editorCommand resolves which editor to launch: config, then $EDITOR,
// then vi.
func editorCommand() string {
	if ed := taskStore.Config().Editor; ed != "" {
		return ed
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "vi"
}

// editBytes writes content to a temp file, opens it in the editor, and
// returns the saved result.
func editBytes(pattern string, content []byte) ([]byte, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return nil, err
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.Write(content); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	cmd := exec.Command(editorCommand(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor exited with error: %w", err)
	}
	return os.ReadFile(path)
}

// retryPrompt asks whether to reopen the editor after a validation
// failure, so a typo does not throw away the whole edit.
func retryPrompt(cause error) (bool, error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", cause)
	return confirm("Reopen the editor and fix it?")
}
