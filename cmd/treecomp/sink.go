package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// sink is where a finished report goes: stdout, the user's pager, or the
// user's editor on a temp file. The core never formats or displays anything;
// it hands one text blob to a sink.
type sink int

const (
	sinkPrint sink = iota
	sinkPager
	sinkEditor
)

func parseSink(s string) (sink, error) {
	switch s {
	case "print", "":
		return sinkPrint, nil
	case "pager", "page":
		return sinkPager, nil
	case "editor", "edit":
		return sinkEditor, nil
	}
	return 0, fmt.Errorf("unknown output sink %q", s)
}

func (s sink) Write(report string) error {
	switch s {
	case sinkPager:
		return pageReport(report)
	case sinkEditor:
		return editReport(report)
	default:
		_, err := fmt.Print(report)
		return err
	}
}

func pageReport(report string) error {
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}

	cmd := exec.Command(pager)
	cmd.Stdin = strings.NewReader(report)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run pager %s: %w", pager, err)
	}
	return nil
}

func editReport(report string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	f, err := os.CreateTemp("", "treecomp-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	cmd := exec.Command(editor, f.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor, err)
	}
	return nil
}
