// Package vcs makes snapshot commits of the tasks directory after
// successful mutations. It shells out to git; when the directory is not
// inside a work tree every operation is a silent no-op.
package vcs

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git against one tasks directory.
type Client struct {
	dir string
}

// New returns a client for the given tasks directory.
func New(dir string) *Client {
	return &Client{dir: dir}
}

func (c *Client) git(args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", c.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// Available reports whether the directory sits inside a git work tree.
func (c *Client) Available() bool {
	out, err := c.git("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Dirty reports whether the tasks directory has uncommitted changes.
func (c *Client) Dirty() (bool, error) {
	out, err := c.git("status", "--porcelain", "--", ".")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// Snapshot stages the tasks directory and commits it with the given
// message. A clean tree is a no-op.
func (c *Client) Snapshot(message string) error {
	if !c.Available() {
		return nil
	}
	dirty, err := c.Dirty()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	if _, err := c.git("add", "--", "."); err != nil {
		return err
	}
	_, err = c.git("commit", "-m", message, "--", ".")
	return err
}
