// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/report-desk/internal/utils"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Terminal and clipboard seams, replaced in tests.
var (
	isTerminal     = term.IsTerminal
	readPassword   = term.ReadPassword
	writeClipboard = clipboard.WriteAll
)

func newHashPasswordCommand() *cobra.Command {
	var copyHash bool

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for APP_ADMIN_PASSWORD_HASH",
		Long: "Read the admin password twice without echo and print its bcrypt hash.\n" +
			"When stdin is not a terminal the password is read from the first two lines.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stderr := cmd.ErrOrStderr()
			read := secretReader(cmd.InOrStdin(), stderr)

			password, err := read("Password: ")
			if err != nil {
				return err
			}
			if len(password) == 0 {
				return ErrEmptyPassword
			}

			confirm, err := read("Repeat password: ")
			if err != nil {
				return err
			}
			if !bytes.Equal(password, confirm) {
				return ErrPasswordsDiffer
			}

			hash, err := utils.HashPassword(string(password))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)

			if copyHash {
				if err = writeClipboard(hash); err != nil {
					fmt.Fprintf(stderr, "copy to clipboard: %v\n", err)
				} else {
					fmt.Fprintln(stderr, labelStyle.Render("copied to clipboard"))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyHash, "copy", false, "also copy the hash to the clipboard")

	return cmd
}

// secretReader returns a prompt-and-read function. On a terminal the input
// is not echoed, otherwise lines are read from in.
func secretReader(in io.Reader, prompt io.Writer) func(string) ([]byte, error) {
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		return func(label string) ([]byte, error) {
			fmt.Fprint(prompt, label)
			secret, err := readPassword(int(f.Fd()))
			fmt.Fprintln(prompt)
			return secret, err
		}
	}

	lines := bufio.NewReader(in)
	return func(string) ([]byte, error) {
		line, err := lines.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}
}
