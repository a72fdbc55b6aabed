package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"boomiis-api/middleware"
)

func init() { //nolint: gochecknoinits
	hashPasswordCmd.Flags().BoolVar(&useBcrypt, "bcrypt", false, "Produce a bcrypt hash instead of SHA-256")

	rootCmd.AddCommand(hashPasswordCmd)
}

var (
	useBcrypt bool

	hashPasswordCmd = &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a value for ADMIN_PASSWORD_HASH",
		Long:  "Print a value for ADMIN_PASSWORD_HASH. The password is read from stdin when not given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(args)
			if err != nil {
				return err
			}

			hash, err := hashPassword(password, useBcrypt)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
)

func readPassword(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func hashPassword(password string, withBcrypt bool) (string, error) {
	if password == "" {
		return "", errors.New("password can not be empty")
	}
	if !withBcrypt {
		return middleware.HashPassword(password), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt")
	}
	return string(hash), nil
}
