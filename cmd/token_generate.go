// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philband/mender-gui/internal/authtoken"
	"github.com/philband/mender-gui/internal/cli"
	"github.com/philband/mender-gui/internal/rbac"
	"github.com/philband/mender-gui/internal/validation"
)

// TokenGenerator generates signed JWT tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		roles []string,
		subject string,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token",
	Long: `Generate a console session token for a subject holding the given
management roles. Built-in and custom role names are both accepted; custom
roles resolve to permissions once the API has loaded them.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.API.Server.Security.SigningKey
		roles, _ := cmd.Flags().GetStringSlice("roles")
		subject, _ := cmd.Flags().GetString("subject")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		var tm TokenGenerator = authtoken.New(logger).WithTTL(ttl)
		tokin, err := tm.Generate(signingKey, roles, subject)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		logger.Info(
			"generated token",
			slog.String("token", tokin),
			slog.String("roles", strings.Join(roles, ",")),
			slog.String("subject", subject),
			slog.String("ttl", ttl.String()),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)
	builtin := builtinRoleNames()
	usage := fmt.Sprintf("Roles for the token (built-in: %s)", strings.Join(builtin, ", "))

	tokenGenerateCmd.PersistentFlags().
		StringSliceP("roles", "r", []string{}, usage)
	tokenGenerateCmd.PersistentFlags().
		StringP("subject", "u", "", "Subject for the token (e.g., user ID or email)")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", authtoken.DefaultTTL, "Token lifetime")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("roles")
	_ = tokenGenerateCmd.MarkPersistentFlagRequired("subject")

	tokenGenerateCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		roles, _ := cmd.Flags().GetStringSlice("roles")
		if err := validateRoles(roles); err != nil {
			cli.LogFatal(logger, "invalid roles", err, "builtin", builtin)
		}

		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			cli.LogFatal(logger, "invalid ttl", fmt.Errorf("ttl must be positive, got %s", ttl))
		}
	}
}

// builtinRoleNames lists the default catalog's built-in roles, sorted.
func builtinRoleNames() []string {
	roles := rbac.DefaultCatalog().BuiltinRoles
	names := make([]string, 0, len(roles))
	for name := range roles {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func validateRoles(
	roles []string,
) error {
	if errMsg, ok := validation.Var(roles, "min=1,dive,required,excludesall=0x2C"); !ok {
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}
