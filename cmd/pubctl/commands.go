package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"researchpub/internal/config"
	"researchpub/internal/hook"
	"researchpub/internal/logging"
	"researchpub/internal/platform/crypto"
	"researchpub/internal/plugin"
	"researchpub/internal/publication"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type app struct {
	configFile string
	format     string
	verbose    bool
	secret     string

	logger *zap.Logger
	plugin *plugin.Plugin
	hooks  *hook.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pubctl",
		Short:         "Inspect and render research publications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", config.FilePath(), "Config file (labels are read from it)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	typeCmd := &cobra.Command{
		Use:   "type",
		Short: "Print the content-type descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.OutOrStdout(), a.format, a.plugin.Descriptor())
		},
	}
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the custom field group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return write(cmd.OutOrStdout(), a.format, a.plugin.FieldGroup())
		},
	}
	for _, c := range []*cobra.Command{typeCmd, schemaCmd} {
		c.Flags().StringVarP(&a.format, "format", "f", "json", "Output format: json or yaml")
	}

	var file string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render a publication read from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, file)
		},
	}
	renderCmd.Flags().StringVar(&file, "file", "", "YAML file holding one publication (required)")
	_ = renderCmd.MarkFlagRequired("file")

	var (
		user string
		role string
		ttl  time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the write endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.secret == "" {
				return errors.New("jwt.secret is not configured")
			}
			role = strings.ToUpper(role)
			if role != crypto.RoleEditor && role != crypto.RoleAdmin {
				return fmt.Errorf("unknown role %q: use EDITOR or ADMIN", role)
			}
			token, jti, err := crypto.GenerateToken(a.secret, user, role, ttl)
			if err != nil {
				return err
			}
			a.logger.Debug("issued token", zap.String("jti", jti), zap.String("sub", user), zap.String("role", role))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	tokenCmd.Flags().StringVar(&user, "user", "", "Subject of the token (required)")
	tokenCmd.Flags().StringVar(&role, "role", crypto.RoleEditor, "Role claim: EDITOR or ADMIN")
	tokenCmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")

	root.AddCommand(typeCmd, schemaCmd, renderCmd, tokenCmd)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	a.logger, err = logging.New(level, "console")
	if err != nil {
		return err
	}

	a.secret = cfg.JWT.Secret
	a.hooks = hook.NewRegistry()
	cfg.InstallLabels(a.hooks)
	a.plugin = plugin.New(a.hooks)
	return nil
}

func (a *app) render(cmd *cobra.Command, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	var p publication.Publication
	if err := yaml.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = "local"
	}

	group := a.plugin.FieldGroup()
	if err := group.Validate(p.Values()); err != nil {
		return err
	}
	p = p.WithValues(group.Visible(p.Values()))

	fr := publication.NewMemoryFields(group)
	fr.PutPublication(p)
	html, err := publication.NewRenderer(fr, a.hooks).Render(cmd.Context(), p)
	if err != nil {
		return err
	}
	a.logger.Debug("rendered publication", zap.String("type", string(p.Variant)), zap.Int("bytes", len(html)))

	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown format %q: use json or yaml", format)
	}
}
