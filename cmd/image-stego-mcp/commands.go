package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-stego-mcp/internal/config"
	"github.com/ironsheep/image-stego-mcp/internal/imaging"
	"github.com/ironsheep/image-stego-mcp/internal/logging"
	"github.com/ironsheep/image-stego-mcp/internal/server"
	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// cliState is shared by every command of one root.
type cliState struct {
	configPath string
	embedAlpha bool

	cfg config.Config
	log zerolog.Logger
}

// newRootCmd builds the command tree. With no subcommand the MCP server runs
// on stdio.
func newRootCmd() *cobra.Command {
	st := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "image-stego-mcp",
		Short: "MCP server and CLI for hiding data in image bit-planes",
		Long: `image-stego-mcp hides text or binary payloads in the least-significant
bits of an image and recovers them again.

Run without a subcommand to serve MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).

Environment variables:
  IMAGE_STEGO_CONFIG          Path to a YAML config file
  IMAGE_STEGO_LOG_LEVEL       trace, debug, info, warn, error, disabled
  IMAGE_STEGO_EMBED_ALPHA     Use the alpha channel as a carrier
  IMAGE_STEGO_OUTPUT_SUFFIX   Suffix for derived output file names`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("embed-alpha") {
				cfg.EmbedAlpha = st.embedAlpha
			}
			level, _ := config.ParseLogLevel(cfg.LogLevel)

			profile := logging.ProfileCLI
			if cmd == cmd.Root() {
				profile = logging.ProfileRuntime
			}
			st.cfg = cfg
			st.log = logging.NewWithWriter(profile, level, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = Version
			st.log.Info().
				Str("version", Version).
				Str("build_time", BuildTime).
				Str("commit", GitCommit).
				Msg("image-stego-mcp starting")
			return server.New(st.cfg, st.log).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVar(&st.configPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&st.embedAlpha, "embed-alpha", false, "use the alpha channel as a fourth carrier channel")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCapacityCmd(st),
		newHideTextCmd(st),
		newRevealTextCmd(st),
		newHideFileCmd(st),
		newRevealFileCmd(st),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image-stego-mcp %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

func newCapacityCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "capacity <image>",
		Short: "Report how much data an image can hide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := imaging.Capacity(imaging.NewImageCache(), args[0], st.cfg.EmbedAlpha)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newHideTextCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "hide-text <cover> <output> <text>",
		Short: "Hide a Latin-1 text message in an image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHide(cmd, st, args[0], args[1], stego.Payload{Mode: stego.ModeText, Data: []byte(args[2])})
		},
	}
}

func newHideFileCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "hide-file <cover> <output> <file>",
		Short: "Hide the bytes of a file in an image",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}
			return runHide(cmd, st, args[0], args[1], stego.Payload{Mode: stego.ModeBinary, Data: data})
		},
	}
}

func runHide(cmd *cobra.Command, st *cliState, src, out string, p stego.Payload) error {
	result, err := imaging.Hide(imaging.NewImageCache(), src, p, imaging.HideOptions{
		OutputPath:   out,
		IncludeAlpha: st.cfg.EmbedAlpha,
	})
	if err != nil {
		return err
	}
	st.log.Info().
		Str("output", result.OutputPath).
		Str("mode", result.Frame.ModeName).
		Int("units", result.Frame.Units).
		Uint8("highest_plane", result.Frame.HighestPlane).
		Msg("payload hidden")
	return writeJSON(cmd.OutOrStdout(), result)
}

func newRevealTextCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-text <image>",
		Short: "Print a text message hidden with hide-text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			revealed, err := imaging.Reveal(imaging.NewImageCache(), args[0], stego.ModeText, st.cfg.EmbedAlpha)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(revealed.Payload))
			return nil
		},
	}
}

func newRevealFileCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "reveal-file <image> <output>",
		Short: "Write bytes hidden with hide-file to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			revealed, err := imaging.Reveal(imaging.NewImageCache(), args[0], stego.ModeBinary, st.cfg.EmbedAlpha)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], revealed.Payload, 0o644); err != nil {
				return fmt.Errorf("failed to write payload: %w", err)
			}
			st.log.Info().
				Str("output", args[1]).
				Int("bytes", len(revealed.Payload)).
				Str("digest", revealed.PayloadDigest).
				Msg("payload revealed")
			return nil
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
