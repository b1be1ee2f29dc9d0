package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/grantmatch/internal/grants"
	"github.com/spigell/grantmatch/internal/logger"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Work with grant catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a catalog file, or the configured catalog when no file is given",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "catalog is valid: %d grants\n", s.catalog.Len())
			return
		}

		path := args[0]
		log := s.logger.With(zap.String(logger.FieldPath, path))

		catalog, err := grants.LoadFile(path)
		if err != nil {
			var problems grants.ValidationErrors
			if errors.As(err, &problems) {
				for _, problem := range problems {
					fmt.Fprintln(cmd.OutOrStdout(), problem.Error())
				}
				log.Fatal("catalog is invalid", zap.Int("problems", len(problems)))
			}
			log.Fatal("loading the catalog", zap.Error(err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "catalog is valid: %d grants\n", catalog.Len())
	},
}

var catalogDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the configured catalog as YAML",
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		data, err := s.catalog.Marshal()
		if err != nil {
			s.logger.Fatal("encoding the catalog", zap.Error(err))
		}
		cmd.OutOrStdout().Write(data)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd, catalogDumpCmd)
}
